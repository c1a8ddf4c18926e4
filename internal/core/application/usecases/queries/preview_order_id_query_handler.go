package queries

import (
	"context"

	"custody/internal/core/application/orderids"
	"custody/internal/core/domain/model/orderid"
)

type OrderIDPreviewer interface {
	Preview(req orderids.Request) (orderid.OrderID, error)
}

type PreviewOrderIDQueryHandler struct {
	previewer OrderIDPreviewer
}

func NewPreviewOrderIDQueryHandler(previewer OrderIDPreviewer) PreviewOrderIDQueryHandler {
	return PreviewOrderIDQueryHandler{previewer: previewer}
}

func (h PreviewOrderIDQueryHandler) Handle(_ context.Context, query PreviewOrderIDQuery) (string, error) {
	if err := query.Validate(); err != nil {
		return "", err
	}
	id, err := h.previewer.Preview(query.Request())
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
