package queries

import (
	"context"
	"fmt"

	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
)

// ItemHistoryReader is the read-only part of the inventory repository this
// query needs.
type ItemHistoryReader interface {
	Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error)
	Movements(ctx context.Context, itemID kernel.UUID) ([]*inventory.Movement, error)
}

type GetItemHistoryQueryHandler struct {
	reader ItemHistoryReader
}

func NewGetItemHistoryQueryHandler(reader ItemHistoryReader) GetItemHistoryQueryHandler {
	return GetItemHistoryQueryHandler{reader: reader}
}

func (h GetItemHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetItemHistoryQuery,
) (*GetItemHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	item, err := h.reader.Get(ctx, query.ItemID())
	if err != nil {
		return nil, err
	}
	movements, err := h.reader.Movements(ctx, query.ItemID())
	if err != nil {
		return nil, err
	}

	replayed, err := inventory.Replay(movements)
	if err != nil {
		return nil, fmt.Errorf("replay ledger of item %s: %w", item.ID(), err)
	}

	response := &GetItemHistoryQueryResponse{
		ItemID:     item.ID(),
		OrderID:    item.OrderID().String(),
		Stored:     item.Snapshot(),
		Replayed:   replayed,
		Consistent: sameSnapshot(item.Snapshot(), replayed),
		Movements:  make([]MovementView, 0, len(movements)),
	}

	ordered := append([]*inventory.Movement(nil), movements...)
	inventory.SortMovements(ordered)
	for _, m := range ordered {
		response.Movements = append(response.Movements, MovementView{
			ID:           m.ID(),
			Seq:          m.Seq(),
			Type:         m.Type(),
			From:         m.From(),
			To:           m.To(),
			ToShowroomID: m.ToShowroomID(),
			Outcome:      m.Outcome(),
			Reason:       m.Reason(),
			PerformedBy:  m.PerformedBy(),
			Notes:        m.Notes(),
			At:           m.At(),
		})
	}

	return response, nil
}

func sameSnapshot(a, b inventory.Snapshot) bool {
	return a.Location == b.Location &&
		a.ShowroomID == b.ShowroomID &&
		a.Status == b.Status &&
		a.StockInDate.Equal(b.StockInDate)
}
