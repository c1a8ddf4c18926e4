package queries

import (
	"errors"
	"strings"

	"custody/internal/core/application/orderids"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var (
	ErrPreviewOrderIDQueryIsNotConstructed = errors.New(
		"PreviewOrderIDQuery must be created via NewPreviewOrderIDQuery constructor",
	)
)

// PreviewOrderIDQuery shows the identifier an intake would get, with XXXX in
// place of the sequence. Nothing is allocated.
type PreviewOrderIDQuery struct {
	request orderids.Request
	guard   guard.ConstructorGuard
}

func NewPreviewOrderIDQuery(postalCode, category, brand, stateName string) (PreviewOrderIDQuery, error) {
	if strings.TrimSpace(category) == "" {
		return PreviewOrderIDQuery{}, errs.NewValueIsRequiredError("category")
	}
	return PreviewOrderIDQuery{
		request: orderids.Request{
			PostalCode: postalCode,
			Category:   category,
			Brand:      brand,
			StateName:  stateName,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q PreviewOrderIDQuery) Validate() error {
	return q.guard.Validate(ErrPreviewOrderIDQueryIsNotConstructed)
}

func (q PreviewOrderIDQuery) Request() orderids.Request { return q.request }
