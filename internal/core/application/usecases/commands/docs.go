// Package commands contains the operations that change custody state.
//
// Every command follows the same shape: a Command value built by a
// constructor that validates caller input, and a Handler that opens a unit
// of work, loads aggregates, applies domain behavior, writes the result and
// commits. Validation failures never reach the store.
package commands

import (
	"context"
	"errors"

	"custody/internal/core/application/orderids"
	"custody/internal/core/domain/model/orderid"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/metrics"
)

// OrderIDGenerator issues order identifiers for new intakes.
type OrderIDGenerator interface {
	Generate(ctx context.Context, req orderids.Request) (orderid.OrderID, error)
}

// observe counts illegal-state rejections and passes err through.
func observe(operation string, err error) error {
	if errors.Is(err, errs.ErrIllegalState) {
		metrics.IllegalStateRejectionsTotal.WithLabelValues(operation).Inc()
	}
	return err
}
