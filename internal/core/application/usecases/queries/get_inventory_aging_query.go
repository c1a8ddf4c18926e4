// Package queries contains the read side of the custody ledger. Queries
// return read models shaped for reporting and never change state.
package queries

import (
	"errors"
	"time"

	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/guard"
)

var (
	ErrGetInventoryAgingQueryIsNotConstructed = errors.New(
		"GetInventoryAgingQuery must be created via NewGetInventoryAgingQuery constructor",
	)
)

// GetInventoryAgingQuery lists in-stock items with their age. Aging is
// computed at read time from the stock-in date and is never stored.
//
// Example:
//
//	query, _ := NewGetInventoryAgingQuery(kernel.Warehouse)
//	report, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Summary[inventory.BucketStale])
type GetInventoryAgingQuery struct {
	location kernel.Location
	guard    guard.ConstructorGuard
}

// NewGetInventoryAgingQuery filters by location; kernel.UnknownLocation
// selects every location.
func NewGetInventoryAgingQuery(location kernel.Location) (GetInventoryAgingQuery, error) {
	if location != kernel.UnknownLocation {
		if err := location.Validate(); err != nil {
			return GetInventoryAgingQuery{}, err
		}
	}
	return GetInventoryAgingQuery{location: location, guard: guard.NewConstructorGuard()}, nil
}

func (q GetInventoryAgingQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryAgingQueryIsNotConstructed)
}

func (q GetInventoryAgingQuery) Location() kernel.Location { return q.location }

// AgingItem is one in-stock unit in the aging read model.
type AgingItem struct {
	ID           kernel.UUID
	OrderID      string
	SerialNumber string
	Location     kernel.Location
	ShowroomID   string
	StockInDate  time.Time
	AgingDays    int
	Bucket       inventory.AgingBucket
}

// GetInventoryAgingQueryResponse holds the items oldest first and the item
// count of every bucket, empty buckets included.
type GetInventoryAgingQueryResponse struct {
	GeneratedAt time.Time
	Items       []AgingItem
	Summary     map[inventory.AgingBucket]int
}
