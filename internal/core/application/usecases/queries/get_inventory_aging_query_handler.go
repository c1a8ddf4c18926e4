package queries

import (
	"context"
	"time"

	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetInventoryAgingQueryHandler reads the inventory_items snapshot table
// directly with SQL.
type GetInventoryAgingQueryHandler struct {
	db    *gorm.DB
	clock kernel.Clock
}

func NewGetInventoryAgingQueryHandler(db *gorm.DB, clock kernel.Clock) GetInventoryAgingQueryHandler {
	return GetInventoryAgingQueryHandler{db: db, clock: clock}
}

func (h GetInventoryAgingQueryHandler) Handle(
	ctx context.Context,
	query GetInventoryAgingQuery,
) (*GetInventoryAgingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_id,
			serial_number,
			location,
			showroom_id,
			stock_in_date,
			created_at
		FROM inventory_items
		WHERE status = ?`
	args := []any{inventory.InStock.String()}
	if query.Location() != kernel.UnknownLocation {
		sql += ` AND location = ?`
		args = append(args, query.Location().String())
	}
	sql += ` ORDER BY stock_in_date, order_id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := h.clock.Now()
	response := &GetInventoryAgingQueryResponse{
		GeneratedAt: now,
		Items:       make([]AgingItem, 0),
		Summary:     make(map[inventory.AgingBucket]int, len(inventory.AgingBuckets())),
	}
	for _, bucket := range inventory.AgingBuckets() {
		response.Summary[bucket] = 0
	}

	for rows.Next() {
		var item AgingItem
		var id uuid.UUID
		var location string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&item.OrderID,
			&item.SerialNumber,
			&location,
			&item.ShowroomID,
			&item.StockInDate,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = itemID

		item.Location, err = kernel.ParseLocation(location)
		if err != nil {
			return nil, err
		}

		item.AgingDays = inventory.AgingDays(item.StockInDate, createdAt, now)
		item.Bucket = inventory.BucketFor(item.AgingDays)
		response.Summary[item.Bucket]++
		response.Items = append(response.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return response, nil
}
