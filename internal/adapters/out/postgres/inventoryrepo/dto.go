// Package inventoryrepo persists inventory items and their append-only
// movement log. Movements are inserted with pending=true, the snapshot row is
// written under its version check, then the flag is cleared.
package inventoryrepo

import (
	"time"

	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"

	"github.com/google/uuid"
)

type ItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	IntakeID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	OrderID      string    `gorm:"size:32;not null"`
	SerialNumber string
	AgreedPrice  int64     `gorm:"not null"`
	Location     string    `gorm:"size:32"`
	ShowroomID   string    `gorm:"size:64"`
	Status       string    `gorm:"size:32;index;not null"`
	StockInDate  time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	LastSeq      int       `gorm:"not null"`
	Version      int       `gorm:"not null;default:0"`
}

func (ItemDTO) TableName() string {
	return "inventory_items"
}

type MovementDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_movements_item_seq"`
	Seq          int       `gorm:"not null;uniqueIndex:idx_stock_movements_item_seq"`
	Type         string    `gorm:"size:16;not null"`
	FromLocation string    `gorm:"size:32"`
	ToLocation   string    `gorm:"size:32"`
	ToShowroomID string    `gorm:"size:64"`
	Outcome      string    `gorm:"size:16"`
	Reason       string    `gorm:"not null"`
	PerformedBy  string    `gorm:"size:64;not null"`
	Notes        string
	At           time.Time `gorm:"not null;index"`
	Pending      bool      `gorm:"not null;index"`
}

func (MovementDTO) TableName() string {
	return "stock_movements"
}

// locationColumn stores the absent side of a movement as an empty string.
func locationColumn(l kernel.Location) string {
	if l == kernel.UnknownLocation {
		return ""
	}
	return l.String()
}

func parseLocationColumn(s string) (kernel.Location, error) {
	if s == "" {
		return kernel.UnknownLocation, nil
	}
	return kernel.ParseLocation(s)
}

// outcomeColumn is empty for every movement except stock-out.
func outcomeColumn(s inventory.Status) string {
	if s == inventory.Unknown {
		return ""
	}
	return s.String()
}

func parseOutcomeColumn(s string) (inventory.Status, error) {
	if s == "" {
		return inventory.Unknown, nil
	}
	return inventory.ParseStatus(s)
}

func itemFromDomain(item *inventory.Item) ItemDTO {
	snapshot := item.Snapshot()
	return ItemDTO{
		ID:           item.ID().Bytes(),
		IntakeID:     item.IntakeID().Bytes(),
		OrderID:      item.OrderID().String(),
		SerialNumber: item.SerialNumber(),
		AgreedPrice:  item.AgreedPrice(),
		Location:     locationColumn(snapshot.Location),
		ShowroomID:   snapshot.ShowroomID,
		Status:       snapshot.Status.String(),
		StockInDate:  snapshot.StockInDate,
		CreatedAt:    item.CreatedAt(),
		LastSeq:      item.LastSeq(),
		Version:      item.Version(),
	}
}

func itemToDomain(dto ItemDTO) (*inventory.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	intakeID, err := kernel.UUIDFromBytes(dto.IntakeID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := orderid.Parse(dto.OrderID)
	if err != nil {
		return nil, err
	}
	location, err := parseLocationColumn(dto.Location)
	if err != nil {
		return nil, err
	}
	status, err := inventory.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreItem(inventory.ItemParams{
		ID:           id,
		IntakeID:     intakeID,
		OrderID:      orderID,
		SerialNumber: dto.SerialNumber,
		AgreedPrice:  dto.AgreedPrice,
		Snapshot: inventory.Snapshot{
			Location:    location,
			ShowroomID:  dto.ShowroomID,
			Status:      status,
			StockInDate: dto.StockInDate,
		},
		CreatedAt: dto.CreatedAt,
		LastSeq:   dto.LastSeq,
		Version:   dto.Version,
	})
}

func movementFromDomain(m *inventory.Movement) MovementDTO {
	return MovementDTO{
		ID:           m.ID().Bytes(),
		ItemID:       m.ItemID().Bytes(),
		Seq:          m.Seq(),
		Type:         m.Type().String(),
		FromLocation: locationColumn(m.From()),
		ToLocation:   locationColumn(m.To()),
		ToShowroomID: m.ToShowroomID(),
		Outcome:      outcomeColumn(m.Outcome()),
		Reason:       m.Reason(),
		PerformedBy:  m.PerformedBy(),
		Notes:        m.Notes(),
		At:           m.At(),
		Pending:      true,
	}
}

func movementToDomain(dto MovementDTO) (*inventory.Movement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	kind, err := inventory.ParseMovementType(dto.Type)
	if err != nil {
		return nil, err
	}
	from, err := parseLocationColumn(dto.FromLocation)
	if err != nil {
		return nil, err
	}
	to, err := parseLocationColumn(dto.ToLocation)
	if err != nil {
		return nil, err
	}
	outcome, err := parseOutcomeColumn(dto.Outcome)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreMovement(inventory.MovementParams{
		ID:           id,
		ItemID:       itemID,
		Seq:          dto.Seq,
		Type:         kind,
		From:         from,
		To:           to,
		ToShowroomID: dto.ToShowroomID,
		Outcome:      outcome,
		Reason:       dto.Reason,
		PerformedBy:  dto.PerformedBy,
		Notes:        dto.Notes,
		At:           dto.At,
	}), nil
}
