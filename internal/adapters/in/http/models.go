package http

import (
	"time"
)

// Error is the body of every non-2xx response. Fields lists validation
// failures by JSON field name when the request body was rejected.
type Error struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type Customer struct {
	Name    string `json:"name" validate:"max=200"`
	Phone   string `json:"phone" validate:"max=32"`
	Address string `json:"address" validate:"max=500"`
}

type NewPickupIntake struct {
	PostalCode  string   `json:"postal_code" validate:"required,max=16"`
	StateName   string   `json:"state_name" validate:"max=64"`
	Category    string   `json:"category" validate:"required,max=64"`
	Brand       string   `json:"brand" validate:"max=64"`
	ProductName string   `json:"product_name" validate:"required,max=200"`
	Price       int64    `json:"price" validate:"gte=0"`
	Customer    Customer `json:"customer"`
}

type Capture struct {
	PhotoRefs    []string `json:"photo_refs" validate:"dive,required"`
	IDProofRef   string   `json:"id_proof_ref"`
	SerialNumber string   `json:"serial_number" validate:"max=128"`
	CapturedBy   string   `json:"captured_by"`
	Notes        string   `json:"notes"`
}

type NewWalkInIntake struct {
	NewPickupIntake
	Capture Capture `json:"capture"`
}

type IntakeCreated struct {
	IntakeID string `json:"intake_id"`
	OrderID  string `json:"order_id"`
}

type AgentAssignment struct {
	AgentID string `json:"agent_id" validate:"required,max=64"`
}

type VerificationCreated struct {
	VerificationID string `json:"verification_id"`
}

type VerificationNote struct {
	Note string `json:"note" validate:"required"`
}

type NewQCDecision struct {
	Decision         string `json:"decision" validate:"required,oneof=service_station showroom warehouse reject"`
	TargetShowroomID string `json:"target_showroom_id" validate:"max=64"`
	ReviewerID       string `json:"reviewer_id" validate:"required,max=64"`
	Notes            string `json:"notes"`
}

type QCDecided struct {
	DecisionID      string  `json:"decision_id"`
	Status          string  `json:"status"`
	InventoryItemID *string `json:"inventory_item_id,omitempty"`
}

type StockTransfer struct {
	To           string `json:"to" validate:"required,oneof=service_station showroom warehouse"`
	ToShowroomID string `json:"to_showroom_id" validate:"max=64"`
	Reason       string `json:"reason" validate:"required"`
	PerformedBy  string `json:"performed_by" validate:"required,max=64"`
}

type StockOut struct {
	Outcome     string `json:"outcome" validate:"required,oneof=sold returned"`
	Reason      string `json:"reason" validate:"required"`
	PerformedBy string `json:"performed_by" validate:"required,max=64"`
}

type StockOutResult struct {
	Status string `json:"status"`
}

type AgingItem struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	SerialNumber string    `json:"serial_number,omitempty"`
	Location     string    `json:"location"`
	ShowroomID   string    `json:"showroom_id,omitempty"`
	StockInDate  time.Time `json:"stock_in_date"`
	AgingDays    int       `json:"aging_days"`
	Bucket       string    `json:"bucket"`
}

type AgingReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Items       []AgingItem    `json:"items"`
	Summary     map[string]int `json:"summary"`
}

type Snapshot struct {
	Location    string    `json:"location"`
	ShowroomID  string    `json:"showroom_id,omitempty"`
	Status      string    `json:"status"`
	StockInDate time.Time `json:"stock_in_date"`
}

type Movement struct {
	ID           string    `json:"id"`
	Seq          int       `json:"seq"`
	Type         string    `json:"type"`
	From         string    `json:"from,omitempty"`
	To           string    `json:"to,omitempty"`
	ToShowroomID string    `json:"to_showroom_id,omitempty"`
	Outcome      string    `json:"outcome,omitempty"`
	Reason       string    `json:"reason"`
	PerformedBy  string    `json:"performed_by"`
	Notes        string    `json:"notes,omitempty"`
	At           time.Time `json:"at"`
}

type ItemHistory struct {
	ItemID     string     `json:"item_id"`
	OrderID    string     `json:"order_id"`
	Stored     Snapshot   `json:"stored"`
	Replayed   Snapshot   `json:"replayed"`
	Consistent bool       `json:"consistent"`
	Movements  []Movement `json:"movements"`
}

type OrderIDPreview struct {
	OrderID string `json:"order_id"`
}
