// Package intakerepo persists intake records, their verification and their
// QC decision. Each record has at most one verification and one decision,
// enforced by unique indexes on intake_id.
package intakerepo

import (
	"time"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"

	"github.com/google/uuid"
)

type IntakeDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderID     string      `gorm:"size:32;uniqueIndex;not null"`
	SourceType  string      `gorm:"size:32;not null"`
	Status      string      `gorm:"size:32;index;not null"`
	ProductName string      `gorm:"not null"`
	Price       int64       `gorm:"not null"`
	Customer    CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	AgentID     string      `gorm:"size:64"`
	CreatedAt   time.Time   `gorm:"not null"`
	UpdatedAt   time.Time   `gorm:"not null"`
	Version     int         `gorm:"not null;default:0"`
}

func (IntakeDTO) TableName() string {
	return "intakes"
}

type CustomerDTO struct {
	Name    string
	Phone   string
	Address string
}

type VerificationDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	IntakeID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PhotoRefs    []string  `gorm:"type:text;serializer:json;not null"`
	IDProofRef   string    `gorm:"not null"`
	SerialNumber string
	CapturedBy   string    `gorm:"size:64;not null"`
	Notes        []string  `gorm:"type:text;serializer:json"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (VerificationDTO) TableName() string {
	return "verifications"
}

type QCDecisionDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	IntakeID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	OrderID          string    `gorm:"size:32;not null"`
	Decision         string    `gorm:"size:32;not null"`
	TargetShowroomID string    `gorm:"size:64"`
	ReviewerID       string    `gorm:"size:64;not null"`
	Notes            string
	DecidedAt        time.Time `gorm:"not null"`
}

func (QCDecisionDTO) TableName() string {
	return "qc_decisions"
}

func recordFromDomain(r *intake.Record) IntakeDTO {
	c := r.Customer()
	return IntakeDTO{
		ID:          r.ID().Bytes(),
		OrderID:     r.OrderID().String(),
		SourceType:  r.SourceType().String(),
		Status:      r.Status().String(),
		ProductName: r.ProductName(),
		Price:       r.Price(),
		Customer:    CustomerDTO{Name: c.Name, Phone: c.Phone, Address: c.Address},
		AgentID:     r.AgentID(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
		Version:     r.Version(),
	}
}

func recordToDomain(dto IntakeDTO) (*intake.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := orderid.Parse(dto.OrderID)
	if err != nil {
		return nil, err
	}
	source, err := intake.ParseSourceType(dto.SourceType)
	if err != nil {
		return nil, err
	}
	status, err := intake.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return intake.RestoreRecord(intake.RestoreParams{
		ID:          id,
		OrderID:     orderID,
		SourceType:  source,
		Status:      status,
		ProductName: dto.ProductName,
		Price:       dto.Price,
		Customer:    intake.Customer{Name: dto.Customer.Name, Phone: dto.Customer.Phone, Address: dto.Customer.Address},
		AgentID:     dto.AgentID,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		Version:     dto.Version,
	})
}

func verificationFromDomain(v *intake.Verification) VerificationDTO {
	return VerificationDTO{
		ID:           v.ID().Bytes(),
		IntakeID:     v.IntakeID().Bytes(),
		PhotoRefs:    v.PhotoRefs(),
		IDProofRef:   v.IDProofRef(),
		SerialNumber: v.SerialNumber(),
		CapturedBy:   v.CapturedBy(),
		Notes:        v.Notes(),
		CreatedAt:    v.CreatedAt(),
	}
}

func verificationToDomain(dto VerificationDTO) (*intake.Verification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	intakeID, err := kernel.UUIDFromBytes(dto.IntakeID[:])
	if err != nil {
		return nil, err
	}
	return intake.RestoreVerification(id, intakeID, dto.PhotoRefs, dto.IDProofRef, dto.SerialNumber,
		dto.CapturedBy, dto.Notes, dto.CreatedAt), nil
}

func decisionFromDomain(d *intake.QCDecision) QCDecisionDTO {
	return QCDecisionDTO{
		ID:               d.ID().Bytes(),
		IntakeID:         d.IntakeID().Bytes(),
		OrderID:          d.OrderID().String(),
		Decision:         d.Decision().String(),
		TargetShowroomID: d.TargetShowroomID(),
		ReviewerID:       d.ReviewerID(),
		Notes:            d.Notes(),
		DecidedAt:        d.DecidedAt(),
	}
}

func decisionToDomain(dto QCDecisionDTO) (*intake.QCDecision, error) {
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
	decision, err := intake.ParseDecision(dto.Decision)
	if err != nil {
		return nil, err
	}
	return intake.RestoreQCDecision(id, intakeID, orderID, decision, dto.TargetShowroomID,
		dto.ReviewerID, dto.Notes, dto.DecidedAt), nil
}
