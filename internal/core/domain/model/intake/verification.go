package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
)

const (
	MinDevicePhotos = 3
	MaxDevicePhotos = 20
)

// Verification is the on-site capture attached 1:1 to an intake record.
// It is immutable once created except for appended notes.
type Verification struct {
	id           kernel.UUID
	intakeID     kernel.UUID
	photoRefs    []string
	idProofRef   string
	serialNumber string
	capturedBy   string
	notes        []string
	createdAt    time.Time
}

// Capture is the raw input collected by an agent or showroom staff member.
// Photo and ID-proof references are opaque URIs or blob handles.
type Capture struct {
	PhotoRefs    []string
	IDProofRef   string
	SerialNumber string
	CapturedBy   string
	Notes        string
}

// NewVerification validates a capture for the given intake source. Every
// problem is reported at once; nothing is created on failure. Pickups must
// carry a serial number, walk-ins may omit it.
func NewVerification(id, intakeID kernel.UUID, source SourceType, c Capture, now time.Time) (*Verification, error) {
	v := &Verification{createdAt: now}

	if err := errors.Join(
		v.setIDs(id, intakeID),
		v.setPhotos(c.PhotoRefs),
		v.setIDProof(c.IDProofRef),
		v.setSerialNumber(source, c.SerialNumber),
		v.setCapturedBy(c.CapturedBy),
	); err != nil {
		return nil, err
	}

	if note := strings.TrimSpace(c.Notes); note != "" {
		v.notes = []string{note}
	}
	return v, nil
}

// RestoreVerification rebuilds a persisted verification without re-validating it.
func RestoreVerification(
	id, intakeID kernel.UUID,
	photoRefs []string,
	idProofRef, serialNumber, capturedBy string,
	notes []string,
	createdAt time.Time,
) *Verification {
	return &Verification{
		id:           id,
		intakeID:     intakeID,
		photoRefs:    photoRefs,
		idProofRef:   idProofRef,
		serialNumber: serialNumber,
		capturedBy:   capturedBy,
		notes:        notes,
		createdAt:    createdAt,
	}
}

func (v *Verification) ID() kernel.UUID       { return v.id }
func (v *Verification) IntakeID() kernel.UUID { return v.intakeID }
func (v *Verification) IDProofRef() string    { return v.idProofRef }
func (v *Verification) SerialNumber() string  { return v.serialNumber }
func (v *Verification) CapturedBy() string    { return v.capturedBy }
func (v *Verification) CreatedAt() time.Time  { return v.createdAt }

func (v *Verification) PhotoRefs() []string {
	return append([]string(nil), v.photoRefs...)
}

func (v *Verification) Notes() []string {
	return append([]string(nil), v.notes...)
}

// AppendNote adds a free-text note. It is the only mutation a verification allows.
func (v *Verification) AppendNote(note string) error {
	note = strings.TrimSpace(note)
	if note == "" {
		return errs.NewValueIsRequiredError("note")
	}
	v.notes = append(v.notes, note)
	return nil
}

func (v *Verification) setIDs(id, intakeID kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := intakeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("intake id", err)
	}
	v.id, v.intakeID = id, intakeID
	return nil
}

func (v *Verification) setPhotos(refs []string) error {
	photos := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref = strings.TrimSpace(ref); ref != "" {
			photos = append(photos, ref)
		}
	}
	if len(photos) < MinDevicePhotos || len(photos) > MaxDevicePhotos {
		return errs.NewValueIsOutOfRangeError("device photos", len(photos), MinDevicePhotos, MaxDevicePhotos)
	}
	v.photoRefs = photos
	return nil
}

func (v *Verification) setIDProof(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return errs.NewValueIsRequiredError("id proof")
	}
	v.idProofRef = strings.TrimSpace(ref)
	return nil
}

func (v *Verification) setSerialNumber(source SourceType, serial string) error {
	serial = strings.TrimSpace(serial)
	if serial == "" && source != SourceShowroomWalkIn {
		return errs.NewValueIsRequiredErrorWithCause("serial number", fmt.Errorf("required for %s intakes", source))
	}
	v.serialNumber = serial
	return nil
}

func (v *Verification) setCapturedBy(staffID string) error {
	if strings.TrimSpace(staffID) == "" {
		return errs.NewValueIsRequiredError("captured by")
	}
	v.capturedBy = strings.TrimSpace(staffID)
	return nil
}
