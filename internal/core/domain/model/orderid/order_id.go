// Package orderid defines the human-facing order reference issued at intake.
//
// An identifier has the fixed structure
//
//	{region:2 letters}{sub-region:2 digits}WT{product type:4 letters}{sequence:>=4 digits}
//
// e.g. TN37WTDSLR1001. The sequence is global across regions and categories,
// so no two issued identifiers share a trailing sequence.
package orderid

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"custody/internal/pkg/errs"
)

const (
	// FixedTag separates the geography from the product type.
	FixedTag = "WT"
	// PreviewPlaceholder stands in for the sequence of an unallocated identifier.
	PreviewPlaceholder = "XXXX"

	minSequenceDigits = 4
)

var (
	pattern        = regexp.MustCompile(`^([A-Z]{2})([0-9]{2})WT([A-Z]{4})([0-9]{4,})$`)
	regionPattern  = regexp.MustCompile(`^[A-Z]{2}$`)
	subPattern     = regexp.MustCompile(`^[0-9]{2}$`)
	productPattern = regexp.MustCompile(`^[A-Z]{4}$`)

	// ErrPreviewIsNotAnIdentifier is returned when a preview value is about to be
	// used where an issued identifier is required.
	ErrPreviewIsNotAnIdentifier = errs.NewValueIsInvalidErrorWithCause(
		"order id", errors.New("preview identifiers must never be persisted"))
)

// OrderID is an immutable order identifier. It is either issued (carries an
// allocated sequence) or a preview (placeholder sequence, display only).
type OrderID struct {
	region      string
	subRegion   string
	productType string
	sequence    int64
	preview     bool
}

// New builds an issued identifier from its resolved parts and an allocated sequence.
func New(region, subRegion, productType string, sequence int64) (OrderID, error) {
	id := OrderID{sequence: sequence}
	if err := errors.Join(
		id.setParts(region, subRegion, productType),
		id.setSequence(sequence),
	); err != nil {
		return OrderID{}, err
	}
	return id, nil
}

// NewPreview builds a display-only identifier without consuming a sequence number.
func NewPreview(region, subRegion, productType string) (OrderID, error) {
	id := OrderID{preview: true}
	if err := id.setParts(region, subRegion, productType); err != nil {
		return OrderID{}, err
	}
	return id, nil
}

// Parse restores an issued identifier from its string form. Preview strings
// do not match the pattern and are rejected.
func Parse(s string) (OrderID, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%q does not match %s", s, pattern))
	}
	seq, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	return New(m[1], m[2], m[3], seq)
}

// String formats the identifier; previews carry PreviewPlaceholder as sequence.
func (o OrderID) String() string {
	if o.region == "" {
		return ""
	}
	seq := PreviewPlaceholder
	if !o.preview {
		seq = fmt.Sprintf("%0*d", minSequenceDigits, o.sequence)
	}
	return o.region + o.subRegion + FixedTag + o.productType + seq
}

// Validate accepts only issued identifiers.
func (o OrderID) Validate() error {
	if o.region == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	if o.preview {
		return ErrPreviewIsNotAnIdentifier
	}
	return nil
}

func (o OrderID) Region() string      { return o.region }
func (o OrderID) SubRegion() string   { return o.subRegion }
func (o OrderID) ProductType() string { return o.productType }
func (o OrderID) Sequence() int64     { return o.sequence }
func (o OrderID) IsPreview() bool     { return o.preview }

func (o *OrderID) setParts(region, subRegion, productType string) error {
	var errList []error
	if !regionPattern.MatchString(region) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("region code", fmt.Errorf("%q is not 2 uppercase letters", region)))
	}
	if !subPattern.MatchString(subRegion) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("sub-region code", fmt.Errorf("%q is not 2 digits", subRegion)))
	}
	if !productPattern.MatchString(productType) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("product type code", fmt.Errorf("%q is not 4 uppercase letters", productType)))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.region, o.subRegion, o.productType = region, subRegion, productType
	return nil
}

func (o *OrderID) setSequence(sequence int64) error {
	if sequence <= 0 {
		return errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	o.sequence = sequence
	return nil
}
