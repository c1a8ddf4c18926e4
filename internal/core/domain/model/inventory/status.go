package inventory

import (
	"fmt"

	"custody/internal/pkg/errs"
)

// Status is the custody status of an inventory item.
type Status int

const (
	Unknown Status = iota
	InStock
	InRepair
	Sold
	Transferred
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		InStock:     "in_stock",
		InRepair:    "in_repair",
		Sold:        "sold",
		Transferred: "transferred",
		Returned:    "returned",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid inventory status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid inventory status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStockOutOutcome accepts the two statuses a stock-out can end in.
func ParseStockOutOutcome(s string) (Status, error) {
	outcome, err := ParseStatus(s)
	if err != nil {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("stock-out outcome", err)
	}
	if err = validateStockOutOutcome(outcome); err != nil {
		return Unknown, err
	}
	return outcome, nil
}

// IsStockOutOutcome reports whether s is a status a stock-out can end in.
func (s Status) IsStockOutOutcome() bool {
	return s == Sold || s == Returned
}

func validateStockOutOutcome(outcome Status) error {
	if !outcome.IsStockOutOutcome() {
		return errs.NewValueIsInvalidErrorWithCause("stock-out outcome",
			fmt.Errorf("%s is not sold or returned", outcome))
	}
	return nil
}
