package kernel

import (
	"fmt"

	"custody/internal/pkg/errs"
)

// Location is a holding location for a physical unit. It is both the routing
// target of a QC decision and the current custody location of an inventory item.
type Location int

const (
	// UnknownLocation catches uninitialized values and the absent side of a
	// movement (stock-in has no origin, stock-out no destination).
	UnknownLocation Location = iota
	ServiceStation
	Showroom
	Warehouse
)

func getLocationStrings() map[Location]string {
	return map[Location]string{
		ServiceStation: "service_station",
		Showroom:       "showroom",
		Warehouse:      "warehouse",
	}
}

// ParseLocation maps a persisted or wire name back to a Location.
func ParseLocation(s string) (Location, error) {
	for loc, name := range getLocationStrings() {
		if name == s {
			return loc, nil
		}
	}
	return UnknownLocation, errs.NewValueIsInvalidErrorWithCause("location", fmt.Errorf("%q is not a known location", s))
}

// Validate rejects UnknownLocation and out-of-range values.
func (l Location) Validate() error {
	if _, ok := getLocationStrings()[l]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("location", fmt.Errorf("%d is not a valid location", l))
	}
	return nil
}

// String returns the snake_case name used in storage and events, or "unknown".
func (l Location) String() string {
	if s, ok := getLocationStrings()[l]; ok {
		return s
	}
	return "unknown"
}

// RequiresShowroomID reports whether custody at this location must name a showroom.
func (l Location) RequiresShowroomID() bool {
	return l == Showroom
}
