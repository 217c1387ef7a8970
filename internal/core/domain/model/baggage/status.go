package baggage

import (
	"fmt"

	"baggage/internal/pkg/errs"
)

// Status is a step of the physical baggage lifecycle.
//
//	CheckedIn ──> SecurityCleared ──> Loaded ──> InFlight ──> Arrived
//
// The arrow shows the usual order. The aggregate itself records any status at any time.
type Status int

const (
	// Unknown catches uninitialized values. It is never valid.
	Unknown Status = iota
	CheckedIn
	SecurityCleared
	Loaded
	InFlight
	Arrived
)

// getStatusCodes returns the persisted and wire representation of every valid status.
func getStatusCodes() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		CheckedIn:       "CHECKED_IN",
		SecurityCleared: "SECURITY_CLEARED",
		Loaded:          "LOADED",
		InFlight:        "IN_FLIGHT",
		Arrived:         "ARRIVED",
	}
}

func getStatusDisplayNames() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		CheckedIn:       "Checked In",
		SecurityCleared: "Security Cleared",
		Loaded:          "Loaded",
		InFlight:        "In-Flight",
		Arrived:         "Arrived",
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{CheckedIn, SecurityCleared, Loaded, InFlight, Arrived}
}

// ParseStatus converts a status code such as "IN_FLIGHT" into a Status.
// Matching is exact.
func ParseStatus(code string) (Status, error) {
	if code == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}
	for status, c := range getStatusCodes() {
		if c == code {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", code))
}

// Validate checks if the Status value belongs to the closed set.
func (s Status) Validate() error {
	if _, ok := getStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status code, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if code, ok := getStatusCodes()[s]; ok {
		return code
	}
	return "UNKNOWN"
}

// Display returns the human-readable name, e.g. "In-Flight".
func (s Status) Display() string {
	if name, ok := getStatusDisplayNames()[s]; ok {
		return name
	}
	return "Unknown"
}

// Precedes reports whether s comes strictly before other in lifecycle order.
func (s Status) Precedes(other Status) bool {
	return s < other
}
