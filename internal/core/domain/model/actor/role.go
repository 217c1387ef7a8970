package actor

import (
	"fmt"
	"strings"

	"baggage/internal/pkg/errs"
)

// Role is the capability class of an actor.
type Role int

const (
	UnknownRole Role = iota
	Staff
	Passenger
	Admin
)

func getRoleCodes() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Staff:     "STAFF",
		Passenger: "PASSENGER",
		Admin:     "ADMIN",
	}
}

// ParseRole accepts role codes case-insensitively.
func ParseRole(code string) (Role, error) {
	if code == "" {
		return UnknownRole, errs.NewValueIsRequiredError("role")
	}
	upper := strings.ToUpper(strings.TrimSpace(code))
	for role, c := range getRoleCodes() {
		if c == upper {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", code))
}

func (r Role) Validate() error {
	if _, ok := getRoleCodes()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if code, ok := getRoleCodes()[r]; ok {
		return code
	}
	return "UNKNOWN"
}

// CanUpdateBaggageStatus is true for staff and admins.
func (r Role) CanUpdateBaggageStatus() bool {
	return r == Staff || r == Admin
}

// IsStaffMember is true for staff and admins.
func (r Role) IsStaffMember() bool {
	return r == Staff || r == Admin
}
