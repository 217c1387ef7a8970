package kernel

import (
	"errors"
	"strings"

	"baggage/internal/pkg/errs"
)

// TrackingCodePrefix starts every tracking code.
const TrackingCodePrefix = "BAG-"

// trackingCodeHexLength is the number of id hex digits carried by a tracking code.
const trackingCodeHexLength = 8

var ErrTrackingCodeIsNotConstructed = errors.New("TrackingCode must be created via NewTrackingCode")

// TrackingCode is the human-presentable identity of a baggage item, printed on
// tags and encoded in QR payloads. Its format "BAG-" followed by eight upper-case
// hex digits is an external contract.
type TrackingCode struct {
	value string
}

// NewTrackingCode derives the tracking code from the first eight hex characters of id.
func NewTrackingCode(id UUID) (TrackingCode, error) {
	if err := id.Validate(); err != nil {
		return TrackingCode{}, err
	}
	hex := id.String()[:trackingCodeHexLength]
	return TrackingCode{value: TrackingCodePrefix + strings.ToUpper(hex)}, nil
}

// RestoreTrackingCode rebuilds a persisted tracking code, checking its format.
func RestoreTrackingCode(value string) (TrackingCode, error) {
	if value == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("tracking code")
	}
	if !IsTrackingCodeFormat(value) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking code",
			errors.New(value+" does not match BAG-XXXXXXXX"),
		)
	}
	return TrackingCode{value: value}, nil
}

// IsTrackingCodeFormat reports whether s is "BAG-" followed by eight upper-case hex digits.
func IsTrackingCodeFormat(s string) bool {
	if len(s) != len(TrackingCodePrefix)+trackingCodeHexLength || !strings.HasPrefix(s, TrackingCodePrefix) {
		return false
	}
	for _, r := range s[len(TrackingCodePrefix):] {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}

// String returns the code, e.g. "BAG-1A2B3C4D".
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual compares two tracking codes, case-sensitively.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

// MatchesID reports whether the code was derived from id.
func (c TrackingCode) MatchesID(id UUID) bool {
	derived, err := NewTrackingCode(id)
	if err != nil {
		return false
	}
	return c.IsEqual(derived)
}

func (c TrackingCode) Validate() error {
	if c.value == "" {
		return ErrTrackingCodeIsNotConstructed
	}
	return nil
}
