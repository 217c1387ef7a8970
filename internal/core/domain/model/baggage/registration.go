package baggage

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"baggage/internal/pkg/errs"
	"baggage/internal/pkg/guard"
)

const (
	MaxPassengerNameLength  = 200
	MaxPassengerEmailLength = 254
	MaxFlightNumberLength   = 20
	MaxDestinationLength    = 100
)

var ErrRegistrationIsNotConstructed = errors.New("Registration must be created via NewRegistration")

// Registration holds the passenger-supplied details captured at check-in.
// Optional fields are empty strings when absent. It is immutable.
type Registration struct {
	passengerName  string
	passengerEmail string
	flightNumber   string
	destination    string

	guard guard.ConstructorGuard
}

// NewRegistration trims and validates passenger details. Only passengerName is required.
func NewRegistration(passengerName, passengerEmail, flightNumber, destination string) (Registration, error) {
	r := Registration{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		r.setPassengerName(passengerName),
		r.setPassengerEmail(passengerEmail),
		r.setFlightNumber(flightNumber),
		r.setDestination(destination),
	); err != nil {
		return Registration{}, err
	}

	return r, nil
}

func (r Registration) Validate() error {
	return r.guard.Validate(ErrRegistrationIsNotConstructed)
}

func (r Registration) PassengerName() string {
	return r.passengerName
}

func (r Registration) PassengerEmail() string {
	return r.passengerEmail
}

func (r Registration) FlightNumber() string {
	return r.flightNumber
}

func (r Registration) Destination() string {
	return r.destination
}

func (r *Registration) setPassengerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("passenger_name")
	}
	if err := checkLength("passenger_name", name, MaxPassengerNameLength); err != nil {
		return err
	}
	r.passengerName = name
	return nil
}

func (r *Registration) setPassengerEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if err := checkLength("passenger_email", email, MaxPassengerEmailLength); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("passenger_email", fmt.Errorf("%q is not a valid email address", email))
	}
	r.passengerEmail = email
	return nil
}

func (r *Registration) setFlightNumber(flightNumber string) error {
	flightNumber = strings.TrimSpace(flightNumber)
	if err := checkLength("flight_number", flightNumber, MaxFlightNumberLength); err != nil {
		return err
	}
	r.flightNumber = flightNumber
	return nil
}

func (r *Registration) setDestination(destination string) error {
	destination = strings.TrimSpace(destination)
	if err := checkLength("destination", destination, MaxDestinationLength); err != nil {
		return err
	}
	r.destination = destination
	return nil
}

func checkLength(param, value string, maxLength int) error {
	if n := utf8.RuneCountInString(value); n > maxLength {
		return errs.NewValueIsOutOfRangeError(param, n, 0, maxLength)
	}
	return nil
}
