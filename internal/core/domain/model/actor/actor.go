package actor

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"
	"baggage/internal/pkg/guard"
)

// MaxUsernameLength bounds usernames.
const MaxUsernameLength = 150

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the profile of an authenticated principal. Its id is the subject
// of the tokens the principal presents.
type Actor struct {
	id        kernel.UUID
	username  string
	role      Role
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewActor validates and creates a profile. Usernames may contain letters,
// digits and the characters @ . + - _ only.
func NewActor(id kernel.UUID, username string, role Role, createdAt time.Time) (*Actor, error) {
	a := &Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setUsername(username),
		a.setRole(role),
		a.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreActor rebuilds a persisted profile.
func RestoreActor(id kernel.UUID, username string, role Role, createdAt time.Time) (*Actor, error) {
	return NewActor(id, username, role, createdAt)
}

func (a *Actor) Validate() error {
	if a == nil {
		return ErrActorIsNotConstructed
	}
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a *Actor) ID() kernel.UUID {
	return a.id
}

func (a *Actor) Username() string {
	return a.username
}

func (a *Actor) Role() Role {
	return a.role
}

func (a *Actor) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Actor) CanUpdateBaggageStatus() bool {
	return a.role.CanUpdateBaggageStatus()
}

func (a *Actor) IsStaffMember() bool {
	return a.role.IsStaffMember()
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if n := utf8.RuneCountInString(username); n > MaxUsernameLength {
		return errs.NewValueIsOutOfRangeError("username", n, 1, MaxUsernameLength)
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return errs.NewValueIsInvalidErrorWithCause("username", fmt.Errorf("character %q is not allowed", r))
		}
	}
	a.username = username
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Actor) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	a.createdAt = createdAt.UTC()
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case strings.ContainsRune("@.+-_", r):
		return true
	}
	return false
}
