package services_test

import (
	"testing"
	"time"

	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/core/domain/services"
	"baggage/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActor(t *testing.T, role actor.Role) *actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), "user-"+role.String(), role, time.Now())
	require.NoError(t, err)
	return a
}

func newBag(t *testing.T, status baggage.Status) *baggage.Baggage {
	t.Helper()
	r, err := baggage.NewRegistration("Ann Lee", "", "", "")
	require.NoError(t, err)
	id := kernel.NewUUID()
	code, err := kernel.NewTrackingCode(id)
	require.NoError(t, err)
	now := time.Now()
	b, err := baggage.RestoreBaggage(id, code, r, status, now, now)
	require.NoError(t, err)
	return b
}

func TestStatusAuthority_Authorize(t *testing.T) {
	authority := services.NewStatusAuthority(nil)

	t.Run("should allow staff and admin", func(t *testing.T) {
		for _, role := range []actor.Role{actor.Staff, actor.Admin} {
			a := newActor(t, role)

			d, err := authority.Authorize(a, newBag(t, baggage.CheckedIn), baggage.SecurityCleared)

			require.NoError(t, err)
			assert.True(t, d.ActorID.IsEqual(a.ID()))
			assert.Equal(t, baggage.CheckedIn, d.From)
			assert.Equal(t, baggage.SecurityCleared, d.To)
			assert.False(t, d.IsRepeat())
			assert.False(t, d.IsRegression())
		}
	})

	t.Run("should deny passengers", func(t *testing.T) {
		_, err := authority.Authorize(newActor(t, actor.Passenger), newBag(t, baggage.CheckedIn), baggage.Loaded)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("should check permission before status value", func(t *testing.T) {
		_, err := authority.Authorize(newActor(t, actor.Passenger), newBag(t, baggage.CheckedIn), baggage.Status(42))

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("should report missing profile", func(t *testing.T) {
		_, err := authority.Authorize(nil, newBag(t, baggage.CheckedIn), baggage.Loaded)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject status outside the set", func(t *testing.T) {
		_, err := authority.Authorize(newActor(t, actor.Staff), newBag(t, baggage.CheckedIn), baggage.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should allow regressions and repeats by default", func(t *testing.T) {
		staff := newActor(t, actor.Staff)

		back, err := authority.Authorize(staff, newBag(t, baggage.Arrived), baggage.CheckedIn)
		require.NoError(t, err)
		assert.True(t, back.IsRegression())

		same, err := authority.Authorize(staff, newBag(t, baggage.Loaded), baggage.Loaded)
		require.NoError(t, err)
		assert.True(t, same.IsRepeat())
	})
}

func TestStatusAuthority_ForwardOnly(t *testing.T) {
	authority := services.NewStatusAuthority(services.ForwardOnlyPolicy{})
	staff := newActor(t, actor.Staff)

	t.Run("should reject regression", func(t *testing.T) {
		_, err := authority.Authorize(staff, newBag(t, baggage.InFlight), baggage.Loaded)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "cannot move from IN_FLIGHT back to LOADED")
	})

	t.Run("should allow skipping ahead and repeating", func(t *testing.T) {
		_, err := authority.Authorize(staff, newBag(t, baggage.CheckedIn), baggage.Arrived)
		require.NoError(t, err)

		_, err = authority.Authorize(staff, newBag(t, baggage.Arrived), baggage.Arrived)
		require.NoError(t, err)
	})
}

func TestParseTransitionPolicy(t *testing.T) {
	p, err := services.ParseTransitionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, services.PolicyPermissive, p.Name())

	p, err = services.ParseTransitionPolicy("Forward-Only")
	require.NoError(t, err)
	assert.Equal(t, services.PolicyForwardOnly, p.Name())

	_, err = services.ParseTransitionPolicy("strict")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatusAuthority_CheckActor(t *testing.T) {
	authority := services.NewStatusAuthority(nil)

	require.NoError(t, authority.CheckActor(newActor(t, actor.Admin)))
	require.ErrorIs(t, authority.CheckActor(newActor(t, actor.Passenger)), errs.ErrPermissionDenied)
	require.ErrorIs(t, authority.CheckActor(nil), errs.ErrObjectNotFound)
}
