// Package queries contains read-only operations over the baggage store.
// Handlers read through raw SQL on a *gorm.DB and return flat view structs
// rather than aggregates.
package queries

import (
	"context"
	"database/sql"
	"time"

	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusEventView is one timeline entry with its actor resolved to a name.
type StatusEventView struct {
	ID        kernel.UUID
	BaggageID kernel.UUID
	Status    baggage.Status
	Timestamp time.Time
	ActorID   *kernel.UUID
	ActorName string
	Notes     string
	Location  string
}

// BaggageView is a bag together with its full timeline.
type BaggageView struct {
	ID             kernel.UUID
	TrackingCode   string
	PassengerName  string
	PassengerEmail string
	FlightNumber   string
	Destination    string
	Status         baggage.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Timeline       []StatusEventView
}

const eventColumns = `
	e.id,
	e.baggage_id,
	e.status,
	e."timestamp",
	e.actor_id,
	a.username,
	e.notes,
	e.location`

const eventsFrom = `
	FROM status_events e
	LEFT JOIN actor_profiles a ON a.id = e.actor_id`

func scanEvents(rows *sql.Rows) ([]StatusEventView, error) {
	events := make([]StatusEventView, 0)

	for rows.Next() {
		var (
			id, baggageID   uuid.UUID
			actorID         uuid.NullUUID
			status          string
			ts              time.Time
			username        sql.NullString
			notes, location sql.NullString
		)

		if err := rows.Scan(&id, &baggageID, &status, &ts, &actorID, &username, &notes, &location); err != nil {
			return nil, err
		}

		view := StatusEventView{
			Timestamp: ts.UTC(),
			ActorName: baggage.SystemActorName,
			Notes:     notes.String,
			Location:  location.String,
		}

		var err error
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.BaggageID, err = kernel.UUIDFromBytes(baggageID[:]); err != nil {
			return nil, err
		}
		if view.Status, err = baggage.ParseStatus(status); err != nil {
			return nil, err
		}

		if actorID.Valid {
			actor, actorErr := kernel.UUIDFromBytes(actorID.UUID[:])
			if actorErr != nil {
				return nil, actorErr
			}
			view.ActorID = &actor
		}
		// An actor whose profile was removed keeps the System label.
		if username.Valid {
			view.ActorName = username.String
		}

		events = append(events, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func loadTimeline(ctx context.Context, db *gorm.DB, baggageID kernel.UUID) ([]StatusEventView, error) {
	rows, err := db.WithContext(ctx).Raw(`SELECT`+eventColumns+eventsFrom+`
		WHERE e.baggage_id = ?
		ORDER BY e."timestamp" ASC, e.seq ASC
	`, baggageID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

const baggageColumns = `
	id,
	tracking_code,
	passenger_name,
	passenger_email,
	flight_number,
	destination,
	current_status,
	created_at,
	updated_at`

func scanBaggage(rows *sql.Rows) (BaggageView, error) {
	var (
		view                       BaggageView
		id                         uuid.UUID
		email, flight, destination sql.NullString
		status                     string
	)
	if err := rows.Scan(
		&id,
		&view.TrackingCode,
		&view.PassengerName,
		&email,
		&flight,
		&destination,
		&status,
		&view.CreatedAt,
		&view.UpdatedAt,
	); err != nil {
		return BaggageView{}, err
	}

	var err error
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return BaggageView{}, err
	}
	if view.Status, err = baggage.ParseStatus(status); err != nil {
		return BaggageView{}, err
	}
	view.PassengerEmail = email.String
	view.FlightNumber = flight.String
	view.Destination = destination.String
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()
	return view, nil
}

func loadBaggage(ctx context.Context, db *gorm.DB, baggageID kernel.UUID) (BaggageView, error) {
	rows, err := db.WithContext(ctx).Raw(`SELECT`+baggageColumns+`
		FROM baggage
		WHERE id = ?
	`, baggageID.Bytes()).Rows()
	if err != nil {
		return BaggageView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return BaggageView{}, err
		}
		return BaggageView{}, errs.NewObjectNotFoundError("baggage", baggageID)
	}

	view, err := scanBaggage(rows)
	if err != nil {
		return BaggageView{}, err
	}
	return view, rows.Err()
}

// readSnapshot runs fn in a read-only repeatable-read transaction, so that a
// bag and its timeline are read from the same snapshot.
func readSnapshot(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
}
