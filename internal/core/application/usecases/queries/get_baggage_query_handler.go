package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"gorm.io/gorm"
)

// TrackingCodeCache maps tracking codes to bag ids. Both are immutable, so
// entries only go stale when a row is removed out of band.
type TrackingCodeCache = expirable.LRU[string, kernel.UUID]

func NewTrackingCodeCache(size int, ttl time.Duration) *TrackingCodeCache {
	return expirable.NewLRU[string, kernel.UUID](size, nil, ttl)
}

// GetBaggageQueryHandler returns a bag with its timeline.
type GetBaggageQueryHandler struct {
	db    *gorm.DB
	codes *TrackingCodeCache
}

// NewGetBaggageQueryHandler creates the handler. codes may be nil to disable caching.
func NewGetBaggageQueryHandler(db *gorm.DB, codes *TrackingCodeCache) GetBaggageQueryHandler {
	return GetBaggageQueryHandler{db: db, codes: codes}
}

func (h GetBaggageQueryHandler) Handle(ctx context.Context, query GetBaggageQuery) (BaggageView, error) {
	if err := query.Validate(); err != nil {
		return BaggageView{}, err
	}

	id := query.BaggageID()
	cached := false
	if query.ByTrackingCode() {
		var err error
		if id, cached, err = h.resolveTrackingCode(ctx, query.TrackingCode()); err != nil {
			return BaggageView{}, err
		}
	}

	var view BaggageView
	err := readSnapshot(ctx, h.db, func(tx *gorm.DB) error {
		var loadErr error
		if view, loadErr = loadBaggage(ctx, tx, id); loadErr != nil {
			return loadErr
		}
		view.Timeline, loadErr = loadTimeline(ctx, tx, id)
		return loadErr
	})
	if err != nil {
		if cached && errors.Is(err, errs.ErrObjectNotFound) {
			h.codes.Remove(query.TrackingCode())
		}
		return BaggageView{}, err
	}

	return view, nil
}

func (h GetBaggageQueryHandler) resolveTrackingCode(ctx context.Context, code string) (kernel.UUID, bool, error) {
	if h.codes != nil {
		if id, ok := h.codes.Get(code); ok {
			return id, true, nil
		}
	}

	if !kernel.IsTrackingCodeFormat(code) {
		return kernel.UUID{}, false, errs.NewObjectNotFoundError("baggage", code)
	}

	var raw uuid.UUID
	err := h.db.WithContext(ctx).Raw(
		`SELECT id FROM baggage WHERE tracking_code = ?`, code,
	).Row().Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return kernel.UUID{}, false, errs.NewObjectNotFoundError("baggage", code)
	}
	if err != nil {
		return kernel.UUID{}, false, err
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, false, err
	}
	if h.codes != nil {
		h.codes.Add(code, id)
	}
	return id, false, nil
}
