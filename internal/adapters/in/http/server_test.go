package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "baggage/internal/adapters/in/http"
	"baggage/internal/core/application/usecases/commands"
	"baggage/internal/core/application/usecases/queries"
	"baggage/internal/core/domain/model/actor"
	"baggage/internal/core/domain/model/baggage"
	"baggage/internal/core/domain/model/kernel"
	"baggage/internal/core/domain/services"
	"baggage/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateBaggageHandler struct{ mock.Mock }

func (m *MockCreateBaggageHandler) Handle(ctx context.Context, cmd commands.CreateBaggageCommand) (*baggage.Baggage, error) {
	args := m.Called(ctx, cmd)
	if b := args.Get(0); b != nil {
		return b.(*baggage.Baggage), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRecordStatusHandler struct{ mock.Mock }

func (m *MockRecordStatusHandler) Handle(ctx context.Context, cmd commands.RecordStatusCommand) (commands.RecordStatusResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.RecordStatusResult), args.Error(1)
}

type MockListBaggageHandler struct{ mock.Mock }

func (m *MockListBaggageHandler) Handle(ctx context.Context, query queries.ListBaggageQuery) ([]queries.BaggageView, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.([]queries.BaggageView), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGetBaggageHandler struct{ mock.Mock }

func (m *MockGetBaggageHandler) Handle(ctx context.Context, query queries.GetBaggageQuery) (queries.BaggageView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.BaggageView), args.Error(1)
}

type MockGetTimelineHandler struct{ mock.Mock }

func (m *MockGetTimelineHandler) Handle(ctx context.Context, query queries.GetTimelineQuery) (queries.TimelineView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.TimelineView), args.Error(1)
}

type MockGetDashboardStatsHandler struct{ mock.Mock }

func (m *MockGetDashboardStatsHandler) Handle(ctx context.Context, query queries.GetDashboardStatsQuery) (queries.DashboardStats, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.DashboardStats), args.Error(1)
}

type MockActorReader struct{ mock.Mock }

func (m *MockActorReader) Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*actor.Actor), args.Error(1)
	}
	return nil, args.Error(1)
}

type apiFixture struct {
	create    *MockCreateBaggageHandler
	record    *MockRecordStatusHandler
	list      *MockListBaggageHandler
	get       *MockGetBaggageHandler
	timeline  *MockGetTimelineHandler
	dashboard *MockGetDashboardStatsHandler
	actors    *MockActorReader
	router    *echo.Echo
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	f := &apiFixture{
		create:    &MockCreateBaggageHandler{},
		record:    &MockRecordStatusHandler{},
		list:      &MockListBaggageHandler{},
		get:       &MockGetBaggageHandler{},
		timeline:  &MockGetTimelineHandler{},
		dashboard: &MockGetDashboardStatsHandler{},
		actors:    &MockActorReader{},
	}

	spec, err := httpadapter.LoadSpec()
	require.NoError(t, err)

	server := httpadapter.NewServer(f.create, f.record, f.list, f.get, f.timeline, f.dashboard, f.actors, testLogger())
	f.router, err = httpadapter.NewRouter(httpadapter.RouterConfig{
		Server:        server,
		Authenticator: httpadapter.NewHMACAuthenticator([]byte(testSecret), testIssuer, testLogger()),
		Spec:          spec,
		Logger:        testLogger(),
	})
	require.NoError(t, err)
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func newStaff(t *testing.T) *actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), "agent.smith", actor.Staff, time.Now())
	require.NoError(t, err)
	return a
}

func newBag(t *testing.T) *baggage.Baggage {
	t.Helper()
	reg, err := baggage.NewRegistration("Ada Lovelace", "ada@example.com", "BA117", "JFK")
	require.NoError(t, err)
	b, err := baggage.NewBaggage(kernel.NewUUID(), reg, time.Now().UTC())
	require.NoError(t, err)
	return b
}

func viewOf(b *baggage.Baggage) queries.BaggageView {
	reg := b.Registration()
	return queries.BaggageView{
		ID:             b.ID(),
		TrackingCode:   b.TrackingCode().String(),
		PassengerName:  reg.PassengerName(),
		PassengerEmail: reg.PassengerEmail(),
		FlightNumber:   reg.FlightNumber(),
		Destination:    reg.Destination(),
		Status:         b.Status(),
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

func byID(id kernel.UUID) any {
	return mock.MatchedBy(func(q queries.GetBaggageQuery) bool {
		return !q.ByTrackingCode() && q.BaggageID().IsEqual(id)
	})
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{
		"status":  "healthy",
		"service": "Smart Baggage Tracker API",
		"version": "1.0.0",
	}, decode(t, rec))
}

func TestCreateBaggage(t *testing.T) {
	staff := newStaff(t)
	token := signHMAC(t, staff.ID().String(), time.Now().Add(time.Hour))

	t.Run("requires a token", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/baggage", `{"passenger_name":"Ada"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		f := newAPIFixture(t)
		expired := signHMAC(t, staff.ID().String(), time.Now().Add(-time.Hour))
		rec := f.do(t, http.MethodPost, "/api/v1/baggage", `{"passenger_name":"Ada"}`, expired)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("passenger name is required by the schema", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/baggage", `{"flight_number":"BA117"}`, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["error"], "passenger_name")
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("domain validation surfaces as 400", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/baggage", `{"passenger_name":"Ada","passenger_email":"not-an-email"}`, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("created", func(t *testing.T) {
		f := newAPIFixture(t)
		bag := newBag(t)
		f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateBaggageCommand) bool {
			return cmd.Registration().PassengerName() == "Ada Lovelace"
		})).Return(bag, nil).Once()
		f.get.On("Handle", mock.Anything, byID(bag.ID())).Return(viewOf(bag), nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/baggage",
			`{"passenger_name":"Ada Lovelace","passenger_email":"ada@example.com","flight_number":"BA117","destination":"JFK"}`, token)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, "Baggage created successfully", body["message"])
		created, ok := body["baggage"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, bag.ID().String(), created["id"])
		assert.Equal(t, bag.TrackingCode().String(), created["qr_code"])
		assert.Equal(t, "CHECKED_IN", created["current_status"])
		f.create.AssertExpectations(t)
		f.get.AssertExpectations(t)
	})
}

func TestListBaggage(t *testing.T) {
	staff := newStaff(t)
	token := signHMAC(t, staff.ID().String(), time.Now().Add(time.Hour))

	t.Run("requires a token", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodGet, "/api/v1/baggage", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.list.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("keeps handler order", func(t *testing.T) {
		f := newAPIFixture(t)
		older, newer := newBag(t), newBag(t)
		olderView := viewOf(older)
		olderView.Timeline = []queries.StatusEventView{{
			ID:        kernel.NewUUID(),
			BaggageID: older.ID(),
			Status:    baggage.CheckedIn,
			Timestamp: older.CreatedAt(),
			ActorName: baggage.SystemActorName,
			Notes:     baggage.InitialCheckInNote,
		}}
		f.list.On("Handle", mock.Anything, mock.Anything).
			Return([]queries.BaggageView{viewOf(newer), olderView}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/baggage", "", token)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, newer.ID().String(), body[0]["id"])
		assert.Equal(t, []any{}, body[0]["status_timeline"])
		assert.Equal(t, older.ID().String(), body[1]["id"])
		timeline, ok := body[1]["status_timeline"].([]any)
		require.True(t, ok)
		assert.Len(t, timeline, 1)
		f.list.AssertExpectations(t)
	})

	t.Run("empty store is an empty array", func(t *testing.T) {
		f := newAPIFixture(t)
		f.list.On("Handle", mock.Anything, mock.Anything).Return([]queries.BaggageView{}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/baggage", "", token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		f := newAPIFixture(t)
		f.list.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/baggage", "", token)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decode(t, rec)["error"])
	})
}

func TestGetBaggage(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newAPIFixture(t)
		bag := newBag(t)
		f.get.On("Handle", mock.Anything, byID(bag.ID())).Return(viewOf(bag), nil)

		rec := f.do(t, http.MethodGet, "/api/v1/baggage/"+bag.ID().String(), "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Ada Lovelace", body["passenger_name"])
		assert.Equal(t, "Checked In", body["current_status_display"])
		assert.Equal(t, []any{}, body["status_timeline"])
	})

	t.Run("not found", func(t *testing.T) {
		f := newAPIFixture(t)
		id := kernel.NewUUID()
		f.get.On("Handle", mock.Anything, byID(id)).Return(queries.BaggageView{}, errs.NewObjectNotFoundError("baggage", id))

		rec := f.do(t, http.MethodGet, "/api/v1/baggage/"+id.String(), "", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Baggage not found", decode(t, rec)["error"])
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(t, http.MethodGet, "/api/v1/baggage/not-a-uuid", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, decode(t, rec)["error"])
		f.get.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestGetBaggageByCode(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newAPIFixture(t)
		bag := newBag(t)
		code := bag.TrackingCode().String()
		f.get.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetBaggageQuery) bool {
			return q.ByTrackingCode() && q.TrackingCode() == code
		})).Return(viewOf(bag), nil)

		rec := f.do(t, http.MethodGet, "/api/v1/baggage/qr/"+code, "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, bag.ID().String(), decode(t, rec)["id"])
	})

	t.Run("unknown code", func(t *testing.T) {
		f := newAPIFixture(t)
		f.get.On("Handle", mock.Anything, mock.Anything).
			Return(queries.BaggageView{}, errs.NewObjectNotFoundError("baggage", "BAG-00000000"))

		rec := f.do(t, http.MethodGet, "/api/v1/baggage/qr/BAG-00000000", "", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, map[string]any{"error": "Baggage not found"}, decode(t, rec))
	})
}

func TestUpdateBaggageStatus(t *testing.T) {
	staff := newStaff(t)
	token := signHMAC(t, staff.ID().String(), time.Now().Add(time.Hour))

	t.Run("recorded", func(t *testing.T) {
		f := newAPIFixture(t)
		bag := newBag(t)
		actorID := staff.ID()
		event, err := baggage.RestoreStatusEvent(kernel.NewUUID(), bag.ID(), baggage.Loaded, time.Now().UTC(), &actorID, "on belt", "Gate 12")
		require.NoError(t, err)

		f.record.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RecordStatusCommand) bool {
			return cmd.BaggageID().IsEqual(bag.ID()) && cmd.ActorID().IsEqual(staff.ID()) && cmd.StatusCode() == "LOADED"
		})).Return(commands.RecordStatusResult{
			Baggage:   bag,
			Event:     event,
			ActorName: staff.Username(),
			Decision:  services.Decision{ActorID: staff.ID(), From: baggage.CheckedIn, To: baggage.Loaded},
		}, nil).Once()
		view := viewOf(bag)
		view.Status = baggage.Loaded
		f.get.On("Handle", mock.Anything, byID(bag.ID())).Return(view, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/baggage/"+bag.ID().String()+"/update",
			`{"status":"LOADED","notes":"on belt","location":"Gate 12"}`, token)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, "Status updated successfully", body["message"])
		update, ok := body["status_update"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "LOADED", update["status"])
		assert.Equal(t, "Loaded", update["status_display"])
		assert.Equal(t, staff.ID().String(), update["updated_by"])
		assert.Equal(t, "agent.smith", update["updated_by_name"])
		assert.Equal(t, "Gate 12", update["location"])
		current, ok := body["baggage"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "LOADED", current["current_status"])
	})

	errorCases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"missing profile", errs.NewObjectNotFoundError("actor profile", staff.ID()), http.StatusNotFound, "User profile not found"},
		{"profile removed before insert", errs.NewObjectNotFoundErrorWithCause("actor profile", staff.ID(), errors.New("fk violation")), http.StatusNotFound, "User profile not found"},
		{"not staff", errs.NewPermissionDeniedError("passenger", "update baggage status"), http.StatusForbidden, "Permission denied. Staff privileges required."},
		{"unknown bag", errs.NewObjectNotFoundError("baggage", "x"), http.StatusNotFound, "Baggage not found"},
		{"invalid status", errs.NewValueIsInvalidError("status"), http.StatusBadRequest, ""},
		{"concurrent writer", errs.NewConflictError("baggage"), http.StatusConflict, ""},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAPIFixture(t)
			f.record.On("Handle", mock.Anything, mock.Anything).Return(commands.RecordStatusResult{}, tc.err).Once()

			rec := f.do(t, http.MethodPost, "/api/v1/baggage/"+kernel.NewUUID().String()+"/update", `{"status":"LOADED"}`, token)

			assert.Equal(t, tc.code, rec.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, decode(t, rec)["error"])
			}
			f.get.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown fields are rejected", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/baggage/"+kernel.NewUUID().String()+"/update", `{"status":"LOADED","rogue":1}`, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.record.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("requires a token", func(t *testing.T) {
		f := newAPIFixture(t)
		rec := f.do(t, http.MethodPost, "/api/v1/baggage/"+kernel.NewUUID().String()+"/update", `{"status":"LOADED"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetBaggageTimeline(t *testing.T) {
	staff := newStaff(t)
	token := signHMAC(t, staff.ID().String(), time.Now().Add(time.Hour))
	bag := newBag(t)
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	f := newAPIFixture(t)
	f.timeline.On("Handle", mock.Anything, mock.Anything).Return(queries.TimelineView{
		BaggageID:     bag.ID(),
		TrackingCode:  bag.TrackingCode().String(),
		PassengerName: "Ada Lovelace",
		CurrentStatus: baggage.SecurityCleared,
		Timeline: []queries.StatusEventView{
			{ID: kernel.NewUUID(), BaggageID: bag.ID(), Status: baggage.CheckedIn, Timestamp: at, ActorName: "System"},
			{ID: kernel.NewUUID(), BaggageID: bag.ID(), Status: baggage.SecurityCleared, Timestamp: at.Add(time.Minute), ActorName: "agent.smith"},
		},
	}, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/baggage/"+bag.ID().String()+"/timeline", "", token)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, bag.ID().String(), body["baggage_id"])
	assert.Equal(t, bag.TrackingCode().String(), body["qr_code"])
	assert.Equal(t, "SECURITY_CLEARED", body["current_status"])
	timeline, ok := body["timeline"].([]any)
	require.True(t, ok)
	require.Len(t, timeline, 2)
	first := timeline[0].(map[string]any)
	assert.Equal(t, "CHECKED_IN", first["status"])
	assert.Nil(t, first["updated_by"])
	assert.Equal(t, "System", first["updated_by_name"])
}

func TestGetDashboardStats(t *testing.T) {
	t.Run("staff sees the stats", func(t *testing.T) {
		f := newAPIFixture(t)
		staff := newStaff(t)
		f.actors.On("Get", mock.Anything, staff.ID()).Return(staff, nil)
		f.dashboard.On("Handle", mock.Anything, mock.Anything).Return(queries.DashboardStats{
			TotalBaggage: 3,
			StatusCounts: []queries.StatusCount{
				{Status: baggage.CheckedIn, Count: 2},
				{Status: baggage.SecurityCleared, Count: 0},
				{Status: baggage.Loaded, Count: 1},
				{Status: baggage.InFlight, Count: 0},
				{Status: baggage.Arrived, Count: 0},
			},
		}, nil)

		rec := f.do(t, http.MethodGet, "/api/v1/staff/dashboard/stats", "", signHMAC(t, staff.ID().String(), time.Now().Add(time.Hour)))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.InDelta(t, 3, body["total_baggage"], 0.001)
		counts, ok := body["status_counts"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, counts, 5)
		assert.Equal(t, map[string]any{"count": float64(2), "display": "Checked In"}, counts["CHECKED_IN"])
		assert.Equal(t, []any{}, body["recent_updates"])
	})

	t.Run("passenger is forbidden", func(t *testing.T) {
		f := newAPIFixture(t)
		passenger, err := actor.NewActor(kernel.NewUUID(), "ada", actor.Passenger, time.Now())
		require.NoError(t, err)
		f.actors.On("Get", mock.Anything, passenger.ID()).Return(passenger, nil)

		rec := f.do(t, http.MethodGet, "/api/v1/staff/dashboard/stats", "", signHMAC(t, passenger.ID().String(), time.Now().Add(time.Hour)))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Permission denied. Staff privileges required.", decode(t, rec)["error"])
		f.dashboard.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("missing profile", func(t *testing.T) {
		f := newAPIFixture(t)
		id := kernel.NewUUID()
		f.actors.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("actor profile", id))

		rec := f.do(t, http.MethodGet, "/api/v1/staff/dashboard/stats", "", signHMAC(t, id.String(), time.Now().Add(time.Hour)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User profile not found", decode(t, rec)["error"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.do(t, http.MethodGet, "/health", "", "")

	rec := f.do(t, http.MethodGet, "/metrics", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `path="/health"`)
}
