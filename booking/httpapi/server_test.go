package httpapi_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staybook/reservation-engine/booking/features/command/approvereservation"
	"github.com/staybook/reservation-engine/booking/httpapi"
	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/booking/shared/shell"
	"github.com/staybook/reservation-engine/reservation"
	"github.com/staybook/reservation-engine/reservation/memoryengine"
	. "github.com/staybook/reservation-engine/testutil/fixtures" //nolint:revive
)

type reservationBody struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
	Nights int       `json:"nights"`
}

type commandBody struct {
	Reservation     *reservationBody `json:"reservation"`
	Idempotent      bool             `json:"idempotent"`
	CascadeRejected []uuid.UUID      `json:"cascade_rejected"`
}

type listBody struct {
	Reservations []reservationBody `json:"reservations"`
	Count        int               `json:"count"`
	PendingCount *int              `json:"pending_count"`
}

type errorBody struct {
	Error       string      `json:"error"`
	Kind        string      `json:"kind"`
	ConflictIDs []uuid.UUID `json:"conflict_ids"`
}

func Test_Server_RequestApproveCascadeAndConflict(t *testing.T) {
	// arrange
	server := givenServer(t, httpapi.NewHandlers(memoryengine.NewStore()))
	owner := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	guest := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	resourceID := GivenUniqueID(t)

	registered := do(t, server, http.MethodPut, "/resources/"+resourceID.String(), owner,
		fmt.Sprintf(`{"owner_id":%q}`, owner.ID))
	require.Equal(t, http.StatusCreated, registered.Code)

	a := requestStay(t, server, resourceID, guest, 1, 5)
	b := requestStay(t, server, resourceID, guest, 3, 7)

	// act
	approved := do(t, server, http.MethodPost, "/reservations/"+a.String()+"/approve", owner, "")
	conflicting := do(t, server, http.MethodPost, "/resources/"+resourceID.String()+"/reservations", guest,
		stayJSON(4, 8))
	adjacent := do(t, server, http.MethodPost, "/resources/"+resourceID.String()+"/reservations", guest,
		stayJSON(5, 8))

	// assert
	require.Equal(t, http.StatusOK, approved.Code)
	var approveResult commandBody
	decodeBody(t, approved, &approveResult)
	require.NotNil(t, approveResult.Reservation)
	assert.Equal(t, string(reservation.StatusApproved), approveResult.Reservation.Status)
	assert.Equal(t, []uuid.UUID{b}, approveResult.CascadeRejected)

	require.Equal(t, http.StatusConflict, conflicting.Code)
	var conflict errorBody
	decodeBody(t, conflicting, &conflict)
	assert.Equal(t, reservation.KindConflict, conflict.Kind)
	assert.Equal(t, []uuid.UUID{a}, conflict.ConflictIDs)

	assert.Equal(t, http.StatusCreated, adjacent.Code)

	listed := do(t, server, http.MethodGet, "/owners/"+owner.ID.String()+"/reservations?status=Rejected", owner, "")
	require.Equal(t, http.StatusOK, listed.Code)
	var rejected listBody
	decodeBody(t, listed, &rejected)
	require.Equal(t, 1, rejected.Count)
	assert.Equal(t, b, rejected.Reservations[0].ID)
}

func Test_Server_RepeatedRequestWithSameIDIsIdempotent(t *testing.T) {
	// arrange
	server := givenServer(t, httpapi.NewHandlers(memoryengine.NewStore()))
	owner := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	guest := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	resourceID := givenResource(t, server, owner)
	body := fmt.Sprintf(`{"reservation_id":%q,"check_in":"2030-01-02T00:00:00Z","check_out":"2030-01-04T00:00:00Z"}`, GivenUniqueID(t))
	path := "/resources/" + resourceID.String() + "/reservations"

	// act
	first := do(t, server, http.MethodPost, path, guest, body)
	second := do(t, server, http.MethodPost, path, guest, body)

	// assert
	assert.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var result commandBody
	decodeBody(t, second, &result)
	assert.True(t, result.Idempotent)
	assert.Equal(t, 2, result.Reservation.Nights)
}

func Test_Server_ErrorStatuses(t *testing.T) {
	server := givenServer(t, httpapi.NewHandlers(memoryengine.NewStore()))
	owner := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	guest := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	admin := core.BuildActor(GivenUniqueID(t), core.RoleAdmin)
	resourceID := givenResource(t, server, owner)
	approved := requestStay(t, server, resourceID, guest, 1, 5)
	require.Equal(t, http.StatusOK, do(t, server, http.MethodPost, "/reservations/"+approved.String()+"/approve", owner, "").Code)
	pending := requestStay(t, server, resourceID, guest, 10, 12)
	otherResourceID := givenResource(t, server, owner)

	testCases := []struct {
		description    string
		method         string
		path           string
		actor          *core.Actor
		body           string
		expectedStatus int
	}{
		{
			description:    "missing actor",
			method:         http.MethodGet,
			path:           "/reservations/" + pending.String(),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			description:    "unknown role",
			method:         http.MethodGet,
			path:           "/reservations/" + pending.String(),
			actor:          &core.Actor{ID: guest.ID, Role: "superuser"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			description:    "check-out missing",
			method:         http.MethodPost,
			path:           "/resources/" + resourceID.String() + "/reservations",
			actor:          &guest,
			body:           `{"check_in":"2030-01-02T00:00:00Z"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			description:    "check-out before check-in",
			method:         http.MethodPost,
			path:           "/resources/" + resourceID.String() + "/reservations",
			actor:          &guest,
			body:           stayJSON(8, 6),
			expectedStatus: http.StatusBadRequest,
		},
		{
			description:    "malformed json",
			method:         http.MethodPost,
			path:           "/resources/" + resourceID.String() + "/reservations",
			actor:          &guest,
			body:           `{"check_in":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			description:    "malformed reservation id",
			method:         http.MethodPost,
			path:           "/reservations/not-a-uuid/approve",
			actor:          &owner,
			expectedStatus: http.StatusBadRequest,
		},
		{
			description:    "unknown status filter",
			method:         http.MethodGet,
			path:           "/reservations?status=Cancelled",
			actor:          &admin,
			expectedStatus: http.StatusBadRequest,
		},
		{
			description:    "requester approves",
			method:         http.MethodPost,
			path:           "/reservations/" + pending.String() + "/approve",
			actor:          &guest,
			expectedStatus: http.StatusForbidden,
		},
		{
			description:    "member deletes",
			method:         http.MethodDelete,
			path:           "/reservations/" + pending.String(),
			actor:          &owner,
			expectedStatus: http.StatusForbidden,
		},
		{
			description:    "member deletes an unknown reservation",
			method:         http.MethodDelete,
			path:           "/reservations/" + GivenUniqueID(t).String(),
			actor:          &guest,
			expectedStatus: http.StatusForbidden,
		},
		{
			description: "reservation id already used on another resource",
			method:      http.MethodPost,
			path:        "/resources/" + otherResourceID.String() + "/reservations",
			actor:       &guest,
			body: fmt.Sprintf(`{"reservation_id":%q,"check_in":"2030-01-20T00:00:00Z","check_out":"2030-01-22T00:00:00Z"}`,
				pending),
			expectedStatus: http.StatusBadRequest,
		},
		{
			description:    "member lists everything",
			method:         http.MethodGet,
			path:           "/reservations",
			actor:          &guest,
			expectedStatus: http.StatusForbidden,
		},
		{
			description:    "unknown reservation",
			method:         http.MethodGet,
			path:           "/reservations/" + GivenUniqueID(t).String(),
			actor:          &admin,
			expectedStatus: http.StatusNotFound,
		},
		{
			description:    "reject an approved reservation",
			method:         http.MethodPost,
			path:           "/reservations/" + approved.String() + "/reject",
			actor:          &owner,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			description:    "cancel an approved reservation",
			method:         http.MethodPost,
			path:           "/reservations/" + approved.String() + "/cancel",
			actor:          &guest,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			recorder := doAs(t, server, tc.method, tc.path, tc.actor, tc.body)

			// assert
			assert.Equal(t, tc.expectedStatus, recorder.Code, recorder.Body.String())
		})
	}
}

func Test_Server_CancelAndDelete(t *testing.T) {
	// arrange
	server := givenServer(t, httpapi.NewHandlers(memoryengine.NewStore()))
	owner := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	guest := core.BuildActor(GivenUniqueID(t), core.RoleMember)
	admin := core.BuildActor(GivenUniqueID(t), core.RoleAdmin)
	resourceID := givenResource(t, server, owner)
	toCancel := requestStay(t, server, resourceID, guest, 1, 3)
	toDelete := requestStay(t, server, resourceID, guest, 3, 5)

	// act
	canceled := do(t, server, http.MethodPost, "/reservations/"+toCancel.String()+"/cancel", guest, "")
	deleted := do(t, server, http.MethodDelete, "/reservations/"+toDelete.String(), admin, "")

	// assert
	assert.Equal(t, http.StatusOK, canceled.Code)
	assert.Equal(t, http.StatusOK, deleted.Code)

	listed := do(t, server, http.MethodGet, "/requesters/"+guest.ID.String()+"/reservations", guest, "")
	require.Equal(t, http.StatusOK, listed.Code)

	var remaining listBody
	decodeBody(t, listed, &remaining)
	assert.Zero(t, remaining.Count)
}

func Test_Server_MapsHandlerErrorsToStatuses(t *testing.T) {
	testCases := []struct {
		description    string
		err            error
		expectedStatus int
	}{
		{description: "concurrency conflict after retries", err: reservation.ErrConcurrencyConflict, expectedStatus: http.StatusServiceUnavailable},
		{description: "invalid state", err: errors.Join(reservation.ErrInvalidState, errors.New("x")), expectedStatus: http.StatusUnprocessableEntity},
		{description: "deadline", err: context.DeadlineExceeded, expectedStatus: http.StatusGatewayTimeout},
		{description: "infrastructure", err: reservation.ErrQueryingFailed, expectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			handlers := httpapi.NewHandlers(memoryengine.NewStore())
			handlers.Approve = failingApprove{err: tc.err}
			server := givenServer(t, handlers)

			// act
			recorder := do(t, server, http.MethodPost, "/reservations/"+GivenUniqueID(t).String()+"/approve",
				core.BuildActor(GivenUniqueID(t), ""), "")

			// assert
			assert.Equal(t, tc.expectedStatus, recorder.Code)

			var body errorBody
			decodeBody(t, recorder, &body)
			assert.Equal(t, reservation.KindOf(tc.err), body.Kind)
		})
	}
}

func Test_Server_Health(t *testing.T) {
	// arrange
	server := givenServer(t, httpapi.NewHandlers(memoryengine.NewStore()))

	// act
	recorder := doAs(t, server, http.MethodGet, "/health", nil, "")

	// assert
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

type failingApprove struct {
	err error
}

func (f failingApprove) Handle(_ context.Context, _ approvereservation.Command) (shell.HandlerResult, error) {
	return shell.HandlerResult{}, f.err
}

func givenServer(t *testing.T, handlers httpapi.Handlers) http.Handler {
	t.Helper()

	server, err := httpapi.NewServer(handlers, httpapi.WithClock(FakeClock))
	require.NoError(t, err)

	return server.Handler()
}

func givenResource(t *testing.T, server http.Handler, owner core.Actor) uuid.UUID {
	t.Helper()

	resourceID := GivenUniqueID(t)
	recorder := do(t, server, http.MethodPut, "/resources/"+resourceID.String(), owner, fmt.Sprintf(`{"owner_id":%q}`, owner.ID))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	return resourceID
}

func requestStay(t *testing.T, server http.Handler, resourceID uuid.UUID, guest core.Actor, fromDay, toDay int) uuid.UUID {
	t.Helper()

	recorder := do(t, server, http.MethodPost, "/resources/"+resourceID.String()+"/reservations", guest, stayJSON(fromDay, toDay))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var result commandBody
	decodeBody(t, recorder, &result)
	require.NotNil(t, result.Reservation)

	return result.Reservation.ID
}

func stayJSON(fromDay, toDay int) string {
	return fmt.Sprintf(`{"check_in":"2030-01-%02dT00:00:00Z","check_out":"2030-01-%02dT00:00:00Z"}`, fromDay, toDay)
}

func do(t *testing.T, server http.Handler, method, path string, actor core.Actor, body string) *httptest.ResponseRecorder {
	t.Helper()

	return doAs(t, server, method, path, &actor, body)
}

func doAs(t *testing.T, server http.Handler, method, path string, actor *core.Actor, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")

	if actor != nil {
		request.Header.Set(httpapi.HeaderActorID, actor.ID.String())
		request.Header.Set(httpapi.HeaderActorRole, string(actor.Role))
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)

	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, into any) {
	t.Helper()

	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(recorder.Body.Bytes(), into))
}
