package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/oyugijr/EchoTask/internal/service"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/internal/utils"
	"github.com/oyugijr/EchoTask/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// encodeBody serialises v to JSON and returns it as an io.Reader.
func encodeBody(t *testing.T, v any) io.Reader {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

// ctxWithDevice returns a context carrying the given device ID, mimicking
// what the auth middleware does.
func ctxWithDevice(deviceID string) context.Context {
	return context.WithValue(context.Background(), utils.DeviceIDCtxKey, deviceID)
}

func sampleNote(id string) models.Note {
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return models.Note{
		ID:        id,
		DeviceID:  "device-a",
		Title:     "groceries",
		Content:   "milk, eggs",
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// ─────────────────────────────────────────────
// upsertNote
// ─────────────────────────────────────────────

func TestUpsertNote_Success(t *testing.T) {
	called := false
	svc := &mockNoteSvc{
		upsertFn: func(_ context.Context, note models.Note) (models.RemoteNote, error) {
			called = true
			assert.Equal(t, "note-1", note.ID)
			return models.RemoteNote{Note: note, ServerUpdatedAt: time.Now()}, nil
		},
	}

	h := newTestHandler(t, svc, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/notes", encodeBody(t, sampleNote("note-1"))).
		WithContext(ctxWithDevice("device-a"))
	rec := httptest.NewRecorder()

	h.upsertNote(rec, req)

	assert.True(t, called, "UpsertNote should have been called")
	require.Equal(t, http.StatusOK, rec.Code)

	var stored models.RemoteNote
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stored))
	assert.Equal(t, "note-1", stored.ID)
	assert.False(t, stored.ServerUpdatedAt.IsZero())
}

func TestUpsertNote_NoDeviceID(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/notes", encodeBody(t, sampleNote("note-1")))
	rec := httptest.NewRecorder()

	h.upsertNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no device ID was given")
}

func TestUpsertNote_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/notes", strings.NewReader(`{bad json}`)).
		WithContext(ctxWithDevice("device-a"))
	rec := httptest.NewRecorder()

	h.upsertNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON was passed")
}

func TestUpsertNote_ServiceErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid data", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"storage failure", errors.New("storage failure"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockNoteSvc{
				upsertFn: func(_ context.Context, _ models.Note) (models.RemoteNote, error) {
					return models.RemoteNote{}, tt.err
				},
			}

			h := newTestHandler(t, svc, nil)
			req := httptest.NewRequest(http.MethodPut, "/api/notes", encodeBody(t, sampleNote("note-1"))).
				WithContext(ctxWithDevice("device-a"))
			rec := httptest.NewRecorder()

			h.upsertNote(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUpsertNote_BroadcastsToOtherDevices(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, nil)

	origin := &subscriber{deviceID: "device-a", send: make(chan models.RemoteNote, 1)}
	other := &subscriber{deviceID: "device-b", send: make(chan models.RemoteNote, 1)}
	h.hub.register(origin)
	h.hub.register(other)

	req := httptest.NewRequest(http.MethodPut, "/api/notes", encodeBody(t, sampleNote("note-1"))).
		WithContext(ctxWithDevice("device-a"))
	rec := httptest.NewRecorder()

	h.upsertNote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case note := <-other.send:
		assert.Equal(t, "note-1", note.ID)
	default:
		t.Fatal("expected the other device to receive the revision")
	}

	select {
	case <-origin.send:
		t.Fatal("the pushing device must not receive its own revision")
	default:
	}
}

// ─────────────────────────────────────────────
// getNote
// ─────────────────────────────────────────────

func TestGetNote_Success(t *testing.T) {
	svc := &mockNoteSvc{
		getFn: func(_ context.Context, noteID string) (models.RemoteNote, error) {
			assert.Equal(t, "note-9", noteID)
			return models.RemoteNote{Note: sampleNote("note-9")}, nil
		},
	}

	router := newTestHandler(t, svc, nil).Init()
	req := httptest.NewRequest(http.MethodGet, "/api/notes/note-9", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var note models.RemoteNote
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&note))
	assert.Equal(t, "note-9", note.ID)
}

func TestGetNote_NotFound(t *testing.T) {
	svc := &mockNoteSvc{
		getFn: func(_ context.Context, _ string) (models.RemoteNote, error) {
			return models.RemoteNote{}, store.ErrNoteNotFound
		},
	}

	router := newTestHandler(t, svc, nil).Init()
	req := httptest.NewRequest(http.MethodGet, "/api/notes/missing", nil)
	req.Header.Set("Authorization", validAuthHeader())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// getChanges
// ─────────────────────────────────────────────

func TestGetChanges_PassesQueryParams(t *testing.T) {
	svc := &mockNoteSvc{
		changedFn: func(_ context.Context, since string, limit int) (models.ChangesResponse, error) {
			assert.Equal(t, "2026-03-14T12:00:00Z", since)
			assert.Equal(t, 25, limit)
			return models.NewChangesResponse([]models.RemoteNote{{Note: sampleNote("note-1")}}), nil
		},
	}

	h := newTestHandler(t, svc, nil)
	req := httptest.NewRequest(http.MethodGet,
		"/api/notes/changes?since=2026-03-14T12:00:00Z&limit=25", nil)
	rec := httptest.NewRecorder()

	h.getChanges(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ChangesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
}

func TestGetChanges_DefaultsWithoutParams(t *testing.T) {
	svc := &mockNoteSvc{
		changedFn: func(_ context.Context, since string, limit int) (models.ChangesResponse, error) {
			assert.Empty(t, since)
			assert.Zero(t, limit)
			return models.ChangesResponse{Notes: []json.RawMessage{}}, nil
		},
	}

	h := newTestHandler(t, svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/notes/changes", nil)
	rec := httptest.NewRecorder()

	h.getChanges(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetChanges_InvalidLimit(t *testing.T) {
	h := newTestHandler(t, &mockNoteSvc{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/notes/changes?limit=abc", nil)
	req = injectNopLogger(req)
	rec := httptest.NewRecorder()

	h.getChanges(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid limit")
}

func TestGetChanges_MalformedSince(t *testing.T) {
	svc := &mockNoteSvc{
		changedFn: func(_ context.Context, _ string, _ int) (models.ChangesResponse, error) {
			return models.ChangesResponse{}, service.ErrInvalidDataProvided
		},
	}

	h := newTestHandler(t, svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/notes/changes?since=not-a-time", nil)
	rec := httptest.NewRecorder()

	h.getChanges(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
