package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danmuck/plcstub/internal/auth"
	"github.com/danmuck/plcstub/internal/observability"
	"github.com/danmuck/plcstub/internal/protocol/tlv"
	"github.com/danmuck/plcstub/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	s := Appear("plcstub-test", ":0", nil, nil)
	s.RegisterRoutes()
	return s
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)

	var out map[string]any
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body=%s", rr.Body.String())
	}
	return rr, out
}

func TestCreateSetGetOverHTTP(t *testing.T) {
	s := newTestServer(t)

	rr, body := do(t, s, http.MethodPost, "/tags", `{"attrs":"name=Foo&elem_size=4&elem_count=10"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.EqualValues(t, 1, body["id"])
	require.EqualValues(t, 40, body["size"])
	require.Equal(t, "DUMMY_AQUA_DATA_Foo", body["name"])

	rr, _ = do(t, s, http.MethodPut, "/tags/1/values/uint32/0", `{"value":"0xDEADBEEF"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr, body = do(t, s, http.MethodGet, "/tags/1/values/uint32/0", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.EqualValues(t, 0xDEADBEEF, body["value"])

	rr, body = do(t, s, http.MethodGet, "/tags/1/values/uint32/40", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "bad_param", body["status"])
	require.EqualValues(t, -7, body["code"])
}

func TestCreateRejectsMissingName(t *testing.T) {
	s := newTestServer(t)
	rr, body := do(t, s, http.MethodPost, "/tags", `{"attrs":"elem_size=4"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "bad_param", body["status"])

	rr, body = do(t, s, http.MethodGet, "/tags", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, body["tags"])
}

func TestUnknownTagIsNotFound(t *testing.T) {
	s := newTestServer(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/tags/99"},
		{http.MethodGet, "/tags/99/status"},
		{http.MethodPost, "/tags/99/read"},
		{http.MethodGet, "/tags/99/values/int8/0"},
		{http.MethodGet, "/tags/99/snapshot"},
		{http.MethodPost, "/tags/99/watch"},
		{http.MethodGet, "/tags/99/events"},
	} {
		rr, body := do(t, s, tc.method, tc.path, "")
		require.Equal(t, http.StatusNotFound, rr.Code, "%s %s", tc.method, tc.path)
		require.EqualValues(t, -19, body["code"], "%s %s", tc.method, tc.path)
	}
}

func TestBadPathParams(t *testing.T) {
	s := newTestServer(t)
	_, _ = do(t, s, http.MethodPost, "/tags", `{"attrs":"name=A"}`)

	rr, _ := do(t, s, http.MethodGet, "/tags/abc", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	rr, _ = do(t, s, http.MethodGet, "/tags/1/values/int128/0", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	rr, _ = do(t, s, http.MethodGet, "/tags/1/values/int8/x", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	rr, _ = do(t, s, http.MethodPost, "/tags/1/read?timeout=-1", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	rr, _ = do(t, s, http.MethodPut, "/tags/1/values/uint8/0", `{"value":"300"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWatchRecordsEventSequence(t *testing.T) {
	s := newTestServer(t)
	_, _ = do(t, s, http.MethodPost, "/tags", `{"attrs":"name=W&elem_size=4"}`)

	rr, body := do(t, s, http.MethodGet, "/tags/1/events", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, false, body["watching"])

	rr, _ = do(t, s, http.MethodPost, "/tags/1/watch", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr, _ = do(t, s, http.MethodPost, "/tags/1/read", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr, _ = do(t, s, http.MethodGet, "/tags/1/values/int32/4", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr, body = do(t, s, http.MethodGet, "/tags/1/events?drain=true", "")
	require.Equal(t, http.StatusOK, rr.Code)
	events := body["events"].([]any)
	var names []string
	for _, e := range events {
		names = append(names, e.(map[string]any)["event"].(string))
	}
	require.Equal(t, []string{"read_started", "read_completed", "read_started", "aborted"}, names)
	require.Equal(t, "bad_param", events[3].(map[string]any)["status"])

	_, body = do(t, s, http.MethodGet, "/tags/1/events", "")
	require.Empty(t, body["events"])

	rr, _ = do(t, s, http.MethodDelete, "/tags/1/watch", "")
	require.Equal(t, http.StatusOK, rr.Code)
	_, _ = do(t, s, http.MethodPost, "/tags/1/read", "")
	_, body = do(t, s, http.MethodGet, "/tags/1/events", "")
	require.Equal(t, false, body["watching"])
}

func TestSnapshotIsTLV(t *testing.T) {
	s := newTestServer(t)
	_, _ = do(t, s, http.MethodPost, "/tags", `{"attrs":"name=Snap&elem_size=2&elem_count=2"}`)
	_, _ = do(t, s, http.MethodPut, "/tags/1/values/uint16/2", `{"value":"258"}`)

	req := httptest.NewRequest(http.MethodGet, "/tags/1/snapshot", nil)
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/octet-stream", rr.Header().Get("Content-Type"))

	snap, err := tlv.DecodeSnapshot(rr.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, int32(1), snap.ID)
	require.Equal(t, "DUMMY_AQUA_DATA_Snap", snap.Name)
	require.Equal(t, uint32(2), snap.ElemSize)
	require.Equal(t, uint32(2), snap.ElemCount)
	require.True(t, bytes.Equal([]byte{0, 0, 2, 1}, snap.Data))
}

func TestDebugLevelRoutes(t *testing.T) {
	s := newTestServer(t)
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	rr, body := do(t, s, http.MethodPut, "/debug/level", `{"level":2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "warn", body["name"])

	rr, body = do(t, s, http.MethodGet, "/debug/level", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.EqualValues(t, 2, body["level"])

	rr, _ = do(t, s, http.MethodPut, "/debug/level", `{}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealthReadyAndRequestID(t *testing.T) {
	s := newTestServer(t)

	rr, body := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", body["status"])
	require.NotEmpty(t, rr.Header().Get(observability.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	req.Header.Set(observability.HeaderRequestID, "2b1c1f0e-8d4c-4c55-9d0b-3f1b6f0a9e11")
	rr = httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "2b1c1f0e-8d4c-4c55-9d0b-3f1b6f0a9e11", rr.Header().Get(observability.HeaderRequestID))

	rr, _ = do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestTokenGuardsWrites(t *testing.T) {
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	s := Appear("plcstub-auth", ":0", nil, nil)
	s.Validator = auth.StaticToken{Token: "s3cret"}
	s.RegisterRoutes()

	rr, _ := do(t, s, http.MethodPost, "/tags", `{"attrs":"name=Locked"}`)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/tags", strings.NewReader(`{"attrs":"name=Locked"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer s3cret")
	rr = httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = do(t, s, http.MethodGet, "/tags/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
}
