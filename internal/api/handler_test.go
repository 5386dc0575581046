package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/pointwallet/internal/repos/points"
	"github.com/fastprodman/pointwallet/internal/repos/points/memory"
	"github.com/fastprodman/pointwallet/internal/services/point"
)

func newTestRouter() http.Handler {
	return NewRouter(point.New(memory.New()))
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPoint_FreshUser(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(), http.MethodGet, "/point/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var up points.UserPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.Equal(t, int64(1), up.ID)
	assert.Zero(t, up.Point)
}

func TestGetPoint_NegativeUserIs500(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(), http.MethodGet, "/point/-1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid userId : -1")
}

func TestGetPoint_NonNumericIDIs400(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(), http.MethodGet, "/point/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCharge_ThenReadBack(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPatch, "/point/1/charge", "500")
	require.Equal(t, http.StatusOK, rec.Code)

	var up points.UserPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.Equal(t, int64(500), up.Point)

	rec = doRequest(t, router, http.MethodGet, "/point/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.Equal(t, int64(500), up.Point)

	rec = doRequest(t, router, http.MethodGet, "/point/1/histories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var histories []points.PointHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &histories))
	require.Len(t, histories, 1)
	assert.Equal(t, points.TypeCharge, histories[0].Type)
	assert.Equal(t, int64(500), histories[0].Amount)
}

func TestCharge_MalformedBodyIs400(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	for _, body := range []string{``, `"five hundred"`, `{}`, `12.5`, `abc`} {
		rec := doRequest(t, router, http.MethodPatch, "/point/1/charge", body)
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}

	// Nothing may have been written along the way.
	rec := doRequest(t, router, http.MethodGet, "/point/1/histories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var histories []points.PointHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &histories))
	assert.Empty(t, histories)
}

func TestCharge_PerCallCapIs500(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPatch, "/point/2/charge", "1000001")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "1,000,000")

	rec = doRequest(t, router, http.MethodGet, "/point/2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var up points.UserPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.Zero(t, up.Point)
}

func TestUse_InsufficientBalanceIs500(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPatch, "/point/4/charge", "500")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPatch, "/point/4/use", "1000")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient balance")

	rec = doRequest(t, router, http.MethodGet, "/point/4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var up points.UserPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.Equal(t, int64(500), up.Point)
}

func TestUse_IsNotAStub(t *testing.T) {
	t.Parallel()

	router := newTestRouter()

	rec := doRequest(t, router, http.MethodPatch, "/point/9/charge", "300")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPatch, "/point/9/use", "100")
	require.Equal(t, http.StatusOK, rec.Code)

	var up points.UserPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.Equal(t, int64(9), up.ID)
	assert.Equal(t, int64(200), up.Point)
}
