package web

import (
	"io"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirebuddy-console/internal/backend"
)

func TestListCandidatesJSON(t *testing.T) {
	t.Parallel()

	h := newTestConsole(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		_, _ = io.WriteString(w, `{"candidates": [{"id": "c1", "name": "Asha", "curr_company": "Acme", "status": "completed"}],
			"pagination": {"page": 3, "per_page": 5, "total": 11, "pages": 3}}`)
	})

	rec := get(h, "/api/candidates?page=3&per_page=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var list backend.CandidateList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Candidates, 1)
	assert.Equal(t, "Acme", list.Candidates[0].Company)
	assert.Equal(t, backend.StatusCompleted, list.Candidates[0].ExtractionStatus)
	assert.Equal(t, 3, list.Pagination.Pages)
}

func TestListCandidatesJSONBackendDown(t *testing.T) {
	t.Parallel()

	h := newTestConsole(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error": "boom"}`)
	})

	rec := get(h, "/api/candidates")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error": "Failed to load candidates. Please try again later."}`, rec.Body.String())
}

func TestDocumentRequestsJSON(t *testing.T) {
	t.Parallel()

	h := newTestConsole(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, profileJSON)
	})

	rec := get(h, "/api/candidates/c1/document-requests")
	require.Equal(t, http.StatusOK, rec.Code)

	var out DocumentRequestLog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "c1", out.CandidateID)
	require.Len(t, out.Requests, 2)
	assert.Equal(t, "second", out.Requests[0].Message)
	assert.Equal(t, "first", out.Requests[1].Message)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	up := newTestConsole(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = io.WriteString(w, `{"status": "healthy", "service": "hirebuddy-backend"}`)
	})
	rec := get(up, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var out ConsoleHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "healthy", out.Status)
	assert.Equal(t, "reachable", out.Backend)
	require.NotNil(t, out.Details)
	assert.Equal(t, "hirebuddy-backend", out.Details.Service)

	down := newTestConsole(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	rec = get(down, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var degraded ConsoleHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &degraded))
	assert.Equal(t, "degraded", degraded.Status)
	assert.Equal(t, "unreachable", degraded.Backend)
	assert.Nil(t, degraded.Details)
}

func TestAssetsServed(t *testing.T) {
	t.Parallel()

	h := newTestConsole(t, func(w http.ResponseWriter, r *http.Request) {})

	for _, name := range []string{"app.css", "console.js"} {
		rec := get(h, "/assets/"+name)
		assert.Equal(t, http.StatusOK, rec.Code, name)
		assert.NotEmpty(t, rec.Body.String(), name)
	}
	assert.Equal(t, http.StatusNotFound, get(h, "/assets/missing.js").Code)
}
