package web

import (
	"log"
	"net/http"

	"hirebuddy-console/internal/backend"
)

type errorResponse struct {
	Error string `json:"error"`
}

// DocumentRequestLog is the parsed request log of one candidate.
type DocumentRequestLog struct {
	CandidateID string                    `json:"candidate_id"`
	Requests    []backend.DocumentRequest `json:"requests"`
}

// ConsoleHealth reports the console and whether the backend answers.
type ConsoleHealth struct {
	Status  string                `json:"status"`
	Backend string                `json:"backend"`
	Details *backend.HealthStatus `json:"details,omitempty"`
}

// ListCandidatesJSON godoc
// @Summary List candidates
// @Description Candidate summaries with backend field names mapped for display
// @Tags candidates
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Rows per page (5, 10, 20, 30 or 50)" default(10)
// @Success 200 {object} backend.CandidateList
// @Failure 502 {object} errorResponse
// @Router /api/candidates [get]
func (c *Console) ListCandidatesJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pager := NewPager(parsePositiveInt(q.Get("page"), 1), parsePositiveInt(q.Get("per_page"), DefaultPageSize), 1)

	list, err := c.backend.ListCandidates(r.Context(), pager.Page, pager.PageSize)
	if err != nil {
		if backend.IsCanceled(err) {
			return
		}
		log.Printf("[API] list candidates: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: msgCandidatesFailed})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// DocumentRequestsJSON godoc
// @Summary Document request log
// @Description The candidate's document request log, newest first. Malformed logs come back empty.
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} DocumentRequestLog
// @Failure 502 {object} errorResponse
// @Router /api/candidates/{id}/document-requests [get]
func (c *Console) DocumentRequestsJSON(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	profile, err := c.backend.GetCandidate(r.Context(), id)
	if err != nil {
		if backend.IsCanceled(err) {
			return
		}
		log.Printf("[API] document requests for %s: %v", id, err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: msgCandidateFailed})
		return
	}

	writeJSON(w, http.StatusOK, DocumentRequestLog{
		CandidateID: id,
		Requests:    backend.NewestFirst(backend.ParseDocumentRequests(profile.Candidate.DocumentRequests)),
	})
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} ConsoleHealth
// @Router /health [get]
func (c *Console) Health(w http.ResponseWriter, r *http.Request) {
	out := ConsoleHealth{Status: "healthy", Backend: "reachable"}
	details, err := c.backend.Health(r.Context())
	if err != nil {
		log.Printf("[Health] backend unreachable: %v", err)
		out.Status, out.Backend = "degraded", "unreachable"
	} else {
		out.Details = details
	}
	writeJSON(w, http.StatusOK, out)
}
