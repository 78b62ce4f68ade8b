package web

import (
	"log"
	"net/http"

	"hirebuddy-console/internal/backend"
)

const (
	msgCandidatesFailed = "Failed to load candidates. Please try again later."
	msgNoCandidates     = "No candidates found."
)

type dashboardView struct {
	Pager      Pager
	PageSizes  []int
	Candidates []backend.CandidateSummary
	Error      string
}

// Empty is true for a successful fetch without rows.
func (v dashboardView) Empty() bool {
	return v.Error == "" && len(v.Candidates) == 0
}

func (v dashboardView) EmptyMessage() string { return msgNoCandidates }

// Home renders the landing page.
func (c *Console) Home(w http.ResponseWriter, r *http.Request) {
	renderHTMLTemplate(w, http.StatusOK, c.homeTmpl, pageData{Title: pageTitle(""), Nav: "home"})
}

// Dashboard lists candidates one page at a time. Changing the page size
// (from_per_page differs from per_page) always returns to page 1.
func (c *Console) Dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size := parsePositiveInt(q.Get("per_page"), DefaultPageSize)
	pager := NewPager(parsePositiveInt(q.Get("page"), 1), size, 1)
	if q.Has("from_per_page") && parsePositiveInt(q.Get("from_per_page"), 0) != pager.PageSize {
		pager = pager.WithPageSize(pager.PageSize)
	}

	view := dashboardView{Pager: pager, PageSizes: PageSizes}
	status := http.StatusOK

	list, err := c.backend.ListCandidates(r.Context(), pager.Page, pager.PageSize)
	switch {
	case backend.IsCanceled(err):
		log.Printf("[Dashboard] fetch aborted for page %d", pager.Page)
		return
	case err != nil:
		log.Printf("[Dashboard] failed to load candidates: %v", err)
		view.Error = msgCandidatesFailed
		status = http.StatusBadGateway
	default:
		view.Candidates = list.Candidates
		view.Pager = pager.WithTotal(list.Pagination.Pages)
	}

	renderHTMLTemplate(w, status, c.dashboardTmpl, pageData{
		Title: pageTitle("Dashboard"),
		Nav:   "dashboard",
		View:  view,
	})
}
