package web

import (
	"log"
	"net/http"
	"net/url"

	"hirebuddy-console/internal/backend"
	"hirebuddy-console/internal/format"
)

const (
	msgCandidateFailed = "Failed to load candidate data."
	msgRequestQueued   = "Request queued successfully."
	msgRequestFailed   = "Failed to queue request."
	msgNoRequests      = "No requests yet."
	msgSendingRequest  = "Sending request..."
)

type parsedField struct {
	Key   string
	Label string
	Value string
	Meter *format.Meter
}

type requestEntry struct {
	Timestamp string
	Message   string
	Status    string
	Tone      format.Tone
}

type documentLink struct {
	Label      string
	Filename   string
	URL        string
	UploadedAt string
}

type profileView struct {
	ID        string
	Candidate *backend.Candidate
	Error     string

	Fields    []parsedField
	Overall   *format.Meter
	Documents []documentLink
	Requests  []requestEntry

	RequestMessage string
	RequestTone    format.Tone
	PendingMessage string
	NoRequests     string
}

func profileURL(id string) string {
	return "/candidates/" + url.PathEscape(id)
}

// CandidateProfile shows one candidate: identity, parsed résumé fields with
// confidence meters, uploaded documents and the document request log.
func (c *Console) CandidateProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	view := profileView{ID: id, PendingMessage: msgSendingRequest, NoRequests: msgNoRequests}

	switch r.URL.Query().Get("request") {
	case "queued":
		view.RequestMessage, view.RequestTone = msgRequestQueued, format.ToneSuccess
	case "failed":
		view.RequestMessage, view.RequestTone = msgRequestFailed, format.ToneDanger
	}

	status := http.StatusOK
	profile, err := c.backend.GetCandidate(r.Context(), id)
	switch {
	case backend.IsCanceled(err):
		log.Printf("[Profile] fetch aborted for %s", id)
		return
	case err != nil:
		log.Printf("[Profile] failed to load candidate %s: %v", id, err)
		view.Error = msgCandidateFailed
		status = http.StatusBadGateway
	default:
		cand := profile.Candidate
		view.Candidate = &cand
		view.Fields = parsedFields(cand.ParsedData)
		view.Overall = overallConfidence(cand.ParsedData)
		view.Documents = c.documentLinks(cand.Documents)
		for _, req := range backend.NewestFirst(backend.ParseDocumentRequests(cand.DocumentRequests)) {
			view.Requests = append(view.Requests, requestEntry{
				Timestamp: format.UTCToIndianTime(req.Timestamp),
				Message:   req.Message,
				Status:    req.Status,
				Tone:      format.RequestTone(req.Status),
			})
		}
	}

	renderHTMLTemplate(w, status, c.profileTmpl, pageData{
		Title: pageTitle("Candidate Profile"),
		Nav:   "dashboard",
		View:  view,
	})
}

// RequestDocuments asks the backend to contact the candidate for their
// identity documents, then redirects back to the profile with the outcome.
// Every submission is forwarded; repeated clicks queue repeated requests.
func (c *Console) RequestDocuments(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	outcome := "queued"
	if _, err := c.backend.RequestDocuments(r.Context(), id); err != nil {
		if backend.IsCanceled(err) {
			log.Printf("[DocumentRequests] request aborted for %s", id)
			return
		}
		log.Printf("[DocumentRequests] failed to queue request for %s: %v", id, err)
		outcome = "failed"
	}

	http.Redirect(w, r, profileURL(id)+"?request="+outcome, http.StatusSeeOther)
}

func parsedFields(pd backend.ParsedData) []parsedField {
	keys := pd.Keys()
	fields := make([]parsedField, 0, len(keys))
	for _, key := range keys {
		f := parsedField{
			Key:   key,
			Label: format.FieldLabel(key),
			Value: format.FieldValue(pd.Fields[key]),
		}
		if score, ok := pd.ConfidenceFor(key); ok {
			m := format.Confidence(score)
			f.Meter = &m
		}
		fields = append(fields, f)
	}
	return fields
}

// overallConfidence is the mean of all reported scores, or nil without any.
func overallConfidence(pd backend.ParsedData) *format.Meter {
	if len(pd.Confidence) == 0 {
		return nil
	}
	var sum float64
	for _, score := range pd.Confidence {
		sum += score
	}
	m := format.ConfidenceBar(sum / float64(len(pd.Confidence)))
	return &m
}

func (c *Console) documentLinks(docs backend.Documents) []documentLink {
	list := docs.List()
	links := make([]documentLink, 0, len(list))
	for _, d := range list {
		links = append(links, documentLink{
			Label:      format.DocumentLabel(d.Type),
			Filename:   d.Filename,
			URL:        backend.PublicDocumentURL(c.opts.DocumentsBaseURL, d.Path),
			UploadedAt: format.UTCToIndianTime(d.UploadedAt),
		})
	}
	return links
}
