package web

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"slices"

	"hirebuddy-console/internal/backend"
	"hirebuddy-console/internal/format"
	"hirebuddy-console/internal/upload"
)

const (
	msgSelectDocument   = "Please select document type and upload a file."
	msgDocumentUploaded = "Document uploaded successfully!"
	msgDocumentFailed   = "Failed to upload document."
)

type documentChoice struct {
	Type     string
	Label    string
	Uploaded bool
	Selected bool
	URL      string
}

type documentsView struct {
	ID         string
	Choices    []documentChoice
	Selected   string
	Area       upload.Area
	Documents  []documentLink
	Message    string
	Tone       format.Tone
	UploadedAs string
}

// HasSelection is true when a type that can still be uploaded is chosen.
func (v documentsView) HasSelection() bool { return v.Selected != "" }

func manageDocumentsURL(id string) string {
	return profileURL(id) + "/manage-documents"
}

// ManageDocuments lets the operator upload one identity document per type.
// Types with an existing upload are shown but cannot be selected.
func (c *Console) ManageDocuments(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	docs, ok := c.loadDocuments(w, r, id)
	if !ok {
		return
	}

	view := c.documentsView(id, docs, r.URL.Query().Get("type"))
	c.renderDocuments(w, http.StatusOK, view, nil)
}

// SubmitDocument forwards the selected document to the backend and sends the
// operator back to the profile shortly after a success.
func (c *Console) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	limit := int64(c.opts.MaxUploadSizeMB+1) << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	parseErr := r.ParseMultipartForm(limit)
	if parseErr != nil && !errors.Is(parseErr, http.ErrNotMultipart) {
		log.Printf("[Documents] could not read form for %s: %v", id, parseErr)
	}

	docs, ok := c.loadDocuments(w, r, id)
	if !ok {
		return
	}

	docType := r.FormValue("type")
	view := c.documentsView(id, docs, docType)
	fh := formFile(r, view.Area.Field)

	if parseErr != nil && !errors.Is(parseErr, http.ErrNotMultipart) && view.HasSelection() {
		view.Area = view.Area.WithError(upload.Validate("", "", limit, c.opts.MaxUploadSizeMB))
		c.renderDocuments(w, http.StatusRequestEntityTooLarge, view, nil)
		return
	}
	if docs.Uploaded(docType) {
		view.Message, view.Tone = format.DocumentLabel(docType)+" has already been uploaded.", format.ToneWarning
		c.renderDocuments(w, http.StatusConflict, view, nil)
		return
	}
	if !view.HasSelection() || fh == nil {
		view.Message, view.Tone = msgSelectDocument, format.ToneWarning
		c.renderDocuments(w, http.StatusUnprocessableEntity, view, nil)
		return
	}

	file, err := upload.AcceptHeader(fh, c.opts.MaxUploadSizeMB)
	if err != nil {
		view.Area = view.Area.WithError(err)
		c.renderDocuments(w, http.StatusUnprocessableEntity, view, nil)
		return
	}
	body, closer, err := file.Backend()
	if err != nil {
		log.Printf("[Documents] %v", err)
		view.Message, view.Tone = msgDocumentFailed, format.ToneDanger
		c.renderDocuments(w, http.StatusInternalServerError, view, nil)
		return
	}
	defer closer.Close()

	res, err := c.backend.SubmitDocuments(r.Context(), id, []backend.File{body}, []string{docType})
	switch {
	case backend.IsCanceled(err):
		log.Printf("[Documents] upload aborted for %s", id)
		return
	case err != nil:
		log.Printf("[Documents] upload of %s for %s failed: %v", docType, id, err)
		view.Message, view.Tone = submitErrorMessage(err), format.ToneDanger
		c.renderDocuments(w, http.StatusBadGateway, view, nil)
		return
	}

	view.Message, view.Tone = msgDocumentUploaded, format.ToneSuccess
	if res.Message != "" {
		view.Message = res.Message
	}
	view.UploadedAs = file.Name
	view.Area = view.Area.Inert()
	c.renderDocuments(w, http.StatusOK, view, &refresh{URL: profileURL(id), Delay: c.opts.DocumentsDoneDelay})
}

// loadDocuments fetches the current uploads. A failed fetch is logged and
// treated as "nothing uploaded yet"; only cancellation stops the page.
func (c *Console) loadDocuments(w http.ResponseWriter, r *http.Request, id string) (backend.Documents, bool) {
	profile, err := c.backend.GetCandidate(r.Context(), id)
	switch {
	case backend.IsCanceled(err):
		log.Printf("[Documents] fetch aborted for %s", id)
		return nil, false
	case err != nil:
		log.Printf("[Documents] failed to load documents for %s: %v", id, err)
		return backend.Documents{}, true
	}
	return profile.Candidate.Documents, true
}

func (c *Console) documentsView(id string, docs backend.Documents, selected string) documentsView {
	if !slices.Contains(backend.DocumentTypes, selected) || docs.Uploaded(selected) {
		selected = ""
	}

	view := documentsView{
		ID:        id,
		Selected:  selected,
		Area:      upload.NewArea("file", c.opts.MaxUploadSizeMB),
		Documents: c.documentLinks(docs),
	}
	for _, t := range backend.DocumentTypes {
		view.Choices = append(view.Choices, documentChoice{
			Type:     t,
			Label:    format.DocumentLabel(t),
			Uploaded: docs.Uploaded(t),
			Selected: t == selected,
			URL:      manageDocumentsURL(id) + "?type=" + url.QueryEscape(t),
		})
	}
	if selected == "" {
		view.Area = view.Area.Inert()
	}
	return view
}

func (c *Console) renderDocuments(w http.ResponseWriter, status int, view documentsView, next *refresh) {
	renderHTMLTemplate(w, status, c.documentsTmpl, pageData{
		Title:   pageTitle("Manage Documents"),
		Nav:     "dashboard",
		Refresh: next,
		View:    view,
	})
}

func submitErrorMessage(err error) string {
	var httpErr *backend.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return "Upload failed: " + httpErr.Message
	}
	if errors.Is(err, backend.ErrFileTypeMismatch) {
		return msgSelectDocument
	}
	return msgDocumentFailed
}
