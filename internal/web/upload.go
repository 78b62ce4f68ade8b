package web

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"hirebuddy-console/internal/backend"
	"hirebuddy-console/internal/form"
	"hirebuddy-console/internal/format"
	"hirebuddy-console/internal/upload"
)

const (
	msgFillFields       = "Please fill all fields correctly before uploading."
	msgFillFieldsSubmit = "Please fill all required fields correctly before uploading."
	msgUploadFailed     = "Upload failed. Please try again."
	msgUploadedPrefix   = "Uploaded successfully! Candidate ID: "
)

// Upload progress milestones.
const (
	ProgressIdle     = 0
	ProgressStarted  = 25
	ProgressComplete = 100
)

type uploadView struct {
	Fields  form.Candidate
	Errors  form.Errors
	Area    upload.Area
	Hint    string
	Status  string
	Tone    format.Tone
	Locked  bool
	Percent int
}

// ShowArea is true once the form is complete; the file picker stays hidden
// until then. A disabled area is still shown when it carries an error.
func (v uploadView) ShowArea() bool {
	return !v.Area.Disabled || v.Area.Error != ""
}

// StartedPercent is where the bar jumps once the browser starts sending.
func (v uploadView) StartedPercent() int { return ProgressStarted }

// UploadForm renders an empty upload form with the file picker gated.
func (c *Console) UploadForm(w http.ResponseWriter, r *http.Request) {
	c.renderUpload(w, http.StatusOK, uploadView{
		Errors: form.Errors{},
		Area:   upload.NewArea("file", c.opts.MaxUploadSizeMB).Inert(),
		Hint:   msgFillFields,
	}, nil)
}

// SubmitUpload handles both steps of the upload form. Without a file it only
// validates the fields and, when they pass, reveals the file picker. With a
// file it revalidates the fields and forwards everything to the backend.
func (c *Console) SubmitUpload(w http.ResponseWriter, r *http.Request) {
	limit := int64(c.opts.MaxUploadSizeMB+1) << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	area := upload.NewArea("file", c.opts.MaxUploadSizeMB)
	view := uploadView{Area: area}

	if err := r.ParseMultipartForm(limit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Printf("[Upload] could not read form: %v", err)
		// the body limit sits above the file limit, so this is always ErrTooLarge
		view.Area = area.Inert().WithError(upload.Validate("", "", limit, c.opts.MaxUploadSizeMB))
		view.Hint = msgFillFields
		c.renderUpload(w, http.StatusRequestEntityTooLarge, view, nil)
		return
	}

	view.Fields = formCandidate(r)
	view.Errors = form.ValidateCandidate(view.Fields)
	fh := formFile(r, area.Field)

	if !view.Errors.Valid() {
		view.Area = area.Inert()
		view.Hint = msgFillFields
		if fh != nil {
			view.Status, view.Tone = msgFillFieldsSubmit, format.ToneWarning
		}
		c.renderUpload(w, http.StatusUnprocessableEntity, view, nil)
		return
	}
	if fh == nil {
		c.renderUpload(w, http.StatusOK, view, nil)
		return
	}

	file, err := upload.AcceptHeader(fh, c.opts.MaxUploadSizeMB)
	if err != nil {
		view.Area = area.WithError(err)
		c.renderUpload(w, http.StatusUnprocessableEntity, view, nil)
		return
	}

	body, closer, err := file.Backend()
	if err != nil {
		log.Printf("[Upload] %v", err)
		view.Status, view.Tone = msgUploadFailed, format.ToneDanger
		c.renderUpload(w, http.StatusInternalServerError, view, nil)
		return
	}
	defer closer.Close()

	fields := view.Fields.Trimmed()
	res, err := c.backend.UploadResume(r.Context(), body, backend.ResumeFields{
		Name:        fields.Name,
		Email:       fields.Email,
		CurrCompany: fields.CurrCompany,
	})
	switch {
	case backend.IsCanceled(err):
		log.Printf("[Upload] upload aborted for %s", file.Name)
		return
	case err != nil:
		log.Printf("[Upload] upload of %s failed: %v", file.Name, err)
		view.Status, view.Tone = msgUploadFailed, format.ToneDanger
		view.Percent = ProgressIdle
		c.renderUpload(w, http.StatusBadGateway, view, nil)
		return
	}

	log.Printf("[Upload] uploaded %s as candidate %s", file.Name, res.CandidateID)
	view.Status, view.Tone = msgUploadedPrefix+res.CandidateID, format.ToneSuccess
	view.Percent = ProgressComplete
	view.Locked = true
	view.Area = area.Inert()
	c.renderUpload(w, http.StatusOK, view, &refresh{URL: "/upload", Delay: c.opts.UploadResetDelay})
}

func (c *Console) renderUpload(w http.ResponseWriter, status int, view uploadView, next *refresh) {
	if view.Errors == nil {
		view.Errors = form.Errors{}
	}
	renderHTMLTemplate(w, status, c.uploadTmpl, pageData{
		Title:   pageTitle("Upload Resume"),
		Nav:     "upload",
		Refresh: next,
		View:    view,
	})
}

func formCandidate(r *http.Request) form.Candidate {
	return form.Candidate{
		Name:        r.FormValue(form.FieldName),
		Email:       r.FormValue(form.FieldEmail),
		CurrCompany: r.FormValue(form.FieldCurrCompany),
	}
}

// formFile returns the first file posted under field, if any.
func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 || files[0].Filename == "" {
		return nil
	}
	return files[0]
}
