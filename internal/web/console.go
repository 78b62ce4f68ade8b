package web

import (
	"context"
	"html/template"
	"time"

	"hirebuddy-console/internal/backend"
	"hirebuddy-console/internal/upload"
)

// Backend is the subset of the API client the pages use.
type Backend interface {
	ListCandidates(ctx context.Context, page, pageSize int) (*backend.CandidateList, error)
	GetCandidate(ctx context.Context, id string) (*backend.CandidateProfile, error)
	UploadResume(ctx context.Context, file backend.File, fields backend.ResumeFields) (*backend.UploadResult, error)
	RequestDocuments(ctx context.Context, candidateID string) (*backend.RequestResult, error)
	SubmitDocuments(ctx context.Context, candidateID string, files []backend.File, types []string) (*backend.SubmitResult, error)
	Health(ctx context.Context) (*backend.HealthStatus, error)
}

// Options tune the console.
type Options struct {
	// DocumentsBaseURL serves uploaded documents under /uploads/.
	DocumentsBaseURL string
	MaxUploadSizeMB  int
	// SwaggerURL is where the swagger UI loads doc.json from.
	SwaggerURL string
	// Delays before the page moves on after a successful action.
	UploadResetDelay   time.Duration
	DocumentsDoneDelay time.Duration
}

// Console renders the operator pages. It keeps no per-candidate state;
// every view is built from a fresh backend call.
type Console struct {
	backend Backend
	opts    Options

	homeTmpl      *template.Template
	dashboardTmpl *template.Template
	profileTmpl   *template.Template
	uploadTmpl    *template.Template
	documentsTmpl *template.Template
}

func NewConsole(b Backend, opts Options) *Console {
	if opts.MaxUploadSizeMB <= 0 {
		opts.MaxUploadSizeMB = upload.DefaultMaxSizeMB
	}
	if opts.UploadResetDelay <= 0 {
		opts.UploadResetDelay = 2500 * time.Millisecond
	}
	if opts.DocumentsDoneDelay <= 0 {
		opts.DocumentsDoneDelay = 800 * time.Millisecond
	}
	if opts.SwaggerURL == "" {
		opts.SwaggerURL = "/swagger/doc.json"
	}

	return &Console{
		backend:       b,
		opts:          opts,
		homeTmpl:      parsePage("templates/home.html"),
		dashboardTmpl: parsePage("templates/dashboard.html"),
		profileTmpl:   parsePage("templates/profile.html"),
		uploadTmpl:    parsePage("templates/upload.html", "templates/upload_area.html"),
		documentsTmpl: parsePage("templates/documents.html", "templates/upload_area.html"),
	}
}
