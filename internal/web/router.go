package web

import (
	"io/fs"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(c *Console) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL(c.opts.SwaggerURL),
	))
	mux.HandleFunc("GET /health", c.Health)

	assets, err := fs.Sub(templatesFS, "assets")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(assets)))

	// Pages
	mux.HandleFunc("GET /{$}", c.Home)
	mux.HandleFunc("GET /dashboard", c.Dashboard)
	mux.HandleFunc("GET /candidates/{id}", c.CandidateProfile)
	mux.HandleFunc("POST /candidates/{id}/request-documents", c.RequestDocuments)
	mux.HandleFunc("GET /candidates/{id}/manage-documents", c.ManageDocuments)
	mux.HandleFunc("POST /candidates/{id}/manage-documents", c.SubmitDocument)
	mux.HandleFunc("GET /upload", c.UploadForm)
	mux.HandleFunc("POST /upload", c.SubmitUpload)

	// JSON
	mux.HandleFunc("GET /api/candidates", c.ListCandidatesJSON)
	mux.HandleFunc("GET /api/candidates/{id}/document-requests", c.DocumentRequestsJSON)

	return mux
}
