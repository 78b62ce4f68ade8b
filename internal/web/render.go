package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"hirebuddy-console/internal/format"
)

//go:embed templates/*.html assets/*
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"indianTime": format.UTCToIndianTime,
	"orDash":     format.OrPlaceholder,
	"label":      format.FieldLabel,
	"statusTone": format.StatusTone,
	"docLabel":   format.DocumentLabel,
	"year":       func() int { return time.Now().Year() },
}

// parsePage parses the shared layout together with a page's templates.
func parsePage(files ...string) *template.Template {
	patterns := append([]string{"templates/layout.html"}, files...)
	return template.Must(template.New("layout.html").Funcs(templateFuncs).ParseFS(templatesFS, patterns...))
}

// refresh sends the browser elsewhere after a delay.
type refresh struct {
	URL   string
	Delay time.Duration
}

// Seconds is the meta-refresh fallback (whole seconds, rounded up).
func (r refresh) Seconds() int {
	return int(math.Ceil(r.Delay.Seconds()))
}

// Millis is used by the script for the precise delay.
func (r refresh) Millis() int64 {
	return r.Delay.Milliseconds()
}

// pageData is what the layout needs plus one page-specific view.
type pageData struct {
	Title   string
	Nav     string
	Refresh *refresh
	View    any
}

func renderHTMLTemplate(w http.ResponseWriter, status int, tmpl *template.Template, data pageData) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Printf("[Render] template %q failed: %v", data.Title, err)
		http.Error(w, "template render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}

func parsePositiveInt(raw string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func pageTitle(prefix string) string {
	if prefix == "" {
		return "HireBuddy - AI-Powered Candidate Verification"
	}
	return prefix + " - HireBuddy"
}
