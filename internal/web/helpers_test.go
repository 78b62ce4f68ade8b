package web

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"hirebuddy-console/internal/backend"
)

// newTestConsole wires the console to a fake backend served by h.
func newTestConsole(t *testing.T, h http.HandlerFunc) http.Handler {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRouter(NewConsole(backend.NewClient(srv.URL, nil), Options{
		DocumentsBaseURL: "http://docs.test",
	}))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	return serve(h, httptest.NewRequest(http.MethodGet, target, nil))
}

type testFile struct {
	field       string
	name        string
	contentType string
	content     string
}

func postMultipart(t *testing.T, h http.Handler, target string, fields map[string]string, file *testFile) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.name+`"`)
		hdr.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return serve(h, req)
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if all := findAll(n, match); len(all) > 0 {
		return all[0]
	}
	return nil
}

func byID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, "id") == id }
}

func byAttr(key, val string) func(*html.Node) bool {
	return func(n *html.Node) bool { return attr(n, key) == val }
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// stubBackend lets a test script individual backend calls.
type stubBackend struct {
	list    func(ctx context.Context, page, pageSize int) (*backend.CandidateList, error)
	get     func(ctx context.Context, id string) (*backend.CandidateProfile, error)
	upload  func(ctx context.Context, file backend.File, fields backend.ResumeFields) (*backend.UploadResult, error)
	request func(ctx context.Context, id string) (*backend.RequestResult, error)
	submit  func(ctx context.Context, id string, files []backend.File, types []string) (*backend.SubmitResult, error)
}

func (s stubBackend) ListCandidates(ctx context.Context, page, pageSize int) (*backend.CandidateList, error) {
	return s.list(ctx, page, pageSize)
}

func (s stubBackend) GetCandidate(ctx context.Context, id string) (*backend.CandidateProfile, error) {
	return s.get(ctx, id)
}

func (s stubBackend) UploadResume(ctx context.Context, file backend.File, fields backend.ResumeFields) (*backend.UploadResult, error) {
	return s.upload(ctx, file, fields)
}

func (s stubBackend) RequestDocuments(ctx context.Context, id string) (*backend.RequestResult, error) {
	return s.request(ctx, id)
}

func (s stubBackend) SubmitDocuments(ctx context.Context, id string, files []backend.File, types []string) (*backend.SubmitResult, error) {
	return s.submit(ctx, id, files, types)
}

func (s stubBackend) Health(ctx context.Context) (*backend.HealthStatus, error) {
	return &backend.HealthStatus{Status: "healthy"}, nil
}
