package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	httpclient "hirebuddy-console/pkg/http"
)

// maxBodyBytes caps how much of a response body is buffered.
const maxBodyBytes = 8 << 20

// Client talks to the candidate-verification backend. Every method takes the
// caller's context as its cancellation signal; nothing is retried.
type Client struct {
	baseURL string
	http    *httpclient.Client
}

// File is an upload handed to the client. ContentType may be empty.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

func NewClient(baseURL string, hc *httpclient.Client) *Client {
	if hc == nil {
		hc = httpclient.NewClient(0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// ListCandidates fetches one page of candidates and maps the backend field
// names onto CandidateSummary.
func (c *Client) ListCandidates(ctx context.Context, page, pageSize int) (*CandidateList, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(pageSize))
	endpoint := c.baseURL + "/candidates?" + q.Encode()

	log.Printf("[BackendClient] Fetching: %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	status, body, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	var payload listResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("list candidates: %w: %s", ErrInvalidJSON, body)
	}
	if !ok(status) {
		return nil, &HTTPError{Op: "list candidates", StatusCode: status, Message: messageFrom(body)}
	}

	out := &CandidateList{Candidates: make([]CandidateSummary, 0, len(payload.Candidates))}
	for _, item := range payload.Candidates {
		out.Candidates = append(out.Candidates, CandidateSummary{
			ID:               item.ID,
			Name:             item.Name,
			Email:            item.Email,
			Company:          item.CurrCompany,
			ExtractionStatus: item.Status,
			UpdatedAt:        item.UpdatedAt,
		})
	}
	if payload.Pagination != nil {
		out.Pagination = *payload.Pagination
	}
	return out, nil
}

// GetCandidate fetches a single candidate in its raw shape.
func (c *Client) GetCandidate(ctx context.Context, id string) (*CandidateProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.candidateURL(id, ""), nil)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	req.Header.Set("Cache-Control", "no-store")

	status, body, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if !ok(status) {
		return nil, fmt.Errorf("%w (HTTP %d)", ErrFetchCandidate, status)
	}

	var profile CandidateProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("get candidate: %w: %v", ErrInvalidJSON, err)
	}
	return &profile, nil
}

// UploadResume posts the résumé and the candidate fields as multipart form data.
func (c *Client) UploadResume(ctx context.Context, file File, fields ResumeFields) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := writeFilePart(mw, "file", file); err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}
	for _, kv := range [][2]string{
		{"name", fields.Name},
		{"email", fields.Email},
		{"curr_company", fields.CurrCompany},
	} {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return nil, fmt.Errorf("upload resume: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}

	status, body, err := readBody(c.http.Post(ctx, c.baseURL+"/candidates/upload", mw.FormDataContentType(), &buf))
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}
	if !ok(status) {
		return nil, &HTTPError{Op: "upload failed", StatusCode: status, Message: string(body)}
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("upload resume: %w: %s", ErrInvalidJSON, body)
	}
	return &result, nil
}

// RequestDocuments asks the backend to send a document request to the candidate.
func (c *Client) RequestDocuments(ctx context.Context, candidateID string) (*RequestResult, error) {
	status, body, err := readBody(c.http.Post(ctx, c.candidateURL(candidateID, "/request-documents"), "", nil))
	if err != nil {
		return nil, fmt.Errorf("request documents: %w", err)
	}
	if !ok(status) {
		return nil, fmt.Errorf("%w (HTTP %d)", ErrRequestFailed, status)
	}

	var result RequestResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("request documents: %w: %s", ErrInvalidJSON, body)
	}
	return &result, nil
}

// SubmitDocuments uploads identity documents. files and types are parallel:
// types[i] names the document in files[i].
func (c *Client) SubmitDocuments(ctx context.Context, candidateID string, files []File, types []string) (*SubmitResult, error) {
	if len(files) != len(types) {
		return nil, ErrFileTypeMismatch
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		if err := writeFilePart(mw, "files", f); err != nil {
			return nil, fmt.Errorf("submit documents: %w", err)
		}
	}
	for _, t := range types {
		if err := mw.WriteField("types", t); err != nil {
			return nil, fmt.Errorf("submit documents: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("submit documents: %w", err)
	}

	status, body, err := readBody(c.http.Post(ctx, c.candidateURL(candidateID, "/submit-documents"), mw.FormDataContentType(), &buf))
	if err != nil {
		return nil, fmt.Errorf("submit documents: %w", err)
	}

	var result SubmitResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w from server: %s", ErrInvalidJSON, body)
	}
	if !ok(status) {
		return nil, &HTTPError{Op: "upload failed", StatusCode: status, Message: messageFrom(body)}
	}
	return &result, nil
}

// Health calls the backend health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	status, body, err := readBody(c.http.Get(ctx, c.baseURL+"/health"))
	if err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	if !ok(status) {
		return nil, &HTTPError{Op: "health", StatusCode: status, Message: messageFrom(body)}
	}
	var hs HealthStatus
	if err := json.Unmarshal(body, &hs); err != nil {
		return nil, fmt.Errorf("health: %w: %s", ErrInvalidJSON, body)
	}
	return &hs, nil
}

func (c *Client) candidateURL(id, suffix string) string {
	return c.baseURL + "/candidates/" + url.PathEscape(id) + suffix
}

// send performs the request and buffers the body.
func (c *Client) send(req *http.Request) (int, []byte, error) {
	return readBody(c.http.Do(req))
}

// readBody buffers a response body, passing a transport error through.
func readBody(resp *http.Response, err error) (int, []byte, error) {
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func ok(status int) bool {
	return status >= 200 && status < 300
}

// messageFrom extracts a server message from a JSON error body, falling back
// to the raw text.
func messageFrom(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}

func writeFilePart(mw *multipart.Writer, field string, f File) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(f.Name)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if f.Body == nil {
		return nil
	}
	_, err = io.Copy(part, f.Body)
	return err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
