package backend

import (
	"bytes"
	"sort"

	"github.com/goccy/go-json"
)

// Status is the backend-assigned lifecycle stage of a candidate.
type Status string

const (
	StatusPending            Status = "pending"
	StatusProcessing         Status = "processing"
	StatusCompleted          Status = "completed"
	StatusFailed             Status = "failed"
	StatusPendingDocuments   Status = "pending_documents"
	StatusDocumentRequested  Status = "document_requested"
	StatusPartiallyCompleted Status = "partially_completed"

	// Seen on the wire while the backend works in the background.
	StatusParsingResume          Status = "parsing_resume"
	StatusDocumentRequestPending Status = "document_request_pending"
)

// Document types accepted by submit-documents.
const (
	DocumentAadhaar = "aadhaar"
	DocumentPAN     = "pan"
)

// DocumentTypes lists the identity documents in display order.
var DocumentTypes = []string{DocumentAadhaar, DocumentPAN}

// Candidate is the raw candidate shape returned by GET /candidates/{id}.
type Candidate struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            Text            `json:"phone,omitempty"`
	CurrCompany      string          `json:"curr_company"`
	Designation      Text            `json:"designation,omitempty"`
	Status           Status          `json:"status"`
	ResumeFilename   Text            `json:"resume_filename,omitempty"`
	ResumePath       string          `json:"resume_path,omitempty"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
	ParsedData       ParsedData      `json:"parsed_data"`
	Documents        Documents       `json:"documents"`
	DocumentRequests json.RawMessage `json:"document_requests,omitempty"`
	Skills           []string        `json:"skills,omitempty"`
}

// Text is a display-only scalar. Numbers and booleans are kept in their
// JSON spelling; null and other shapes become empty.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*t = ""
		return nil
	}
	switch val := v.(type) {
	case string:
		*t = Text(val)
	case float64, bool:
		*t = Text(bytes.TrimSpace(data))
	default:
		*t = ""
	}
	return nil
}

func (t Text) String() string { return string(t) }

// CandidateProfile wraps the detail response.
type CandidateProfile struct {
	Candidate Candidate `json:"candidate"`
}

// ParsedData holds extracted résumé fields and a confidence map keyed by the
// same field names.
type ParsedData struct {
	Fields     map[string]any     `json:"parsed_data"`
	Confidence map[string]float64 `json:"confidence"`
	Error      string             `json:"error,omitempty"`
}

// UnmarshalJSON accepts an object, a JSON string holding an object, or null.
// The parts are decoded independently: a malformed confidence map or a
// non-numeric score never hides the extracted fields.
func (p *ParsedData) UnmarshalJSON(data []byte) error {
	*p = ParsedData{}
	raw := data
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		raw = []byte(encoded)
	}

	var parts map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil || parts == nil {
		// Parsed data is informational; a shape we don't understand renders as empty.
		return nil
	}

	_ = json.Unmarshal(parts["parsed_data"], &p.Fields)
	_ = json.Unmarshal(parts["error"], &p.Error)

	var scores map[string]any
	if err := json.Unmarshal(parts["confidence"], &scores); err == nil {
		for key, v := range scores {
			if f, ok := v.(float64); ok {
				if p.Confidence == nil {
					p.Confidence = make(map[string]float64, len(scores))
				}
				p.Confidence[key] = f
			}
		}
	}
	return nil
}

// ConfidenceFor reports the score for exactly this key, if present.
func (p ParsedData) ConfidenceFor(key string) (float64, bool) {
	v, ok := p.Confidence[key]
	return v, ok
}

// Keys returns the parsed field names in sorted order.
func (p ParsedData) Keys() []string {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Document is one uploaded identity document.
type Document struct {
	Type       string `json:"type,omitempty"`
	Filename   string `json:"filename"`
	Path       string `json:"path"`
	UploadedAt string `json:"uploaded_at"`
}

// Documents maps a document type to its upload; a nil entry means absent.
type Documents map[string]*Document

// Uploaded reports whether a document of this type exists.
func (d Documents) Uploaded(docType string) bool {
	doc, ok := d[docType]
	return ok && doc != nil
}

// List returns the present documents sorted by type.
func (d Documents) List() []Document {
	out := make([]Document, 0, len(d))
	for t, doc := range d {
		if doc == nil {
			continue
		}
		item := *doc
		item.Type = t
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// DocumentRequest is one entry of the outbound document request log.
type DocumentRequest struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Status    string `json:"status"`
}

// Pagination is the server-computed page envelope.
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// CandidateSummary is a list row with the backend field names mapped.
type CandidateSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Company          string `json:"company"`
	ExtractionStatus Status `json:"extractionStatus"`
	UpdatedAt        string `json:"updatedAt"`
}

// CandidateList is the normalized result of ListCandidates.
type CandidateList struct {
	Candidates []CandidateSummary `json:"candidates"`
	Pagination Pagination         `json:"pagination"`
}

// listItem is the wire shape of a list row.
type listItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CurrCompany string `json:"curr_company"`
	Status      Status `json:"status"`
	UpdatedAt   string `json:"updated_at"`
}

type listResponse struct {
	Candidates []listItem  `json:"candidates"`
	Pagination *Pagination `json:"pagination"`
}

// ResumeFields are the form values sent with a résumé upload.
type ResumeFields struct {
	Name        string
	Email       string
	CurrCompany string
}

// UploadResult is the decoded upload response.
type UploadResult struct {
	Message     string `json:"message"`
	CandidateID string `json:"candidate_id"`
	Status      Status `json:"status"`
}

// RequestResult is the decoded request-documents response.
type RequestResult struct {
	Message     string `json:"message,omitempty"`
	CandidateID string `json:"candidate_id,omitempty"`
	Status      Status `json:"status"`
}

// UploadedDocument is one entry of SubmitResult.Uploaded.
type UploadedDocument struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
}

// SubmitResult is the decoded submit-documents response.
type SubmitResult struct {
	Message  string             `json:"message"`
	Uploaded []UploadedDocument `json:"uploaded"`
	Status   Status             `json:"status"`
}

// HealthStatus is the backend /health payload.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}
