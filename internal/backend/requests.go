package backend

import (
	"log"
	"path"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// ParseDocumentRequests normalizes the document request log. The backend has
// stored it as a real array, as a JSON string holding an array and as a
// doubly encoded string; null, "null" and "" also occur. Anything that does
// not decode to an array yields an empty slice.
func ParseDocumentRequests(raw json.RawMessage) []DocumentRequest {
	data := []byte(strings.TrimSpace(string(raw)))
	// one unwrap per string layer; the backend has been seen nesting twice
	for depth := 0; depth < 3; depth++ {
		if len(data) == 0 || string(data) == "null" {
			return []DocumentRequest{}
		}
		if data[0] != '"' {
			break
		}
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			log.Printf("[DocumentRequests] undecodable string layer: %v", err)
			return []DocumentRequest{}
		}
		data = []byte(strings.TrimSpace(inner))
	}

	if len(data) == 0 || data[0] != '[' {
		return []DocumentRequest{}
	}
	var out []DocumentRequest
	if err := json.Unmarshal(data, &out); err != nil {
		log.Printf("[DocumentRequests] undecodable log: %v", err)
		return []DocumentRequest{}
	}
	if out == nil {
		out = []DocumentRequest{}
	}
	return out
}

// NewestFirst returns a reversed copy of the stored (oldest-first) log.
func NewestFirst(reqs []DocumentRequest) []DocumentRequest {
	out := make([]DocumentRequest, len(reqs))
	for i, r := range reqs {
		out[len(reqs)-1-i] = r
	}
	return out
}

var uploadsPrefix = regexp.MustCompile(`^.*uploads[\\/]`)

// PublicDocumentURL maps a stored server path onto the static uploads route:
// everything up to and including the "uploads" segment is dropped and
// backslashes become forward slashes.
func PublicDocumentURL(baseURL, storedPath string) string {
	rel := uploadsPrefix.ReplaceAllString(storedPath, "")
	rel = strings.ReplaceAll(rel, `\`, "/")
	rel = strings.TrimLeft(path.Clean("/"+rel), "/")
	return strings.TrimRight(baseURL, "/") + "/uploads/" + rel
}
