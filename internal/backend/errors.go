package backend

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidJSON marks a response body that could not be decoded.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrFetchCandidate is the generic failure of GetCandidate.
	ErrFetchCandidate = errors.New("failed to fetch candidate")
	// ErrRequestFailed is the generic failure of RequestDocuments.
	ErrRequestFailed = errors.New("request failed")
	// ErrFileTypeMismatch is returned before any I/O when files and types differ in length.
	ErrFileTypeMismatch = errors.New("files and types count mismatch")
)

// HTTPError is a non-2xx response. Message is taken from the JSON body when
// it carries one, otherwise it is the raw body text.
type HTTPError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsCanceled reports whether err stems from the caller abandoning the
// request. Cancellation is not a failure and must not be shown to the user.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
