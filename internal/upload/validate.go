package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"code.sajari.com/docconv"

	"hirebuddy-console/internal/backend"
)

// DefaultMaxSizeMB is the size limit used when none is configured.
const DefaultMaxSizeMB = 5

var (
	ErrTooLarge    = errors.New("file too large")
	ErrInvalidType = errors.New("invalid file type")
	ErrNoFile      = errors.New("no file selected")
)

var allowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/png",
	"image/jpeg",
}

var allowedExtensions = []string{".pdf", ".doc", ".docx", ".png", ".jpg", ".jpeg"}

// Accept is the value for the file input's accept attribute.
var Accept = strings.Join(append(slices.Clone(allowedExtensions), allowedTypes...), ",")

// ValidationError carries the message shown under the upload area.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks size first, then type. A file passes the type check when
// either its MIME type or its extension is allowed, since browsers report an
// empty or wrong MIME type for some extensions.
func Validate(name, mimeType string, size int64, maxSizeMB int) error {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	maxBytes := int64(maxSizeMB) * 1024 * 1024
	if size > maxBytes {
		return &ValidationError{Err: ErrTooLarge, Message: fmt.Sprintf("File exceeds %d MB limit", maxSizeMB)}
	}

	if !allowedMIME(mimeType) && !allowedExtension(name) {
		return &ValidationError{Err: ErrInvalidType, Message: "Invalid file type. Allowed: PDF, DOC, DOCX, PNG, JPG, JPEG."}
	}
	return nil
}

func allowedMIME(mimeType string) bool {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return false
	}
	return slices.Contains(allowedTypes, mt)
}

func allowedExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// File is a validated upload. It is handed to the caller once and not kept.
type File struct {
	Name        string
	ContentType string
	Size        int64
	header      *multipart.FileHeader
}

// Open opens the underlying multipart content.
func (f *File) Open() (multipart.File, error) {
	return f.header.Open()
}

// Backend converts the file into the API client's upload shape. The caller
// closes the returned closer once the upload finished.
func (f *File) Backend() (backend.File, io.Closer, error) {
	rc, err := f.Open()
	if err != nil {
		return backend.File{}, nil, fmt.Errorf("open upload: %w", err)
	}
	return backend.File{Name: f.Name, ContentType: f.ContentType, Body: rc}, rc, nil
}

// AcceptHeader validates a posted file. A missing or generic MIME type is
// filled in from the extension before the file is forwarded.
func AcceptHeader(fh *multipart.FileHeader, maxSizeMB int) (*File, error) {
	if fh == nil || fh.Filename == "" {
		return nil, &ValidationError{Err: ErrNoFile, Message: "Please select a file to upload."}
	}

	name := filepath.Base(fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	if err := Validate(name, contentType, fh.Size, maxSizeMB); err != nil {
		return nil, err
	}

	if mt, _, err := mime.ParseMediaType(contentType); err != nil || mt == "application/octet-stream" {
		contentType = docconv.MimeTypeByExtension(name)
	}

	return &File{
		Name:        name,
		ContentType: contentType,
		Size:        fh.Size,
		header:      fh,
	}, nil
}

// Message returns the user-facing text for a validation failure.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return "Invalid file."
}
