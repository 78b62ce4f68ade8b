package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSizeFirst(t *testing.T) {
	t.Parallel()

	over := int64(5*1024*1024 + 1)
	err := Validate("resume.pdf", "application/pdf", over, 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooLarge))
	assert.Equal(t, "File exceeds 5 MB limit", Message(err))

	// size is checked before type
	err = Validate("virus.exe", "application/x-msdownload", over, 5)
	assert.ErrorIs(t, err, ErrTooLarge)

	assert.NoError(t, Validate("resume.pdf", "application/pdf", 5*1024*1024, 5))
}

func TestValidateTypeOrSemantics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mimeType string
		ok       bool
	}{
		{"resume.pdf", "application/pdf", true},
		{"resume.PDF", "", true},
		{"resume.docx", "application/octet-stream", true},
		{"scan", "image/jpeg", true},
		{"scan.bin", "image/png", true},
		{"cv.doc", "application/msword; charset=binary", true},
		{"photo.JPEG", "", true},
		{"notes.txt", "text/plain", false},
		{"archive.zip", "", false},
		{"image.gif", "image/gif", false},
	}
	for _, tc := range tests {
		err := Validate(tc.name, tc.mimeType, 100, 5)
		if tc.ok {
			assert.NoError(t, err, tc.name)
		} else {
			assert.ErrorIs(t, err, ErrInvalidType, tc.name)
			assert.Equal(t, "Invalid file type. Allowed: PDF, DOC, DOCX, PNG, JPG, JPEG.", Message(err))
		}
	}
}

func TestValidateDefaultLimit(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, Validate("a.pdf", "", 6*1024*1024, 0), ErrTooLarge)
}

func fileHeader(t *testing.T, name, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestAcceptHeaderFillsMIMEFromExtension(t *testing.T) {
	t.Parallel()

	fh := fileHeader(t, "resume.docx", "application/octet-stream", []byte("PK"))
	f, err := AcceptHeader(fh, 5)
	require.NoError(t, err)
	assert.Equal(t, "resume.docx", f.Name)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", f.ContentType)
	assert.EqualValues(t, 2, f.Size)

	bf, closer, err := f.Backend()
	require.NoError(t, err)
	defer closer.Close()
	data, err := io.ReadAll(bf.Body)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data))
}

func TestAcceptHeaderKeepsReportedMIME(t *testing.T) {
	t.Parallel()

	fh := fileHeader(t, "scan.png", "image/png", []byte("png"))
	f, err := AcceptHeader(fh, 5)
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.ContentType)
}

func TestAcceptHeaderRejects(t *testing.T) {
	t.Parallel()

	_, err := AcceptHeader(nil, 5)
	assert.ErrorIs(t, err, ErrNoFile)

	fh := fileHeader(t, "notes.txt", "text/plain", []byte("hello"))
	_, err = AcceptHeader(fh, 5)
	assert.ErrorIs(t, err, ErrInvalidType)

	big := fileHeader(t, "big.pdf", "application/pdf", bytes.Repeat([]byte("x"), 1024*1024+1))
	_, err = AcceptHeader(big, 1)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, "File exceeds 1 MB limit", Message(err))
}

func TestArea(t *testing.T) {
	t.Parallel()

	a := NewArea("file", 0)
	assert.Equal(t, DefaultMaxSizeMB, a.MaxSizeMB)
	assert.False(t, a.Disabled)
	assert.Contains(t, a.Accept, ".docx")
	assert.Contains(t, a.Accept, "image/jpeg")

	failed := a.WithError(Validate("x.gif", "image/gif", 1, 5))
	assert.NotEmpty(t, failed.Error)
	assert.False(t, failed.Disabled)
	assert.Empty(t, a.Error, "receiver area must be untouched")

	assert.True(t, a.Inert().Disabled)
}
