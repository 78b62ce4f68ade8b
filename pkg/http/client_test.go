package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSetsRequestID(t *testing.T) {
	t.Parallel()

	ids := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get(RequestIDHeader)
		assert.Equal(t, "hirebuddy-console/1.0", r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	c := NewClient(0)
	for i := 0; i < 2; i++ {
		resp, err := c.Get(context.Background(), srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}

	seen := []string{<-ids, <-ids}
	for _, id := range seen {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, seen[0], seen[1])
}

func TestClientKeepsCallerRequestID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get(RequestIDHeader))
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
	}))
	defer srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL, strings.NewReader("hi"))
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "req-42")
	req.Header.Set("Content-Type", "text/plain")

	resp, err := NewClient(0).Do(req)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestClientPostCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(0).Post(ctx, srv.URL, "application/json", strings.NewReader("{}"))
	assert.ErrorIs(t, err, context.Canceled)
}
