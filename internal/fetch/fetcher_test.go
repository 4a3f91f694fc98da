package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fretcode-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "C", r.URL.Query().Get("ch"))
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>ok</body></html>`)
	}))
	defer ts.Close()

	f := NewHTTPFetcher(5*time.Second, "fretcode-test", 1<<20)
	body, err := f.Fetch(context.Background(), ts.URL+"/index.php?ch=C&get=Get")
	require.NoError(t, err)
	assert.Equal(t, `<html><body>ok</body></html>`, string(body))
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f := NewHTTPFetcher(5*time.Second, "", 1<<20)
	_, err := f.Fetch(context.Background(), ts.URL)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr), "expected StatusError, got %v", err)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestHTTPFetcher_RejectsOversizedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("a", 100))
	}))
	defer ts.Close()

	f := NewHTTPFetcher(5*time.Second, "", 10)
	body, err := f.Fetch(context.Background(), ts.URL)
	require.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Nil(t, body)
	assert.Contains(t, err.Error(), "exceeds 10 bytes")
}

func TestHTTPFetcher_BodyAtLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("a", 10))
	}))
	defer ts.Close()

	f := NewHTTPFetcher(5*time.Second, "", 10)
	body, err := f.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Len(t, body, 10)
}

func TestHTTPFetcher_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "late")
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewHTTPFetcher(5*time.Second, "", 1<<20)
	_, err := f.Fetch(ctx, ts.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
