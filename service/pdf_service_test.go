package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub/ai-service/types"
)

func TestPDFServiceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake content"))
	}))
	defer server.Close()

	svc := NewPDFService(5 * time.Second)
	data, err := svc.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake content"), data)
}

func TestPDFServiceFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewPDFService(5 * time.Second)
	_, err := svc.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrTransient)
}

func TestPDFServiceFetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewPDFService(time.Second)
	_, err := svc.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrTransient)
}

func TestPDFServiceExtractTextGarbage(t *testing.T) {
	svc := NewPDFService(time.Second)
	_, err := svc.ExtractText([]byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "hello world", cleanText("hello\x00 �world\r"))
	assert.Equal(t, "page one\npage two", cleanText("page one\fpage two"))
	assert.Equal(t, "spaced out", cleanText("spaced  out"))
	assert.Equal(t, "trimmed", cleanText("  trimmed \n"))
}
