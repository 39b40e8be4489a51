package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/coursehub/ai-service/types"
	"github.com/ledongthuc/pdf"
)

// PDFService downloads PDF files and extracts their text.
type PDFService struct {
	client *http.Client
}

func NewPDFService(fetchTimeout time.Duration) *PDFService {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &PDFService{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch downloads the file at url. Timeouts and non-2xx statuses are
// transient failures; the caller decides whether to retry via redelivery.
func (s *PDFService) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: downloading %s: %v", types.ErrTransient, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: downloading %s: status %s", types.ErrTransient, url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of %s: %v", types.ErrTransient, url, err)
	}
	return data, nil
}

// ExtractText parses a PDF byte stream page by page. Pages that fail to parse
// are skipped; an empty result means the document has no usable text.
func (s *PDFService) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing PDF: %w", err)
	}

	var sb strings.Builder
	totalPages := reader.NumPage()
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", pageNum, err)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return cleanText(sb.String()), nil
}

func cleanText(text string) string {
	replacements := []struct {
		old string
		new string
	}{
		{"\x00", ""},     // null characters from broken encoders
		{"\ufffd", ""},   // unicode replacement character
		{"\x1b", ""},     // stray escape sequences
		{"\r", ""},
		{"\f", "\n"},
		{"  ", " "},
	}
	cleaned := text
	for _, r := range replacements {
		cleaned = strings.ReplaceAll(cleaned, r.old, r.new)
	}
	return strings.TrimSpace(cleaned)
}
