// Package notes imports study notes from text and PDF files.
package notes

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnsupported is returned for content that is neither PDF nor UTF-8 text.
	ErrUnsupported = errors.New("unsupported notes format")

	// ErrEmpty is returned when no text could be extracted.
	ErrEmpty = errors.New("no text found in notes")

	// ErrTooLarge is returned when the input exceeds the read limit.
	ErrTooLarge = errors.New("notes file too large")
)

// DefaultLimit caps how much is read from a single source.
const DefaultLimit = 10 << 20

var pdfMagic = []byte("%PDF-")

// LoadFile reads notes from path.
func LoadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open notes: %w", err)
	}
	defer f.Close()

	return Read(f, filepath.Base(path), DefaultLimit)
}

// Read extracts notes from r. PDFs are recognized by extension or by
// their header; anything else must be UTF-8 text. limit <= 0 means
// DefaultLimit.
func Read(r io.Reader, filename string, limit int64) (string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}
	if int64(len(data)) > limit {
		return "", ErrTooLarge
	}

	var text string
	if strings.EqualFold(filepath.Ext(filename), ".pdf") || bytes.HasPrefix(data, pdfMagic) {
		text, err = extractPDF(data)
		if err != nil {
			return "", err
		}
	} else {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s is not UTF-8 text", ErrUnsupported, filename)
		}
		text = string(data)
	}

	text = normalize(text)
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	var b strings.Builder
	for n := 1; n <= r.NumPage(); n++ {
		page := r.Page(n)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}
