// Package resume extracts plain text from uploaded PDF resumes.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// uploads larger than this are rejected before parsing
const MaxFileSize = 5 * 1024 * 1024

var (
	ErrTooLarge = errors.New("Resume file size exceeds allowed size (5MB).") //nolint:staticcheck // user-facing message
	ErrNoText   = errors.New("no readable text found in resume")
)

// reads the whole upload and returns its plain text
func ExtractText(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}

	if len(data) > MaxFileSize {
		return "", ErrTooLarge
	}

	return ExtractBytes(data)
}

// the pdf package panics on some malformed documents
func ExtractBytes(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse resume: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse resume: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract resume text: %w", err)
	}

	var buf strings.Builder
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to extract resume text: %w", err)
	}

	text = strings.TrimSpace(buf.String())
	if text == "" {
		return "", ErrNoText
	}

	return text, nil
}
