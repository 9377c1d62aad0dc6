package textsource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedType indicates the upload is not a supported document
// kind. Surfaced to the caller as a client-input failure.
var ErrUnsupportedType = errors.New("unsupported document type")

// ErrUnreadable indicates the payload could not be decoded as text.
var ErrUnreadable = errors.New("document is unreadable")

var textExtensions = map[string]bool{
	".txt": true,
	".eml": true,
	".md":  true,
}

// Extractor yields plain text from uploaded correspondence. Only
// plain-text kinds are decoded here; binary formats are rejected, not
// parsed.
type Extractor struct{}

func New() Extractor { return Extractor{} }

// ExtractText decodes the upload as UTF-8 text. The document kind is
// judged by content type first, filename extension second.
func (Extractor) ExtractText(filename, contentType string, data []byte) (string, error) {
	if !isTextKind(filename, contentType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, describeKind(filename, contentType))
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrUnreadable)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8 text", ErrUnreadable)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%w: no extractable text", ErrUnreadable)
	}
	return text, nil
}

func isTextKind(filename, contentType string) bool {
	mime := contentType
	if idx := strings.IndexByte(mime, ';'); idx != -1 {
		mime = mime[:idx]
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	if mime == "text/plain" || mime == "message/rfc822" || mime == "text/markdown" {
		return true
	}
	if mime == "" || mime == "application/octet-stream" {
		return textExtensions[strings.ToLower(filepath.Ext(filename))]
	}
	return false
}

func describeKind(filename, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	return "unknown"
}
