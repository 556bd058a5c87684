package validation

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/ehdgus4173/CheckMate/api"
)

const (
	// MaxFileSize is the upload size ceiling.
	MaxFileSize = 10 * 1024 * 1024
	// MinTextLength is the minimum extracted text length worth analyzing.
	MinTextLength = 20
)

var allowedExtensions = []string{".pdf", ".docx", ".txt"}

// ValidateFile checks an uploaded file before any bytes are read: it must be
// present, non-empty, within the size ceiling and of an accepted document
// type. Violations are reported as ErrInvalidInput so the service boundary
// can map them to a client error.
func ValidateFile(file *multipart.FileHeader) error {
	if file == nil || file.Size == 0 {
		return fmt.Errorf("%w: uploaded file is empty", api.ErrInvalidInput)
	}

	if strings.TrimSpace(file.Filename) == "" {
		return fmt.Errorf("%w: uploaded file has no name", api.ErrInvalidInput)
	}

	if file.Size > MaxFileSize {
		return fmt.Errorf("%w: file exceeds the 10MB limit", api.ErrInvalidInput)
	}

	lower := strings.ToLower(file.Filename)
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported file type (pdf/docx/txt)", api.ErrInvalidInput)
}

// ValidateText checks extracted text before it reaches the engine.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: extracted text is empty", api.ErrInvalidInput)
	}
	if len([]rune(text)) < MinTextLength {
		return fmt.Errorf("%w: text is too short to analyze", api.ErrInvalidInput)
	}
	return nil
}
