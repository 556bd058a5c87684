package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ehdgus4173/CheckMate/api"
)

// Extractor converts an uploaded document into plain UTF-8 text. The
// evaluation engine is agnostic to the source format and only ever sees the
// extracted string.
type Extractor interface {
	Extract(r io.Reader) (string, error)
}

// Registry resolves an Extractor by file extension.
type Registry struct {
	byExtension map[string]Extractor
}

// NewRegistry returns a registry with the plain-text extractor registered.
// PDF and DOCX extraction are deployment concerns; register additional
// extractors before serving if those formats must be supported.
func NewRegistry() *Registry {
	return &Registry{
		byExtension: map[string]Extractor{
			".txt": PlainText{},
		},
	}
}

// Register adds or replaces the extractor for ext (including the dot).
func (r *Registry) Register(ext string, e Extractor) {
	r.byExtension[strings.ToLower(ext)] = e
}

// Extract picks the extractor for the file's extension and runs it.
func (r *Registry) Extract(filename string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	e, ok := r.byExtension[ext]
	if !ok {
		return "", fmt.Errorf("%w: no text extractor for %q files", api.ErrInvalidInput, ext)
	}
	return e.Extract(src)
}

// PlainText reads the document as-is.
type PlainText struct{}

func (PlainText) Extract(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(data), nil
}
