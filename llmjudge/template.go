package llmjudge

import (
	"fmt"
	"os"
	"strings"

	"github.com/ehdgus4173/CheckMate/api"
)

// LoadTemplate reads the prompt template asset from path. The template must
// contain two ordered %s placeholders (requirement text, document text).
// Load once at startup and cache the result; a failure here is a fatal
// configuration error, not something to retry per request.
func LoadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", api.ErrPromptTemplate, path, err)
	}

	template := string(data)
	if strings.TrimSpace(template) == "" {
		return "", fmt.Errorf("%w: %s is empty", api.ErrPromptTemplate, path)
	}
	if strings.Count(template, "%s") != 2 {
		return "", fmt.Errorf("%w: %s must contain exactly two %%s placeholders", api.ErrPromptTemplate, path)
	}

	return template, nil
}
