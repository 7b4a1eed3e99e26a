// Package prompt merges the proofreading template with the text to check.
package prompt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gaurav-prasanna/proofpipe/core"
)

const (
	// Placeholder marks where the text goes inside a template.
	Placeholder = "{{TEXT}}"
	// Marker separates the instructions from the text to check.
	Marker = "===TEXT TO CHECK===\n"
)

// Compose merges template and text. The first Placeholder is replaced by
// Marker+text; without a placeholder, "\n"+Marker+text is appended.
func Compose(template, text string) string {
	if strings.Contains(template, Placeholder) {
		return strings.Replace(template, Placeholder, Marker+text, 1)
	}
	return template + "\n" + Marker + text
}

// Payload returns the text after the first Marker in a composed prompt.
func Payload(composed string) string {
	_, after, found := strings.Cut(composed, Marker)
	if !found {
		return composed
	}
	return after
}

// FileTemplate reads the template from disk on every Load so edits apply
// without a restart.
type FileTemplate struct {
	Path string
}

// Load implements core.TemplateSource.
func (t FileTemplate) Load() (string, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s not found", core.ErrTemplateMissing, t.Path)
		}
		return "", fmt.Errorf("%w: %w", core.ErrTemplateMissing, err)
	}
	return string(data), nil
}

// StaticTemplate is a fixed in-memory template.
type StaticTemplate string

// Load implements core.TemplateSource.
func (t StaticTemplate) Load() (string, error) {
	return string(t), nil
}
