package generation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/cmlowerence/Learn-Better/internal/domain"
)

//go:embed prompts/*.tmpl
var defaultPrompts embed.FS

// PromptBuilder renders the model prompt for a request. Rendering is
// deterministic: the same request always yields the same prompt.
type PromptBuilder struct {
	templates map[domain.OutputKind]*template.Template
}

// NewPromptBuilder loads the embedded prompt templates. When overrideDir is
// set, quiz.tmpl and flashcard.tmpl found there replace the defaults; a
// missing file keeps the default for that kind.
func NewPromptBuilder(overrideDir string) (*PromptBuilder, error) {
	kinds := []domain.OutputKind{domain.KindQuiz, domain.KindFlashcard}
	b := &PromptBuilder{templates: make(map[domain.OutputKind]*template.Template, len(kinds))}

	for _, kind := range kinds {
		name := kind.String() + ".tmpl"

		content, err := fs.ReadFile(defaultPrompts, "prompts/"+name)
		if err != nil {
			return nil, fmt.Errorf("%w: embedded prompt %s: %v", ErrInvalidConfig, name, err)
		}

		if overrideDir != "" {
			custom, err := os.ReadFile(filepath.Join(overrideDir, name))
			switch {
			case err == nil:
				content = custom
			case !errors.Is(err, fs.ErrNotExist):
				return nil, fmt.Errorf("%w: failed to read prompt template %s: %v",
					ErrInvalidConfig, name, err)
			}
		}

		tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse prompt template %s: %v",
				ErrInvalidConfig, name, err)
		}
		b.templates[kind] = tmpl
	}

	return b, nil
}

// Build renders the prompt for a normalized request.
func (b *PromptBuilder) Build(req Request) (string, error) {
	tmpl, ok := b.templates[req.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownOutputKind, req.Kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", req.Kind, err)
	}
	return buf.String(), nil
}
