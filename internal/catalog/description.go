package catalog

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// DescriptionRenderer turns markdown product descriptions into sanitised HTML.
type DescriptionRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewDescriptionRenderer builds a renderer using the UGC sanitisation policy.
func NewDescriptionRenderer() *DescriptionRenderer {
	return &DescriptionRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts a single markdown description.
func (r *DescriptionRenderer) Render(src string) (template.HTML, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render description: %w", err)
	}
	// Sanitised output is safe to embed verbatim.
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// Apply fills DescriptionHTML for every product in place.
func (r *DescriptionRenderer) Apply(products []Product) error {
	for i := range products {
		out, err := r.Render(products[i].Description)
		if err != nil {
			return fmt.Errorf("product %q: %w", products[i].ID, err)
		}
		products[i].DescriptionHTML = out
	}
	return nil
}
