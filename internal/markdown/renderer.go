package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts post markdown to display HTML. Raw HTML in the source is
// escaped (WithUnsafe is not set), so hand-edited post files cannot inject
// markup.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer with hard line breaks, matching how the posts read
// in the admin preview.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
			),
		),
	}
}

// Render converts markdown to HTML.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
