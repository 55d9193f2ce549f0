package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Configured once; a goldmark.Markdown is safe for concurrent Convert
// calls. GFM is on because the reports use pipe tables.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM)) //nolint:gochecknoglobals // immutable renderer

// RenderHTML converts a markdown report into an HTML fragment.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.String(), nil
}
