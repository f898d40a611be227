// Package render turns a report view model into its final textual form.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tamcore/snyk-to-html/internal/report"
)

// Output formats
const (
	FormatHTML      = "html"
	FormatText      = "text"
	FormatCycloneDX = "cyclonedx"
)

// Renderer writes a view model in one output format
type Renderer interface {
	Render(w io.Writer, vm *report.ViewModel) error
}

// Options configures a renderer
type Options struct {
	// Template selects the HTML template set: TemplateTestReport,
	// TemplateRemediationReport, or a path to a custom template file.
	// Empty selects by Remediation.
	Template string
	// Remediation is used to pick the default template set
	Remediation bool
	// Partials are registered with the template set before it is parsed.
	// Nil uses DefaultPartials.
	Partials Partials
}

// New creates a renderer for the given format
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case "", FormatHTML:
		return NewHTML(opts)
	case FormatText:
		return NewText(), nil
	case FormatCycloneDX:
		return NewCycloneDX(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderString renders the view model into a string
func RenderString(r Renderer, vm *report.ViewModel) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, vm); err != nil {
		return "", err
	}
	return buf.String(), nil
}
