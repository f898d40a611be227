package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tamcore/snyk-to-html/internal/markdown"
	"github.com/tamcore/snyk-to-html/internal/report"
)

// Built-in template sets
const (
	TemplateTestReport        = "test-report"
	TemplateRemediationReport = "remediation-report"
)

//go:embed templates
var templateFS embed.FS

// Partials maps a partial file name to its template source. Each source
// defines one or more named templates with {{ define }}.
type Partials map[string]string

// DefaultPartials returns the partials shipped with the built-in template sets
func DefaultPartials() (Partials, error) {
	entries, err := templateFS.ReadDir("templates/partials")
	if err != nil {
		return nil, err
	}

	partials := make(Partials, len(entries))
	for _, entry := range entries {
		src, err := templateFS.ReadFile("templates/partials/" + entry.Name())
		if err != nil {
			return nil, err
		}
		partials[entry.Name()] = string(src)
	}
	return partials, nil
}

// HTML renders a view model through an html/template set
type HTML struct {
	tmpl *template.Template
}

// NewHTML parses the selected template set together with its partials
func NewHTML(opts Options) (*HTML, error) {
	partials := opts.Partials
	if partials == nil {
		var err error
		if partials, err = DefaultPartials(); err != nil {
			return nil, fmt.Errorf("failed to load partials: %w", err)
		}
	}

	name, src, err := templateSource(opts)
	if err != nil {
		return nil, err
	}

	tmpl := template.New(name).Funcs(funcMap())

	// Parse partials in a stable order so redefinitions behave predictably
	names := make([]string, 0, len(partials))
	for n := range partials {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if _, err := tmpl.New(n).Parse(partials[n]); err != nil {
			return nil, fmt.Errorf("failed to parse partial %q: %w", n, err)
		}
	}

	if _, err := tmpl.Parse(src); err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
	}

	return &HTML{tmpl: tmpl}, nil
}

// Render executes the template set against the view model
func (h *HTML) Render(w io.Writer, vm *report.ViewModel) error {
	if err := h.tmpl.Execute(w, vm); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	return nil
}

func templateSource(opts Options) (name, src string, err error) {
	selector := opts.Template
	if selector == "" {
		selector = TemplateTestReport
		if opts.Remediation {
			selector = TemplateRemediationReport
		}
	}

	switch selector {
	case TemplateTestReport, TemplateRemediationReport:
		b, err := templateFS.ReadFile("templates/" + selector + ".html.tmpl")
		if err != nil {
			return "", "", err
		}
		return selector, string(b), nil
	}

	b, err := os.ReadFile(selector)
	if err != nil {
		return "", "", fmt.Errorf("failed to read template: %w", err)
	}
	return filepath.Base(selector), string(b), nil
}

type cardData struct {
	report.Record
	SummaryOnly bool
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"markdown": func(src string) (template.HTML, error) {
			html, err := markdown.ToHTML(src)
			// goldmark omits raw HTML from the source, so the output is safe to embed
			return template.HTML(html), err
		},
		"placeholder": func(t report.Text) string {
			return t.String()
		},
		"severityClass": func(severity string) string {
			if report.Rank(severity) == report.RankUnknown {
				return "severity--unknown"
			}
			return "severity--" + strings.ToLower(severity)
		},
		"card": func(vm *report.ViewModel, rec report.Record) cardData {
			return cardData{Record: rec, SummaryOnly: vm.SummaryOnly}
		},
		"timestamp": func(t time.Time) string {
			return t.Format("January 2 2006, 3:04:05 pm (UTC-07:00)")
		},
		"upper": strings.ToUpper,
		"join":  strings.Join,
	}
}
