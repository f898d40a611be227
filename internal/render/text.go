package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tamcore/snyk-to-html/internal/report"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")). // Red
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")). // Gray
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")) // White

	solutionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // Green

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")). // Green
			Bold(true)
)

// Text renders a terminal summary of the report
type Text struct{}

// NewText creates a terminal renderer
func NewText() *Text {
	return &Text{}
}

// Render writes the report as styled plain text
func (t *Text) Render(w io.Writer, vm *report.ViewModel) error {
	var b strings.Builder

	if len(vm.Vulnerabilities) == 0 {
		b.WriteString(successStyle.Render("✓ No vulnerabilities found."))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "%s\n", headerStyle.Render(vm.Summary))

	var counts []string
	for _, c := range vm.SeverityCounts {
		counts = append(counts, severityStyle(c.Severity).Render(fmt.Sprintf("%d %s", c.Count, c.Severity)))
	}
	fmt.Fprintf(&b, "%s\n\n", strings.Join(counts, "  "))

	for _, rec := range vm.Vulnerabilities {
		severity := rec.Severity
		if severity == "" {
			severity = "unknown"
		}
		fmt.Fprintf(&b, "%s %s\n", severityStyle(rec.Severity).Render("["+strings.ToUpper(severity)+"]"), titleStyle.Render(rec.Title))
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Module:"), moduleRef(rec))
		if len(rec.Path) > 0 {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Path:"), strings.Join(rec.Path, " > "))
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("ID:"), rec.ID)
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Remediation:"), solutionStyle.Render(rec.Remediation))
		if !vm.SummaryOnly {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Overview:"), rec.Overview.String())
		}
		b.WriteString("\n")
	}

	if vm.RemediationView != nil {
		writeRemediation(&b, vm.RemediationView)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRemediation(b *strings.Builder, view *report.RemediationView) {
	fmt.Fprintf(b, "%s\n", headerStyle.Render("Remediation"))
	if view.Unavailable() {
		fmt.Fprintf(b, "%s\n", view.Message())
		return
	}

	for _, entry := range view.Entries {
		fmt.Fprintf(b, "%s %s\n", labelStyle.Render(entry.VulnID+":"), entry.Title)
		for _, action := range entry.Actions {
			line := describeAction(action)
			if action.MajorBump {
				line += " (major version upgrade)"
			}
			fmt.Fprintf(b, "  - %s\n", solutionStyle.Render(line))
		}
	}
}

func describeAction(a report.FixAction) string {
	switch a.Kind {
	case report.FixPatch:
		return fmt.Sprintf("Patch %d vulnerable path(s)", a.Paths)
	case report.FixPin:
		return fmt.Sprintf("Pin %s to %s", a.From, a.To)
	default:
		return fmt.Sprintf("Upgrade %s to %s", a.From, a.To)
	}
}

func moduleRef(rec report.Record) string {
	if rec.Version == "" {
		return rec.PackageName
	}
	return rec.PackageName + "@" + rec.Version
}

func severityStyle(severity string) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch strings.ToLower(severity) {
	case report.SeverityCritical:
		return style.Foreground(lipgloss.Color("9")).Bold(true) // Red
	case report.SeverityHigh:
		return style.Foreground(lipgloss.Color("208")) // Orange
	case report.SeverityMedium:
		return style.Foreground(lipgloss.Color("11")) // Yellow
	case report.SeverityLow:
		return style.Foreground(lipgloss.Color("12")) // Blue
	default:
		return style.Foreground(lipgloss.Color("8")) // Gray
	}
}
