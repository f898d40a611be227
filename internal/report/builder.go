package report

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tamcore/snyk-to-html/internal/markdown"
	"github.com/tamcore/snyk-to-html/internal/snyk"
)

// Options controls which views Build assembles
type Options struct {
	// Remediation requests the remediation view
	Remediation bool
	// SummaryOnly is carried to the renderer, which omits long-form sections
	SummaryOnly bool
	// Now defaults to time.Now
	Now func() time.Time
	// ReportID defaults to a random UUID
	ReportID string
}

// Build normalizes one or more scan results into a single view model.
// Inputs are not modified.
func Build(scans []snyk.ScanResult, opts Options) *ViewModel {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	id := opts.ReportID
	if id == "" {
		id = uuid.NewString()
	}

	vm := &ViewModel{
		ReportID:    id,
		GeneratedAt: now(),
		SummaryOnly: opts.SummaryOnly,
		Remediation: opts.Remediation,
	}

	var all []snyk.Vulnerability
	for _, scan := range scans {
		vm.PathCount += scan.PathCount()
		vm.Projects = append(vm.Projects, Project{
			Name:           scan.ProjectName,
			PackageManager: scan.PackageManager,
			TargetFile:     scan.DisplayTargetFile,
			PathCount:      scan.PathCount(),
		})

		for _, vuln := range scan.Vulnerabilities {
			all = append(all, vuln)
			vm.Vulnerabilities = append(vm.Vulnerabilities, newRecord(vuln, scan.ProjectName))
		}
	}

	vm.Summary = fmt.Sprintf("%d vulnerable dependency paths", vm.PathCount)
	vm.UniqueCount = len(snyk.UniqueIDs(all))
	vm.SeverityCounts = severityCounts(all)

	slices.SortStableFunc(vm.Vulnerabilities, func(a, b Record) int {
		return cmp.Compare(b.Rank, a.Rank)
	})

	if opts.Remediation {
		vm.RemediationView = buildRemediation(scans, vm.Vulnerabilities)
	}

	return vm
}

func newRecord(vuln snyk.Vulnerability, project string) Record {
	rec := Record{
		ID:          vuln.ID,
		Title:       vuln.Title,
		Severity:    strings.ToLower(strings.TrimSpace(vuln.Severity)),
		Rank:        Rank(vuln.Severity),
		PackageName: vuln.Package(),
		Version:     vuln.Version,
		Path:        slices.Clone(vuln.From),
		CVSSScore:   vuln.CVSSScore,
		CVE:         slices.Clone(vuln.Identifiers.CVE),
		CWE:         slices.Clone(vuln.Identifiers.CWE),
		Project:     project,
		FixedIn:     slices.Clone(vuln.FixedIn),
		Remediation: FixedInText(vuln.FixedIn),
	}
	if rec.Title == "" {
		rec.Title = vuln.ID
	}

	description := strings.TrimSpace(vuln.Description)
	if description == "" {
		rec.Description = NoDescription
		rec.Details = NoDescription
	} else {
		rec.Description = description
	}

	section, rest := markdown.SplitSection(description, "Overview")
	if rec.Details == "" {
		rec.Details = markdown.StripHeading(rest, "Details")
		if rec.Details == "" {
			rec.Details = NoDescription
		}
	}

	overview := strings.TrimSpace(vuln.Overview)
	if overview == "" {
		overview = section
	}
	rec.Overview = Text{Value: overview, Empty: overview == ""}

	return rec
}

// FixedInText formats the versions that fix a vulnerability
func FixedInText(fixedIn []string) string {
	if len(fixedIn) == 0 {
		return NoFixAvailable
	}
	return "Fixed in: " + strings.Join(fixedIn, ", ")
}

func severityCounts(vulns []snyk.Vulnerability) []SeverityCount {
	counts := snyk.SeverityCounts(vulns)

	result := make([]SeverityCount, 0, len(counts))
	for _, severity := range Severities {
		result = append(result, SeverityCount{Severity: severity, Count: counts[severity]})
		delete(counts, severity)
	}

	var unknown []string
	for severity := range counts {
		unknown = append(unknown, severity)
	}
	sort.Strings(unknown)
	for _, severity := range unknown {
		result = append(result, SeverityCount{Severity: severity, Count: counts[severity]})
	}

	return result
}
