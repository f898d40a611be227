package report

import "time"

// Placeholder texts used wherever input data is missing
const (
	NoDescription     = "No description available."
	NoFixAvailable    = "There is no remediation at the moment."
	NoRemediationPath = "No remediation path available"
)

// ViewModel is the render-ready view of one or more scan results.
// It is built once per invocation and must not be modified afterwards.
type ViewModel struct {
	ReportID    string
	GeneratedAt time.Time

	// PathCount is the number of vulnerable dependency paths across all scans
	PathCount   int
	Summary     string
	UniqueCount int

	Projects        []Project
	SeverityCounts  []SeverityCount
	Vulnerabilities []Record

	SummaryOnly bool
	Remediation bool

	// RemediationView is nil unless remediation was requested
	RemediationView *RemediationView
}

// Project summarizes one input scan
type Project struct {
	Name           string
	PackageManager string
	TargetFile     string
	PathCount      int
}

// SeverityCount is the number of records of one severity
type SeverityCount struct {
	Severity string
	Count    int
}

// Text is optional display text. Empty marks text that was missing from the
// input; the renderer decides how to present it.
type Text struct {
	Value string
	Empty bool
}

func (t Text) String() string {
	if t.Empty {
		return NoDescription
	}
	return t.Value
}

// Record is the display form of one vulnerability
type Record struct {
	ID          string
	Title       string
	Severity    string
	Rank        int
	PackageName string
	Version     string
	Path        []string
	CVSSScore   float64
	CVE         []string
	CWE         []string
	Project     string

	Description string
	Overview    Text
	Details     string

	FixedIn     []string
	Remediation string
}

// RemediationView holds merged remediation advice. When Available is false
// no input scan carried remediation data at all.
type RemediationView struct {
	Available  bool
	ByVuln     map[string][]FixAction
	Entries    []RemediationEntry
	Unresolved []string
}

// Unavailable reports whether the view is the "no remediation data" marker
func (v *RemediationView) Unavailable() bool {
	return v == nil || !v.Available
}

// Message returns the user-facing text for an unavailable view
func (v *RemediationView) Message() string {
	if v.Unavailable() {
		return NoRemediationPath
	}
	return ""
}

// RemediationEntry groups the fix actions of one vulnerability for display
type RemediationEntry struct {
	VulnID   string
	Title    string
	Severity string
	Actions  []FixAction
}

// FixKind is the type of remediation action
type FixKind string

const (
	FixUpgrade FixKind = "upgrade"
	FixPin     FixKind = "pin"
	FixPatch   FixKind = "patch"
)

// FixAction is a single way of fixing a vulnerability
type FixAction struct {
	Kind      FixKind
	From      string
	To        string
	MajorBump bool
	Paths     int
}
