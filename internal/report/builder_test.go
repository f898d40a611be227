package report

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamcore/snyk-to-html/internal/snyk"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func build(scans []snyk.ScanResult, remediation, summary bool) *ViewModel {
	return Build(scans, Options{
		Remediation: remediation,
		SummaryOnly: summary,
		Now:         func() time.Time { return fixedNow },
		ReportID:    "report-1",
	})
}

func vuln(id, severity string) snyk.Vulnerability {
	return snyk.Vulnerability{ID: id, Title: "title " + id, Severity: severity, Description: "## Overview\nabout " + id + "\n## Details\nmore"}
}

func ids(records []Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestRank(t *testing.T) {
	tests := []struct {
		severity string
		expected int
	}{
		{"critical", 3},
		{"high", 2},
		{"HIGH", 2},
		{" medium ", 1},
		{"low", 0},
		{"", RankUnknown},
		{"severe", RankUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			if got := Rank(tt.severity); got != tt.expected {
				t.Errorf("Rank(%q) = %d, want %d", tt.severity, got, tt.expected)
			}
		})
	}
}

func TestBuild_SortsBySeverityStable(t *testing.T) {
	scans := []snyk.ScanResult{
		{Vulnerabilities: []snyk.Vulnerability{
			vuln("a", "low"),
			vuln("b", "high"),
			vuln("c", "medium"),
			vuln("d", "high"),
			vuln("e", "bogus"),
		}},
		{Vulnerabilities: []snyk.Vulnerability{
			vuln("f", "critical"),
			vuln("g", "low"),
			vuln("h", "high"),
		}},
	}

	vm := build(scans, false, false)

	want := []string{"f", "b", "d", "h", "c", "a", "g", "e"}
	if diff := cmp.Diff(want, ids(vm.Vulnerabilities)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	for i := 1; i < len(vm.Vulnerabilities); i++ {
		assert.GreaterOrEqual(t, vm.Vulnerabilities[i-1].Rank, vm.Vulnerabilities[i].Rank)
	}
}

func TestBuild_AggregatesPathCount(t *testing.T) {
	scans := []snyk.ScanResult{
		{ProjectName: "one", Vulnerabilities: []snyk.Vulnerability{vuln("a", "low"), vuln("a", "low")}},
		{ProjectName: "two", Vulnerabilities: []snyk.Vulnerability{vuln("b", "high")}},
		{ProjectName: "three"},
	}

	vm := build(scans, false, false)

	assert.Equal(t, 3, vm.PathCount)
	assert.Equal(t, "3 vulnerable dependency paths", vm.Summary)
	assert.Equal(t, 2, vm.UniqueCount)
	require.Len(t, vm.Projects, 3)
	assert.Equal(t, Project{Name: "one", PathCount: 2}, vm.Projects[0])
	assert.Equal(t, "one", vm.Vulnerabilities[1].Project)
}

func TestBuild_NormalizesSeverity(t *testing.T) {
	scans := []snyk.ScanResult{{Vulnerabilities: []snyk.Vulnerability{
		vuln("a", "low"), vuln("b", " Medium "),
	}}}

	vm := build(scans, false, false)

	require.Len(t, vm.Vulnerabilities, 2)
	assert.Equal(t, "medium", vm.Vulnerabilities[0].Severity)
	assert.Equal(t, 1, vm.Vulnerabilities[0].Rank)
	assert.Contains(t, vm.SeverityCounts, SeverityCount{Severity: "medium", Count: 1})
}

func TestBuild_SeverityCounts(t *testing.T) {
	scans := []snyk.ScanResult{{Vulnerabilities: []snyk.Vulnerability{
		vuln("a", "high"), vuln("b", "HIGH"), vuln("c", "low"), vuln("d", "weird"),
	}}}

	vm := build(scans, false, false)

	want := []SeverityCount{
		{Severity: "critical", Count: 0},
		{Severity: "high", Count: 2},
		{Severity: "medium", Count: 0},
		{Severity: "low", Count: 1},
		{Severity: "weird", Count: 1},
	}
	assert.Equal(t, want, vm.SeverityCounts)
}

func TestBuild_Placeholders(t *testing.T) {
	scans := []snyk.ScanResult{{Vulnerabilities: []snyk.Vulnerability{
		{ID: "empty", Severity: "high"},
		{ID: "overview-field", Severity: "low", Overview: "short", Description: "## Details\nlong"},
		{ID: "no-overview", Severity: "low", Description: "just details"},
	}}}

	vm := build(scans, false, false)
	byID := map[string]Record{}
	for _, r := range vm.Vulnerabilities {
		byID[r.ID] = r
	}

	empty := byID["empty"]
	assert.Equal(t, NoDescription, empty.Description)
	assert.Equal(t, NoDescription, empty.Details)
	assert.True(t, empty.Overview.Empty)
	assert.Equal(t, NoDescription, empty.Overview.String())
	assert.Equal(t, "empty", empty.Title)

	field := byID["overview-field"]
	assert.Equal(t, Text{Value: "short"}, field.Overview)
	assert.Equal(t, "long", field.Details)

	noOverview := byID["no-overview"]
	assert.True(t, noOverview.Overview.Empty)
	assert.Equal(t, "just details", noOverview.Details)
}

func TestBuild_OverviewFromDescription(t *testing.T) {
	scans := []snyk.ScanResult{{Vulnerabilities: []snyk.Vulnerability{vuln("a", "high")}}}

	rec := build(scans, false, false).Vulnerabilities[0]

	assert.Equal(t, Text{Value: "about a"}, rec.Overview)
	assert.Equal(t, "more", rec.Details)
}

func TestFixedInText(t *testing.T) {
	tests := []struct {
		name     string
		fixedIn  []string
		expected string
	}{
		{"one", []string{"2.9.10"}, "Fixed in: 2.9.10"},
		{"many", []string{"2.9.10", "4.5.6"}, "Fixed in: 2.9.10, 4.5.6"},
		{"none", []string{}, "There is no remediation at the moment."},
		{"nil", nil, "There is no remediation at the moment."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixedInText(tt.fixedIn); got != tt.expected {
				t.Errorf("FixedInText(%v) = %q, want %q", tt.fixedIn, got, tt.expected)
			}
		})
	}
}

func TestBuild_CarriesFlagsAndTimestamp(t *testing.T) {
	vm := build(nil, false, true)

	assert.True(t, vm.SummaryOnly)
	assert.False(t, vm.Remediation)
	assert.Nil(t, vm.RemediationView)
	assert.Equal(t, fixedNow, vm.GeneratedAt)
	assert.Equal(t, "report-1", vm.ReportID)
	assert.Equal(t, "0 vulnerable dependency paths", vm.Summary)
}

func TestBuild_DefaultsReportID(t *testing.T) {
	vm := Build(nil, Options{})
	assert.NotEmpty(t, vm.ReportID)
	assert.False(t, vm.GeneratedAt.IsZero())
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	scans := []snyk.ScanResult{{Vulnerabilities: []snyk.Vulnerability{
		vuln("a", "low"), vuln("b", "critical"),
	}}}
	scans[0].Vulnerabilities[0].FixedIn = []string{"1.0.0"}

	vm := build(scans, true, false)
	vm.Vulnerabilities[1].FixedIn[0] = "changed"

	assert.Equal(t, "a", scans[0].Vulnerabilities[0].ID)
	assert.Equal(t, "1.0.0", scans[0].Vulnerabilities[0].FixedIn[0])
}
