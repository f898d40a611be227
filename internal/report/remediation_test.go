package report

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamcore/snyk-to-html/internal/snyk"
)

func TestBuild_RemediationUnavailable(t *testing.T) {
	scans := []snyk.ScanResult{
		{Vulnerabilities: []snyk.Vulnerability{vuln("a", "high")}},
		{Vulnerabilities: []snyk.Vulnerability{vuln("b", "low")}},
	}

	vm := build(scans, true, false)

	require.NotNil(t, vm.RemediationView)
	assert.True(t, vm.RemediationView.Unavailable())
	assert.Equal(t, "No remediation path available", vm.RemediationView.Message())
	assert.Nil(t, vm.RemediationView.ByVuln)
	assert.Nil(t, vm.RemediationView.Entries)
}

func TestBuild_RemediationNotRequested(t *testing.T) {
	scans := []snyk.ScanResult{{
		Vulnerabilities: []snyk.Vulnerability{vuln("a", "high")},
		Remediation:     &snyk.Remediation{},
	}}

	vm := build(scans, false, false)

	assert.Nil(t, vm.RemediationView)
}

func TestBuild_RemediationEmptyButPresent(t *testing.T) {
	scans := []snyk.ScanResult{{Remediation: &snyk.Remediation{}}}

	vm := build(scans, true, false)

	require.NotNil(t, vm.RemediationView)
	assert.False(t, vm.RemediationView.Unavailable())
	assert.Empty(t, vm.RemediationView.Entries)
	assert.Empty(t, vm.RemediationView.Message())
}

func TestBuild_RemediationActions(t *testing.T) {
	scans := []snyk.ScanResult{{
		Vulnerabilities: []snyk.Vulnerability{vuln("low-1", "low"), vuln("crit-1", "critical")},
		Remediation: &snyk.Remediation{
			Upgrade: map[string]snyk.UpgradeAdvice{
				"lodash@4.17.4": {UpgradeTo: "lodash@4.17.11", Vulns: []string{"crit-1", "low-1"}},
				"ms@0.7.0":      {UpgradeTo: "ms@2.0.0", Vulns: []string{"low-1"}},
			},
			Pin: map[string]snyk.PinAdvice{
				"qs@1.0.0": {UpgradeTo: "qs@1.0.5", Vulns: []string{"crit-1"}, IsTransitive: true},
			},
			Patch: map[string]snyk.PatchAdvice{
				"orphan": {Paths: []jsoniter.RawMessage{jsoniter.RawMessage(`{}`), jsoniter.RawMessage(`{}`)}},
			},
			Unresolved: []snyk.Vulnerability{vuln("x", "low"), vuln("x", "low")},
		},
	}}

	view := build(scans, true, false).RemediationView

	require.NotNil(t, view)
	require.True(t, view.Available)

	assert.Equal(t, []FixAction{
		{Kind: FixUpgrade, From: "lodash@4.17.4", To: "lodash@4.17.11"},
		{Kind: FixPin, From: "qs@1.0.0", To: "qs@1.0.5"},
	}, view.ByVuln["crit-1"])
	assert.Equal(t, []FixAction{
		{Kind: FixUpgrade, From: "lodash@4.17.4", To: "lodash@4.17.11"},
		{Kind: FixUpgrade, From: "ms@0.7.0", To: "ms@2.0.0", MajorBump: true},
	}, view.ByVuln["low-1"])
	assert.Equal(t, []FixAction{{Kind: FixPatch, Paths: 2}}, view.ByVuln["orphan"])

	require.Len(t, view.Entries, 3)
	assert.Equal(t, "crit-1", view.Entries[0].VulnID)
	assert.Equal(t, "critical", view.Entries[0].Severity)
	assert.Equal(t, "title crit-1", view.Entries[0].Title)
	assert.Equal(t, "low-1", view.Entries[1].VulnID)
	assert.Equal(t, "orphan", view.Entries[2].VulnID)
	assert.Equal(t, []string{"x"}, view.Unresolved)
}

func TestBuild_RemediationFirstSeenWins(t *testing.T) {
	scans := []snyk.ScanResult{
		{Vulnerabilities: []snyk.Vulnerability{vuln("a", "high")}},
		{
			Vulnerabilities: []snyk.Vulnerability{vuln("a", "high")},
			Remediation: &snyk.Remediation{Upgrade: map[string]snyk.UpgradeAdvice{
				"pkg@1.0.0": {UpgradeTo: "pkg@1.1.0", Vulns: []string{"a"}},
			}},
		},
		{
			Vulnerabilities: []snyk.Vulnerability{vuln("b", "high")},
			Remediation: &snyk.Remediation{Upgrade: map[string]snyk.UpgradeAdvice{
				"pkg@1.0.0": {UpgradeTo: "pkg@9.9.9", Vulns: []string{"a", "b"}},
			}},
		},
	}

	view := build(scans, true, false).RemediationView

	require.True(t, view.Available)
	assert.Equal(t, []FixAction{{Kind: FixUpgrade, From: "pkg@1.0.0", To: "pkg@1.1.0"}}, view.ByVuln["a"])
	assert.Equal(t, []FixAction{{Kind: FixUpgrade, From: "pkg@1.0.0", To: "pkg@9.9.9", MajorBump: true}}, view.ByVuln["b"])
	require.Len(t, view.Entries, 2)
	assert.Equal(t, "a", view.Entries[0].VulnID)
	assert.Equal(t, "b", view.Entries[1].VulnID)
}
