package snyk

import jsoniter "github.com/json-iterator/go"

// ScanResult represents the output of a single `snyk test --json` run
type ScanResult struct {
	Vulnerabilities   []Vulnerability `json:"vulnerabilities"`
	OK                bool            `json:"ok"`
	ProjectName       string          `json:"projectName"`
	PackageManager    string          `json:"packageManager"`
	DisplayTargetFile string          `json:"displayTargetFile"`
	Path              string          `json:"path"`
	DependencyCount   int             `json:"dependencyCount"`
	UniqueCount       int             `json:"uniqueCount"`
	Summary           string          `json:"summary"`
	Remediation       *Remediation    `json:"remediation,omitempty"`
}

// PathCount returns the number of vulnerable dependency paths in the scan.
// Snyk emits one vulnerability record per vulnerable path.
func (s ScanResult) PathCount() int {
	return len(s.Vulnerabilities)
}

// Vulnerability represents a single vulnerable path reported by Snyk
type Vulnerability struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Severity       string      `json:"severity"`
	Description    string      `json:"description"`
	Overview       string      `json:"overview"`
	FixedIn        []string    `json:"fixedIn"`
	PackageName    string      `json:"packageName"`
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	From           []string    `json:"from"`
	UpgradePath    []any       `json:"upgradePath"`
	IsUpgradable   bool        `json:"isUpgradable"`
	IsPatchable    bool        `json:"isPatchable"`
	CVSSScore      float64     `json:"cvssScore"`
	Language       string      `json:"language"`
	PackageManager string      `json:"packageManager"`
	Identifiers    Identifiers `json:"identifiers"`
}

// Package returns the affected package name, preferring packageName over name
func (v Vulnerability) Package() string {
	if v.PackageName != "" {
		return v.PackageName
	}
	return v.Name
}

// Identifiers holds the public identifiers attached to a vulnerability
type Identifiers struct {
	CVE []string `json:"CVE"`
	CWE []string `json:"CWE"`
}

// Remediation is the actionable remediation advice attached to a scan
type Remediation struct {
	Upgrade    map[string]UpgradeAdvice `json:"upgrade"`
	Pin        map[string]PinAdvice     `json:"pin"`
	Patch      map[string]PatchAdvice   `json:"patch"`
	Ignore     map[string]any           `json:"ignore"`
	Unresolved []Vulnerability          `json:"unresolved"`
}

// UpgradeAdvice describes upgrading a direct dependency, keyed by "pkg@version"
type UpgradeAdvice struct {
	UpgradeTo string   `json:"upgradeTo"`
	Upgrades  []string `json:"upgrades"`
	Vulns     []string `json:"vulns"`
}

// PinAdvice describes pinning a transitive dependency, keyed by "pkg@version"
type PinAdvice struct {
	UpgradeTo    string   `json:"upgradeTo"`
	Vulns        []string `json:"vulns"`
	IsTransitive bool     `json:"isTransitive"`
}

// PatchAdvice lists the patchable paths of a vulnerability, keyed by vulnerability id
type PatchAdvice struct {
	Paths []jsoniter.RawMessage `json:"paths"`
}
