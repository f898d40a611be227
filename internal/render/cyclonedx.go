package render

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/CycloneDX/cyclonedx-go"
	"github.com/tamcore/snyk-to-html/internal/report"
)

// CycloneDX renders the report as a CycloneDX JSON BOM carrying the
// vulnerabilities, their ratings and the remediation advice.
type CycloneDX struct{}

// NewCycloneDX creates a CycloneDX renderer
func NewCycloneDX() *CycloneDX {
	return &CycloneDX{}
}

// Render encodes the view model as a pretty-printed CycloneDX BOM
func (c *CycloneDX) Render(w io.Writer, vm *report.ViewModel) error {
	bom := cyclonedx.NewBOM()
	bom.SerialNumber = "urn:uuid:" + vm.ReportID
	bom.Metadata = &cyclonedx.Metadata{
		Timestamp: vm.GeneratedAt.UTC().Format(time.RFC3339),
	}

	var advice map[string][]report.FixAction
	if vm.RemediationView != nil {
		advice = vm.RemediationView.ByVuln
	}

	components := make([]cyclonedx.Component, 0)
	seenComponents := make(map[string]bool)
	vulns := make([]cyclonedx.Vulnerability, 0, len(vm.Vulnerabilities))

	for _, rec := range vm.Vulnerabilities {
		ref := moduleRef(rec)
		if ref != "" && !seenComponents[ref] {
			seenComponents[ref] = true
			components = append(components, cyclonedx.Component{
				BOMRef:  ref,
				Type:    cyclonedx.ComponentTypeLibrary,
				Name:    rec.PackageName,
				Version: rec.Version,
			})
		}

		v := cyclonedx.Vulnerability{
			ID:             rec.ID,
			Description:    rec.Title,
			Detail:         rec.Description,
			Recommendation: recommendation(rec, advice[rec.ID]),
			Ratings: &[]cyclonedx.VulnerabilityRating{
				rating(rec),
			},
		}
		if ref != "" {
			v.Affects = &[]cyclonedx.Affects{{Ref: ref}}
		}
		if cwes := cweIDs(rec.CWE); len(cwes) > 0 {
			v.CWEs = &cwes
		}
		if len(rec.CVE) > 0 {
			refs := make([]cyclonedx.VulnerabilityReference, 0, len(rec.CVE))
			for _, cve := range rec.CVE {
				refs = append(refs, cyclonedx.VulnerabilityReference{
					ID:     cve,
					Source: &cyclonedx.Source{Name: "NVD", URL: "https://nvd.nist.gov/vuln/detail/" + cve},
				})
			}
			v.References = &refs
		}
		if len(rec.Path) > 0 {
			v.Properties = &[]cyclonedx.Property{
				{Name: "snyk:introducedThrough", Value: strings.Join(rec.Path, " > ")},
			}
		}
		vulns = append(vulns, v)
	}

	if len(components) > 0 {
		bom.Components = &components
	}
	if len(vulns) > 0 {
		bom.Vulnerabilities = &vulns
	}

	enc := cyclonedx.NewBOMEncoder(w, cyclonedx.BOMFileFormatJSON)
	enc.SetPretty(true)
	return enc.Encode(bom)
}

func rating(rec report.Record) cyclonedx.VulnerabilityRating {
	r := cyclonedx.VulnerabilityRating{
		Source:   &cyclonedx.Source{Name: "Snyk"},
		Severity: cyclonedx.SeverityUnknown,
	}
	if report.Rank(rec.Severity) != report.RankUnknown {
		r.Severity = cyclonedx.Severity(rec.Severity)
	}
	if rec.CVSSScore > 0 {
		score := rec.CVSSScore
		r.Score = &score
		r.Method = cyclonedx.ScoringMethodCVSSv3
	}
	return r
}

func recommendation(rec report.Record, actions []report.FixAction) string {
	lines := []string{rec.Remediation}
	for _, action := range actions {
		lines = append(lines, describeAction(action))
	}
	return strings.Join(lines, "\n")
}

func cweIDs(cwes []string) []int {
	var ids []int
	for _, cwe := range cwes {
		n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(cwe), "CWE-"))
		if err != nil {
			continue
		}
		ids = append(ids, n)
	}
	return ids
}
