package snyk

import "strings"

// FilterByCVSS filters vulnerabilities by minimum CVSS score threshold.
// A threshold of zero or less keeps every vulnerability.
func FilterByCVSS(result ScanResult, threshold float64) ScanResult {
	if threshold <= 0 {
		return result
	}

	filtered := result
	filtered.Vulnerabilities = nil

	for _, vuln := range result.Vulnerabilities {
		if vuln.CVSSScore >= threshold {
			filtered.Vulnerabilities = append(filtered.Vulnerabilities, vuln)
		}
	}

	return filtered
}

// SeverityCounts counts vulnerabilities per lower-cased severity
func SeverityCounts(vulns []Vulnerability) map[string]int {
	counts := make(map[string]int)

	for _, vuln := range vulns {
		counts[strings.ToLower(strings.TrimSpace(vuln.Severity))]++
	}

	return counts
}

// UniqueIDs returns the distinct vulnerability ids in first-seen order
func UniqueIDs(vulns []Vulnerability) []string {
	seen := make(map[string]bool)
	var ids []string

	for _, vuln := range vulns {
		if seen[vuln.ID] {
			continue
		}
		seen[vuln.ID] = true
		ids = append(ids, vuln.ID)
	}

	return ids
}
