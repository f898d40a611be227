package report

import "strings"

// Severity levels as emitted by Snyk
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// RankUnknown is the rank of any severity outside the four known levels.
// It sorts below low so unrecognized records still appear, last.
const RankUnknown = -1

// Severities lists the known levels from most to least severe
var Severities = []string{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

var ranks = map[string]int{
	SeverityCritical: 3,
	SeverityHigh:     2,
	SeverityMedium:   1,
	SeverityLow:      0,
}

// Rank maps a severity to its sort rank, case-insensitively
func Rank(severity string) int {
	if r, ok := ranks[strings.ToLower(strings.TrimSpace(severity))]; ok {
		return r
	}
	return RankUnknown
}
