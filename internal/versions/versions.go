package versions

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Ref represents a package name and version, as in "lodash@4.17.4"
type Ref struct {
	Name    string
	Version string
}

// String formats the reference back into "name@version" form
func (r Ref) String() string {
	if r.Version == "" {
		return r.Name
	}
	return r.Name + "@" + r.Version
}

// ParseRef parses "name@version" or "name". Scoped npm names such as
// "@babel/core@7.0.0" keep their leading '@'.
func ParseRef(s string) Ref {
	if idx := strings.LastIndex(s, "@"); idx > 0 {
		return Ref{
			Name:    s[:idx],
			Version: s[idx+1:],
		}
	}
	return Ref{Name: s}
}

// IsMajorVersionBump checks if updating from oldVersion to newVersion crosses a major version.
// Versions that are not semver never count as a major bump.
func IsMajorVersionBump(oldVersion, newVersion string) bool {
	oldV := NormalizeVersion(oldVersion)
	newV := NormalizeVersion(newVersion)
	if !semver.IsValid(oldV) || !semver.IsValid(newV) {
		return false
	}

	return semver.Compare(semver.Major(newV), semver.Major(oldV)) > 0
}

// NormalizeVersion adds a 'v' prefix if missing and the version looks like semver
// (e.g., "1.2.3" -> "v1.2.3"). Special versions like "latest" are returned unchanged.
func NormalizeVersion(version string) string {
	// Don't modify special versions
	if version == "latest" || version == "" {
		return version
	}

	// If it already has a 'v' prefix, return as-is
	if strings.HasPrefix(version, "v") {
		return version
	}

	// Check if it looks like a semver (starts with a digit)
	if version[0] >= '0' && version[0] <= '9' {
		return "v" + version
	}

	return version
}
