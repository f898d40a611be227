package snyk

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiscoverReports recursively searches for *.json reports under the given path.
// Patterns in exclude are matched against both the base name and the path
// relative to root.
func DiscoverReports(root string, exclude ...string) ([]string, error) {
	var reports []string

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, _ := filepath.Rel(absRoot, path)
		if isExcluded(rel, d.Name(), exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip hidden directories and common non-project directories
		if d.IsDir() {
			name := d.Name()
			if path != absRoot && (name == "vendor" || name == "node_modules" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(d.Name()), ".json") {
			reports = append(reports, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(reports)
	return reports, nil
}

func isExcluded(rel, name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
