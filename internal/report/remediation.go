package report

import (
	"sort"

	"github.com/tamcore/snyk-to-html/internal/snyk"
	"github.com/tamcore/snyk-to-html/internal/versions"
)

// buildRemediation merges remediation advice from every scan that carries it.
// Advice is keyed by vulnerability id and the first scan to mention an id wins.
func buildRemediation(scans []snyk.ScanResult, records []Record) *RemediationView {
	view := &RemediationView{ByVuln: make(map[string][]FixAction)}

	seenUnresolved := make(map[string]bool)
	for _, scan := range scans {
		if scan.Remediation == nil {
			continue
		}
		view.Available = true

		for id, actions := range scanActions(scan.Remediation) {
			if _, ok := view.ByVuln[id]; !ok {
				view.ByVuln[id] = actions
			}
		}

		for _, vuln := range scan.Remediation.Unresolved {
			if seenUnresolved[vuln.ID] {
				continue
			}
			seenUnresolved[vuln.ID] = true
			view.Unresolved = append(view.Unresolved, vuln.ID)
		}
	}

	if !view.Available {
		return &RemediationView{Available: false}
	}

	view.Entries = remediationEntries(view.ByVuln, records)
	return view
}

// scanActions flattens one scan's advice into actions per vulnerability id
func scanActions(r *snyk.Remediation) map[string][]FixAction {
	actions := make(map[string][]FixAction)
	add := func(id string, action FixAction) {
		for _, existing := range actions[id] {
			if existing == action {
				return
			}
		}
		actions[id] = append(actions[id], action)
	}

	for _, from := range sortedKeys(r.Upgrade) {
		advice := r.Upgrade[from]
		action := FixAction{
			Kind:      FixUpgrade,
			From:      from,
			To:        advice.UpgradeTo,
			MajorBump: isMajorBump(from, advice.UpgradeTo),
		}
		for _, id := range advice.Vulns {
			add(id, action)
		}
	}

	for _, from := range sortedKeys(r.Pin) {
		advice := r.Pin[from]
		action := FixAction{
			Kind:      FixPin,
			From:      from,
			To:        advice.UpgradeTo,
			MajorBump: isMajorBump(from, advice.UpgradeTo),
		}
		for _, id := range advice.Vulns {
			add(id, action)
		}
	}

	for _, id := range sortedKeys(r.Patch) {
		add(id, FixAction{Kind: FixPatch, Paths: len(r.Patch[id].Paths)})
	}

	return actions
}

// remediationEntries orders entries by the position of their vulnerability in
// the sorted records; ids without a record follow in lexical order.
func remediationEntries(byVuln map[string][]FixAction, records []Record) []RemediationEntry {
	entries := make([]RemediationEntry, 0, len(byVuln))
	emitted := make(map[string]bool)

	for _, rec := range records {
		actions, ok := byVuln[rec.ID]
		if !ok || emitted[rec.ID] {
			continue
		}
		emitted[rec.ID] = true
		entries = append(entries, RemediationEntry{
			VulnID:   rec.ID,
			Title:    rec.Title,
			Severity: rec.Severity,
			Actions:  actions,
		})
	}

	for _, id := range sortedKeys(byVuln) {
		if emitted[id] {
			continue
		}
		entries = append(entries, RemediationEntry{
			VulnID:  id,
			Title:   id,
			Actions: byVuln[id],
		})
	}

	return entries
}

func isMajorBump(from, to string) bool {
	return versions.IsMajorVersionBump(versions.ParseRef(from).Version, versions.ParseRef(to).Version)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
