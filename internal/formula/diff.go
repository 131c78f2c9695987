package formula

import "sort"

// DiffResult contains the results of comparing two formula snapshots.
// Each bucket is sorted by formula name for deterministic output.
type DiffResult struct {
	Added   []Formula        `json:"added"`
	Removed []Formula        `json:"removed"`
	Updated []UpdatedFormula `json:"updated"`
}

// UpdatedFormula is a formula whose stable version changed between two
// snapshots. It carries the full new record plus both version strings.
type UpdatedFormula struct {
	Formula
	OldVersion string `json:"old_version"`
	NewVersion string `json:"new_version"`
}

// Summary returns the per-bucket counts of the diff.
func (d *DiffResult) Summary() (added, removed, updated int) {
	return len(d.Added), len(d.Removed), len(d.Updated)
}

// Empty reports whether the diff contains no changes at all.
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Updated) == 0
}

// Compare computes a three-way diff between an old and a new formula
// snapshot, keyed by formula name:
//
//   - Added: present only in new
//   - Removed: present only in old
//   - Updated: present in both with a different stable version
//
// Version comparison is plain string equality on versions.stable, with a
// missing version treated as "". Formulas present in both snapshots with
// equal versions appear in no bucket. Input ordering is irrelevant; each
// result bucket is sorted by name ascending.
func Compare(old, current []Formula) *DiffResult {
	oldByName := indexByName(old)
	newByName := indexByName(current)

	result := &DiffResult{
		Added:   make([]Formula, 0),
		Removed: make([]Formula, 0),
		Updated: make([]UpdatedFormula, 0),
	}

	for name, f := range newByName {
		if _, exists := oldByName[name]; !exists {
			result.Added = append(result.Added, f)
		}
	}

	for name, f := range oldByName {
		if _, exists := newByName[name]; !exists {
			result.Removed = append(result.Removed, f)
		}
	}

	for name, newF := range newByName {
		oldF, exists := oldByName[name]
		if !exists {
			continue
		}
		oldVersion := oldF.StableVersion()
		newVersion := newF.StableVersion()
		if oldVersion != newVersion {
			result.Updated = append(result.Updated, UpdatedFormula{
				Formula:    newF,
				OldVersion: oldVersion,
				NewVersion: newVersion,
			})
		}
	}

	sort.Slice(result.Added, func(i, j int) bool {
		return result.Added[i].Name < result.Added[j].Name
	})
	sort.Slice(result.Removed, func(i, j int) bool {
		return result.Removed[i].Name < result.Removed[j].Name
	})
	sort.Slice(result.Updated, func(i, j int) bool {
		return result.Updated[i].Name < result.Updated[j].Name
	})

	return result
}

// indexByName builds a name → formula lookup table. The API guarantees
// unique names; if a snapshot ever carries duplicates, the last occurrence
// wins.
func indexByName(formulas []Formula) map[string]Formula {
	m := make(map[string]Formula, len(formulas))
	for _, f := range formulas {
		m[f.Name] = f
	}
	return m
}
