// Package planner assembles the ordered list of rename operations for a run.
// It composes the walker, matcher, and collision resolver without performing
// any side effects; the executor applies the resulting plan.
package planner

import (
	"path/filepath"

	"renamer/internal/collision"
	"renamer/internal/config"
	"renamer/internal/matcher"
	"renamer/internal/walker"
)

// RenameOp is one planned rename. Destination always shares Source's parent
// directory: renames change the base name only, never the location. The
// destination is collision-resolved at planning time; a concurrent external
// process creating the same path afterwards surfaces as an execution-time
// failure, not a planning bug.
type RenameOp struct {
	Source      string
	Destination string
	IsDir       bool
}

// Build walks root and returns the rename operations in walker enumeration
// order, alongside any subtrees that were skipped as unreadable. Entries that
// fail the extension filter, do not match, or would be renamed to themselves
// are excluded.
func Build(root string, m *matcher.Matcher, filter config.FilterSpec) ([]RenameOp, []error, error) {
	entries, skipped, err := walker.Walk(root, filter.IncludeDirs)
	if err != nil {
		return nil, skipped, err
	}

	var ops []RenameOp
	for _, e := range entries {
		if !eligible(e, filter) {
			continue
		}
		dir, name := filepath.Split(e.Path)
		matched, newName := m.Rename(name)
		if !matched {
			continue
		}
		desired := filepath.Join(dir, newName)
		ops = append(ops, RenameOp{
			Source:      e.Path,
			Destination: collision.Resolve(desired),
			IsDir:       e.IsDir,
		})
	}
	return ops, skipped, nil
}

// FindMatches enumerates matching entries without computing destinations.
// Find-only mode shares the walker and matcher with Build but skips the
// collision resolver entirely.
func FindMatches(root string, m *matcher.Matcher, filter config.FilterSpec) ([]walker.Entry, []error, error) {
	entries, skipped, err := walker.Walk(root, filter.IncludeDirs)
	if err != nil {
		return nil, skipped, err
	}

	var matches []walker.Entry
	for _, e := range entries {
		if !eligible(e, filter) {
			continue
		}
		if m.Matches(filepath.Base(e.Path)) {
			matches = append(matches, e)
		}
	}
	return matches, skipped, nil
}

// eligible applies the extension filter. Directories bypass it: they are
// constrained only by the include-dirs switch, which the walker applies.
func eligible(e walker.Entry, filter config.FilterSpec) bool {
	if e.IsDir {
		return true
	}
	return filter.AllowsExtension(filepath.Ext(e.Path))
}
