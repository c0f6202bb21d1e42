package planner

import (
	"os"
	"path/filepath"
	"testing"

	"renamer/internal/config"
	"renamer/internal/matcher"
)

// reportTree builds the layout used across the planning tests:
//
//	root/
//	  Report-2023.txt
//	  report_final.TXT
//	  summary.pdf
//	  Reports/
//	    old_report.txt
func reportTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "Reports"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"Report-2023.txt", "report_final.TXT", "summary.pdf", "Reports/old_report.txt"} {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newMatcher(t *testing.T, spec config.MatchSpec) *matcher.Matcher {
	t.Helper()
	m, err := matcher.New(spec)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestBuildCaseInsensitiveAllFiles(t *testing.T) {
	root := reportTree(t)
	m := newMatcher(t, config.MatchSpec{Pattern: "report", Replacement: "summary"})

	ops, skipped, err := Build(root, m, config.FilterSpec{})
	if err != nil {
		t.Fatal(err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped: %v", skipped)
	}
	// summary.pdf does not contain the term; the Reports directory is
	// excluded without include-dirs. Both report files and the nested one
	// match.
	if len(ops) != 3 {
		t.Fatalf("got %d ops, want 3: %+v", len(ops), ops)
	}
	byBase := map[string]string{}
	for _, op := range ops {
		if filepath.Dir(op.Source) != filepath.Dir(op.Destination) {
			t.Errorf("rename must stay in the same directory: %+v", op)
		}
		byBase[filepath.Base(op.Source)] = filepath.Base(op.Destination)
	}
	want := map[string]string{
		"Report-2023.txt":  "summary-2023.txt",
		"report_final.TXT": "summary_final.TXT",
		"old_report.txt":   "old_summary.txt",
	}
	for src, dst := range want {
		if byBase[src] != dst {
			t.Errorf("%s: got destination %q, want %q", src, byBase[src], dst)
		}
	}
}

func TestBuildExtensionFilterWithDirs(t *testing.T) {
	root := reportTree(t)
	m := newMatcher(t, config.MatchSpec{Pattern: "report", Replacement: "summary"})
	filter := config.FilterSpec{Extensions: []string{".txt"}, IncludeDirs: true}

	ops, _, err := Build(root, m, filter)
	if err != nil {
		t.Fatal(err)
	}
	var gotDir bool
	for _, op := range ops {
		base := filepath.Base(op.Source)
		if base == "report_final.TXT" {
			// Extension comparison is case-insensitive.
			continue
		}
		if op.IsDir {
			gotDir = true
			if base != "Reports" {
				t.Errorf("unexpected directory in plan: %q", base)
			}
		}
		if filepath.Ext(base) == ".pdf" {
			t.Errorf("pdf slipped past the extension filter: %q", base)
		}
	}
	if !gotDir {
		t.Error("directories bypass the extension filter; Reports should be planned")
	}
	// Report-2023.txt, report_final.TXT, Reports/, Reports/old_report.txt.
	if len(ops) != 4 {
		t.Fatalf("got %d ops, want 4: %+v", len(ops), ops)
	}
}

func TestBuildResolvesCollisions(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"draft_a.txt", "final_a.txt"} {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	m := newMatcher(t, config.MatchSpec{Pattern: "draft", Replacement: "final", CaseSensitive: true})

	ops, _, err := Build(root, m, config.FilterSpec{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(ops))
	}
	want := filepath.Join(root, "final_a(1).txt")
	if ops[0].Destination != want {
		t.Errorf("got destination %q, want %q", ops[0].Destination, want)
	}
}

func TestBuildExcludesNoOpRenames(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "report.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	// Case-insensitive match against a replacement that reproduces the
	// original name exactly; nothing should be planned.
	m := newMatcher(t, config.MatchSpec{Pattern: "report", Replacement: "report"})

	ops, _, err := Build(root, m, config.FilterSpec{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 0 {
		t.Errorf("expected empty plan, got %+v", ops)
	}
}

func TestFindMatches(t *testing.T) {
	root := reportTree(t)
	m := newMatcher(t, config.MatchSpec{Pattern: "report", Replacement: ""})

	matches, _, err := FindMatches(root, m, config.FilterSpec{})
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3: %+v", len(matches), matches)
	}
	for _, e := range matches {
		if e.IsDir {
			t.Errorf("directory matched without include-dirs: %q", e.Path)
		}
	}
}

func TestBuildRegexPlan(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"IMG_0001.jpg", "IMG_0002.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	m := newMatcher(t, config.MatchSpec{
		Pattern:       `IMG_(\d+)`,
		Replacement:   `photo_\1`,
		CaseSensitive: true,
		Regex:         true,
	})

	ops, _, err := Build(root, m, config.FilterSpec{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(ops))
	}
	wantBases := map[string]string{
		"IMG_0001.jpg": "photo_0001.jpg",
		"IMG_0002.jpg": "photo_0002.jpg",
	}
	for _, op := range ops {
		src := filepath.Base(op.Source)
		if got, want := filepath.Base(op.Destination), wantBases[src]; got != want {
			t.Errorf("%s: got %q, want %q", src, got, want)
		}
	}
}
