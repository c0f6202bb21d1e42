package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	return lines
}

func TestLogFilenamesAreDated(t *testing.T) {
	dir := t.TempDir()
	j := New(dir, true, true, RunConfig{})
	defer j.Close()

	date := time.Now().Format("01.02.2006")
	if want := filepath.Join(dir, "renamed."+date+".txt"); j.TextPath() != want {
		t.Errorf("text path = %q, want %q", j.TextPath(), want)
	}
	if want := filepath.Join(dir, "renamed."+date+".jsonl"); j.JSONPath() != want {
		t.Errorf("jsonl path = %q, want %q", j.JSONPath(), want)
	}
}

func TestSecondRunSameDayGetsFreshLog(t *testing.T) {
	dir := t.TempDir()
	first := New(dir, true, false, RunConfig{})
	first.Close()

	second := New(dir, true, false, RunConfig{})
	defer second.Close()

	if second.TextPath() == first.TextPath() {
		t.Errorf("second run reused the first run's log file: %q", second.TextPath())
	}
	if !strings.Contains(second.TextPath(), "(1)") {
		t.Errorf("second log path = %q, want a (1) disambiguator", second.TextPath())
	}
}

func TestDisabledSinksAreAbsent(t *testing.T) {
	dir := t.TempDir()
	j := New(dir, false, false, RunConfig{})
	defer j.Close()

	if j.TextPath() != "" || j.JSONPath() != "" {
		t.Errorf("expected no sinks, got text=%q json=%q", j.TextPath(), j.JSONPath())
	}
	// Recording with no sinks must be a no-op, never a panic.
	j.RecordRename("/a", "/b", false)
	j.RecordSummary(Counts{Found: 1, Renamed: 1})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("log directory is not empty: %v", entries)
	}
}

func TestTextLineFormats(t *testing.T) {
	dir := t.TempDir()
	j := New(dir, true, false, RunConfig{})

	j.RecordFind("/r/a.txt", false)
	j.RecordDryRunBackup("/r/a.txt", "/r/a.txt.bak")
	j.RecordDryRunRename("/r/a.txt", "/r/b.txt", false)
	j.RecordBackup("/r/a.txt", "/r/a.txt.bak")
	j.RecordBackupError("/r/a.txt", "/r/a.txt.bak", "disk full")
	j.RecordRename("/r/a.txt", "/r/b.txt", false)
	j.RecordRenameError("/r/a.txt", "/r/b.txt", false, "not-found", "no such file")
	j.RecordRenameError("/r/a.txt", "/r/b.txt", false, "permission-denied", "denied")
	j.RecordRenameError("/r/a.txt", "/r/b.txt", false, "other", "boom")
	j.Close()

	want := []string{
		"FIND-ONLY: /r/a.txt",
		"DRY-RUN BACKUP: /r/a.txt -> /r/a.txt.bak",
		"DRY-RUN: /r/a.txt -> /r/b.txt",
		"BACKUP: /r/a.txt -> /r/a.txt.bak",
		"ERROR (backup failed): /r/a.txt -> /r/a.txt.bak :: disk full",
		"RENAMED: /r/a.txt -> /r/b.txt",
		"ERROR (not found): /r/a.txt",
		"ERROR (permission): /r/a.txt",
		"ERROR: /r/a.txt -> /r/b.txt :: boom",
	}
	got := readLines(t, j.TextPath())
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d:\n  got  %q\n  want %q", i, got[i], want[i])
		}
	}
}

func TestJSONLinesCarryConfigAndFields(t *testing.T) {
	dir := t.TempDir()
	cfg := RunConfig{CaseSensitive: true, Backup: true, Extensions: []string{".txt", ".pdf"}}
	j := New(dir, false, true, cfg)
	j.RecordRename("/r/a.txt", "/r/b.txt", false)
	j.Close()

	lines := readLines(t, j.JSONPath())
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("line is not valid JSON: %v", err)
	}

	if rec["action"] != "rename" || rec["status"] != "ok" {
		t.Errorf("action/status = %v/%v", rec["action"], rec["status"])
	}
	if rec["src"] != "/r/a.txt" || rec["dst"] != "/r/b.txt" {
		t.Errorf("src/dst = %v/%v", rec["src"], rec["dst"])
	}
	if rec["is_dir"] != false {
		t.Errorf("is_dir = %v, want false", rec["is_dir"])
	}
	ts, ok := rec["ts"].(string)
	if !ok {
		t.Fatalf("ts missing or not a string: %v", rec["ts"])
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("ts %q is not RFC3339: %v", ts, err)
	}

	// Config is echoed on every line.
	if rec["case_sensitive"] != true || rec["backup"] != true {
		t.Errorf("config echo wrong: %v", rec)
	}
	if rec["include_dirs"] != false || rec["dry_run"] != false || rec["regex"] != false {
		t.Errorf("config echo wrong: %v", rec)
	}
	exts, ok := rec["exts"].([]interface{})
	if !ok || len(exts) != 2 || exts[0] != ".txt" || exts[1] != ".pdf" {
		t.Errorf("exts = %v", rec["exts"])
	}
}

func TestJSONExtensionsDefaultToEmptyList(t *testing.T) {
	dir := t.TempDir()
	j := New(dir, false, true, RunConfig{})
	j.RecordFind("/r/a.txt", false)
	j.Close()

	lines := readLines(t, j.JSONPath())
	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	exts, ok := rec["exts"].([]interface{})
	if !ok {
		t.Fatalf("exts should be an empty list, not %v", rec["exts"])
	}
	if len(exts) != 0 {
		t.Errorf("exts = %v, want empty", exts)
	}
}

func TestSummaryRecord(t *testing.T) {
	dir := t.TempDir()
	j := New(dir, true, true, RunConfig{})
	j.RecordSummary(Counts{Found: 5, Renamed: 3, Skipped: 1, Errors: 1})
	j.Close()

	// The summary goes to the structured sink only.
	if lines := readLines(t, j.TextPath()); len(lines) != 0 {
		t.Errorf("summary leaked into the text log: %v", lines)
	}

	lines := readLines(t, j.JSONPath())
	if len(lines) != 1 {
		t.Fatalf("got %d jsonl lines, want 1", len(lines))
	}
	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["action"] != "summary" {
		t.Errorf("action = %v", rec["action"])
	}
	if rec["total_found"] != float64(5) || rec["renamed"] != float64(3) ||
		rec["skipped"] != float64(1) || rec["errors"] != float64(1) {
		t.Errorf("counters wrong: %v", rec)
	}
	if _, present := rec["is_dir"]; present {
		t.Error("summary record should not carry is_dir")
	}
	if _, present := rec["src"]; present {
		t.Error("summary record should not carry src")
	}
	if _, present := rec["status"]; present {
		t.Error("summary record should not carry status")
	}
}

func TestUnwritableDirectoryIsSwallowed(t *testing.T) {
	// A bogus directory means no sinks can be opened; every record call
	// must still be safe.
	j := New(filepath.Join(t.TempDir(), "does", "not", "exist"), true, true, RunConfig{})
	defer j.Close()

	if j.TextPath() != "" || j.JSONPath() != "" {
		t.Errorf("sinks should be absent, got text=%q json=%q", j.TextPath(), j.JSONPath())
	}
	j.RecordRename("/a", "/b", true)
	j.RecordSummary(Counts{})
}
