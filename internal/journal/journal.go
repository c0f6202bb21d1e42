package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"renamer/internal/collision"
)

// Journal writes events to zero or more sinks: a dated human-readable text
// log and a dated JSONL log. Sink creation and every write use best-effort
// semantics: any I/O error is swallowed so that a logging problem never
// aborts a rename run. The journal is an explicit object handed to the
// executor, not process-wide state.
type Journal struct {
	cfg      RunConfig
	text     *os.File
	jsonl    *os.File
	textPath string
	jsonPath string
}

// New opens the requested sinks in dir. Log filenames are dated
// (renamed.MM.DD.YYYY.txt / .jsonl) and collision-resolved, so repeated runs
// on the same day never overwrite a prior run's log. A sink that cannot be
// created is simply absent; check TextPath/JSONPath to warn the user.
func New(dir string, verbose, jsonLog bool, cfg RunConfig) *Journal {
	if cfg.Extensions == nil {
		cfg.Extensions = []string{}
	}
	j := &Journal{cfg: cfg}
	date := time.Now().Format("01.02.2006")
	if verbose {
		j.text, j.textPath = openSink(dir, "renamed."+date+".txt")
	}
	if jsonLog {
		j.jsonl, j.jsonPath = openSink(dir, "renamed."+date+".jsonl")
	}
	return j
}

// openSink creates a collision-free log file for appending. Returns a nil
// file and empty path on failure.
func openSink(dir, base string) (*os.File, string) {
	path := collision.Resolve(filepath.Join(dir, base))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, ""
	}
	return f, path
}

// TextPath returns the text log path, or "" when the sink is absent.
func (j *Journal) TextPath() string { return j.textPath }

// JSONPath returns the JSONL log path, or "" when the sink is absent.
func (j *Journal) JSONPath() string { return j.jsonPath }

// Close closes any open sinks. Errors are swallowed like every other sink
// failure.
func (j *Journal) Close() {
	if j.text != nil {
		_ = j.text.Close()
	}
	if j.jsonl != nil {
		_ = j.jsonl.Close()
	}
}

// writeText appends one line to the text sink.
func (j *Journal) writeText(line string) {
	if j.text == nil {
		return
	}
	_, _ = j.text.WriteString(line + "\n")
}

// writeJSON appends one event line to the JSONL sink.
func (j *Journal) writeJSON(ev Event) {
	if j.jsonl == nil {
		return
	}
	data, err := ev.marshalLine(j.cfg)
	if err != nil {
		return
	}
	_, _ = j.jsonl.Write(append(data, '\n'))
}

func (j *Journal) record(line string, ev Event) {
	ev.Timestamp = time.Now().UTC()
	j.writeText(line)
	j.writeJSON(ev)
}

// RecordFind logs a find-only match.
func (j *Journal) RecordFind(path string, isDir bool) {
	j.record("FIND-ONLY: "+path, Event{
		Action: ActionFind, Source: path, IsDir: isDir, Status: StatusOK,
	})
}

// RecordDryRunBackup logs the backup that would be created for src.
func (j *Journal) RecordDryRunBackup(src, backupPath string) {
	j.record(fmt.Sprintf("DRY-RUN BACKUP: %s -> %s", src, backupPath), Event{
		Action: ActionDryRunBackup, Source: src, Destination: backupPath, Status: StatusOK,
	})
}

// RecordDryRunRename logs the rename that would be applied.
func (j *Journal) RecordDryRunRename(src, dst string, isDir bool) {
	j.record(fmt.Sprintf("DRY-RUN: %s -> %s", src, dst), Event{
		Action: ActionDryRunRename, Source: src, Destination: dst, IsDir: isDir, Status: StatusOK,
	})
}

// RecordBackup logs a completed backup copy.
func (j *Journal) RecordBackup(src, backupPath string) {
	j.record(fmt.Sprintf("BACKUP: %s -> %s", src, backupPath), Event{
		Action: ActionBackup, Source: src, Destination: backupPath, Status: StatusOK,
	})
}

// RecordBackupError logs a failed backup copy.
func (j *Journal) RecordBackupError(src, backupPath, errMsg string) {
	j.record(fmt.Sprintf("ERROR (backup failed): %s -> %s :: %s", src, backupPath, errMsg), Event{
		Action: ActionBackup, Source: src, Destination: backupPath, Status: StatusFailed, Error: errMsg,
	})
}

// RecordRename logs a completed rename.
func (j *Journal) RecordRename(src, dst string, isDir bool) {
	j.record(fmt.Sprintf("RENAMED: %s -> %s", src, dst), Event{
		Action: ActionRename, Source: src, Destination: dst, IsDir: isDir, Status: StatusOK,
	})
}

// RecordRenameError logs a failed rename. kind selects the text-log wording
// ("not-found", "permission-denied", or anything else for the generic form);
// errMsg is carried on the structured record.
func (j *Journal) RecordRenameError(src, dst string, isDir bool, kind, errMsg string) {
	var line string
	switch kind {
	case "not-found":
		line = "ERROR (not found): " + src
	case "permission-denied":
		line = "ERROR (permission): " + src
	default:
		line = fmt.Sprintf("ERROR: %s -> %s :: %s", src, dst, errMsg)
	}
	j.record(line, Event{
		Action: ActionRename, Source: src, Destination: dst, IsDir: isDir, Status: StatusFailed, Error: errMsg,
	})
}

// RecordSummary logs the aggregate counters for the run. The summary goes to
// the structured sink only; the console owns the human-readable summary.
func (j *Journal) RecordSummary(c Counts) {
	ev := Event{Action: ActionSummary, Counts: &c, Timestamp: time.Now().UTC()}
	j.writeJSON(ev)
}
