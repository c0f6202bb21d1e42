// Package executor applies planned rename operations and aggregates the
// per-item outcomes into a run summary.
package executor

import (
	"os"
	"time"

	"renamer/internal/collision"
	"renamer/internal/journal"
	"renamer/internal/planner"
)

// Status is the terminal state of one planned operation.
type Status string

const (
	StatusApplied Status = "applied"
	StatusDryRun  Status = "dry_run"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// ErrorKind classifies a per-item failure.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not-found"
	KindPermissionDenied ErrorKind = "permission-denied"
	KindOther            ErrorKind = "other"
)

// Decision is the answer from an approve-each callback.
type Decision int

const (
	// Approve applies this operation.
	Approve Decision = iota
	// Decline skips this operation and moves on.
	Decline
	// Quit skips this operation and all remaining ones without further prompting.
	Quit
)

// Options configures how a plan is applied.
type Options struct {
	DryRun  bool
	Backup  bool
	Approve func(index, total int, op planner.RenameOp) Decision // nil disables approve-each
	Progress func(found, renamed int)                            // nil disables progress reporting
	Journal *journal.Journal                                     // nil discards all records
}

// Outcome records the terminal state of one operation. Exactly one outcome is
// produced per planned op.
type Outcome struct {
	Op         planner.RenameOp
	Status     Status
	ErrorKind  ErrorKind
	BackupPath string
	Err        error
}

// Summary aggregates a run. Found counts all planned ops; Renamed counts
// applied and dry-run outcomes; Errors counts failures; Skipped is the
// remainder. A summary is always produced no matter how many per-item errors
// occurred.
type Summary struct {
	Found    int
	Renamed  int
	Skipped  int
	Errors   int
	Outcomes []Outcome
}

// Apply executes the plan sequentially. Per-item failures are recorded and
// execution continues with the next item; only the counters reflect them.
func Apply(ops []planner.RenameOp, opts Options) *Summary {
	s := &Summary{Found: len(ops), Outcomes: make([]Outcome, 0, len(ops))}
	j := opts.Journal
	if j == nil {
		// A sinkless journal discards every record.
		j = &journal.Journal{}
	}
	quit := false

	for i, op := range ops {
		if opts.Progress != nil {
			opts.Progress(s.Found, s.Renamed)
		}

		if quit {
			s.finish(Outcome{Op: op, Status: StatusSkipped})
			continue
		}
		if opts.Approve != nil {
			switch opts.Approve(i+1, s.Found, op) {
			case Decline:
				s.finish(Outcome{Op: op, Status: StatusSkipped})
				continue
			case Quit:
				quit = true
				s.finish(Outcome{Op: op, Status: StatusSkipped})
				continue
			}
		}

		if opts.DryRun {
			if opts.Backup && !op.IsDir {
				j.RecordDryRunBackup(op.Source, collision.BackupPath(op.Source))
			}
			j.RecordDryRunRename(op.Source, op.Destination, op.IsDir)
			s.finish(Outcome{Op: op, Status: StatusDryRun})
			continue
		}

		// Backup applies to files only and fails closed: a failed copy
		// aborts this item without attempting the rename.
		var backupPath string
		if opts.Backup && !op.IsDir {
			backupPath = collision.BackupPath(op.Source)
			if err := copyFile(op.Source, backupPath); err != nil {
				j.RecordBackupError(op.Source, backupPath, err.Error())
				s.finish(Outcome{Op: op, Status: StatusFailed, ErrorKind: classify(err), Err: err})
				continue
			}
			j.RecordBackup(op.Source, backupPath)
		}

		if err := os.Rename(op.Source, op.Destination); err != nil {
			kind := classify(err)
			j.RecordRenameError(op.Source, op.Destination, op.IsDir, string(kind), err.Error())
			s.finish(Outcome{Op: op, Status: StatusFailed, ErrorKind: kind, BackupPath: backupPath, Err: err})
			continue
		}
		j.RecordRename(op.Source, op.Destination, op.IsDir)
		s.finish(Outcome{Op: op, Status: StatusApplied, BackupPath: backupPath})
	}

	if opts.Progress != nil {
		opts.Progress(s.Found, s.Renamed)
	}
	if opts.Approve != nil {
		s.Skipped = s.Found - s.Renamed - s.Errors
	}
	j.RecordSummary(journal.Counts{
		Found: s.Found, Renamed: s.Renamed, Skipped: s.Skipped, Errors: s.Errors,
	})
	return s
}

// finish appends the outcome and bumps the matching counter.
func (s *Summary) finish(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case StatusApplied, StatusDryRun:
		s.Renamed++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Errors++
	}
}

// classify maps an I/O error to its kind.
func classify(err error) ErrorKind {
	switch {
	case os.IsNotExist(err):
		return KindNotFound
	case os.IsPermission(err):
		return KindPermissionDenied
	default:
		return KindOther
	}
}

// copyFile makes a byte-for-byte copy of src at dst, preserving the file
// mode and modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, time.Now(), info.ModTime())
}
