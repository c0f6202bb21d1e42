// Package journal appends one record per planned or executed action to the
// configured log sinks.
package journal

import (
	"encoding/json"
	"time"
)

// Action represents the kind of event being recorded.
type Action string

const (
	ActionFind         Action = "find"
	ActionRename       Action = "rename"
	ActionDryRunRename Action = "dry_run_rename"
	ActionBackup       Action = "backup"
	ActionDryRunBackup Action = "dry_run_backup"
	ActionSummary      Action = "summary"
)

// Status represents the outcome carried on an event.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// RunConfig is the run configuration echoed on every structured log line so
// each record is self-contained for auditing.
type RunConfig struct {
	CaseSensitive bool     `json:"case_sensitive"`
	IncludeDirs   bool     `json:"include_dirs"`
	DryRun        bool     `json:"dry_run"`
	Backup        bool     `json:"backup"`
	Regex         bool     `json:"regex"`
	Extensions    []string `json:"exts"`
}

// Counts holds the aggregate counters emitted on the summary event.
type Counts struct {
	Found   int
	Renamed int
	Skipped int
	Errors  int
}

// Event is a single self-contained record.
type Event struct {
	Timestamp   time.Time
	Action      Action
	Source      string
	Destination string
	IsDir       bool
	Status      Status
	Error       string
	Counts      *Counts // summary events only
}

// eventJSON is the wire representation. Optional fields use pointers so
// omitempty drops them cleanly.
type eventJSON struct {
	Timestamp   string  `json:"ts"`
	Action      Action  `json:"action"`
	Source      *string `json:"src,omitempty"`
	Destination *string `json:"dst,omitempty"`
	IsDir       *bool   `json:"is_dir,omitempty"`
	Status      Status  `json:"status,omitempty"`
	Error       *string `json:"error,omitempty"`
	TotalFound  *int    `json:"total_found,omitempty"`
	Renamed     *int    `json:"renamed,omitempty"`
	Skipped     *int    `json:"skipped,omitempty"`
	Errors      *int    `json:"errors,omitempty"`
	RunConfig
}

// marshalLine renders the event as one JSON line (no trailing newline) with
// the run configuration folded in.
func (e Event) marshalLine(cfg RunConfig) ([]byte, error) {
	ej := eventJSON{
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
		Action:    e.Action,
		Status:    e.Status,
		RunConfig: cfg,
	}
	if e.Source != "" {
		ej.Source = &e.Source
	}
	if e.Destination != "" {
		ej.Destination = &e.Destination
	}
	if e.Action != ActionSummary {
		isDir := e.IsDir
		ej.IsDir = &isDir
	}
	if e.Error != "" {
		ej.Error = &e.Error
	}
	if e.Counts != nil {
		ej.TotalFound = &e.Counts.Found
		ej.Renamed = &e.Counts.Renamed
		ej.Skipped = &e.Counts.Skipped
		ej.Errors = &e.Counts.Errors
		ej.Status = ""
	}
	return json.Marshal(ej)
}
