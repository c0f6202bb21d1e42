// Package cli provides the cobra command surface for renamer.
package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"renamer/internal/config"
	"renamer/internal/executor"
	"renamer/internal/journal"
	"renamer/internal/matcher"
	"renamer/internal/output"
	"renamer/internal/planner"
	"renamer/internal/prompt"
)

var flags struct {
	caseSensitive bool
	regex         bool
	includeDirs   bool
	dryRun        bool
	backup        bool
	findOnly      bool
	verbose       bool
	jsonLog       bool
	ext           string
	logDir        string
}

var rootCmd = &cobra.Command{
	Use:   "renamer [location] [find] [replace]",
	Short: "Recursively find and rename files (and optionally directories)",
	Long: `renamer recursively renames files (and optionally directories) under a
root path by replacing occurrences of a find term in each name.

Matching is case-insensitive by default; --cs makes it case-sensitive and
--regex switches to regular-expression matching with \1-style group
references in the replacement. Destination collisions are resolved by
appending (1), (2), ... before the extension. Omit the replace term to
remove the find term.

Missing positional values are gathered interactively when stdin is a
terminal.

Examples:
  renamer /data "demo" ""            remove "demo" from all names under /data
  renamer ./projects foo bar         replace foo with bar
  renamer ./projects foo --cs        case-sensitive, remove foo
  renamer --dry-run --ext .pdf,.txt  interactive prompts, preview only`,
	Args:          cobra.MaximumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRename,
}

func init() {
	// Matching and logging flags apply to every subcommand (watch included),
	// so they are persistent; the batch-only execution toggles stay local.
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.caseSensitive, "cs", false, "Case-sensitive match (default is case-insensitive)")
	pf.BoolVar(&flags.regex, "regex", false, "Use a regular expression find term; replacement supports \\1 group references")
	pf.BoolVar(&flags.verbose, "v", false, "Verbose logging to a dated log file")
	pf.BoolVar(&flags.jsonLog, "json-log", false, "Write a structured JSONL log (renamed.mm.dd.yyyy.jsonl)")
	pf.StringVar(&flags.ext, "ext", "", "Comma-separated extensions to include, e.g. \".pdf,.txt\"")
	pf.StringVar(&flags.logDir, "log-dir", "", "Directory for log files (default: current directory)")

	fl := rootCmd.Flags()
	fl.BoolVar(&flags.includeDirs, "include-dirs", false, "Also rename directories (in addition to files)")
	fl.BoolVar(&flags.dryRun, "dry-run", false, "Preview changes without renaming")
	fl.BoolVar(&flags.backup, "backup", false, "Create a .bak copy of original files before renaming")
	fl.BoolVar(&flags.findOnly, "find-only", false, "Search only: list and log matches without renaming")
}

// Execute runs the CLI and returns the process exit code: 0 on success
// (including a user abort before execution), 2 on invalid input.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			return 2
		}
		return 1
	}
	return 0
}

// buildOptions assembles Options from flags and positional arguments.
func buildOptions(args []string) *config.Options {
	o := &config.Options{
		Match: config.MatchSpec{
			CaseSensitive: flags.caseSensitive,
			Regex:         flags.regex,
		},
		Filter: config.FilterSpec{
			Extensions:  config.NormalizeExtensions(flags.ext),
			IncludeDirs: flags.includeDirs,
		},
		DryRun:   flags.dryRun,
		Backup:   flags.backup,
		FindOnly: flags.findOnly,
		Verbose:  flags.verbose,
		JSONLog:  flags.jsonLog,
		LogDir:   flags.logDir,
	}
	if o.LogDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			o.LogDir = cwd
		} else {
			o.LogDir = "."
		}
	}
	if len(args) > 0 {
		o.Root = args[0]
	}
	if len(args) > 1 {
		o.Match.Pattern = config.StripQuotes(args[1])
	}
	if len(args) > 2 {
		o.Match.Replacement = config.StripQuotes(args[2])
	}
	return o
}

func runRename(cmd *cobra.Command, args []string) error {
	// An interrupt anywhere in the rename flow produces a clean message and
	// the shell convention exit code for SIGINT, never a stack trace.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	go func() {
		<-interrupt
		fmt.Fprintln(os.Stderr, "\nInterrupted.")
		os.Exit(130)
	}()

	console := output.New(output.DefaultConfig())
	prompter := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
	o := buildOptions(args)

	approveEach := false
	confirmed := false

	// Interactive gathering for missing values. The core receives a fully
	// resolved configuration; non-interactive runs with missing values fail
	// validation below instead of blocking on input.
	if prompt.IsInteractive() && (o.Root == "" || o.Match.Pattern == "") {
		var ok bool
		approveEach, confirmed, ok = gatherMissing(prompter, console, o)
		if !ok {
			console.Info("Aborted by user.")
			return nil
		}
	}

	if abs, err := filepath.Abs(o.Root); err == nil && o.Root != "" {
		o.Root = abs
	}
	if err := o.Validate(); err != nil {
		return err
	}

	// Echo the plan; find-only never asks for confirmation.
	if o.FindOnly {
		console.Plan(o)
	} else if !confirmed {
		console.Plan(o)
		switch prompter.ConfirmPlan() {
		case prompt.PlanNo:
			console.Info("Aborted by user.")
			return nil
		case prompt.PlanApproveEach:
			approveEach = true
		case prompt.PlanChange:
			answer, ok := gatherLoop(prompter, console, o)
			if !ok {
				console.Info("Aborted by user.")
				return nil
			}
			approveEach = answer == prompt.PlanApproveEach
			if err := o.Validate(); err != nil {
				return err
			}
		}
	}

	j := journal.New(o.LogDir, o.Verbose, o.JSONLog, journal.RunConfig{
		CaseSensitive: o.Match.CaseSensitive,
		IncludeDirs:   o.Filter.IncludeDirs,
		DryRun:        o.DryRun,
		Backup:        o.Backup,
		Regex:         o.Match.Regex,
		Extensions:    o.Filter.Extensions,
	})
	defer j.Close()
	if o.Verbose {
		if j.TextPath() != "" {
			console.Info("Logging to: %s", j.TextPath())
		} else {
			console.Error("Warning: Could not create log file; continuing without file logging.")
		}
	}
	if o.JSONLog {
		if j.JSONPath() != "" {
			console.Info("JSON log to: %s", j.JSONPath())
		} else {
			console.Error("Warning: Could not create JSON log file; continuing without JSON logging.")
		}
	}

	m, err := matcher.New(o.Match)
	if err != nil {
		return err
	}

	console.Info("\nScanning...")
	if o.FindOnly {
		return runFindOnly(console, j, m, o)
	}

	ops, skipped, err := planner.Build(o.Root, m, o.Filter)
	if err != nil {
		return err
	}
	reportSkipped(console, skipped)
	console.Info("Found %d item(s) to rename.", len(ops))
	if len(ops) == 0 {
		console.Info("Nothing to do.")
		return nil
	}

	execOpts := executor.Options{
		DryRun:   o.DryRun,
		Backup:   o.Backup,
		Progress: console.Progress,
		Journal:  j,
	}
	if approveEach {
		execOpts.Approve = func(index, total int, op planner.RenameOp) executor.Decision {
			rel, err := filepath.Rel(o.Root, op.Source)
			if err != nil {
				rel = op.Source
			}
			switch prompter.ApproveItem(index, total, rel, filepath.Base(op.Destination)) {
			case prompt.ItemYes:
				return executor.Approve
			case prompt.ItemQuit:
				return executor.Quit
			default:
				return executor.Decline
			}
		}
	}

	summary := executor.Apply(ops, execOpts)
	console.EndProgress()
	console.Summary(summary)
	if o.Verbose && j.TextPath() != "" {
		console.Info("Detailed log written to: %s", j.TextPath())
	}
	if o.JSONLog && j.JSONPath() != "" {
		console.Info("JSON log written to: %s", j.JSONPath())
	}
	return nil
}

// runFindOnly lists and logs matches without renaming.
func runFindOnly(console *output.Console, j *journal.Journal, m *matcher.Matcher, o *config.Options) error {
	matches, skipped, err := planner.FindMatches(o.Root, m, o.Filter)
	if err != nil {
		return err
	}
	reportSkipped(console, skipped)
	console.Info("Found %d item(s) matching.", len(matches))
	for _, e := range matches {
		console.Info("  %s", e.Path)
		j.RecordFind(e.Path, e.IsDir)
	}
	j.RecordSummary(journal.Counts{Found: len(matches)})
	console.Summary(&executor.Summary{Found: len(matches)})
	if o.JSONLog && j.JSONPath() != "" {
		console.Info("JSON log written to: %s", j.JSONPath())
	}
	return nil
}

// gatherMissing fills in missing values interactively. Find-only runs gather
// inputs without the plan confirmation loop; they never mutate anything, so
// there is nothing to confirm. Returns ok=false when the user aborted.
func gatherMissing(prompter *prompt.Prompter, console *output.Console, o *config.Options) (approveEach, confirmed, ok bool) {
	if o.Root != "" || o.Match.Pattern != "" {
		console.Info("Some values missing; switching to prompts.")
	}
	if o.FindOnly {
		in := prompter.GatherInputs(prompt.Inputs{Root: o.Root, Find: o.Match.Pattern, Replace: o.Match.Replacement})
		o.Root = in.Root
		o.Match.Pattern = in.Find
		o.Match.Replacement = in.Replace
		return false, false, true
	}
	answer, gathered := gatherLoop(prompter, console, o)
	if !gathered {
		return false, false, false
	}
	return answer == prompt.PlanApproveEach, true, true
}

// gatherLoop re-prompts for inputs until the user confirms or aborts.
// Returns the confirming answer and false when the user aborted.
func gatherLoop(prompter *prompt.Prompter, console *output.Console, o *config.Options) (prompt.PlanAnswer, bool) {
	prev := prompt.Inputs{Root: o.Root, Find: o.Match.Pattern, Replace: o.Match.Replacement}
	for {
		in := prompter.GatherInputs(prev)
		o.Root = in.Root
		o.Match.Pattern = in.Find
		o.Match.Replacement = in.Replace
		console.Plan(o)
		answer := prompter.ConfirmPlan()
		switch answer {
		case prompt.PlanYes, prompt.PlanApproveEach:
			return answer, true
		case prompt.PlanNo:
			return answer, false
		case prompt.PlanChange:
			prev = in
		}
	}
}

func reportSkipped(console *output.Console, skipped []error) {
	for _, err := range skipped {
		console.Error("Warning: %v", err)
	}
}
