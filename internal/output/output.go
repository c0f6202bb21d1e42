// Package output handles console formatting: leveled messages, the in-place
// progress line, and the plan and summary blocks.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"renamer/internal/config"
	"renamer/internal/executor"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Config holds console configuration.
type Config struct {
	Writer    io.Writer // default os.Stdout
	ErrWriter io.Writer // default os.Stderr
	IsTTY     bool      // gates styling and the in-place progress line
}

// DefaultConfig returns a Config with TTY detection applied.
func DefaultConfig() Config {
	return Config{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		IsTTY:     term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Console writes formatted run output.
type Console struct {
	cfg            Config
	progressActive bool
}

// New creates a Console. Nil writers fall back to the standard streams.
func New(cfg Config) *Console {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = os.Stderr
	}
	return &Console{cfg: cfg}
}

// Info prints a plain message.
func (c *Console) Info(format string, args ...interface{}) {
	c.clearProgress()
	fmt.Fprintf(c.cfg.Writer, format+"\n", args...)
}

// Error prints a message to the error stream.
func (c *Console) Error(format string, args ...interface{}) {
	c.clearProgress()
	msg := fmt.Sprintf(format, args...)
	if c.cfg.IsTTY {
		msg = errorStyle.Render(msg)
	}
	fmt.Fprintln(c.cfg.ErrWriter, msg)
}

// Progress renders the in-place found/renamed counter. Suppressed when the
// output is not a terminal so piped output stays line-oriented.
func (c *Console) Progress(found, renamed int) {
	if !c.cfg.IsTTY {
		return
	}
	c.progressActive = true
	fmt.Fprintf(c.cfg.Writer, "\rProgress: found %d / renamed %d", found, renamed)
}

// EndProgress terminates the progress line, if one is active.
func (c *Console) EndProgress() {
	c.clearProgress()
}

func (c *Console) clearProgress() {
	if !c.progressActive {
		return
	}
	c.progressActive = false
	fmt.Fprint(c.cfg.Writer, "\r"+strings.Repeat(" ", 60)+"\r")
}

// yesNo formats a toggle the way the plan block displays it.
func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Plan echoes the resolved configuration before confirmation.
func (c *Console) Plan(opts *config.Options) {
	header := "Plan:"
	if c.cfg.IsTTY {
		header = headerStyle.Render(header)
	}
	replace := fmt.Sprintf("%q", opts.Match.Replacement)
	if opts.FindOnly {
		replace = "(ignored in find-only)"
	}
	exts := "(all)"
	if len(opts.Filter.Extensions) > 0 {
		exts = strings.Join(opts.Filter.Extensions, ", ")
	}
	fmt.Fprintf(c.cfg.Writer, "\n%s\n", header)
	fmt.Fprintf(c.cfg.Writer, "  Location       : %s\n", opts.Root)
	fmt.Fprintf(c.cfg.Writer, "  Find term      : %q\n", opts.Match.Pattern)
	fmt.Fprintf(c.cfg.Writer, "  Replace with   : %s\n", replace)
	fmt.Fprintf(c.cfg.Writer, "  Case-sensitive : %s\n", yesNo(opts.Match.CaseSensitive))
	fmt.Fprintf(c.cfg.Writer, "  Regex mode     : %s\n", yesNo(opts.Match.Regex))
	fmt.Fprintf(c.cfg.Writer, "  Include dirs   : %s\n", yesNo(opts.Filter.IncludeDirs))
	fmt.Fprintf(c.cfg.Writer, "  Dry-run        : %s\n", yesNo(opts.DryRun))
	fmt.Fprintf(c.cfg.Writer, "  Backup copies  : %s\n", yesNo(opts.Backup))
	fmt.Fprintf(c.cfg.Writer, "  JSON log       : %s\n", yesNo(opts.JSONLog))
	fmt.Fprintf(c.cfg.Writer, "  Extensions     : %s\n", exts)
}

// Summary prints the final counters. It is emitted once per run regardless
// of how many per-item errors occurred.
func (c *Console) Summary(s *executor.Summary) {
	c.clearProgress()
	header := "Job Completed."
	renamed := fmt.Sprintf("%d", s.Renamed)
	errCount := fmt.Sprintf("%d", s.Errors)
	if c.cfg.IsTTY {
		header = headerStyle.Render(header)
		renamed = successStyle.Render(renamed)
		if s.Errors > 0 {
			errCount = errorStyle.Render(errCount)
		} else {
			errCount = mutedStyle.Render(errCount)
		}
	}
	fmt.Fprintln(c.cfg.Writer, header)
	fmt.Fprintf(c.cfg.Writer, "  Total found : %d\n", s.Found)
	fmt.Fprintf(c.cfg.Writer, "  Renamed     : %s\n", renamed)
	fmt.Fprintf(c.cfg.Writer, "  Skipped     : %d\n", s.Skipped)
	fmt.Fprintf(c.cfg.Writer, "  Errors      : %s\n", errCount)
}
