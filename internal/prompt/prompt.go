// Package prompt gathers interactive input: missing run values, the plan
// confirmation, and per-item approvals. The core pipeline never blocks on
// input; everything here runs before or around it.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"renamer/internal/config"
)

// IsInteractive reports whether stdin is a terminal. Piped or redirected
// input disables prompting.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PlanAnswer is the user's response to the plan confirmation.
type PlanAnswer int

const (
	// PlanYes proceeds with the run.
	PlanYes PlanAnswer = iota
	// PlanNo aborts before execution.
	PlanNo
	// PlanApproveEach proceeds, confirming every operation individually.
	PlanApproveEach
	// PlanChange re-prompts for inputs with the previous values as defaults.
	PlanChange
)

// ItemAnswer is the user's response to a single proposed rename.
type ItemAnswer int

const (
	// ItemYes applies this rename.
	ItemYes ItemAnswer = iota
	// ItemNo skips this rename.
	ItemNo
	// ItemQuit stops approvals; remaining items are skipped.
	ItemQuit
)

// Inputs are the values gathered interactively.
type Inputs struct {
	Root    string
	Find    string
	Replace string
}

// Prompter reads answers from reader and writes prompts to writer. Use
// os.Stdin and os.Stdout for normal operation, or buffers for testing.
type Prompter struct {
	scanner *bufio.Scanner
	writer  io.Writer
}

// New creates a Prompter over the given reader and writer.
func New(reader io.Reader, writer io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(reader),
		writer:  writer,
	}
}

// readLine returns the next trimmed input line. EOF yields ("", false).
func (p *Prompter) readLine() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.scanner.Text()), true
}

// WithDefault asks for a value, offering def when non-empty; an empty answer
// keeps the default.
func (p *Prompter) WithDefault(label, def string) string {
	if def == "" {
		fmt.Fprintf(p.writer, "%s: ", label)
	} else {
		fmt.Fprintf(p.writer, "%s [%s]: ", label, def)
	}
	answer, ok := p.readLine()
	if !ok || answer == "" {
		return def
	}
	return answer
}

// GatherInputs prompts for the root path and find/replace terms, pre-filling
// previous values so the change-inputs loop re-asks with defaults.
func (p *Prompter) GatherInputs(prev Inputs) Inputs {
	root := p.WithDefault("Enter drive/folder to search (e.g., /data, ./projects)", prev.Root)
	find := config.StripQuotes(p.WithDefault("Enter FIND term", prev.Find))
	replace := config.StripQuotes(p.WithDefault("Enter REPLACE-WITH term (leave empty to remove)", prev.Replace))
	return Inputs{Root: root, Find: find, Replace: replace}
}

// ConfirmPlan asks whether to proceed. It re-asks until it gets a valid
// answer; EOF aborts the run.
func (p *Prompter) ConfirmPlan() PlanAnswer {
	for {
		fmt.Fprint(p.writer, "Proceed? [y/n/a/c]: ")
		answer, ok := p.readLine()
		if !ok {
			return PlanNo
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return PlanYes
		case "n", "no":
			return PlanNo
		case "a":
			return PlanApproveEach
		case "c":
			return PlanChange
		}
		fmt.Fprintln(p.writer, "Please answer with y, n, a, or c.")
	}
}

// ApproveItem shows one proposed rename and asks whether to apply it.
// EOF stops approvals, as if the user had quit.
func (p *Prompter) ApproveItem(index, total int, relSource, newBase string) ItemAnswer {
	fmt.Fprintf(p.writer, "[%d/%d] %s\n", index, total, relSource)
	fmt.Fprintf(p.writer, "  -> %s\n", newBase)
	for {
		fmt.Fprint(p.writer, "Rename this item? [y/n/q]: ")
		answer, ok := p.readLine()
		if !ok {
			return ItemQuit
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return ItemYes
		case "n", "no":
			return ItemNo
		case "q":
			fmt.Fprintln(p.writer, "Stopping approvals early.")
			return ItemQuit
		}
		fmt.Fprintln(p.writer, "Please answer y, n, or q.")
	}
}
