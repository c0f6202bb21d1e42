// Package config defines the resolved run configuration for a rename run.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	// MissingInput indicates a required value (root path or find term) was not supplied.
	MissingInput ConfigErrorType = "MISSING_INPUT"
	// PathNotFound indicates the root path does not exist.
	PathNotFound ConfigErrorType = "PATH_NOT_FOUND"
	// InvalidPattern indicates the regex find term does not compile.
	InvalidPattern ConfigErrorType = "INVALID_PATTERN"
)

// ConfigError represents a fatal configuration problem detected before any
// filesystem mutation. It maps to process exit code 2.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case MissingInput:
		return fmt.Sprintf("missing required input: %s", e.Message)
	case PathNotFound:
		return fmt.Sprintf("path does not exist: %s", e.Message)
	case InvalidPattern:
		return fmt.Sprintf("invalid regex pattern: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// MatchSpec describes how names are matched and rewritten.
type MatchSpec struct {
	Pattern       string // literal substring or regular expression
	Replacement   string // empty removes the find term
	CaseSensitive bool
	Regex         bool
}

// FilterSpec limits which entries are eligible for renaming.
// Extensions are normalized lowercase strings beginning with '.'.
// An empty Extensions list means all files are eligible; directories are
// always eligible regardless of the extension filter.
type FilterSpec struct {
	Extensions  []string
	IncludeDirs bool
}

// AllowsExtension reports whether a filename passes the extension filter.
func (f FilterSpec) AllowsExtension(ext string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext = strings.ToLower(ext)
	for _, allowed := range f.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Options is the fully resolved configuration for one run. The core pipeline
// never prompts; interactive input gathering happens before Options is built.
type Options struct {
	Root     string
	Match    MatchSpec
	Filter   FilterSpec
	DryRun   bool
	Backup   bool
	FindOnly bool
	Verbose  bool   // dated human-readable log file
	JSONLog  bool   // dated JSONL log file
	LogDir   string // defaults to the current working directory
}

// NormalizeExtensions parses a comma-separated extension list into the
// normalized form used by FilterSpec: trimmed, lowercased, '.'-prefixed.
// Empty segments are dropped; an empty input yields nil (all files eligible).
func NormalizeExtensions(csv string) []string {
	if csv == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		out = append(out, strings.ToLower(part))
	}
	return out
}

// StripQuotes removes one layer of matching single or double quotes from a
// term, so quoted shell arguments and prompt answers behave identically.
func StripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Validate checks the options for fatal configuration errors: a missing root
// or find term, a nonexistent root path, or a regex pattern that does not
// compile under the configured case sensitivity.
func (o *Options) Validate() error {
	if o.Root == "" {
		return &ConfigError{Type: MissingInput, Message: "a location (drive or folder) is required"}
	}
	if o.Match.Pattern == "" {
		return &ConfigError{Type: MissingInput, Message: "a find term is required"}
	}
	if _, err := os.Stat(o.Root); err != nil {
		if os.IsNotExist(err) {
			return &ConfigError{Type: PathNotFound, Message: o.Root, Err: err}
		}
		return err
	}
	if o.Match.Regex {
		pattern := o.Match.Pattern
		if !o.Match.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return &ConfigError{Type: InvalidPattern, Message: err.Error(), Err: err}
		}
	}
	return nil
}
