// Package matcher decides whether a name satisfies the find criterion and
// computes its replacement.
package matcher

import (
	"regexp"
	"strings"

	"renamer/internal/config"
)

// Matcher evaluates names against one MatchSpec. Compile it once with New;
// regex and case-insensitive literal patterns are compiled a single time and
// reused across the whole walk.
type Matcher struct {
	spec     config.MatchSpec
	rx       *regexp.Regexp // regex mode, or case-insensitive literal replacer
	template string         // regex replacement with group references translated
}

// New builds a Matcher from spec. A regex pattern that fails to compile is a
// configuration error; it is surfaced here, before any filesystem mutation.
func New(spec config.MatchSpec) (*Matcher, error) {
	m := &Matcher{spec: spec}
	if spec.Pattern == "" {
		// An empty find term never matches anything.
		return m, nil
	}

	if spec.Regex {
		pattern := spec.Pattern
		if !spec.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		rx, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &config.ConfigError{Type: config.InvalidPattern, Message: err.Error(), Err: err}
		}
		m.rx = rx
		m.template = translateTemplate(spec.Replacement)
		return m, nil
	}

	if !spec.CaseSensitive {
		// Case-insensitive literal replacement reuses the regexp engine with
		// the pattern quoted, the same trick the original tool used.
		m.rx = regexp.MustCompile("(?i)" + regexp.QuoteMeta(spec.Pattern))
	}
	return m, nil
}

// Matches reports whether name satisfies the find criterion.
func (m *Matcher) Matches(name string) bool {
	if m.spec.Pattern == "" {
		return false
	}
	if m.spec.Regex {
		return m.rx.MatchString(name)
	}
	if m.spec.CaseSensitive {
		return strings.Contains(name, m.spec.Pattern)
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(m.spec.Pattern))
}

// Rename applies the replacement to name. It returns false when the name does
// not match, or when the substitution yields a name identical to the
// original: a no-op rename is never proposed.
func (m *Matcher) Rename(name string) (bool, string) {
	if !m.Matches(name) {
		return false, name
	}

	var newName string
	switch {
	case m.spec.Regex:
		newName = m.rx.ReplaceAllString(name, m.template)
	case m.spec.CaseSensitive:
		newName = strings.ReplaceAll(name, m.spec.Pattern, m.spec.Replacement)
	default:
		newName = m.rx.ReplaceAllLiteralString(name, m.spec.Replacement)
	}

	if newName == name {
		return false, name
	}
	return true, newName
}

// translateTemplate converts a replacement template using backslash group
// references (\1 .. \9, \\ for a literal backslash) into the ${N} form the
// regexp package expands. Dollar signs in the template stay literal.
func translateTemplate(repl string) string {
	var b strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c == '\\' && i+1 < len(repl) {
			next := repl[i+1]
			if next >= '0' && next <= '9' {
				b.WriteString("${")
				b.WriteByte(next)
				b.WriteByte('}')
				i++
				continue
			}
			if next == '\\' {
				b.WriteByte('\\')
				i++
				continue
			}
		}
		if c == '$' {
			b.WriteString("$$")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
