package gcb

import (
	"fmt"
	"strings"
)

// Command is a parsed line of G-code.
// Code is empty for comment-only (or commented-out) lines.
type Command struct {
	Code        GCode
	Args        []Arg
	LineComment string
}

func (c *Command) String(comments bool) string {
	result := string(c.Code)
	for _, arg := range c.Args {
		result += fmt.Sprintf(" %v%v", arg.Name, arg.Value)
	}

	if c.LineComment != "" && comments {
		result += fmt.Sprintf(" ; %v", c.LineComment)
	}

	return strings.TrimSpace(mergeSpaces(result))
}

// Arg returns value of the argument named name.
func (c *Command) Arg(name string) (float64, bool) {
	for _, arg := range c.Args {
		if arg.Name == name {
			return arg.Value, true
		}
	}

	return 0, false
}

// Arg is a single word of a command, e.g. X12.5
type Arg struct {
	Name  string
	Value float64
}

// merge duplicated spaces
func mergeSpaces(s string) string {
	for {
		old := s
		s = strings.ReplaceAll(s, "  ", " ")
		if old == s {
			return s
		}
	}
}
