package gcb

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads G-code text into commands. Empty lines are skipped.
func Parse(gcode []byte) ([]Command, error) {
	var result []Command

	lines := strings.Split(string(gcode), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		cmd, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		result = append(result, cmd)
	}

	return result, nil
}

// ParseLine parses a single line of G-code.
// ;-comments and (parenthesized) comments both end up in LineComment.
// A leading line number (N110) is dropped.
// The code and argument letters are upper-cased.
func ParseLine(line string) (Command, error) {
	return parseLine(line, strings.ToUpper)
}

// ParseLineKeepCase is ParseLine without case folding.
func ParseLineKeepCase(line string) (Command, error) {
	return parseLine(line, func(s string) string { return s })
}

func parseLine(line string, fold func(string) string) (Command, error) {
	splitted := strings.SplitN(line, ";", 2)
	command := splitted[0]

	var comments []string
	if len(splitted) > 1 {
		comments = append(comments, strings.TrimSpace(splitted[1]))
	}

	// pull out (...) comments
	for {
		start := strings.Index(command, "(")
		if start < 0 {
			break
		}

		end := strings.Index(command[start:], ")")
		if end < 0 {
			return Command{}, fmt.Errorf("%w: %q", ErrUnclosedParens, line)
		}

		end += start
		comments = append([]string{command[start+1 : end]}, comments...)
		command = command[:start] + " " + command[end+1:]
	}

	result := Command{
		LineComment: strings.Join(comments, " "),
	}

	// trim unnecessary spaces from command
	commandParts := strings.Fields(command)
	if len(commandParts) > 0 && isLineNumber(commandParts[0]) {
		commandParts = commandParts[1:]
	}

	if len(commandParts) == 0 {
		return result, nil
	}

	result.Code = GCode(fold(commandParts[0]))

	for _, arg := range commandParts[1:] {
		if len(arg) <= 1 {
			continue
		}

		value, err := strconv.ParseFloat(arg[1:], 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w %q: %w", ErrInvalidWord, arg, err)
		}

		result.Args = append(result.Args, Arg{
			Name:  fold(arg[0:1]),
			Value: value,
		})
	}

	return result, nil
}

func isLineNumber(word string) bool {
	if len(word) < 2 || (word[0] != 'N' && word[0] != 'n') {
		return false
	}

	_, err := strconv.Atoi(word[1:])
	return err == nil
}
