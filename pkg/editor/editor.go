// Package editor lets the user review generated G-code before it is written.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/kpango/glg"
	"golang.org/x/term"
)

var ErrNoEditor = errors.New("no editor configured")

// Editor shows text to the user and returns the (possibly modified) result.
// accepted is false when the user discarded the edit.
type Editor interface {
	Available() bool
	Edit(ctx context.Context, text string) (edited string, accepted bool, err error)
}

// Func adapts a function to the Editor interface. It is always available.
type Func func(ctx context.Context, text string) (string, bool, error)

func (f Func) Available() bool {
	return true
}

func (f Func) Edit(ctx context.Context, text string) (string, bool, error) {
	return f(ctx, text)
}

// External runs a text editor program on a temporary file.
type External struct {
	// Command is the editor command line, e.g. "vim" or "code --wait".
	Command string
	// Interactive reports whether a user can operate the editor.
	// Defaults to checking whether stdin is a terminal.
	Interactive func() bool
}

// NewExternal creates an External editor from $VISUAL or $EDITOR.
func NewExternal() *External {
	cmd := os.Getenv("VISUAL")
	if cmd == "" {
		cmd = os.Getenv("EDITOR")
	}

	return &External{
		Command: cmd,
	}
}

// Available is true when an editor is configured and the session is interactive.
func (e *External) Available() bool {
	if e.Command == "" {
		return false
	}

	if e.Interactive != nil {
		return e.Interactive()
	}

	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Edit writes text to a temporary file, runs the editor on it and reads
// it back. A non-zero editor exit status counts as a discarded edit.
func (e *External) Edit(ctx context.Context, text string) (string, bool, error) {
	argv, err := shlex.Split(e.Command)
	if err != nil {
		return text, false, fmt.Errorf("cant parse editor command %q: %w", e.Command, err)
	}

	if len(argv) == 0 {
		return text, false, ErrNoEditor
	}

	f, err := os.CreateTemp("", "marlinpost-*.gcode")
	if err != nil {
		return text, false, fmt.Errorf("cant create temporary file: %w", err)
	}

	defer os.Remove(f.Name())

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return text, false, fmt.Errorf("cant write temporary file: %w", err)
	}

	if err := f.Close(); err != nil {
		return text, false, fmt.Errorf("cant write temporary file: %w", err)
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], f.Name())...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr

	glg.Infof("waiting for %s to finish", argv[0])

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			glg.Infof("editor exited with %d, discarding changes", exitErr.ExitCode())
			return text, false, nil
		}

		return text, false, fmt.Errorf("cant run editor: %w", err)
	}

	data, err := os.ReadFile(f.Name())
	if err != nil {
		return text, false, fmt.Errorf("cant read edited file: %w", err)
	}

	return string(data), true, nil
}
