package marlinpost

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	flag "github.com/spf13/pflag"
)

type arguments struct {
	header, noHeader           bool
	comments, noComments       bool
	lineNumbers, noLineNumbers bool
	showEditor, noShowEditor   bool
	modal, noModal             bool
	precision                  string
	preamble, postamble        string
	toolChange                 string
}

func newFlagSet(a *arguments) *flag.FlagSet {
	fs := flag.NewFlagSet("marlin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.BoolVar(&a.header, "header", false, "output headers (default)")
	fs.BoolVar(&a.noHeader, "no-header", false, "suppress header output")
	fs.BoolVar(&a.comments, "comments", false, "output comment (default)")
	fs.BoolVar(&a.noComments, "no-comments", false, "suppress comment output")
	fs.BoolVar(&a.lineNumbers, "line-numbers", false, "prefix with line numbers")
	fs.BoolVar(&a.noLineNumbers, "no-line-numbers", false, "don't prefix with line numbers (default)")
	fs.BoolVar(&a.showEditor, "show-editor", false, "pop up editor before writing output (default)")
	fs.BoolVar(&a.noShowEditor, "no-show-editor", false, "don't pop up editor before writing output")
	fs.BoolVar(&a.modal, "modal", false, "omit repeated command words")
	fs.BoolVar(&a.noModal, "no-modal", false, "always write the command word (default)")
	fs.StringVar(&a.precision, "precision", strconv.Itoa(DefaultPrecision), "number of digits of precision")
	fs.StringVar(&a.preamble, "preamble", "", `set commands to be issued before the first command, default="G90\nG92 X0 Y0 Z0"`)
	fs.StringVar(&a.postamble, "postamble", "", `set commands to be issued after the last command, default="M5\nG0 Z20\nG0 X0 Y0\n; M2"`)
	fs.StringVar(&a.toolChange, "tool-change", "",
		"0 ... suppress all tool change commands\n"+
			"1 ... insert M6 for all tool changes\n"+
			"2 ... insert M6 for all tool changes except the initial tool")

	return fs
}

// ArgsUsage returns help text for the argument string accepted by ApplyArgs.
func ArgsUsage() string {
	return newFlagSet(&arguments{}).FlagUsages()
}

// ApplyArgs parses a shell-style argument string (e.g. "--no-header --precision 3")
// and updates c. Options that are not given keep their current values,
// except precision which falls back to its default.
// When both --x and --no-x are given, --x wins.
// On error c is left unchanged.
func (c *Config) ApplyArgs(argstring string) error {
	argv, err := shlex.Split(argstring)
	if err != nil {
		return fmt.Errorf("%w: cant split %q: %w", ErrInvalidArguments, argstring, err)
	}

	var a arguments
	fs := newFlagSet(&a)
	if err := fs.Parse(argv); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}

	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unrecognized arguments: %s", ErrInvalidArguments, strings.Join(fs.Args(), " "))
	}

	precision, err := strconv.Atoi(a.precision)
	if err != nil || precision < 0 {
		return fmt.Errorf("%w: invalid precision %q", ErrInvalidArguments, a.precision)
	}

	toolChange := -1
	if fs.Changed("tool-change") {
		toolChange, err = strconv.Atoi(a.toolChange)
		if err != nil || toolChange < 0 || toolChange > 2 {
			return fmt.Errorf("%w: invalid tool-change %q (want 0, 1 or 2)", ErrInvalidArguments, a.toolChange)
		}
	}

	applyToggle(&c.OutputHeader, a.header, a.noHeader)
	applyToggle(&c.OutputComments, a.comments, a.noComments)
	applyToggle(&c.OutputLineNumbers, a.lineNumbers, a.noLineNumbers)
	applyToggle(&c.ShowEditor, a.showEditor, a.noShowEditor)
	applyToggle(&c.Modal, a.modal, a.noModal)

	c.Precision = precision

	if fs.Changed("preamble") {
		c.Preamble = unescapeNewlines(a.preamble)
	}

	if fs.Changed("postamble") {
		c.Postamble = unescapeNewlines(a.postamble)
	}

	if toolChange >= 0 {
		c.SetToolChangeMode(toolChange)
	}

	return nil
}

func applyToggle(dst *bool, on, off bool) {
	if off {
		*dst = false
	}

	if on {
		*dst = true
	}
}

// "G17\nG90" typed in a single-quoted argument keeps the backslash
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
