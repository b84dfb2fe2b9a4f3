// Package gcb builds and reads G-code text.
package gcb

import (
	"strconv"
	"strings"
)

const (
	// FirstLineNumber is the line number counter start value.
	// The counter is advanced before use, so the first line is N110.
	FirstLineNumber = 100
	// LineNumberStep is the distance between two line numbers.
	LineNumberStep = 10
)

// CommentPrefix comments a line out on Marlin.
const CommentPrefix = ";"

type lineCounter struct {
	enabled bool
	current int
}

func (l *lineCounter) next() string {
	if !l.enabled {
		return ""
	}

	l.current += LineNumberStep
	return "N" + strconv.Itoa(l.current)
}

// GCodeBuilder accumulates G-code lines.
// Builders created with Section share the line counter so a file can be
// assembled from parts that are not built in output order.
type GCodeBuilder struct {
	code    strings.Builder
	counter *lineCounter
}

// NewGCodeBuilder creates new GCodeBuilder with line numbering disabled.
func NewGCodeBuilder() *GCodeBuilder {
	return &GCodeBuilder{
		counter: &lineCounter{current: FirstLineNumber},
	}
}

// SetLineNumbers enables or disables line numbers for b and all its sections.
func (b *GCodeBuilder) SetLineNumbers(enabled bool) *GCodeBuilder {
	b.counter.enabled = enabled
	return b
}

// Section returns an empty builder sharing b's line counter.
func (b *GCodeBuilder) Section() *GCodeBuilder {
	return &GCodeBuilder{counter: b.counter}
}

// Line writes words joined by a single space, prefixed with a line number
// when numbering is on. Nothing is written (and no number is used) when all
// words are empty.
func (b *GCodeBuilder) Line(words ...string) *GCodeBuilder {
	line := strings.TrimSpace(mergeSpaces(strings.Join(words, " ")))
	if line == "" {
		return b
	}

	if n := b.counter.next(); n != "" {
		line = n + " " + line
	}

	b.code.WriteString(line)
	b.code.WriteByte('\n')

	return b
}

// Verbatim writes line unchanged apart from the line number.
// Blank lines are skipped.
func (b *GCodeBuilder) Verbatim(line string) *GCodeBuilder {
	if strings.TrimSpace(line) == "" {
		return b
	}

	if n := b.counter.next(); n != "" {
		line = n + " " + line
	}

	b.code.WriteString(line)
	b.code.WriteByte('\n')

	return b
}

// Comment writes a numbered ;(comment) line.
func (b *GCodeBuilder) Comment(comment string) *GCodeBuilder {
	return b.Line(CommentPrefix + "(" + comment + ")")
}

// Raw writes line as is, never numbered.
func (b *GCodeBuilder) Raw(line string) *GCodeBuilder {
	b.code.WriteString(line)
	b.code.WriteByte('\n')

	return b
}

// RawComment writes an unnumbered ;(comment) line.
func (b *GCodeBuilder) RawComment(comment string) *GCodeBuilder {
	return b.Raw(CommentPrefix + "(" + comment + ")")
}

// Separator is for nice code layout
func (b *GCodeBuilder) Separator() *GCodeBuilder {
	return b.Raw("")
}

// Text writes every line of block as a numbered line. Blank lines stay blank.
func (b *GCodeBuilder) Text(block string) *GCodeBuilder {
	if block == "" {
		return b
	}

	for _, line := range strings.Split(strings.TrimSuffix(block, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			b.Separator()
			continue
		}

		b.Line(line)
	}

	return b
}

// Append copies the content of the given builders into b.
func (b *GCodeBuilder) Append(others ...*GCodeBuilder) *GCodeBuilder {
	for _, o := range others {
		b.code.WriteString(o.code.String())
	}

	return b
}

// Len returns the size of built text in bytes.
func (b *GCodeBuilder) Len() int {
	return b.code.Len()
}

// String returns built GCode.
func (b *GCodeBuilder) String() string {
	return b.code.String()
}
