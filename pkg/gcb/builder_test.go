package gcb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCodeBuilder_Line(t *testing.T) {
	b := NewGCodeBuilder()

	b.Line("G1", "X1", "", "Y2").
		Line("").
		Line("  G0   Z5  ")

	assert.Equal(t, "G1 X1 Y2\nG0 Z5\n", b.String())
}

func TestGCodeBuilder_LineNumbers(t *testing.T) {
	b := NewGCodeBuilder().SetLineNumbers(true)

	b.Line("G90").
		Comment("hello").
		Raw("unnumbered").
		Separator().
		Line("G21")

	assert.Equal(t, "N110 G90\nN120 ;(hello)\nunnumbered\n\nN130 G21\n", b.String())
}

func TestGCodeBuilder_Verbatim(t *testing.T) {
	b := NewGCodeBuilder().SetLineNumbers(true)

	b.Verbatim("(two  spaces)").Verbatim("   ").Line("(two  spaces)")

	assert.Equal(t, "N110 (two  spaces)\nN120 (two spaces)\n", b.String())
}

func TestGCodeBuilder_Section(t *testing.T) {
	// --- Arrange ---
	head := NewGCodeBuilder().SetLineNumbers(true)
	head.Line("G90")

	// --- Act ---
	body := head.Section()
	body.Line("G0 X1")

	tail := head.Section()
	tail.Line("M5")

	stats := head.Section()
	stats.RawComment("stats")

	head.Append(stats, body, tail)

	// --- Assert ---
	assert.Equal(t, "N110 G90\n;(stats)\nN120 G0 X1\nN130 M5\n", head.String())
	assert.Equal(t, len(head.String()), head.Len())
}

func TestGCodeBuilder_Text(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected string
	}{
		{"empty", "", ""},
		{"trailing newline", "M5\nG0 Z20\n", "N110 M5\nN120 G0 Z20\n"},
		{"no trailing newline", "M5", "N110 M5\n"},
		{"blank line", "M5\n\nM2", "N110 M5\n\nN120 M2\n"},
		{"commented line", "; M2\n", "N110 ; M2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewGCodeBuilder().SetLineNumbers(true)

			b.Text(tt.block)

			assert.Equal(t, tt.expected, b.String())
		})
	}
}
