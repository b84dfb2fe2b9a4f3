package svgimport

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gucio321/marlinpost/pkg/toolpath"
)

func TestFlattenBezier(t *testing.T) {
	// straight control polygon: all points must stay on the line
	points := flattenBezier(4, Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0))

	expected := []Point{{0.75, 0}, {1.5, 0}, {2.25, 0}, {3, 0}}
	if diff := cmp.Diff(expected, points, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("flattenBezier() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []Point{{3, 0}}, flattenBezier(0, Pt(0, 0), Pt(3, 0)))
}

func TestFlattenCircle(t *testing.T) {
	points := flattenCircle(4, Pt(1, 1), 2)

	require.Len(t, points, 5)
	expected := []Point{{3, 1}, {1, 3}, {-1, 1}, {1, -1}, {3, 1}}
	if diff := cmp.Diff(expected, points, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("flattenCircle() mismatch (-want +got):\n%s", diff)
	}

	for _, p := range flattenCircle(1, Pt(0, 0), 1) {
		assert.InDelta(t, 1, math.Hypot(p.X, p.Y), 1e-9)
	}
}

func TestImporter_PenUpAndDown(t *testing.T) {
	// --- Arrange ---
	opt := DefaultOptions()
	opt.Label = "test"
	opt.Scale = 2
	i := NewImporter(opt)

	// --- Act ---
	i.moveTo(i.scaled(1, 1))
	i.lineTo(i.scaled(2, 1))
	i.lineTo(i.scaled(2, 2))
	i.moveTo(i.scaled(0, 0))
	i.up()

	// --- Assert ---
	expected := []toolpath.Command{
		toolpath.NewCommand("G0", map[string]float64{"X": 2, "Y": 2}),
		toolpath.NewCommand("G1", map[string]float64{"Z": -1, "F": 5}),
		toolpath.NewCommand("G1", map[string]float64{"X": 4, "Y": 2, "F": 20}),
		toolpath.NewCommand("G1", map[string]float64{"X": 4, "Y": 4, "F": 20}),
		toolpath.NewCommand("G0", map[string]float64{"Z": 5}),
		toolpath.NewCommand("G0", map[string]float64{"X": 0, "Y": 0}),
		toolpath.NewCommand("G0", map[string]float64{"Z": 5}),
	}

	if diff := cmp.Diff(expected, i.Path().Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "test", i.Path().Label())
}

func TestNewImporter_ZeroScale(t *testing.T) {
	i := NewImporter(Options{Label: "x"})

	assert.Equal(t, Pt(3, 4), i.scaled(3, 4))
}

const testSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">
  <path d="M 10 10 L 50 10 L 50 50"/>
</svg>`

func TestParse(t *testing.T) {
	path, err := Parse([]byte(testSVG), DefaultOptions())
	require.NoError(t, err)

	require.NotEmpty(t, path.Commands)
	assert.True(t, path.Commands[0].IsComment())

	var cuts int
	for _, c := range path.Commands {
		if c.Name == "G1" {
			if _, ok := c.Param("X"); ok {
				cuts++
			}
		}
	}

	assert.Positive(t, cuts, "expected some cutting moves")

	last := path.Commands[len(path.Commands)-1]
	assert.Equal(t, "G0", last.Name, "import ends with the pen up")
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("<svg"), DefaultOptions())

	assert.Error(t, err)
}
