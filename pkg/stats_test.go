package marlinpost

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gucio321/marlinpost/pkg/gcb"
)

func TestStats_Normalize(t *testing.T) {
	s := NewStats()
	for _, v := range []float64{10, 30} {
		s.Measure(AxisX, v)
	}

	for _, v := range []float64{-3, 15} {
		s.Measure(AxisZ, v)
	}

	assert.InDelta(t, 0, s.Normalize(AxisX, 10), 1e-9)
	assert.InDelta(t, 20, s.Normalize(AxisX, 30), 1e-9)
	assert.InDelta(t, ZClearance, s.Normalize(AxisZ, 15), 1e-9)
	assert.InDelta(t, -13, s.Normalize(AxisZ, -3), 1e-9)

	assert.Equal(t, Extent{0, 20}, s.Normalized[AxisX])
	assert.InDelta(t, 20, s.Span(AxisX), 1e-9)
	assert.InDelta(t, 18, s.Span(AxisZ), 1e-9)
}

func TestStats_InitialExtents(t *testing.T) {
	s := NewStats()
	s.Measure(AxisY, 20000)

	assert.Equal(t, Extent{Min: 10000, Max: 20000}, s.Raw[AxisY], "min starts high")
	assert.Equal(t, Extent{Min: 10000, Max: 0}, s.Raw[AxisX])
}

func TestStats_Tally(t *testing.T) {
	s := NewStats()
	for _, c := range []string{"G1", "G0", "G1", "M6", "G1"} {
		s.Tally(c)
	}

	assert.Equal(t, []string{"G1", "G0", "M6"}, s.Commands())
	assert.Equal(t, 3, s.Count("G1"))
	assert.Equal(t, 0, s.Count("G2"))
}

func TestStats_Write(t *testing.T) {
	s := NewStats()
	s.Measure(AxisX, 1)
	s.Normalize(AxisX, 1)
	s.Tally("G0")

	b := gcb.NewGCodeBuilder().SetLineNumbers(true)
	s.Write(b, 1)

	assert.Equal(t, `;(Xmin is 1.0 ==> 0.0)
;(Xmax is 1.0 ==> 0.0)
;(Ymin is 10000.0 ==> 10000.0)
;(Ymax is 0.0 ==> 0.0)
;(Zmin is 10000.0 ==> 10000.0)
;(Zmax is 0.0 ==> 0.0)

;(GCode Commands detected:)

;(G0 detected, count is 1)

`, b.String())
}
