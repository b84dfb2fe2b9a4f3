package marlinpost

import (
	"fmt"

	"github.com/gucio321/marlinpost/pkg/gcb"
)

// Axis is one of the linear axes tracked by Stats.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	numAxes
)

func (a Axis) String() string {
	return [...]string{"X", "Y", "Z"}[a]
}

func axisOf(letter string) (Axis, bool) {
	switch letter {
	case "X":
		return AxisX, true
	case "Y":
		return AxisY, true
	case "Z":
		return AxisZ, true
	}

	return 0, false
}

const (
	// ZClearance is where the top of the Z travel ends up after normalization.
	ZClearance = 5

	// extents start from these and only grow
	initialMin = 10000
	initialMax = 0
)

// Extent is a min/max pair.
type Extent struct {
	Min, Max float64
}

func newExtent() Extent {
	return Extent{Min: initialMin, Max: initialMax}
}

func (e *Extent) observe(v float64) {
	if e.Min > v {
		e.Min = v
	}

	if e.Max < v {
		e.Max = v
	}
}

// Stats collects travel extents and command counts of a single export.
// Raw extents are measured on the input coordinates. Normalized extents are
// measured on the emitted coordinates: X and Y shifted so that the raw
// minimum becomes 0, Z shifted so that the raw maximum becomes ZClearance.
type Stats struct {
	Raw        [numAxes]Extent
	Normalized [numAxes]Extent

	order  []string
	counts map[string]int
}

// NewStats creates empty Stats.
func NewStats() *Stats {
	s := &Stats{
		counts: make(map[string]int),
	}

	for a := range s.Raw {
		s.Raw[a] = newExtent()
		s.Normalized[a] = newExtent()
	}

	return s
}

// Measure records v in the raw frame.
func (s *Stats) Measure(axis Axis, v float64) {
	s.Raw[axis].observe(v)
}

// Normalize maps v into the normalized frame, records it there and returns it.
// Call after all raw values are measured.
func (s *Stats) Normalize(axis Axis, v float64) float64 {
	if axis == AxisZ {
		v -= s.Raw[axis].Max - ZClearance
	} else {
		v -= s.Raw[axis].Min
	}

	s.Normalized[axis].observe(v)

	return v
}

// Tally counts one occurrence of command.
func (s *Stats) Tally(command string) {
	if _, ok := s.counts[command]; !ok {
		s.order = append(s.order, command)
	}

	s.counts[command]++
}

// Count returns how many times command was tallied.
func (s *Stats) Count(command string) int {
	return s.counts[command]
}

// Commands returns tallied commands in order of first occurrence.
func (s *Stats) Commands() []string {
	return s.order
}

// Span returns the normalized travel length along axis.
func (s *Stats) Span(axis Axis) float64 {
	return s.Normalized[axis].Max - s.Normalized[axis].Min
}

// Write writes the statistics comment block.
func (s *Stats) Write(b *gcb.GCodeBuilder, precision int) {
	for a := AxisX; a < numAxes; a++ {
		b.RawComment(fmt.Sprintf("%smin is %s ==> %s", a, formatFloat(s.Raw[a].Min, precision), formatFloat(s.Normalized[a].Min, precision)))
		b.RawComment(fmt.Sprintf("%smax is %s ==> %s", a, formatFloat(s.Raw[a].Max, precision), formatFloat(s.Normalized[a].Max, precision)))
	}

	b.Separator()
	b.RawComment("GCode Commands detected:")
	b.Separator()

	for _, c := range s.order {
		b.RawComment(fmt.Sprintf("%s detected, count is %d", c, s.counts[c]))
	}

	b.Separator()
}

func formatFloat(v float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, v)
}
