// Package marlinpost converts tool-path objects into G-code for the Marlin
// controller.
package marlinpost

import (
	"github.com/gucio321/marlinpost/pkg/gcb"
	"github.com/gucio321/marlinpost/pkg/machine"
	"github.com/gucio321/marlinpost/pkg/toolpath"
)

// PostProcessorName is written to the output header.
const PostProcessorName = "marlin_post"

// DefaultExporter is the header "Exported by" value.
const DefaultExporter = "marlinpost"

// DefaultPreamble is issued before the first command.
const DefaultPreamble = `G90
G92 X0 Y0 Z0
`

// DefaultPostamble is issued after the last operation.
const DefaultPostamble = `M5
G0 Z20
G0 X0 Y0
; M2
`

const (
	DefaultPrecision = 4
	DefaultMachine   = "MARLIN"
)

// ParamOrder controls the order of words in an emitted line.
// K is left out on purpose: Marlin does not want K on XY plane arcs.
var ParamOrder = []string{"X", "Y", "Z", ParamClearanceZ, "A", "B", "I", "J", "F", "S", "T", "Q", "R", "L"}

// Corner is a position of a machine travel limit.
type Corner struct {
	X, Y, Z float64
}

// Config holds output preferences. The zero value is not useful; use DefaultConfig.
type Config struct {
	OutputHeader      bool
	OutputComments    bool
	OutputLineNumbers bool
	// OutputToolChange enables M6 output. When false every M6 is commented out.
	OutputToolChange bool
	ShowEditor       bool
	// Modal omits the command word if it is the same as on the previous line.
	Modal bool

	// SuppressToolChange is the number of leading tool changes commented out
	// even if OutputToolChange is set (1 skips the initial tool).
	SuppressToolChange int

	Precision int

	// Units is the fallback units word when the job has no machine object.
	Units gcb.GCode

	Exporter    string
	MachineName string
	CornerMin   Corner
	CornerMax   Corner

	Preamble  string
	Postamble string
	// PreOperation/PostOperation are inserted before/after every operation.
	PreOperation  string
	PostOperation string
	// ToolChange is inserted before an emitted tool change.
	ToolChange string

	// SuppressCommands are commented out.
	SuppressCommands []gcb.GCode
	// RapidMoves never get a feed rate.
	RapidMoves []gcb.GCode
}

// DefaultConfig returns the Marlin defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputHeader:      true,
		OutputComments:    true,
		OutputLineNumbers: false,
		OutputToolChange:  false,
		ShowEditor:        true,
		Modal:             false,
		Precision:         DefaultPrecision,
		Units:             gcb.G21,
		Exporter:          DefaultExporter,
		MachineName:       DefaultMachine,
		CornerMin:         Corner{0, 0, 0},
		CornerMax:         Corner{500, 300, 300},
		Preamble:          DefaultPreamble,
		Postamble:         DefaultPostamble,
		SuppressCommands:  []gcb.GCode{gcb.G98, gcb.G80},
		RapidMoves:        []gcb.GCode{gcb.G0, gcb.G00},
	}
}

// ConfigFromMachine returns DefaultConfig overridden by the preset's values.
// Empty preset fields keep the defaults.
func ConfigFromMachine(m *machine.Machine) *Config {
	c := DefaultConfig()
	if m.Name != "" {
		c.MachineName = m.Name
	}

	if m.Units != "" {
		c.Units = UnitsWord(m.Units)
	}

	if len(m.CornerMin) == 3 {
		c.CornerMin = Corner{m.CornerMin[0], m.CornerMin[1], m.CornerMin[2]}
	}

	if len(m.CornerMax) == 3 {
		c.CornerMax = Corner{m.CornerMax[0], m.CornerMax[1], m.CornerMax[2]}
	}

	if m.Preamble != "" {
		c.Preamble = m.Preamble
	}

	if m.Postamble != "" {
		c.Postamble = m.Postamble
	}

	c.PreOperation = m.PreOperation
	c.PostOperation = m.PostOperation
	c.ToolChange = m.ToolChange

	if m.SuppressCommands != nil {
		c.SuppressCommands = codes(m.SuppressCommands)
	}

	if m.RapidMoves != nil {
		c.RapidMoves = codes(m.RapidMoves)
	}

	return c
}

// UnitsWord returns G21 for metric machine units and G20 otherwise.
func UnitsWord(units string) gcb.GCode {
	if units == toolpath.UnitsMetric {
		return gcb.G21
	}

	return gcb.G20
}

// SetToolChangeMode applies a tool change mode:
// 0 - suppress all tool changes,
// 1 - emit M6 for all tool changes,
// 2 - emit M6 for all tool changes except the initial tool.
func (c *Config) SetToolChangeMode(mode int) {
	c.OutputToolChange = mode > 0
	c.SuppressToolChange = min(1, mode-1)
}

func (c *Config) isRapid(code gcb.GCode) bool {
	return contains(c.RapidMoves, code)
}

func (c *Config) isSuppressed(code gcb.GCode) bool {
	return contains(c.SuppressCommands, code)
}

func contains(list []gcb.GCode, code gcb.GCode) bool {
	for _, c := range list {
		if c == code {
			return true
		}
	}

	return false
}

func codes(s []string) []gcb.GCode {
	result := make([]gcb.GCode, len(s))
	for i, c := range s {
		result[i] = gcb.GCode(c)
	}

	return result
}
