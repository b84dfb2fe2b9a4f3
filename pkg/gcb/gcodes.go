package gcb

// GCode represents a gcode (e.g. G0, G1, G91)
type GCode string

// list of gcodes. See https://marlinfw.org/docs/gcode/G000-G001.html
// We point out only codes the post-processor treats specially or emits itself.
const (
	// G0 is a rapid move
	G0 GCode = "G0"
	// G00 is G0 written the long way
	G00 GCode = "G00"
	// G1 is a linear (feed) move
	G1 GCode = "G1"
	// G2 and G3 are clockwise/counterclockwise arc moves
	G2 GCode = "G2"
	G3 GCode = "G3"
	// G20 sets inch units
	G20 GCode = "G20"
	// G21 sets millimeter units
	G21 GCode = "G21"
	// G80 cancels a canned cycle. Marlin does not know it.
	G80 GCode = "G80"
	// G81 is a drilling canned cycle. Marlin does not know it.
	G81 GCode = "G81"
	// G90 is absolute positioning
	G90 GCode = "G90"
	// G91 is relative positioning
	G91 GCode = "G91"
	// G98 is "return to initial Z" for canned cycles. Marlin does not know it.
	G98 GCode = "G98"
	// M5 stops the spindle
	M5 GCode = "M5"
	// M6 is a tool change
	M6 GCode = "M6"

	// Message is a host pseudo-command carrying an operator message.
	Message GCode = "message"

	GCodeRapid      = G0
	GCodeFeed       = G1
	GCodeToolChange = M6
	GCodeDrill      = G81
)

// IsMove reports whether the code moves the head.
func (c GCode) IsMove() bool {
	switch c {
	case G0, G00, G1, "G01", G2, "G02", G3, "G03":
		return true
	}

	return false
}

// IsRapid reports whether the code is a rapid (non-cutting) move.
func (c GCode) IsRapid() bool {
	return c == G0 || c == G00
}
