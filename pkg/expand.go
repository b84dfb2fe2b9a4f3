package marlinpost

import (
	"github.com/gucio321/marlinpost/pkg/gcb"
	"github.com/gucio321/marlinpost/pkg/toolpath"
)

// ParamClearanceZ is a Z word written as is: it is not normalized and not
// measured. Expanded cycles use it for their fixed clearance heights.
// It is emitted as "Z".
const ParamClearanceZ = toolpath.ClearanceZ

const (
	drillClearance = 5
	drillPlunge    = -5
	drillApproach  = 0
)

// Expander replaces a command Marlin does not understand with a
// sequence of commands it does.
type Expander func(c toolpath.Command) []toolpath.Command

// Expanders lists the commands replaced in the command stream.
// The replaced command stays in the output as a commented marker line.
var Expanders = map[gcb.GCode]Expander{
	gcb.G81: EmulateDrill,
}

// EmulateDrill expands a G81 drilling cycle:
// retract, plunge, approach, drill to depth, retract.
func EmulateDrill(c toolpath.Command) []toolpath.Command {
	at := func(name gcb.GCode, zParam string, z float64) toolpath.Command {
		params := map[string]float64{zParam: z}
		for _, p := range []string{"X", "Y"} {
			if v, ok := c.Param(p); ok {
				params[p] = v
			}
		}

		return toolpath.NewCommand(string(name), params)
	}

	result := []toolpath.Command{
		at(gcb.G0, ParamClearanceZ, drillClearance),
		at(gcb.G1, ParamClearanceZ, drillPlunge),
		at(gcb.G1, ParamClearanceZ, drillApproach),
	}

	if depth, ok := c.Param("Z"); ok {
		result = append(result, at(gcb.G1, "Z", depth))
	}

	return append(result, at(gcb.G0, ParamClearanceZ, drillClearance))
}

// markerName returns the commented-out name an expanded command leaves behind.
func markerName(name string) string {
	return gcb.CommentPrefix + "(" + name + ")"
}

func isMarker(name string) bool {
	return len(name) > 0 && name[:1] == gcb.CommentPrefix
}

// expandCommands returns the command stream of path with expandable
// commands substituted.
func expandCommands(path *toolpath.Path) []toolpath.Command {
	result := make([]toolpath.Command, 0, len(path.Commands))
	for _, c := range path.Commands {
		expand, ok := Expanders[gcb.GCode(c.Name)]
		if !ok {
			result = append(result, c)
			continue
		}

		result = append(result, toolpath.NewCommand(markerName(c.Name), c.Params))
		result = append(result, expand(c)...)
	}

	return result
}
