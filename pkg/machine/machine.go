// Package machine holds machine presets: travel limits, units and the G-code
// blocks a post-processor wraps around a job.
package machine

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

//go:embed machines.hcl
var machines []byte

// DefaultID is the preset used when none is requested.
const DefaultID = "marlin"

var (
	ErrUnknownMachine = errors.New("unknown machine")
	ErrInvalidMachine = errors.New("invalid machine definition")
)

// Machine represents a machine preset.
type Machine struct {
	ID          string `hcl:"id,label"`
	Name        string `hcl:"name"`
	Description string `hcl:"description,optional"`
	// Units is "Metric" or "Imperial" (the metric/imperial variables).
	Units string `hcl:"units,optional"`

	// CornerMin and CornerMax are travel limits as [x, y, z].
	CornerMin []float64 `hcl:"corner_min,optional"`
	CornerMax []float64 `hcl:"corner_max,optional"`

	Preamble      string `hcl:"preamble,optional"`
	Postamble     string `hcl:"postamble,optional"`
	PreOperation  string `hcl:"pre_operation,optional"`
	PostOperation string `hcl:"post_operation,optional"`
	ToolChange    string `hcl:"tool_change,optional"`

	SuppressCommands []string `hcl:"suppress_commands,optional"`
	RapidMoves       []string `hcl:"rapid_moves,optional"`
}

type fileRoot struct {
	Machines []*Machine `hcl:"machine,block"`
	Remain   hcl.Body   `hcl:",remain"`
}

// evalContext provides the names usable in a preset file.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"metric":   cty.StringVal("Metric"),
			"imperial": cty.StringVal("Imperial"),
		},
	}
}

// Decode parses HCL preset definitions. filename is used in diagnostics only.
func Decode(src []byte, filename string) ([]*Machine, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, diags)
	}

	for _, m := range root.Machines {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}

	return root.Machines, nil
}

// LoadFile reads presets from an HCL file.
func LoadFile(path string) ([]*Machine, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(src, path)
}

// Validate checks the preset.
func (m *Machine) Validate() error {
	if m.CornerMin != nil && len(m.CornerMin) != 3 {
		return fmt.Errorf("%w %q: corner_min needs 3 values, got %d", ErrInvalidMachine, m.ID, len(m.CornerMin))
	}

	if m.CornerMax != nil && len(m.CornerMax) != 3 {
		return fmt.Errorf("%w %q: corner_max needs 3 values, got %d", ErrInvalidMachine, m.ID, len(m.CornerMax))
	}

	switch m.Units {
	case "", "Metric", "Imperial":
	default:
		return fmt.Errorf("%w %q: units must be metric or imperial, got %q", ErrInvalidMachine, m.ID, m.Units)
	}

	return nil
}

// Builtin returns the embedded presets.
func Builtin() ([]*Machine, error) {
	return Decode(machines, "machines.hcl")
}

// Find returns the machine with id from list.
func Find(list []*Machine, id string) (*Machine, error) {
	for _, m := range list {
		if m.ID == id {
			return m, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMachine, id)
}

// Get returns an embedded preset.
func Get(id string) (*Machine, error) {
	list, err := Builtin()
	if err != nil {
		return nil, err
	}

	return Find(list, id)
}
