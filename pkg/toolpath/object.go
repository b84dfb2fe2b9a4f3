// Package toolpath describes the tree of objects a post-processor consumes:
// groups nesting paths, paths holding motion commands, and auxiliary objects
// like the machine definition or the stock.
package toolpath

import (
	"fmt"
	"sort"
	"strings"
)

// MachineName is the object name the post-processor looks for
// when it searches a job for the machine definition.
const MachineName = "Machine"

// ClearanceZ is the parameter letter of a Z height that is written as is,
// outside the job's coordinate normalization.
const ClearanceZ = "z"

// UnitsMetric is the machine units value that selects G21.
// Anything else selects G20.
const UnitsMetric = "Metric"

// Object is a node of the tool-path tree.
type Object interface {
	Kind() Kind
	// Name is the internal, unique-ish identifier.
	Name() string
	// Label is the user visible name. It defaults to Name.
	Label() string
}

type base struct {
	name, label string
}

func (b base) Name() string {
	return b.name
}

func (b base) Label() string {
	if b.label == "" {
		return b.name
	}

	return b.label
}

// Command is a single machine command, e.g. G1 X10 Y5 F3.
// Parameter values are in the host's units (mm and mm/s).
type Command struct {
	Name   string
	Params map[string]float64
}

// NewCommand creates a command. params may be nil.
func NewCommand(name string, params map[string]float64) Command {
	if params == nil {
		params = make(map[string]float64)
	}

	return Command{
		Name:   name,
		Params: params,
	}
}

// Param returns a parameter value and whether it is present.
func (c Command) Param(letter string) (float64, bool) {
	v, ok := c.Params[letter]
	return v, ok
}

// IsComment reports whether the command is a host comment like "(Profile)".
func (c Command) IsComment() bool {
	return strings.HasPrefix(c.Name, "(")
}

// String returns a debug representation with parameters sorted by letter.
func (c Command) String() string {
	letters := make([]string, 0, len(c.Params))
	for l := range c.Params {
		letters = append(letters, l)
	}

	sort.Strings(letters)

	result := c.Name
	for _, l := range letters {
		result += fmt.Sprintf(" %s%v", l, c.Params[l])
	}

	return result
}

// Path is an ordered sequence of commands.
type Path struct {
	base
	Commands []Command
}

// NewPath creates a new path.
func NewPath(name, label string, commands ...Command) *Path {
	return &Path{
		base:     base{name, label},
		Commands: commands,
	}
}

func (p *Path) Kind() Kind {
	return KindPath
}

// Push appends commands to the path.
func (p *Path) Push(commands ...Command) *Path {
	p.Commands = append(p.Commands, commands...)
	return p
}

// Group holds child objects. Groups may nest.
type Group struct {
	base
	children []Object
}

// NewGroup creates a new group.
func NewGroup(name, label string, children ...Object) *Group {
	return &Group{
		base:     base{name, label},
		children: children,
	}
}

func (g *Group) Kind() Kind {
	return KindGroup
}

// Add appends children to the group.
func (g *Group) Add(children ...Object) *Group {
	g.children = append(g.children, children...)
	return g
}

// Children returns the group content in order.
func (g *Group) Children() []Object {
	return g.children
}

// Machine is the machine definition of a job.
type Machine struct {
	base
	units string
}

// NewMachine creates a machine definition object named MachineName.
func NewMachine(units string) *Machine {
	return &Machine{
		base:  base{name: MachineName},
		units: units,
	}
}

func (m *Machine) Kind() Kind {
	return KindMachine
}

// Units returns machine units (e.g. "Metric").
func (m *Machine) Units() string {
	return m.units
}

// Stock describes raw material. The post-processor ignores it.
type Stock struct {
	base
}

// NewStock creates a stock object.
func NewStock(name, label string) *Stock {
	return &Stock{base{name, label}}
}

func (s *Stock) Kind() Kind {
	return KindStock
}

// IsPathish reports whether o can be exported directly (is a Path or a Group).
func IsPathish(o Object) bool {
	switch o.Kind() {
	case KindPath, KindGroup:
		return true
	}

	return false
}
