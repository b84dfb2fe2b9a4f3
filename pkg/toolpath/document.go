package toolpath

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/gucio321/marlinpost/pkg/gcb"
)

var ErrUnknownObjectType = errors.New("unknown object type")

// Document is the on-disk form of a job: a list of top-level objects.
//
//	{"objects": [
//	  {"type": "group", "label": "Job", "group": [
//	    {"type": "machine", "units": "Metric"},
//	    {"type": "path", "label": "Profile", "commands": [
//	      "G0 X0 Y0 Z5",
//	      {"name": "G1", "params": {"X": 10, "F": 2.5}}
//	    ]}
//	  ]}
//	]}
type Document struct {
	Objects []Node `json:"objects"`
}

// Node is a single document object. Type may be omitted when it is
// obvious from the content (commands or group members present).
type Node struct {
	Type     string        `json:"type,omitempty"`
	Name     string        `json:"name,omitempty"`
	Label    string        `json:"label,omitempty"`
	Units    string        `json:"units,omitempty"`
	Commands []NodeCommand `json:"commands,omitempty"`
	Group    []Node        `json:"group,omitempty"`
}

// NodeCommand is a command written either as G-code text or as an object.
type NodeCommand struct {
	Command
}

func (n *NodeCommand) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}

		cmd, err := ParseCommand(text)
		if err != nil {
			return err
		}

		n.Command = cmd
		return nil
	}

	var obj struct {
		Name   string             `json:"name"`
		Params map[string]float64 `json:"params"`
	}

	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	n.Command = NewCommand(obj.Name, obj.Params)

	return nil
}

func (n NodeCommand) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name   string             `json:"name"`
		Params map[string]float64 `json:"params,omitempty"`
	}{n.Name, n.Params})
}

// ParseCommand parses a G-code text command like "G1 X10 F2".
// Host comments ("(Profile)") are kept whole as the command name.
// Codes and parameter letters are upper-cased, except the "message"
// pseudo command, which is always lower case, and the ClearanceZ word:
// "z5" is a clearance height, "Z5" a job coordinate.
func ParseCommand(text string) (Command, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "(") {
		return NewCommand(text, nil), nil
	}

	parsed, err := gcb.ParseLineKeepCase(text)
	if err != nil {
		return Command{}, fmt.Errorf("cant parse command %q: %w", text, err)
	}

	name := strings.ToUpper(string(parsed.Code))
	if strings.EqualFold(name, string(gcb.Message)) {
		name = string(gcb.Message)
	}

	result := NewCommand(name, nil)
	for _, arg := range parsed.Args {
		letter := arg.Name
		if letter != ClearanceZ {
			letter = strings.ToUpper(letter)
		}

		result.Params[letter] = arg.Value
	}

	return result, nil
}

// Decode decodes a JSON job document.
func Decode(data []byte) ([]Object, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cant decode document: %w", err)
	}

	return doc.Build()
}

// DecodeFile reads and decodes a JSON job document.
func DecodeFile(path string) ([]Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// Build converts document nodes into objects.
func (d *Document) Build() ([]Object, error) {
	result := make([]Object, 0, len(d.Objects))
	for i := range d.Objects {
		obj, err := d.Objects[i].Build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		result = append(result, obj)
	}

	return result, nil
}

// Build converts n (and its members) into an Object.
func (n *Node) Build() (Object, error) {
	kind, err := n.kind()
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindPath:
		path := NewPath(n.Name, n.Label)
		for _, c := range n.Commands {
			path.Push(c.Command)
		}

		return path, nil
	case KindGroup:
		group := NewGroup(n.Name, n.Label)
		for i := range n.Group {
			child, err := n.Group[i].Build()
			if err != nil {
				return nil, fmt.Errorf("%s member %d: %w", n.Label, i, err)
			}

			group.Add(child)
		}

		return group, nil
	case KindMachine:
		m := NewMachine(n.Units)
		if n.Name != "" {
			m.name = n.Name
		}

		m.label = n.Label

		return m, nil
	case KindStock:
		return NewStock(n.Name, n.Label), nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnknownObjectType, kind)
}

func (n *Node) kind() (Kind, error) {
	if n.Type != "" {
		kind, ok := KindEnum[strings.ToLower(n.Type)]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownObjectType, n.Type)
		}

		return kind, nil
	}

	switch {
	case n.Name == MachineName:
		return KindMachine, nil
	case len(n.Commands) > 0:
		return KindPath, nil
	case len(n.Group) > 0:
		return KindGroup, nil
	}

	return 0, fmt.Errorf("%w: cannot guess type of %q", ErrUnknownObjectType, n.Label)
}

// NewDocument converts objects back into their document form.
func NewDocument(objects ...Object) *Document {
	doc := &Document{}
	for _, o := range objects {
		doc.Objects = append(doc.Objects, nodeOf(o))
	}

	return doc
}

func nodeOf(o Object) Node {
	n := Node{
		Type:  o.Kind().String(),
		Name:  o.Name(),
		Label: o.Label(),
	}

	switch v := o.(type) {
	case *Path:
		for _, c := range v.Commands {
			n.Commands = append(n.Commands, NodeCommand{c})
		}
	case *Group:
		for _, c := range v.Children() {
			n.Group = append(n.Group, nodeOf(c))
		}
	case *Machine:
		n.Units = v.Units()
	}

	return n
}

// Encode writes objects as an indented JSON document.
func Encode(objects ...Object) ([]byte, error) {
	return json.MarshalIndent(NewDocument(objects...), "", "\t")
}
