package marlinpost

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kpango/glg"

	"github.com/gucio321/marlinpost/pkg/editor"
	"github.com/gucio321/marlinpost/pkg/gcb"
	"github.com/gucio321/marlinpost/pkg/toolpath"
)

// OutputTimeLayout is how the header prints the export time.
const OutputTimeLayout = "2006-01-02 15:04:05.000000"

// Processor exports tool paths as Marlin G-code.
// Its Config persists between exports; argument strings passed to Export
// modify it. A Processor is not safe for concurrent use.
type Processor struct {
	Config *Config
	// Editor, if set and available, is shown the output before it is written
	// (see Config.ShowEditor).
	Editor editor.Editor
	// Now returns the time printed in the header.
	Now func() time.Time
}

// NewProcessor creates a Processor with DefaultConfig.
func NewProcessor() *Processor {
	return NewProcessorWithConfig(DefaultConfig())
}

// NewProcessorWithConfig creates a Processor using cfg.
func NewProcessorWithConfig(cfg *Config) *Processor {
	return &Processor{
		Config: cfg,
		Now:    time.Now,
	}
}

// SetEditor sets editor used before writing output.
func (p *Processor) SetEditor(e editor.Editor) *Processor {
	p.Editor = e
	return p
}

// Export applies argstring to the configuration, converts objects to G-code
// and writes it to filename. It returns the written text.
// Every object must be a Path or a Group.
func (p *Processor) Export(ctx context.Context, objects []toolpath.Object, filename, argstring string) (string, error) {
	if err := p.Config.ApplyArgs(argstring); err != nil {
		glg.Errorf("Cannot process arguments %q: %v", argstring, err)
		return "", err
	}

	for _, obj := range objects {
		if !toolpath.IsPathish(obj) {
			glg.Errorf("the object %s is not a path. Please select only path and Compounds.", obj.Name())
			return "", fmt.Errorf("%w: %s", ErrNotAPath, obj.Name())
		}
	}

	glg.Info("postprocessing...")

	gcode := p.Render(objects)
	final := gcode

	if p.Config.ShowEditor && p.Editor != nil && p.Editor.Available() {
		edited, accepted, err := p.Editor.Edit(ctx, gcode)
		switch {
		case err != nil:
			glg.Warnf("Editor failed, writing unedited output: %v", err)
		case accepted:
			final = edited
		}
	}

	glg.Info("done postprocessing.")

	if err := os.WriteFile(filename, []byte(final), 0o644); err != nil {
		return "", fmt.Errorf("cant write %s: %w", filename, err)
	}

	return final, nil
}

// Render converts objects to G-code text using the current configuration.
// Objects that are neither paths nor groups produce no output.
func (p *Processor) Render(objects []toolpath.Object) string {
	r := newRun(p.Config)

	head := gcb.NewGCodeBuilder().SetLineNumbers(r.cfg.OutputLineNumbers)

	units := findUnits(objects, r.cfg.Units)

	// 1.0: header
	if r.cfg.OutputHeader {
		head.Comment("Exported by " + r.cfg.Exporter)
		head.Comment("Post Processor: " + PostProcessorName)
		head.Comment("Output Time:" + p.now().Format(OutputTimeLayout))
	}

	// 1.1: preamble
	if r.cfg.OutputComments {
		head.Comment("begin preamble")
	}

	head.Text(r.cfg.Preamble)
	head.Line(string(units))

	if r.cfg.OutputComments {
		head.RawComment("end preamble")
	}

	head.Separator()

	// 2.0: bounds only
	for _, obj := range objects {
		r.measure(obj)
	}

	// 2.1: body
	body := head.Section()
	for _, obj := range objects {
		if r.cfg.OutputComments {
			body.Comment("begin operation: " + obj.Label())
		}

		body.Text(r.cfg.PreOperation)

		r.emit(body, obj)

		if r.cfg.OutputComments {
			body.Comment("finish operation: " + obj.Label())
		}

		body.Text(r.cfg.PostOperation)
	}

	r.checkTravel()

	// 3.0: postamble
	post := head.Section()
	if r.cfg.OutputComments {
		post.RawComment("begin postamble")
	}

	post.Text(r.cfg.Postamble)

	// 4.0: assemble
	stats := head.Section()
	r.stats.Write(stats, r.cfg.Precision)

	return head.Append(stats, body, post).String()
}

func (p *Processor) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}

	return p.Now()
}

// findUnits looks for the machine object among direct members of the
// top-level groups.
func findUnits(objects []toolpath.Object, fallback gcb.GCode) gcb.GCode {
	var found *toolpath.Machine
	for _, obj := range objects {
		group, ok := obj.(*toolpath.Group)
		if !ok {
			continue
		}

		for _, child := range group.Children() {
			if m, ok := child.(*toolpath.Machine); ok && child.Name() == toolpath.MachineName {
				found = m
			}
		}
	}

	if found == nil {
		glg.Warn("No machine found in this project")
		return fallback
	}

	return UnitsWord(found.Units())
}

// run is the state of a single Render.
type run struct {
	cfg   *Config
	stats *Stats

	// remaining tool changes to comment out
	suppressToolChange int
	lastCommand        string
}

func newRun(cfg *Config) *run {
	return &run{
		cfg:                cfg,
		stats:              NewStats(),
		suppressToolChange: cfg.SuppressToolChange,
	}
}

// measure walks obj updating raw extents only.
func (r *run) measure(obj toolpath.Object) {
	switch o := obj.(type) {
	case *toolpath.Group:
		for _, child := range o.Children() {
			r.measure(child)
		}
	case *toolpath.Path:
		for _, c := range expandCommands(o) {
			for letter, v := range c.Params {
				if axis, ok := axisOf(letter); ok {
					r.stats.Measure(axis, v)
				}
			}
		}
	}
}

// emit walks obj writing its commands to b.
func (r *run) emit(b *gcb.GCodeBuilder, obj toolpath.Object) {
	switch o := obj.(type) {
	case *toolpath.Group:
		glg.Debugf("entering compound %s with %d members", o.Label(), len(o.Children()))

		if r.cfg.OutputComments {
			b.Comment("compound: " + o.Label())
		}

		for _, child := range o.Children() {
			r.emit(b, child)
		}
	case *toolpath.Path:
		glg.Debugf("emitting path %s (%d commands)", o.Label(), len(o.Commands))

		// every path starts with an explicit command word
		r.lastCommand = ""

		if r.cfg.OutputComments {
			b.Comment("Path: " + o.Label())
		}

		for _, c := range expandCommands(o) {
			r.emitCommand(b, c)
		}
	default:
		// groups might contain non-path things like stock or the machine.
	}
}

func (r *run) emitCommand(b *gcb.GCodeBuilder, c toolpath.Command) {
	code := gcb.GCode(c.Name)

	// host comments go out as written, whatever OutputComments says
	if c.IsComment() {
		r.lastCommand = c.Name
		b.Verbatim(c.Name)
		return
	}

	if !isMarker(c.Name) && code != gcb.Message {
		r.stats.Tally(c.Name)
	}

	words := []string{c.Name}
	if r.cfg.Modal && c.Name == r.lastCommand {
		words = words[:0]
	}

	for _, param := range ParamOrder {
		v, ok := c.Param(param)
		if !ok {
			continue
		}

		switch param {
		case "F":
			if !r.cfg.isRapid(code) {
				// mm/s to mm/min
				words = append(words, param+strconv.FormatFloat(v*60, 'f', 2, 64))
			}
		case "T":
			words = append(words, param+strconv.Itoa(int(v)))
		default:
			if axis, ok := axisOf(param); ok {
				v = r.stats.Normalize(axis, v)
			}

			words = append(words, strings.ToUpper(param)+formatFloat(v, r.cfg.Precision))
		}
	}

	r.lastCommand = c.Name

	switch {
	case code == gcb.M6:
		if r.cfg.OutputComments {
			b.Comment("begin toolchange")
		}

		if !r.cfg.OutputToolChange || r.suppressToolChange > 0 {
			words = append([]string{gcb.CommentPrefix}, words...)
			r.suppressToolChange--
		} else {
			b.Text(r.cfg.ToolChange)
		}
	case code == gcb.Message:
		if !r.cfg.OutputComments {
			return
		}

		if len(words) > 0 && words[0] == c.Name {
			words = words[1:]
		}
	}

	if r.cfg.isSuppressed(code) {
		words = append([]string{gcb.CommentPrefix}, words...)
	}

	b.Line(words...)
}

// checkTravel warns when the job does not fit into the machine travel.
func (r *run) checkTravel() {
	limits := [numAxes]float64{
		r.cfg.CornerMax.X - r.cfg.CornerMin.X,
		r.cfg.CornerMax.Y - r.cfg.CornerMin.Y,
		r.cfg.CornerMax.Z - r.cfg.CornerMin.Z,
	}

	for a := AxisX; a < numAxes; a++ {
		if limits[a] <= 0 || r.stats.Normalized[a].Max < r.stats.Normalized[a].Min {
			continue
		}

		if span := r.stats.Span(a); span > limits[a] {
			glg.Warnf("%s travel of the job (%v) exceeds %s travel of %s (%v)", a, span, a, r.cfg.MachineName, limits[a])
		}
	}
}
