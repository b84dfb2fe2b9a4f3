// Package svgimport turns SVG drawings into tool paths, so a drawing can be
// engraved without a CAM application.
package svgimport

import (
	"errors"
	"fmt"

	"github.com/kpango/glg"
	"github.com/rustyoz/svg"

	"github.com/gucio321/marlinpost/pkg/gcb"
	"github.com/gucio321/marlinpost/pkg/toolpath"
)

var ErrNoInstructions = errors.New("svg drawing produced no instruction channels")

// Options for the import. Distances are in mm, feeds in mm/s.
type Options struct {
	Label string
	Scale float64
	// SafeZ is the travel height.
	SafeZ float64
	// CutZ is the drawing/engraving height.
	CutZ       float64
	FeedRate   float64
	PlungeRate float64
	// CurveSteps is the number of segments a curve or circle is split into.
	CurveSteps int
}

// DefaultOptions returns sane options for pen plotting.
func DefaultOptions() Options {
	return Options{
		Label:      "svg",
		Scale:      1,
		SafeZ:      5,
		CutZ:       -1,
		FeedRate:   20,
		PlungeRate: 5,
		CurveSteps: 10,
	}
}

// Importer builds a path from drawing instructions.
type Importer struct {
	opt       Options
	path      *toolpath.Path
	current   Point
	start     Point
	isDrawing bool
}

// NewImporter creates new Importer.
func NewImporter(opt Options) *Importer {
	if opt.Scale == 0 {
		opt.Scale = 1
	}

	return &Importer{
		opt:  opt,
		path: toolpath.NewPath(opt.Label, opt.Label),
	}
}

// Path returns the built path.
func (i *Importer) Path() *toolpath.Path {
	return i.path
}

// Import reads all drawing instructions from s.
func (i *Importer) Import(s *svg.Svg) error {
	i.path.Push(toolpath.NewCommand(fmt.Sprintf("(svg import of %s)", i.opt.Label), nil))
	i.up()

	parsedData, parsedErr := s.ParseDrawingInstructions()
	if parsedData == nil && parsedErr == nil {
		return ErrNoInstructions
	}

reading:
	for {
		select {
		case cmd, ok := <-parsedData:
			if !ok || cmd == nil {
				break reading
			}

			if err := i.instruction(cmd); err != nil {
				return err
			}
		case err, ok := <-parsedErr:
			if !ok {
				parsedErr = nil
				continue
			}

			if err != nil {
				return fmt.Errorf("cant parse drawing instructions: %w", err)
			}
		}
	}

	i.up()

	return nil
}

func (i *Importer) instruction(cmd *svg.DrawingInstruction) error {
	switch cmd.Kind {
	case svg.MoveInstruction:
		if cmd.M == nil {
			return nil
		}

		i.moveTo(i.scaled(cmd.M[0], cmd.M[1]))
	case svg.LineInstruction:
		if cmd.M == nil {
			return nil
		}

		i.lineTo(i.scaled(cmd.M[0], cmd.M[1]))
	case svg.CurveInstruction:
		if cmd.CurvePoints == nil || cmd.CurvePoints.C1 == nil || cmd.CurvePoints.C2 == nil || cmd.CurvePoints.T == nil {
			return nil
		}

		cp := cmd.CurvePoints
		points := flattenBezier(i.opt.CurveSteps,
			i.current,
			i.scaled(cp.C1[0], cp.C1[1]),
			i.scaled(cp.C2[0], cp.C2[1]),
			i.scaled(cp.T[0], cp.T[1]),
		)

		for _, p := range points {
			i.lineTo(p)
		}
	case svg.CircleInstruction:
		if cmd.M == nil || cmd.Radius == nil {
			return nil
		}

		points := flattenCircle(i.opt.CurveSteps, i.scaled(cmd.M[0], cmd.M[1]), *cmd.Radius*i.opt.Scale)
		i.moveTo(points[0])
		for _, p := range points[1:] {
			i.lineTo(p)
		}
	case svg.CloseInstruction:
		if i.isDrawing && i.current != i.start {
			i.lineTo(i.start)
		}
	case svg.PaintInstruction:
		glg.Debug("Paint ignored")
	}

	return nil
}

func (i *Importer) scaled(x, y float64) Point {
	return Pt(x, y).Mul(i.opt.Scale)
}

// up stops active drawing
func (i *Importer) up() {
	i.path.Push(toolpath.NewCommand(string(gcb.G0), map[string]float64{"Z": i.opt.SafeZ}))
	i.isDrawing = false
}

// down starts drawing at the current position
func (i *Importer) down() {
	i.path.Push(toolpath.NewCommand(string(gcb.G1), map[string]float64{"Z": i.opt.CutZ, "F": i.opt.PlungeRate}))
	i.isDrawing = true
}

func (i *Importer) moveTo(p Point) {
	if i.isDrawing {
		i.up()
	}

	i.path.Push(toolpath.NewCommand(string(gcb.G0), map[string]float64{"X": p.X, "Y": p.Y}))
	i.current, i.start = p, p
}

func (i *Importer) lineTo(p Point) {
	if !i.isDrawing {
		i.down()
	}

	i.path.Push(toolpath.NewCommand(string(gcb.G1), map[string]float64{"X": p.X, "Y": p.Y, "F": i.opt.FeedRate}))
	i.current = p
}
