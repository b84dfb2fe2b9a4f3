package viewer

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"

	"github.com/gucio321/marlinpost/pkg/gcb"
)

var _ ebiten.Game = &Viewer{}

const (
	w, h   = 800, 600
	margin = 20
)

var (
	borderColor = colornames.White
	travelColor = colornames.Green
)

// Segment is a single straight move in absolute coordinates.
type Segment struct {
	From, To [3]float64
	Rapid    bool
}

// Trace follows commands and returns the moves they make.
// G90/G91 switch between absolute and relative positioning; G92 resets the
// position. Arcs are drawn as straight lines to their end point.
func Trace(cmds []gcb.Command) []Segment {
	var (
		result   []Segment
		pos      [3]float64
		relative bool
	)

	axes := [3]string{"X", "Y", "Z"}

	for _, cmd := range cmds {
		switch cmd.Code {
		case gcb.G90:
			relative = false
		case gcb.G91:
			relative = true
		case "G92":
			for i, a := range axes {
				if v, ok := cmd.Arg(a); ok {
					pos[i] = v
				}
			}
		default:
			if !cmd.Code.IsMove() {
				continue
			}

			next := pos
			for i, a := range axes {
				v, ok := cmd.Arg(a)
				if !ok {
					continue
				}

				if relative {
					next[i] += v
				} else {
					next[i] = v
				}
			}

			if next != pos {
				result = append(result, Segment{From: pos, To: next, Rapid: cmd.Code.IsRapid()})
			}

			pos = next
		}
	}

	return result
}

// Viewer creates in NewViewer an image of G-code moves and static displays it in ebiten.
type Viewer struct {
	scale    float64
	segments []Segment
	current  *ebiten.Image
}

func NewViewer(cmds []gcb.Command) *Viewer {
	result := &Viewer{
		scale:    1,
		segments: Trace(cmds),
	}

	result.current = result.render()
	return result
}

func (v *Viewer) bounds() (minP, maxP [3]float64) {
	for i := range minP {
		minP[i], maxP[i] = math.Inf(1), math.Inf(-1)
	}

	for _, s := range v.segments {
		for _, p := range [][3]float64{s.From, s.To} {
			for i := range p {
				minP[i] = math.Min(minP[i], p[i])
				maxP[i] = math.Max(maxP[i], p[i])
			}
		}
	}

	return minP, maxP
}

func (v *Viewer) render() *ebiten.Image {
	dest := ebiten.NewImage(w, h)
	dest.Fill(colornames.Black)

	if len(v.segments) == 0 {
		return dest
	}

	minP, maxP := v.bounds()
	scale := math.Min(
		(w-2*margin)/math.Max(maxP[0]-minP[0], 1),
		(h-2*margin)/math.Max(maxP[1]-minP[1], 1),
	)

	// y grows down on the screen
	project := func(p [3]float64) (float64, float64) {
		return margin + (p[0]-minP[0])*scale, h - margin - (p[1]-minP[1])*scale
	}

	x0, y0 := project(minP)
	x1, y1 := project(maxP)
	ebitenutil.DrawLine(dest, x0, y0, x1, y0, borderColor)
	ebitenutil.DrawLine(dest, x1, y0, x1, y1, borderColor)
	ebitenutil.DrawLine(dest, x1, y1, x0, y1, borderColor)
	ebitenutil.DrawLine(dest, x0, y1, x0, y0, borderColor)

	for _, s := range v.segments {
		var c color.Color = travelColor
		if !s.Rapid {
			c = depthColor(math.Min(s.From[2], s.To[2]), maxP[2], minP[2])
		}

		fx, fy := project(s.From)
		tx, ty := project(s.To)
		ebitenutil.DrawLine(dest, fx, fy, tx, ty, c)
	}

	return dest
}

func (v *Viewer) Update() error {
	_, wheelY := ebiten.Wheel()
	v.scale += wheelY * 0.1
	if v.scale < 1 {
		v.scale = 1
	}

	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	mouseX, mouseY := ebiten.CursorPosition()
	// negative check lol
	if mouseX < 0 {
		mouseX = 0
	}

	if mouseY < 0 {
		mouseY = 0
	}

	renderable := v.current.SubImage(image.Rect(
		int((v.scale-1)*float64(mouseX)/v.scale), int((v.scale-1)*float64(mouseY)/v.scale),
		w, h)).(*ebiten.Image)

	if renderable.Bounds().Dx() == 0 || renderable.Bounds().Dy() == 0 {
		renderable = v.current
	}

	geom := ebiten.GeoM{}
	geom.Scale(v.scale, v.scale)
	screen.DrawImage(renderable,
		&ebiten.DrawImageOptions{
			GeoM: geom,
		})
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return w, h
}
