package svgimport

import (
	"github.com/rustyoz/svg"

	"github.com/gucio321/marlinpost/pkg/toolpath"
)

// Parse converts SVG drawing into a single path using opt.
func Parse(data []byte, opt Options) (*toolpath.Path, error) {
	// 0.0: initialize
	result := NewImporter(opt)

	// 1.0: unmarshal xml; drawing instructions are scaled by us, not by svg
	parsed, err := svg.ParseSvg(string(data), opt.Label, 1)
	if err != nil {
		return nil, err
	}

	// 2.0: convert
	if err := result.Import(parsed); err != nil {
		return nil, err
	}

	// N.N: return
	return result.Path(), nil
}
