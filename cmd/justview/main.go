package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kpango/glg"

	"github.com/gucio321/marlinpost/pkg/gcb"
	"github.com/gucio321/marlinpost/pkg/viewer"
)

func main() {
	path := flag.String("i", "", "G-code file to preview")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := view(*path); err != nil {
		glg.Fatal(err)
	}
}

func view(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	cmds, err := gcb.Parse(data)
	if err != nil {
		return fmt.Errorf("cannot parse %s: %w", path, err)
	}

	glg.Infof("%s: %d commands, %d moves", path, len(cmds), len(viewer.Trace(cmds)))

	ebiten.SetWindowSize(800, 600)
	ebiten.SetWindowTitle("justview - " + path)

	return ebiten.RunGame(viewer.NewViewer(cmds))
}
