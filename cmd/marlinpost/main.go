package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	inkscape "github.com/galihrivanto/go-inkscape"
	json "github.com/goccy/go-json"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kpango/glg"

	pkg "github.com/gucio321/marlinpost/pkg"
	"github.com/gucio321/marlinpost/pkg/editor"
	"github.com/gucio321/marlinpost/pkg/gcb"
	"github.com/gucio321/marlinpost/pkg/machine"
	"github.com/gucio321/marlinpost/pkg/svgimport"
	"github.com/gucio321/marlinpost/pkg/toolpath"
	"github.com/gucio321/marlinpost/pkg/viewer"
)

const outputExtension = ".gcode"

type Flags struct {
	InputFilePath  string
	OutputFilePath string
	PostArgs       string
	Machine        string
	MachineFile    string
	Inkscape       bool
	Scale          float64
	SafeZ          float64
	CutZ           float64
	FeedRate       float64
	SaveJob        string
	View           bool
	preset         string
	makePreset     bool
	showGCode      bool
	usageArgs      bool
}

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		glg.Fatal(err)
	}
}

func parseFlags(out io.Writer, args []string) (*Flags, error) {
	var f Flags

	svgDefaults := svgimport.DefaultOptions()

	fs := flag.NewFlagSet("marlinpost", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: marlinpost [options] -i job.json|drawing.svg\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nPost-processor arguments (-args):\n%s", pkg.ArgsUsage())
	}

	fs.StringVar(&f.InputFilePath, "i", "", "input file path (.json job or .svg drawing)")
	fs.StringVar(&f.OutputFilePath, "o", "", "output file path (default: input with .gcode extension)")
	fs.StringVar(&f.PostArgs, "args", "", "post-processor arguments, e.g. \"--no-header --precision 3\"")
	fs.StringVar(&f.Machine, "machine", machine.DefaultID, "machine preset")
	fs.StringVar(&f.MachineFile, "machine-file", "", "HCL file with machine presets (default: built-in presets)")
	fs.BoolVar(&f.Inkscape, "inkscape", false, "pre-process svg with inkscape (object to path)")
	fs.Float64Var(&f.Scale, "s", svgDefaults.Scale, "svg scale factor")
	fs.Float64Var(&f.SafeZ, "safe-z", svgDefaults.SafeZ, "svg travel height")
	fs.Float64Var(&f.CutZ, "cut-z", svgDefaults.CutZ, "svg drawing height")
	fs.Float64Var(&f.FeedRate, "feed", svgDefaults.FeedRate, "svg feed rate in mm/s")
	fs.StringVar(&f.SaveJob, "save-job", "", "write the (imported) job as JSON to this path")
	fs.BoolVar(&f.View, "v", false, "view")
	fs.StringVar(&f.preset, "preset", "", "JSON preset file path. This will override all other flags")
	fs.BoolVar(&f.makePreset, "make-preset", false, "auto-generate preset")
	fs.BoolVar(&f.showGCode, "show-gcode", false, "print resulting GCode")
	fs.BoolVar(&f.usageArgs, "usage-args", false, "print post-processor arguments help")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if f.makePreset {
		data, err := json.MarshalIndent(f, "", "\t")
		if err != nil {
			return nil, fmt.Errorf("unable to generate preset: %w", err)
		}

		fmt.Fprintln(out, string(data))
		glg.Infof("Presets generated")

		return nil, flag.ErrHelp
	}

	if f.preset != "" {
		data, err := os.ReadFile(f.preset)
		if err != nil {
			return nil, fmt.Errorf("unable to read preset from %s: %w (use valid file or empty to not use presets)", f.preset, err)
		}

		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("unable to parse preset from %s: %w", f.preset, err)
		}
	}

	if f.usageArgs {
		fmt.Fprint(out, pkg.ArgsUsage())
		return nil, flag.ErrHelp
	}

	if f.InputFilePath == "" {
		fs.Usage()
		return nil, errors.New("input file is required")
	}

	if f.OutputFilePath == "" {
		f.OutputFilePath = strings.TrimSuffix(f.InputFilePath, filepath.Ext(f.InputFilePath)) + outputExtension
	}

	return &f, nil
}

func run(out io.Writer, args []string) error {
	f, err := parseFlags(out, args)
	if err != nil {
		return err
	}

	m, err := loadMachine(f)
	if err != nil {
		return err
	}

	objects, err := loadJob(f, m)
	if err != nil {
		return err
	}

	if f.SaveJob != "" {
		data, err := toolpath.Encode(objects...)
		if err != nil {
			return fmt.Errorf("cannot encode job: %w", err)
		}

		if err := os.WriteFile(f.SaveJob, data, 0o644); err != nil {
			return fmt.Errorf("cannot write file %s: %w", f.SaveJob, err)
		}
	}

	processor := pkg.NewProcessorWithConfig(pkg.ConfigFromMachine(m)).
		SetEditor(editor.NewExternal())

	gcode, err := processor.Export(context.Background(), objects, f.OutputFilePath, f.PostArgs)
	if err != nil {
		return fmt.Errorf("cannot export %s: %w", f.InputFilePath, err)
	}

	glg.Infof("written %s", f.OutputFilePath)

	if f.showGCode {
		fmt.Fprint(out, gcode)
	}

	if f.View {
		cmds, err := gcb.Parse([]byte(gcode))
		if err != nil {
			return fmt.Errorf("cannot parse generated gcode: %w", err)
		}

		ebiten.SetWindowSize(800, 600)
		if err := ebiten.RunGame(viewer.NewViewer(cmds)); err != nil {
			return fmt.Errorf("cannot run viewer: %w", err)
		}
	}

	return nil
}

func loadMachine(f *Flags) (*machine.Machine, error) {
	if f.MachineFile == "" {
		return machine.Get(f.Machine)
	}

	list, err := machine.LoadFile(f.MachineFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load machines from %s: %w", f.MachineFile, err)
	}

	return machine.Find(list, f.Machine)
}

func loadJob(f *Flags, m *machine.Machine) ([]toolpath.Object, error) {
	if !strings.EqualFold(filepath.Ext(f.InputFilePath), ".svg") {
		return toolpath.DecodeFile(f.InputFilePath)
	}

	input := f.InputFilePath
	if f.Inkscape {
		converted, err := inkscapePreprocess(input)
		if err != nil {
			return nil, err
		}

		input = converted
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %s: %w", input, err)
	}

	opt := svgimport.DefaultOptions()
	opt.Label = strings.TrimSuffix(filepath.Base(f.InputFilePath), filepath.Ext(f.InputFilePath))
	opt.Scale = f.Scale
	opt.SafeZ = f.SafeZ
	opt.CutZ = f.CutZ
	opt.FeedRate = f.FeedRate

	path, err := svgimport.Parse(data, opt)
	if err != nil {
		return nil, fmt.Errorf("cannot parse file %s: %w", input, err)
	}

	units := m.Units
	if units == "" {
		units = toolpath.UnitsMetric
	}

	job := toolpath.NewGroup("Job", opt.Label, toolpath.NewMachine(units), path)

	return []toolpath.Object{job}, nil
}

func inkscapePreprocess(input string) (string, error) {
	inkscapeProxy := inkscape.NewProxy(inkscape.Verbose(true))
	if err := inkscapeProxy.Run(); err != nil {
		return "", fmt.Errorf("cannot run inkscape: %w", err)
	}

	defer inkscapeProxy.Close()

	glg.Infof("running inkscape pre-processing")
	convertedFile := input + ".marlinpost.svg"
	inkscapeProxy.RawCommands(
		fmt.Sprintf("file-open:%s", input),
		fmt.Sprintf("export-filename:%s", convertedFile),
		"export-type:svg",
		"select-all",
		"object-to-path",
		"export-do",
	)

	glg.Info("inkscape done.")

	return convertedFile, nil
}
