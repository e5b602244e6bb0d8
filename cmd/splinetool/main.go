// splinetool is a CLI utility for resampling splines and generating the
// meshes placed along them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/splinekit/internal/config"
	"github.com/Faultbox/splinekit/internal/editor"
	"github.com/Faultbox/splinekit/internal/logger"
	"github.com/Faultbox/splinekit/pkg/resample"
)

var errUsage = errors.New("usage")

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, command, args)
	logger.Sync()
	switch {
	case errors.Is(err, errUsage):
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, command string, args []string) error {
	switch command {
	case "info":
		return cmdInfo(cfg, args)
	case "subdivide":
		return cmdResample(cfg, resample.OpSubdivide, args)
	case "simplify":
		return cmdResample(cfg, resample.OpSimplify, args)
	case "breaks":
		return cmdBreaks(cfg, args)
	case "generate", "gen":
		return cmdGenerate(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return errUsage
	}
}

func printUsage() {
	fmt.Println(`splinetool - spline resampling and mesh generation utility

Usage:
  splinetool [global options] <command> [options]

Commands:
  info <file.yaml>                                Show spline information
  subdivide <file.yaml> [-keys 1,4] [-steps n] [-o out]
                                                  Insert points along the spline
  simplify <file.yaml> [-keys 1,4] [-steps n] [-o out]
                                                  Remove points from the spline
  breaks <file.yaml>                              Print steepness break times
  generate <file.yaml> [-o out]                   Generate segments and meshes

Global options:
  -config <path>     Config file (default ./splinekit.yaml)
  -debug             Enable debug logging
  -steps <n>         Subdivisions per span or points to remove (2-20)
  -mode <mode>       Segment mode: point, time or steepness
  -interval <t>      Time interval for time and steepness modes
  -steepness <deg>   Bend that splits a steepness interval
  -log-file <path>   Also write logs to this file

Examples:
  splinetool info road.yaml
  splinetool subdivide road.yaml -steps 4 -o dense.yaml
  splinetool simplify road.yaml -keys 2,6
  splinetool -mode steepness generate road.yaml -o meshes.yaml`)
}

func open(cfg *config.Config, fs *flag.FlagSet, usage string) (*editor.Session, error) {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: splinetool "+usage)
		return nil, errUsage
	}
	return editor.Open(cfg, fs.Arg(0))
}

func cmdInfo(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	sess, err := open(cfg, fs, "info <file.yaml>")
	if err != nil {
		return err
	}
	s := sess.Spline()

	fmt.Printf("Spline:   %s\n", sess.Path())
	fmt.Printf("Type:     %s\n", s.Type())
	fmt.Printf("Points:   %d\n", s.NumPoints())
	fmt.Printf("Length:   %.3f\n", s.Length())
	fmt.Printf("Duration: %.3f\n", s.Duration())
	fmt.Println()
	fmt.Println("Points:")
	for i := 0; i < s.NumPoints(); i++ {
		p := s.ControlPoint(i)
		fmt.Printf("  %3d  (%8.3f %8.3f %8.3f)  at %8.3f\n",
			i, p.Position.X, p.Position.Y, p.Position.Z, s.DistanceAtPoint(i))
	}
	return nil
}

func cmdResample(cfg *config.Config, op resample.Op, args []string) error {
	fs := flag.NewFlagSet(op.String(), flag.ExitOnError)
	keys := fs.String("keys", "", "Comma separated point indices to work between")
	steps := fs.Int("steps", 0, "Subdivisions per span or points to remove")
	out := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(reorder(args))

	sess, err := open(cfg, fs, op.String()+" <file.yaml> [-keys 1,4] [-steps n] [-o out]")
	if err != nil {
		return err
	}
	if *steps > 0 {
		sess.SetSteps(*steps)
	}
	if *keys != "" {
		sel, err := parseKeys(*keys)
		if err != nil {
			return err
		}
		sess.Select(sel...)
	}

	before := sess.Spline().NumPoints()
	changed, err := sess.Resample(op)
	if err != nil {
		logger.Warn("mesh refresh failed", zap.Error(err))
	}
	if !changed {
		fmt.Fprintf(os.Stderr, "%s: nothing to do (%d points)\n", op, before)
	} else {
		fmt.Fprintf(os.Stderr, "%s: %d -> %d points\n", op, before, sess.Spline().NumPoints())
	}

	if *out == "" {
		return sess.Encode(os.Stdout)
	}
	return sess.SaveAs(*out)
}

func cmdBreaks(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("breaks", flag.ExitOnError)
	fs.Parse(args)

	sess, err := open(cfg, fs, "breaks <file.yaml>")
	if err != nil {
		return err
	}

	times := sess.BreakTimes()
	for _, t := range times {
		fmt.Printf("%.6f\t%v\n", t, sess.Spline().PositionAtTime(t))
	}
	fmt.Fprintf(os.Stderr, "\n(%d break times, max steepness %.1f°)\n", len(times), cfg.Mesh.MaxSteepness)
	return nil
}

func cmdGenerate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(reorder(args))

	sess, err := open(cfg, fs, "generate <file.yaml> [-o out]")
	if err != nil {
		return err
	}

	refreshErr := sess.Refresh()
	rec := sess.Recorder()
	fmt.Fprintf(os.Stderr, "%s mode: %d segments, %d meshes\n",
		cfg.Mesh.Mode, len(rec.Segments), len(rec.Placements))

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := sess.ExportInstances(w); err != nil {
		return err
	}
	return refreshErr
}

// parseKeys parses a comma separated list of point indices.
func parseKeys(s string) ([]int, error) {
	var keys []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", part, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// reorder moves flags in front of positional arguments so that
// "simplify road.yaml -steps 3" parses like "simplify -steps 3 road.yaml".
func reorder(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		if !strings.Contains(a, "=") && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(flags, positional...)
}
