// Command gridconv converts between latitude/longitude and forecast grid cells.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/UnknownOlympus/meteogrid/internal/grid"
)

type cmdOpt struct {
	lat, lon float64
	x, y     float64
	reverse  bool
	asJSON   bool
}

var errMissingArgs = errors.New("missing coordinates")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opt, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	var result any
	if opt.reverse {
		coords, err := grid.Unproject(opt.x, opt.y)
		if err != nil {
			return fmt.Errorf("failed to convert grid cell: %w", err)
		}
		if !opt.asJSON {
			_, err = fmt.Fprintf(stdout, "%.6f %.6f\n", coords.Latitude, coords.Longitude)
			return err
		}
		result = coords
	} else {
		cell, err := grid.Project(opt.lat, opt.lon)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if !opt.asJSON {
			_, err = fmt.Fprintf(stdout, "%d %d\n", cell.X, cell.Y)
			return err
		}
		result = cell
	}

	return json.NewEncoder(stdout).Encode(result)
}

func parseArgs(args []string, stderr io.Writer) (cmdOpt, error) {
	var a cmdOpt

	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, `
[Usage]
	%[1]s [-json] -lat 37.5665 -lon 126.9780
	%[1]s [-json] -reverse -x 60 -y 127

[Options]
`, fs.Name())
		fs.PrintDefaults()
	}

	fs.Float64Var(&a.lat, "lat", 0, "Latitude in degrees.")
	fs.Float64Var(&a.lon, "lon", 0, "Longitude in degrees.")
	fs.BoolVar(&a.reverse, "reverse", false, "Convert a grid cell back to latitude/longitude.")
	fs.Float64Var(&a.x, "x", 0, "Grid column, used with -reverse.")
	fs.Float64Var(&a.y, "y", 0, "Grid row, used with -reverse.")
	fs.BoolVar(&a.asJSON, "json", false, "Print the result as JSON.")

	if err := fs.Parse(args); err != nil {
		return a, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if a.reverse && !(set["x"] && set["y"]) || !a.reverse && !(set["lat"] && set["lon"]) {
		fs.Usage()
		return a, errMissingArgs
	}

	return a, nil
}
