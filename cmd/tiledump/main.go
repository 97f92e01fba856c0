package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"chosenoffset.com/autotile/defs"
	"chosenoffset.com/autotile/ldtkfile"
	"chosenoffset.com/autotile/level"
)

func main() {
	projectPath := flag.String("project", "", "LDtk project file to load")
	gridPath := flag.String("grid", "", "CSV file with the IntGrid values (one row per line)")
	randomize := flag.Bool("randomize", false, "use fresh random seeds instead of the stored ones")
	verbose := flag.Bool("v", false, "log every rule match")
	flag.Parse()

	if *projectPath == "" || *gridPath == "" {
		fmt.Fprintln(os.Stderr, "usage: tiledump -project file.ldtk -grid grid.csv [-randomize] [-v]")
		os.Exit(2)
	}

	file, err := ldtkfile.LoadFile(*projectPath, false)
	if err != nil {
		log.Fatalf("Failed to load project: %v", err)
	}

	if *verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		file.Trace = defs.NewSlogTracer(slog.New(handler))
	}

	width, height, values, err := readGridCSV(*gridPath)
	if err != nil {
		log.Fatalf("Failed to read grid: %v", err)
	}

	var lv level.Level
	if err := lv.SetIntGrid(width, height, values); err != nil {
		log.Fatalf("Failed to set IntGrid: %v", err)
	}

	settings := defs.RunDefault
	if *randomize {
		settings |= defs.RandomizeSeeds
	}
	if err := file.RunRules(&lv, settings); err != nil {
		log.Fatalf("Rule run failed: %v", err)
	}

	fmt.Printf("Project: %s (version %s)\n", file.ProjectUniqueID, file.FileVersion)
	fmt.Printf("IntGrid: %dx%d\n", width, height)
	for idx, layer := range file.Layers() {
		tg := lv.TileGrid(idx)
		fmt.Printf("\nLayer %q (uid %d, seed %d):%s", layer.Name, layer.UID, tg.RandomSeed(), tg.TileIDString())
	}
}

// readGridCSV reads a rectangular grid of integers, one comma-separated
// row per line. Blank lines are skipped.
func readGridCSV(path string) (width, height int, values []uint16, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("failed to read grid file %s: %w", path, err)
	}

	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if width == 0 {
			width = len(fields)
		} else if len(fields) != width {
			return 0, 0, nil, fmt.Errorf("row %d has %d values, expected %d", lineNo+1, len(fields), width)
		}
		for _, field := range fields {
			v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 16)
			if err != nil {
				return 0, 0, nil, fmt.Errorf("row %d: %w", lineNo+1, err)
			}
			values = append(values, uint16(v))
		}
		height++
	}

	if width == 0 || height == 0 {
		return 0, 0, nil, fmt.Errorf("grid file %s is empty", path)
	}
	return width, height, values, nil
}
