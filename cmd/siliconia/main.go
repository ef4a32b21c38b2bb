// siliconia turns a directory of ASCII grid elevation tiles into coloured
// terrain: previews, meshes, footprints and an interactive viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/siliconia/internal/config"
	"github.com/Faultbox/siliconia/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	args := config.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	command, args := args[0], args[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg)
	case "preview":
		err = cmdPreview(cfg)
	case "footprint":
		err = cmdFootprint(cfg, args)
	case "query":
		err = cmdQuery(cfg, args)
	case "export":
		err = cmdExport(cfg, args)
	case "view":
		err = cmdView(cfg)
	case "init-config":
		err = cmdInitConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error(command+" failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`siliconia - elevation tile mosaic tool

Usage:
  siliconia [flags] <command> [args]

Commands:
  info                  Show tiles, mosaic bounds and value range
  preview               Render a 2D heat map (-o out.png|out.bmp)
  footprint [-bbox minx,miny,maxx,maxy] [out.json]
                        Write tile footprints as GeoJSON (stdout by default)
  query <x> <y>         Print the elevation at a point in source coordinates
  export [out.obj]      Write coloured meshes as Wavefront OBJ (stdout by default)
  view                  Open the 3D viewer (drag: orbit, wheel: zoom, F12: screenshot, Esc: quit)
  init-config [path]    Write the effective config as YAML

Flags:
  -config <path>   Config file (default ./config.yaml, then the user config dir)
  -dir <path>      Tile directory
  -pattern <glob>  Only read matching file names
  -workers <n>     Parallel parse and mesh workers
  -o <path>        Preview output
  -debug           Debug logging
  -width, -height, -fullscreen  Viewer window

Examples:
  siliconia -dir tiles/TL45nw info
  siliconia -dir tiles -pattern "*.asc" -o mosaic.png preview
  siliconia -dir tiles query 445120 525880
  siliconia -dir tiles footprint -bbox 445000,525000,446000,526000 tiles.json`)
}
