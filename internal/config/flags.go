package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagDir        = flag.String("dir", "", "Directory of ASCII grid tiles")
	flagPattern    = flag.String("pattern", "", "Only read tiles whose file name matches this glob")
	flagWorkers    = flag.Int("workers", 0, "Parallel parse/mesh workers")
	flagOutput     = flag.String("o", "", "Preview output file (.png or .bmp)")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments (the command and its operands).
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDir != "" {
		cfg.Data.TileDir = *flagDir
	}
	if *flagPattern != "" {
		cfg.Data.Pattern = *flagPattern
	}
	if *flagWorkers > 0 {
		cfg.Data.Workers = *flagWorkers
	}
	if *flagOutput != "" {
		cfg.Preview.Output = *flagOutput
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
