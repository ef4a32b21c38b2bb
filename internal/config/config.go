// Package config handles configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Gradient GradientConfig `yaml:"gradient"`
	Preview  PreviewConfig  `yaml:"preview"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig holds tile input settings.
type DataConfig struct {
	TileDir string `yaml:"tile_dir"` // Directory of ASCII grid tiles
	Pattern string `yaml:"pattern"`  // Glob on file names, empty = every file
	Workers int    `yaml:"workers"`  // Parallel parse/mesh workers, <= 1 = sequential
}

// GradientConfig holds the colour ramp used for meshes and previews.
type GradientConfig struct {
	Normalize   string       `yaml:"normalize"` // "span" or "relative"
	NoDataColor string       `yaml:"nodata_color"`
	Stops       []StopConfig `yaml:"stops"`
}

// StopConfig is one gradient stop.
type StopConfig struct {
	Point float64 `yaml:"point"`
	Color string  `yaml:"color"` // #rgb or #rrggbb
}

// PreviewConfig holds 2D preview image settings.
type PreviewConfig struct {
	Output string `yaml:"output"` // .png or .bmp
	Width  int    `yaml:"width"`  // 0 = one pixel per cell
	Height int    `yaml:"height"`
	Smooth bool   `yaml:"smooth"` // Catmull-Rom instead of nearest neighbour
	Legend bool   `yaml:"legend"` // Gradient bar with the value range
}

// GraphicsConfig holds viewer window settings.
type GraphicsConfig struct {
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	Fullscreen       bool   `yaml:"fullscreen"`
	VSync            bool   `yaml:"vsync"`
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			TileDir: "tiles",
			Pattern: "",
			Workers: 1,
		},
		Gradient: GradientConfig{
			Normalize:   "span",
			NoDataColor: "#ffffff",
			Stops: []StopConfig{
				{Point: 0.0, Color: "#000000"},
				{Point: 1.0, Color: "#ff0000"},
			},
		},
		Preview: PreviewConfig{
			Output: "preview.png",
		},
		Graphics: GraphicsConfig{
			Width:            1200,
			Height:           1200,
			Fullscreen:       false,
			VSync:            true,
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
