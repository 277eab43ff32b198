package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Zero values leave the loaded config
// untouched.
type Flags struct {
	ConfigPath string
	FPS        int
	Background string
	AssetDir   string
	Listen     string
	Debug      bool
	LogFile    string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to config file")
	fs.IntVar(&f.FPS, "fps", 0, "target frames per second")
	fs.StringVar(&f.Background, "bg", "", "background color (#rrggbb)")
	fs.StringVarP(&f.AssetDir, "assets", "d", "", "directory holding models and textures")
	fs.StringVar(&f.Listen, "listen", "", "serve the browser remote on this address (e.g. :8080)")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "log file path")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.FPS > 0 {
		cfg.Viewer.FPS = f.FPS
	}
	if f.Background != "" {
		cfg.Viewer.Background = f.Background
	}
	if f.AssetDir != "" {
		cfg.Assets.Dir = f.AssetDir
	}
	if f.Listen != "" {
		cfg.Remote.Listen = f.Listen
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.File = f.LogFile
	}
}
