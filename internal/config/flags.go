package config

import (
	"errors"
	"io/fs"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes the environment variables backing each flag.
const EnvPrefix = "EDGERUNNER_"

// FlagHolder is satisfied by *kingpin.Application and *kingpin.CmdClause.
type FlagHolder interface {
	Flag(name, help string) *kingpin.FlagClause
}

// Flags binds command line flags and resolves the final Config.
// Boolean flags are negatable (--no-browser) and have no environment variable.
type Flags struct {
	File string

	fileSet   bool
	overrides Config

	mirror, mirrorSet   bool
	browser, browserSet bool
	tray, traySet       bool
	color, colorSet     bool
}

// Setup registers the flags on using.
func (f *Flags) Setup(using FlagHolder) {
	o := &f.overrides

	using.Flag("config", "YAML file the configuration is loaded from.").
		Short('c').Envar(EnvPrefix + "CONFIG").Default("edgerunner.yaml").IsSetByUser(&f.fileSet).StringVar(&f.File)

	using.Flag("host", "Address the HTTP server listens on.").
		Envar(EnvPrefix + "HOST").StringVar(&o.Server.Host)
	using.Flag("port", "Port the HTTP server listens on.").
		Short('p').Envar(EnvPrefix + "PORT").IntVar(&o.Server.Port)
	using.Flag("web-dir", "Directory holding index.html and static/.").
		Envar(EnvPrefix + "WEB_DIR").StringVar(&o.Server.WebDir)
	using.Flag("asset-dir", "Directory holding the game images.").
		Envar(EnvPrefix + "ASSET_DIR").StringVar(&o.Server.AssetDir)
	using.Flag("audio-dir", "Directory holding the audio tracks.").
		Envar(EnvPrefix + "AUDIO_DIR").StringVar(&o.Server.AudioDir)

	using.Flag("camera", "Camera device id.").
		Envar(EnvPrefix + "CAMERA").IntVar(&o.Camera.DeviceID)
	using.Flag("mirror", "Mirror frames horizontally.").
		IsSetByUser(&f.mirrorSet).BoolVar(&f.mirror)

	using.Flag("python", "Python interpreter running the perception service.").
		Envar(EnvPrefix + "PYTHON").StringVar(&o.Detector.Python)
	using.Flag("perception-script", "Path of perception_service.py.").
		Envar(EnvPrefix + "PERCEPTION_SCRIPT").StringVar(&o.Detector.Script)

	using.Flag("blink-threshold", "Mean eyelid gap below which the eyes count as closed.").
		Envar(EnvPrefix + "BLINK_THRESHOLD").Float64Var(&o.Gesture.BlinkThreshold)
	using.Flag("fire-velocity", "Fingertip pixels per cycle that count as a shot.").
		Envar(EnvPrefix + "FIRE_VELOCITY").Float64Var(&o.Gesture.FireVelocity)

	using.Flag("log-level", "Minimum log level.").
		Envar(EnvPrefix+"LOG_LEVEL").EnumVar(&o.Log.Level, "trace", "debug", "info", "warn", "error")
	using.Flag("log-file", "Also write logs to this rotating file.").
		Envar(EnvPrefix + "LOG_FILE").StringVar(&o.Log.File)
	using.Flag("log-color", "Colorize console logs.").
		IsSetByUser(&f.colorSet).BoolVar(&f.color)

	using.Flag("browser", "Open the game in the default browser.").
		IsSetByUser(&f.browserSet).BoolVar(&f.browser)
	using.Flag("tray", "Show the system tray menu.").
		IsSetByUser(&f.traySet).BoolVar(&f.tray)
}

// FileSet reports whether --config was given on the command line.
func (f *Flags) FileSet() bool {
	return f.fileSet
}

// Load resolves defaults, then the file, then the flags, and validates the result.
// A missing file is only an error when it was named explicitly.
func (f *Flags) Load(fileRequired bool) (Config, error) {
	c := Default()

	if f.File != "" {
		if err := c.LoadFromFile(f.File, !fileRequired); err != nil {
			return Config{}, err
		}
	}

	if err := c.Merge(f.overrides); err != nil {
		return Config{}, err
	}

	// Booleans cannot be merged: false is their zero value.
	if f.mirrorSet {
		c.Camera.Mirror = f.mirror
	}
	if f.colorSet {
		c.Log.Color = f.color
	}
	if f.browserSet {
		c.Browser.Open = f.browser
	}
	if f.traySet {
		c.Tray = f.tray
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadEnv reads .env files into the environment. Missing files are ignored.
func LoadEnv(files ...string) error {
	for _, fn := range files {
		if err := godotenv.Load(fn); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
