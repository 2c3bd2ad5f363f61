// Package config assembles the process configuration from defaults, an
// optional YAML file and command line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ayusman/edgerunner/internal/app"
	"github.com/ayusman/edgerunner/internal/browser"
	"github.com/ayusman/edgerunner/internal/capture"
	"github.com/ayusman/edgerunner/internal/detector"
	"github.com/ayusman/edgerunner/internal/gesture"
	"github.com/ayusman/edgerunner/internal/logging"
	"github.com/ayusman/edgerunner/internal/server"
)

// Config is the complete process configuration.
type Config struct {
	Server   server.Config   `yaml:"server"`
	Camera   capture.Config  `yaml:"camera"`
	Detector detector.Config `yaml:"detector"`
	Gesture  gesture.Config  `yaml:"gesture"`
	Loop     app.LoopConfig  `yaml:"loop"`
	Log      logging.Config  `yaml:"log"`
	Browser  browser.Config  `yaml:"browser"`
	Tray     bool            `yaml:"tray"`
}

// Default returns the configuration the game runs with out of the box.
func Default() Config {
	return Config{
		Server:   server.DefaultConfig(),
		Camera:   capture.DefaultConfig(),
		Detector: detector.DefaultConfig(),
		Gesture:  gesture.DefaultConfig(),
		Loop:     app.DefaultLoopConfig(),
		Log:      logging.DefaultConfig(),
		Browser:  browser.DefaultConfig(),
	}
}

// LoadFrom decodes YAML from r over the current values. Unknown keys are rejected.
func (c *Config) LoadFrom(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadFromFile decodes the YAML file fn over the current values.
func (c *Config) LoadFromFile(fn string, ignoreNotFound bool) error {
	f, err := os.Open(fn)
	if os.IsNotExist(err) && ignoreNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := c.LoadFrom(f); err != nil {
		return fmt.Errorf("cannot load configuration file %q: %w", fn, err)
	}

	return nil
}

// Merge copies every non-zero value of overrides over c.
func (c *Config) Merge(overrides Config) error {
	return mergo.Merge(c, overrides, mergo.WithOverride)
}

// Validate checks value ranges of every section.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// App returns the perception loop configuration.
func (c Config) App() app.Config {
	return app.Config{
		Camera:   c.Camera,
		Detector: c.Detector,
		Gesture:  c.Gesture,
		Loop:     c.Loop,
	}
}
