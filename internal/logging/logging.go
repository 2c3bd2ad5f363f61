// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level and optional file output.
type Config struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	File   string `yaml:"file"`
	Caller bool   `yaml:"caller"`
	Color  bool   `yaml:"color"`
}

// DefaultConfig logs info and above to stderr only.
func DefaultConfig() Config {
	return Config{
		Level: "info",
		Color: true,
	}
}

// Setup applies config to the standard logrus logger. The returned closer
// flushes the log file, if one was configured.
func Setup(config Config) (io.Closer, error) {
	return Configure(log.StandardLogger(), config, os.Stderr)
}

// Configure applies config to logger, writing to console plus the optional file.
func Configure(logger *log.Logger, config Config, console io.Writer) (io.Closer, error) {
	level, err := log.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", config.Level, err)
	}
	logger.SetLevel(level)

	logger.SetFormatter(&formatter.Formatter{
		NoColors:        !config.Color,
		TimestampFormat: "15:04:05.000",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			funcName := s[len(s)-1]
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, funcName)
		},
	})
	logger.SetReportCaller(config.Caller)

	writers := []io.Writer{console}
	var closer io.Closer = nopCloser{}

	if config.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   config.File,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    20,
			MaxAge:     7,
			MaxBackups: 3,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
	}

	logger.SetOutput(io.MultiWriter(writers...))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
