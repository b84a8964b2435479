// Package config loads settings for the sheetread HTTP service.
package config

import (
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/text/encoding/htmlindex"
)

// Config holds service settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
	// MaxUpload caps request bodies, as a human size such as "32MB".
	MaxUpload string `toml:"max_upload"`
	// ShutdownGrace bounds graceful shutdown, as a Go duration.
	ShutdownGrace string `toml:"shutdown_grace"`
	// LogLevel is a logrus level name.
	LogLevel string `toml:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `toml:"log_format"`
	// Charset is the code page hint for legacy xls strings.
	Charset string `toml:"charset"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":8080",
		MaxUpload:     "32MB",
		ShutdownGrace: "10s",
		LogLevel:      "info",
		LogFormat:     "text",
		Charset:       "utf-8",
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return cfg, errors.Wrapf(err, "config file %s", path)
		}
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		sort.Strings(keys)
		return cfg, errors.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// RegisterFlags adds the service flags to fs with the built-in defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.String("addr", def.Addr, "Listen address")
	fs.String("max-upload", def.MaxUpload, "Maximum upload size (e.g. 32MB)")
	fs.String("shutdown-grace", def.ShutdownGrace, "Graceful shutdown timeout")
	fs.String("log-level", def.LogLevel, "Log level: trace, debug, info, warn, error")
	fs.String("log-format", def.LogFormat, "Log format: text, json")
	fs.String("charset", def.Charset, "Code page hint for legacy xls strings")
}

// ApplyFlags overrides fields with flags the user set explicitly.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	targets := map[string]*string{
		"addr":           &c.Addr,
		"max-upload":     &c.MaxUpload,
		"shutdown-grace": &c.ShutdownGrace,
		"log-level":      &c.LogLevel,
		"log-format":     &c.LogFormat,
		"charset":        &c.Charset,
	}

	for name, target := range targets {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		value, err := fs.GetString(name)
		if err != nil {
			return errors.Wrapf(err, "flag --%s", name)
		}
		*target = value
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := c.MaxUploadBytes(); err != nil {
		return err
	}
	if _, err := c.ShutdownTimeout(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.Errorf("invalid log_format: %s (must be text or json)", c.LogFormat)
	}
	if _, err := htmlindex.Get(c.Charset); err != nil {
		return errors.Wrapf(err, "charset %q", c.Charset)
	}
	return nil
}

// MaxUploadBytes parses MaxUpload.
func (c Config) MaxUploadBytes() (int64, error) {
	n, err := humanize.ParseBytes(c.MaxUpload)
	if err != nil {
		return 0, errors.Wrap(err, "max_upload")
	}
	if n == 0 {
		return 0, errors.New("max_upload must be positive")
	}
	return int64(n), nil
}

// ShutdownTimeout parses ShutdownGrace.
func (c Config) ShutdownTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.ShutdownGrace)
	if err != nil {
		return 0, errors.Wrap(err, "shutdown_grace")
	}
	if d < 0 {
		return 0, errors.New("shutdown_grace must not be negative")
	}
	return d, nil
}

// NewLogger builds a logrus logger writing to out.
func (c Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, "log_level")
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
