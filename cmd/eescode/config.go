package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/eescode/eescode/pkg/analyzer"
	"github.com/eescode/eescode/pkg/ast"
	"github.com/eescode/eescode/pkg/style"
	v "github.com/eescode/eescode/pkg/validator"
	"gopkg.in/yaml.v3"
)

var logLevels = []string{"debug", "info", "warn", "error"}

type config struct {
	Theme      string `yaml:"theme,omitempty"`
	ThemeDir   string `yaml:"theme_dir,omitempty"`
	Format     string `yaml:"format,omitempty"`
	DumpTokens bool   `yaml:"dump_tokens,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

func defaultConfig() config {
	return config{Theme: "default", Format: "plain", LogLevel: "info"}
}

func (c *config) Validate() error {
	return v.All(
		v.NotEmpty(c.Theme, "theme"),
		v.MatchesAllowed(c.Format, style.Formats, "format"),
		v.MatchesAllowed(c.LogLevel, logLevels, "log_level"),
	)
}

// loadConfig reads path over the defaults. A missing file is only an error
// when required is set.
func loadConfig(path string, required bool) (config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// styler resolves the configured theme and output format.
func (c *config) styler() (ast.Styler, error) {
	if c.ThemeDir != "" {
		style.SetThemeDir(c.ThemeDir)
	}
	theme, err := style.Load(c.Theme)
	if err != nil {
		return nil, fmt.Errorf("%w (built-in themes: %s)", err, strings.Join(style.Names(), ", "))
	}
	return style.For(c.Format, theme)
}

func (c *config) analyzer(logger *slog.Logger) *analyzer.Analyzer {
	return analyzer.New(analyzer.WithLogger(logger), analyzer.WithTokenDump(c.DumpTokens))
}
