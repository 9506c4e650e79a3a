package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlriver/pkg/format"
	"gopkg.in/yaml.v3"
)

type (
	// Format represents the layout settings used when rendering SQL.
	//
	// Zero values fall back to the formatter defaults, so a config file only
	// needs to list the settings it changes.
	Format struct {
		// River is the column top-level clause keywords end at
		River int `yaml:"river,omitempty"`

		// NestOffset is added to the river for every level of nesting
		NestOffset int `yaml:"nest_offset,omitempty"`

		// UppercaseKeywords controls keyword casing (default: true)
		UppercaseKeywords *bool `yaml:"uppercase_keywords,omitempty"`

		// Terminate appends a terminator to statements that lack one
		Terminate bool `yaml:"terminate,omitempty"`

		// MaxDepth bounds nesting before subtrees are passed through verbatim
		MaxDepth int `yaml:"max_depth,omitempty"`
	}

	// Config represents the project configuration for sqlriver.
	Config struct {
		// Format contains the layout settings
		Format Format `yaml:"format"`

		// Exclude lists glob patterns for files skipped when formatting directories.
		// Patterns are matched against both the relative path and the base name.
		Exclude []string `yaml:"exclude,omitempty"`
	}
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := new(Config)
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data. Settings that are
// not specified take their default values.
//
// Example:
//
//	yamlData := `
//	format:
//	  river: 12
//	  uppercase_keywords: false
//	exclude:
//	  - "*_generated.sql"
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("River: %d\n", cfg.Format.River)
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal sqlriver config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// FormatterOptions converts the layout settings into formatter options.
func (c *Config) FormatterOptions() *format.FormatterOptions {
	return &format.FormatterOptions{
		River:             c.Format.River,
		NestOffset:        c.Format.NestOffset,
		UppercaseKeywords: c.Format.UppercaseKeywords == nil || *c.Format.UppercaseKeywords,
		Terminate:         c.Format.Terminate,
		MaxDepth:          c.Format.MaxDepth,
	}
}

// GetFormatter returns a formatter configured from c.
func (c *Config) GetFormatter() *format.Formatter {
	return format.New(c.FormatterOptions())
}

// Excluded reports whether path matches one of the exclude patterns.
func (c *Config) Excluded(path string) bool {
	path = filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(path)

	for _, pattern := range c.Exclude {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}

	return false
}

func (c *Config) validate() error {
	switch {
	case c.Format.River < 0:
		return errors.Errorf("invalid format.river: %d", c.Format.River)
	case c.Format.NestOffset < 0:
		return errors.Errorf("invalid format.nest_offset: %d", c.Format.NestOffset)
	case c.Format.MaxDepth < 0:
		return errors.Errorf("invalid format.max_depth: %d", c.Format.MaxDepth)
	}

	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return errors.Wrapf(err, "invalid exclude pattern: %s", pattern)
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	defaults := format.DefaultOptions()

	if c.Format.River == 0 {
		c.Format.River = defaults.River
	}
	if c.Format.NestOffset == 0 {
		c.Format.NestOffset = defaults.NestOffset
	}
	if c.Format.UppercaseKeywords == nil {
		upper := defaults.UppercaseKeywords
		c.Format.UppercaseKeywords = &upper
	}
	if c.Format.MaxDepth == 0 {
		c.Format.MaxDepth = defaults.MaxDepth
	}
}
