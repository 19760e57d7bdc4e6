package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pii-metamodel/internal/analyze"
	"pii-metamodel/internal/output"
)

const (
	// maxConfigSize is the maximum accepted config file size (1MB).
	maxConfigSize = 1 * 1024 * 1024

	DefaultOutput = "pii-metamodel.json"
	DefaultFormat = output.FormatJSON
)

// Config is the generator configuration.
type Config struct {
	// Packages are go/packages patterns to scan for data-holder types.
	Packages []string `yaml:"packages,omitempty"`
	// Ignore lists types excluded from traversal: exact "pkg.Name",
	// "pkg.*" for a whole package, "pkg/..." for a package tree.
	Ignore []string `yaml:"ignore,omitempty"`
	// Containers lists generic types treated as collections of their
	// type argument.
	Containers []string `yaml:"containers,omitempty"`
	// Output is the file the metamodel is written to.
	Output string `yaml:"output,omitempty"`
	// Format is json, yaml, msgpack or bson. See OutputFormat.
	Format output.Format `yaml:"format,omitempty"`
	// TagKey is the struct tag key and directive prefix of the markers.
	TagKey string `yaml:"tagKey,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file size (%d bytes) exceeds maximum allowed size (%d bytes)",
			info.Size(), maxConfigSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxConfigSize))
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse parses YAML configuration data. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Marshal serializes the configuration to YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}

	if c.TagKey == "" {
		c.TagKey = analyze.DefaultMarkerKey
	}
}

// OutputFormat resolves the output format. Without an explicit format it is
// inferred from the output file extension, falling back to JSON.
func (c *Config) OutputFormat() (output.Format, error) {
	if c.Format == "" {
		if f, ok := output.FormatFromPath(c.Output); ok {
			return f, nil
		}

		return DefaultFormat, nil
	}

	return output.ParseFormat(string(c.Format))
}
