package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"pii-metamodel/internal/common"
	"pii-metamodel/internal/output"
)

// Environment variables overriding the file configuration.
const (
	EnvOutput  = "PII_METAMODEL_OUT"
	EnvFormat  = "PII_METAMODEL_FORMAT"
	EnvIgnore  = "PII_METAMODEL_IGNORE"
	EnvTagKey  = "PII_METAMODEL_TAG_KEY"
	EnvPackage = "PII_METAMODEL_PACKAGES"
)

// Env looks up an environment variable; empty means unset.
type Env func(key string) string

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overrides configuration values from the environment.
// A nil getenv reads the process environment.
func (c *Config) ApplyEnv(getenv Env) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := strings.TrimSpace(getenv(EnvOutput)); v != "" {
		c.Output = v
	}

	if v := strings.TrimSpace(getenv(EnvFormat)); v != "" {
		c.Format = output.Format(v)
	}

	if v := strings.TrimSpace(getenv(EnvTagKey)); v != "" {
		c.TagKey = v
	}

	if v := common.SplitList(getenv(EnvIgnore)); len(v) > 0 {
		c.Ignore = v
	}

	if v := common.SplitList(getenv(EnvPackage)); len(v) > 0 {
		c.Packages = v
	}
}
