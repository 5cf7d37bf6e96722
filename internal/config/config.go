// Package config loads project settings for the oasclientgen command.
//
// Settings come from three layers, each overriding the one before it: the
// .oasclientgen.yaml file, OASCLIENTGEN_* environment variables, and command
// line flags. This package handles the first two.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasclientgen/extractor"
	"github.com/erraggy/oasclientgen/oaserrors"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".oasclientgen.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OASCLIENTGEN_"

// Config holds generation settings. Empty fields mean "use the default".
type Config struct {
	// Package is the Go package name of the root client file
	Package string `yaml:"package,omitempty"`
	// Output is the directory generated files are written to
	Output string `yaml:"output,omitempty"`
	// Policy is the type resolution policy, strict or lenient
	Policy string `yaml:"policy,omitempty"`
	// ErrorType is the sentinel error schema copied into every module
	ErrorType string `yaml:"error_type,omitempty"`
	// RuntimeImport is the import path generated code uses for clientrt
	RuntimeImport string `yaml:"runtime_import,omitempty"`
	// Format runs goimports over the output; nil keeps the default
	Format *bool `yaml:"format,omitempty"`
}

// Parse decodes a config document from YAML or JSON bytes.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &oaserrors.ParseError{Message: "invalid config", Cause: err}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads the config file at path. An empty path looks for FileName in
// the working directory, and a missing default file yields an empty Config.
// An explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading the user's config file is the purpose
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read config", Cause: err}
	}
	c, err := Parse(data)
	if err != nil {
		var pe *oaserrors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Validate checks the values that have a closed set of choices.
func (c *Config) Validate() error {
	if c.Policy != "" {
		if _, err := extractor.PolicyByName(c.Policy); err != nil {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides fields from OASCLIENTGEN_* environment variables.
// Invalid values log a warning and leave the field unchanged.
func (c *Config) ApplyEnv() {
	c.Package = envString(EnvPrefix+"PACKAGE", c.Package)
	c.Output = envString(EnvPrefix+"OUTPUT", c.Output)
	c.Policy = envPolicy(EnvPrefix+"POLICY", c.Policy)
	c.ErrorType = envString(EnvPrefix+"ERROR_TYPE", c.ErrorType)
	c.RuntimeImport = envString(EnvPrefix+"RUNTIME_IMPORT", c.RuntimeImport)
	if v, ok := envBool(EnvPrefix + "FORMAT"); ok {
		c.Format = &v
	}
}

// FormatOr returns the Format setting, or fallback when it is unset.
func (c *Config) FormatOr(fallback bool) bool {
	if c.Format == nil {
		return fallback
	}
	return *c.Format
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, ignoring", "key", key, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		return false, false
	}
	return b, true
}

func envPolicy(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if _, err := extractor.PolicyByName(v); err != nil {
		slog.Warn("invalid policy env var, ignoring", "key", key, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return v
}
