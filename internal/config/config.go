package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-userform/pkg/form"
	"github.com/goliatone/go-userform/pkg/profile"
	"github.com/goliatone/go-userform/pkg/userform"
)

// Output formats accepted by the CLI sink.
const (
	OutputJSON = "json"
	OutputLog  = "log"
)

// Config is the CLI configuration file layout.
type Config struct {
	Profile ProfileConfig `json:"profile" yaml:"profile"`
	Form    FormConfig    `json:"form" yaml:"form"`
	Output  OutputConfig  `json:"output" yaml:"output"`
}

// ProfileConfig configures the profile fetch.
type ProfileConfig struct {
	BaseURL string   `json:"baseURL" yaml:"baseURL"`
	ID      string   `json:"id" yaml:"id"`
	Timeout Duration `json:"timeout" yaml:"timeout"`
}

// FormConfig configures the engine.
type FormConfig struct {
	LockoutThreshold int `json:"lockoutThreshold" yaml:"lockoutThreshold"`
}

// OutputConfig selects the submit sink.
type OutputConfig struct {
	Format string `json:"format" yaml:"format"`
}

// Duration decodes "15s" style strings from YAML or JSON.
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return d.parse(raw)
}

// UnmarshalJSON parses a duration string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.parse(raw)
}

func (d *Duration) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Profile: ProfileConfig{
			BaseURL: profile.DefaultBaseURL,
			ID:      userform.DefaultProfileID,
			Timeout: Duration(15 * time.Second),
		},
		Form: FormConfig{
			LockoutThreshold: form.DefaultLockoutThreshold,
		},
		Output: OutputConfig{
			Format: OutputJSON,
		},
	}
}

// Load reads path over the defaults. An empty path returns Default. Files
// ending in .json are decoded as JSON, everything else as YAML.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Parse(data, path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Parse decodes data into cfg, choosing the decoder from name's extension.
func Parse(data []byte, name string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: parse %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: parse %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks the fields the CLI relies on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Profile.ID) == "" {
		return fmt.Errorf("config: profile.id is required")
	}
	if c.Form.LockoutThreshold < 1 {
		return fmt.Errorf("config: form.lockoutThreshold must be positive, got %d", c.Form.LockoutThreshold)
	}
	switch c.Output.Format {
	case OutputJSON, OutputLog:
	default:
		return fmt.Errorf("config: unsupported output.format %q", c.Output.Format)
	}
	return nil
}
