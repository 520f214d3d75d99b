package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	// OutputConfig says where and how the rendered stylesheet goes.
	OutputConfig struct {
		Path    string `yaml:"path" validate:"required"`
		Dynamic bool   `yaml:"dynamic"`
	}

	// SheetConfig controls sheet construction.
	SheetConfig struct {
		Normalize    bool   `yaml:"normalize"`
		PreamblePath string `yaml:"preamble_path" validate:"omitempty,filepath"`
	}

	// BreakpointConfig is one responsive collapse point of the grid preset.
	BreakpointConfig struct {
		Name     string `yaml:"name" validate:"required"`
		MaxWidth int    `yaml:"max_width" validate:"min=1"`
		Columns  int    `yaml:"columns" validate:"min=1"`
	}

	GridConfig struct {
		Columns     int                `yaml:"columns" validate:"min=1,max=24"`
		Breakpoints []BreakpointConfig `yaml:"breakpoints" validate:"dive"`
	}

	// ButtonsConfig maps variant names to base colors as hex literals.
	ButtonsConfig struct {
		Palette map[string]string `yaml:"palette" validate:"dive,hexcolor"`
	}

	TextScaleConfig struct {
		From  float64 `yaml:"from" validate:"gt=0"`
		To    float64 `yaml:"to" validate:"gtfield=From"`
		Steps int     `yaml:"steps" validate:"min=2"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Output    OutputConfig    `yaml:"output"`
		Sheet     SheetConfig     `yaml:"sheet"`
		Grid      GridConfig      `yaml:"grid"`
		Buttons   ButtonsConfig   `yaml:"buttons"`
		TextScale TextScaleConfig `yaml:"text_scale"`
		Logging   LoggingConfig   `yaml:"logging"`
	}
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := validate.Struct(cfg); err != nil {
			return nil, fmt.Errorf("configuration is invalid: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the embedded defaults and performs
// validation. An empty path returns the validated defaults.
func LoadConfiguration(path string) (*Config, error) {
	haveFile := len(path) > 0

	cfg, err := unmarshalConfig(defaultConfig, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the default configuration file content.
func Prepare() ([]byte, error) {
	return bytes.Clone(defaultConfig), nil
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
