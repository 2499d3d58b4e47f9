package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultSpiderName is used when the config does not name the execution
// context the $spider entity resolves against.
const defaultSpiderName = "fieldweaver"

// Config is the YAML configuration for one run. Fields and FieldsOverride
// are merged before the engine starts, override winning on collision.
type Config struct {
	Fields         map[string]string `yaml:"fields"`
	FieldsOverride map[string]string `yaml:"fields_override"`
	Settings       map[string]any    `yaml:"settings"`
	Spider         SpiderConfig      `yaml:"spider"`
	Response       map[string]any    `yaml:"response"`
}

// SpiderConfig describes the static spider context the CLI resolves
// $spider placeholders against.
type SpiderConfig struct {
	Name  string         `yaml:"name"`
	Attrs map[string]any `yaml:"attrs"`
}

// LoadConfig reads and decodes the YAML config at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if cfg.Spider.Name == "" {
		cfg.Spider.Name = defaultSpiderName
	}
	return &cfg, nil
}
