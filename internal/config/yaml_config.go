package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Settings that are per endpoint or list-shaped live here rather than in env vars.
type YAMLConfig struct {
	Budgets  BudgetsConfig  `yaml:"budgets"`
	Featured []string       `yaml:"featured"` // Acronyms shown on the home page
	Examples ExamplesConfig `yaml:"examples"`
}

// BudgetsConfig overrides the response budget per endpoint.
type BudgetsConfig struct {
	Decode int `yaml:"decode"`
	Encode int `yaml:"encode"`
}

// ExamplesConfig holds the sample requests shown in 400 usage hints.
type ExamplesConfig struct {
	Acronym    string `yaml:"acronym"`
	DecodeText string `yaml:"decode_text"`
	Name       string `yaml:"name"`
	EncodeText string `yaml:"encode_text"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DecodeBudget returns the decode budget, or fallback when unset.
func (c *YAMLConfig) DecodeBudget(fallback int) int {
	if c == nil || c.Budgets.Decode <= 0 {
		return fallback
	}
	return c.Budgets.Decode
}

// EncodeBudget returns the encode budget, or fallback when unset.
func (c *YAMLConfig) EncodeBudget(fallback int) int {
	if c == nil || c.Budgets.Encode <= 0 {
		return fallback
	}
	return c.Budgets.Encode
}

// FeaturedAcronyms returns the acronyms for the home page, or fallback when unset.
func (c *YAMLConfig) FeaturedAcronyms(fallback []string) []string {
	if c == nil || len(c.Featured) == 0 {
		return fallback
	}
	return c.Featured
}

// UsageExamples returns the configured examples with defaults filled in.
func (c *YAMLConfig) UsageExamples() ExamplesConfig {
	ex := ExamplesConfig{
		Acronym:    "GSA",
		DecodeText: "The DOW and GSA are working with OMB",
		Name:       "General Services Administration",
		EncodeText: "The General Services Administration works with the Office of Management and Budget",
	}
	if c == nil {
		return ex
	}
	if c.Examples.Acronym != "" {
		ex.Acronym = c.Examples.Acronym
	}
	if c.Examples.DecodeText != "" {
		ex.DecodeText = c.Examples.DecodeText
	}
	if c.Examples.Name != "" {
		ex.Name = c.Examples.Name
	}
	if c.Examples.EncodeText != "" {
		ex.EncodeText = c.Examples.EncodeText
	}
	return ex
}
