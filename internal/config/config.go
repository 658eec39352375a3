package config

import (
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bornholm/mdbook-admonish/pkg/admonish"
	"github.com/pkg/errors"
)

// PreprocessorName is the key of the preprocessor's table in book.toml.
const PreprocessorName = "admonish"

// Config is the "[preprocessor.admonish]" table of book.toml, as delivered
// through the preprocess context or read back from disk at install time.
type Config struct {
	Command       string                    `json:"command" toml:"command"`
	OnFailure     string                    `json:"on_failure" toml:"on_failure"`
	Default       admonish.Defaults         `json:"default" toml:"default"`
	Renderer      map[string]RendererConfig `json:"renderer" toml:"renderer"`
	AssetsVersion string                    `json:"assets_version" toml:"assets_version"`
	CSSFilePath   string                    `json:"css_file_path" toml:"css_file_path"`
}

// RendererConfig overrides behaviour for a single mdBook renderer.
type RendererConfig struct {
	RenderMode string `json:"render_mode" toml:"render_mode"`
}

// FailureMode returns the configured reaction to invalid directives,
// defaulting to rendering the error in place.
func (c *Config) FailureMode() admonish.OnFailure {
	return admonish.ParseOnFailure(c.OnFailure)
}

// RenderMode resolves the render mode for the given renderer. The html
// renderer gets the full markup, every other renderer gets the stripped
// body, unless a "renderer.<name>.render_mode" entry says otherwise.
func (c *Config) RenderMode(renderer string) admonish.RenderTextMode {
	if override, exists := c.Renderer[renderer]; exists && override.RenderMode != "" {
		if strings.EqualFold(override.RenderMode, string(admonish.RenderTextModeHTML)) {
			return admonish.RenderTextModeHTML
		}

		return admonish.RenderTextModeStrip
	}

	if renderer == "html" {
		return admonish.RenderTextModeHTML
	}

	return admonish.RenderTextModeStrip
}

// FromContext extracts the preprocessor's configuration from the raw
// mdBook config of the preprocess context. A missing table yields the
// zero configuration.
func FromContext(raw json.RawMessage) (*Config, error) {
	conf := &Config{}

	if len(raw) == 0 {
		return conf, nil
	}

	var root struct {
		Preprocessor map[string]json.RawMessage `json:"preprocessor"`
	}

	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, errors.Wrap(err, "could not decode mdbook config")
	}

	rawConf, exists := root.Preprocessor[PreprocessorName]
	if !exists {
		return conf, nil
	}

	if err := json.Unmarshal(rawConf, conf); err != nil {
		return nil, errors.Wrap(err, "could not decode preprocessor config")
	}

	return conf, nil
}

// FromBookTOML extracts the preprocessor's configuration from book.toml
// contents. A missing table yields the zero configuration.
func FromBookTOML(data []byte) (*Config, error) {
	var root struct {
		Preprocessor map[string]Config `toml:"preprocessor"`
	}

	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "could not parse book.toml")
	}

	conf, exists := root.Preprocessor[PreprocessorName]
	if !exists {
		return &Config{}, nil
	}

	return &conf, nil
}
