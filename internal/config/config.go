package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// ErrConfig marks fatal configuration problems: missing required inputs,
// unknown backend names, and the like. The run aborts when it is returned.
var ErrConfig = errors.New("invalid configuration")

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DOCSIFT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DOCSIFT_PERSONA -> persona, etc.
	if err := k.Load(env.Provider("DOCSIFT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DOCSIFT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validExtractors is the set of recognized extraction backends.
var validExtractors = map[ExtractorType]bool{
	ExtractorLedongthuc: true,
	ExtractorMuPDF:      true,
}

// validProviders is the set of recognized embedding providers.
var validProviders = map[EmbeddingProvider]bool{
	ProviderONNX:   true,
	ProviderOllama: true,
	ProviderOpenAI: true,
}

// Validate checks that the configuration contains valid values.
// Persona and job_to_be_done are checked separately at analyze time
// because outline and search do not need them.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("%w: input_dir is required", ErrConfig)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output is required", ErrConfig)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", ErrConfig)
	}
	if !validExtractors[c.Extractor] {
		return fmt.Errorf("%w: invalid extractor %q: must be one of ledongthuc, mupdf", ErrConfig, c.Extractor)
	}
	if !validProviders[c.Embedding.Provider] {
		return fmt.Errorf("%w: invalid embedding provider %q: must be one of onnx, ollama, openai", ErrConfig, c.Embedding.Provider)
	}
	if c.Embedding.Provider == ProviderONNX && c.Embedding.ModelPath == "" {
		return fmt.Errorf("%w: embedding.model_path is required for the onnx provider", ErrConfig)
	}
	if c.Embedding.Dimensions < 0 {
		return fmt.Errorf("%w: embedding.dimensions must be non-negative", ErrConfig)
	}
	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider, or "" for local providers.
func APIKeyEnvVar(provider EmbeddingProvider) string {
	if provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return ""
}
