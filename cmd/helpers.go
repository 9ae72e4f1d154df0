package cmd

import (
	"fmt"
	"os"

	"github.com/docsift/docsift/internal/config"
	"github.com/docsift/docsift/internal/embeddings"
	"github.com/docsift/docsift/internal/extract"
)

// loadConfig loads the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docsift init` to create a config file", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// Shared by the analyze and search commands.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	dims := cfg.Embedding.Dimensions
	if dims <= 0 {
		dims = config.DefaultDimensions
	}

	switch cfg.Embedding.Provider {
	case config.ProviderONNX:
		return embeddings.NewONNXEmbedder(cfg.Embedding.ModelPath, cfg.Embedding.ONNXLibrary, dims)
	case config.ProviderOllama:
		model := cfg.Embedding.Model
		if model == "" {
			model = "all-minilm"
		}
		return embeddings.NewOllamaEmbedder(model, dims, cfg.Embedding.BaseURL), nil
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.Embedding.Model)), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

// createExtractorFromConfig creates the configured PDF extraction backend.
func createExtractorFromConfig(cfg *config.Config) (extract.Extractor, error) {
	return extract.New(cfg.Extractor)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
