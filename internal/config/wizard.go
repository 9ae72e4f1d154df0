package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .docsift.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to docsift! Let's configure your analysis.")
	fmt.Println()

	defaults := DefaultConfig()

	inputPrompt := promptui.Prompt{
		Label:   "Directory containing the input PDFs",
		Default: defaults.InputDir,
	}
	inputDir, err := inputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}

	personaPrompt := promptui.Prompt{
		Label: "Persona (e.g. \"PhD Researcher in Computational Biology\")",
	}
	persona, err := personaPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("persona: %w", err)
	}

	jobPrompt := promptui.Prompt{
		Label: "Job to be done (e.g. \"prepare a literature review on benchmarks\")",
	}
	job, err := jobPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("job to be done: %w", err)
	}

	providerPrompt := promptui.Select{
		Label: "Select embedding provider",
		Items: []string{
			"onnx   — local all-MiniLM-L6-v2 model, fully offline",
			"ollama — local Ollama server",
			"openai — OpenAI embeddings API",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []EmbeddingProvider{ProviderONNX, ProviderOllama, ProviderOpenAI}
	provider := providers[providerIdx]

	embedding := defaults.Embedding
	embedding.Provider = provider
	switch provider {
	case ProviderONNX:
		modelPrompt := promptui.Prompt{
			Label:   "Directory holding model.onnx and vocab.txt",
			Default: defaults.Embedding.ModelPath,
		}
		embedding.ModelPath, err = modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("model path: %w", err)
		}
	case ProviderOllama:
		embedding.Model = "all-minilm"
		embedding.ModelPath = ""
	case ProviderOpenAI:
		embedding.Model = "text-embedding-3-small"
		embedding.ModelPath = ""
		embedding.Dimensions = 1536
	}

	topKPrompt := promptui.Prompt{
		Label:   "Number of top-ranked sections to report",
		Default: strconv.Itoa(defaults.TopK),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		},
	}
	topKStr, err := topKPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("top-k: %w", err)
	}
	topK, _ := strconv.Atoi(topKStr)

	cfg := &Config{
		InputDir:    inputDir,
		Output:      defaults.Output,
		Persona:     persona,
		JobToBeDone: job,
		TopK:        topK,
		Include:     defaults.Include,
		Extractor:   defaults.Extractor,
		Embedding:   embedding,
	}

	if envVar := APIKeyEnvVar(provider); envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running docsift analyze.\n", envVar)
		}
	}

	configPath := ".docsift.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
