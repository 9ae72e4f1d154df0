package config

// DefaultModel is the embedding model docsift ships its defaults around.
const DefaultModel = "all-MiniLM-L6-v2"

// DefaultDimensions is the output dimension of all-MiniLM-L6-v2.
const DefaultDimensions = 384

// DefaultIncludes are the glob patterns matched against files under input_dir.
var DefaultIncludes = []string{"**/*.pdf"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		InputDir:  "pdfs",
		Output:    "docsift_report.json",
		TopK:      10,
		Include:   DefaultIncludes,
		Extractor: ExtractorLedongthuc,
		Embedding: EmbeddingConfig{
			Provider:   ProviderONNX,
			Model:      DefaultModel,
			ModelPath:  "models/" + DefaultModel,
			Dimensions: DefaultDimensions,
		},
	}
}
