package config

// ExtractorType identifies a PDF text extraction backend.
type ExtractorType string

const (
	ExtractorLedongthuc ExtractorType = "ledongthuc"
	ExtractorMuPDF      ExtractorType = "mupdf"
)

// EmbeddingProvider identifies an embedding provider.
type EmbeddingProvider string

const (
	ProviderONNX   EmbeddingProvider = "onnx"
	ProviderOllama EmbeddingProvider = "ollama"
	ProviderOpenAI EmbeddingProvider = "openai"
)

// EmbeddingConfig configures the sentence-embedding provider.
type EmbeddingConfig struct {
	Provider EmbeddingProvider `yaml:"provider" koanf:"provider"`
	Model    string            `yaml:"model" koanf:"model"`

	// ModelPath is the directory holding a local ONNX model artifact
	// (model.onnx plus vocab.txt). Required for the onnx provider.
	ModelPath string `yaml:"model_path" koanf:"model_path"`

	// ONNXLibrary optionally points at the onnxruntime shared library.
	ONNXLibrary string `yaml:"onnx_library" koanf:"onnx_library"`

	// Dimensions is the vector dimension (384 for all-MiniLM-L6-v2).
	Dimensions int `yaml:"dimensions" koanf:"dimensions"`

	// BaseURL overrides the Ollama endpoint.
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// Config is the top-level docsift configuration, corresponding to .docsift.yml.
type Config struct {
	InputDir    string          `yaml:"input_dir" koanf:"input_dir"`
	Output      string          `yaml:"output" koanf:"output"`
	Persona     string          `yaml:"persona" koanf:"persona"`
	JobToBeDone string          `yaml:"job_to_be_done" koanf:"job_to_be_done"`
	TopK        int             `yaml:"top_k" koanf:"top_k"`
	Include     []string        `yaml:"include" koanf:"include"`
	Exclude     []string        `yaml:"exclude" koanf:"exclude"`
	Extractor   ExtractorType   `yaml:"extractor" koanf:"extractor"`
	Embedding   EmbeddingConfig `yaml:"embedding" koanf:"embedding"`

	// IndexDir, when set, makes analyze persist every chunk into a local
	// vector index that `docsift search` can query later.
	IndexDir string `yaml:"index_dir" koanf:"index_dir"`
}
