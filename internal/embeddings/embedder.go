package embeddings

import (
	"context"
	"errors"
)

// ErrModelLoad marks a missing or corrupt embedding model artifact.
// Model load failures abort the run.
var ErrModelLoad = errors.New("embedding model load failed")

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts, one vector per
	// input in the same order. Deterministic for identical inputs.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}
