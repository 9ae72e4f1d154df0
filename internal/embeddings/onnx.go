package embeddings

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

const (
	onnxModelFile = "model.onnx"
	onnxVocabFile = "vocab.txt"

	// maxSequenceLength bounds tokenized inputs; all-MiniLM-L6-v2 was
	// trained with 256-token sequences.
	maxSequenceLength = 256
)

// The onnxruntime environment is process-wide: initialized once at first
// use and released by process exit.
var (
	ortInitOnce sync.Once
	ortInitErr  error
)

func initRuntime(libPath string) error {
	ortInitOnce.Do(func() {
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// ONNXEmbedder runs a local sentence-transformer ONNX model
// (all-MiniLM-L6-v2 or compatible): WordPiece tokenization, transformer
// inference, attention-masked mean pooling, L2 normalization.
type ONNXEmbedder struct {
	mu sync.Mutex

	session    *ort.DynamicAdvancedSession
	tokenizer  *wordPieceTokenizer
	inputNames []string
	dimensions int
	model      string
}

// NewONNXEmbedder loads the model artifact from modelDir, which must hold
// model.onnx and vocab.txt. libPath optionally points at the onnxruntime
// shared library. All failures wrap ErrModelLoad.
func NewONNXEmbedder(modelDir, libPath string, dimensions int) (*ONNXEmbedder, error) {
	modelPath := filepath.Join(modelDir, onnxModelFile)
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	if err := initRuntime(libPath); err != nil {
		return nil, fmt.Errorf("%w: onnxruntime init: %v", ErrModelLoad, err)
	}

	tokenizer, err := loadWordPiece(filepath.Join(modelDir, onnxVocabFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelLoad, err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: model info: %v", ErrModelLoad, err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("%w: model has no inputs or outputs", ErrModelLoad)
	}

	inputNames := make([]string, len(inputs))
	for i := range inputs {
		inputNames[i] = inputs[i].Name
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{outputs[0].Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: session: %v", ErrModelLoad, err)
	}

	// Prefer the hidden-state width reported by the model; fall back to the
	// configured dimension when the output shape is dynamic.
	if dims := outputs[0].Dimensions; len(dims) > 0 && dims[len(dims)-1] > 0 {
		dimensions = int(dims[len(dims)-1])
	}

	return &ONNXEmbedder{
		session:    session,
		tokenizer:  tokenizer,
		inputNames: inputNames,
		dimensions: dimensions,
		model:      filepath.Base(modelDir),
	}, nil
}

func (e *ONNXEmbedder) Name() string {
	return "onnx/" + e.model
}

func (e *ONNXEmbedder) Dimensions() int {
	return e.dimensions
}

func (e *ONNXEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	results := make([][]float32, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := e.embedOne(text)
		if err != nil {
			return nil, err
		}
		results = append(results, vec)
	}
	return results, nil
}

func (e *ONNXEmbedder) embedOne(text string) ([]float32, error) {
	ids := e.tokenizer.Encode(text, maxSequenceLength)
	n := len(ids)

	mask := make([]int64, n)
	types := make([]int64, n)
	for i := range mask {
		mask[i] = 1
	}

	shape := ort.NewShape(1, int64(n))
	inputs := make([]ort.Value, 0, len(e.inputNames))
	defer func() {
		for _, in := range inputs {
			in.Destroy()
		}
	}()

	// Build tensors in the order the model declares its inputs.
	for _, name := range e.inputNames {
		var data []int64
		switch name {
		case "input_ids":
			data = ids
		case "attention_mask":
			data = mask
		case "token_type_ids":
			data = types
		default:
			return nil, fmt.Errorf("unsupported model input %q", name)
		}
		tensor, err := ort.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("onnx input tensor: %w", err)
		}
		inputs = append(inputs, tensor)
	}

	outputs := []ort.Value{nil}
	e.mu.Lock()
	err := e.session.Run(inputs, outputs)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}
	defer outputs[0].Destroy()

	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected model output type")
	}

	outShape := hidden.GetShape()
	if len(outShape) != 3 {
		return nil, fmt.Errorf("unexpected model output shape %v", outShape)
	}
	seqLen := int(outShape[1])
	dims := int(outShape[2])

	return meanPool(hidden.GetData(), seqLen, dims), nil
}

// meanPool averages the token hidden states and L2-normalizes the result.
// Every token counts: the input carries no padding, so the attention mask
// is all ones.
func meanPool(data []float32, seqLen, dims int) []float32 {
	vec := make([]float32, dims)
	for t := 0; t < seqLen; t++ {
		row := data[t*dims : (t+1)*dims]
		for d, v := range row {
			vec[d] += v
		}
	}

	var norm float64
	for d := range vec {
		vec[d] /= float32(seqLen)
		norm += float64(vec[d]) * float64(vec[d])
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for d := range vec {
			vec[d] = float32(float64(vec[d]) / norm)
		}
	}
	return vec
}
