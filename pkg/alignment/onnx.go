//go:build cgo

package alignment

import (
	"context"
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

const ortAlreadyInitialized = "the ONNX runtime is already initialized"

// ONNXOptions configures an ONNX emission model.
type ONNXOptions struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	SampleRate  int
	Threads     int
}

// ONNXModel runs an exported CTC acoustic model through onnxruntime.
// The input is a [1, samples] float32 tensor; the output is
// [1, frames, labels] (or [frames, labels]).
type ONNXModel struct {
	session    *ort.DynamicAdvancedSession
	sampleRate int
}

// NewONNXModel initializes the runtime and creates a session for opts.ModelPath.
func NewONNXModel(opts ONNXOptions) (*ONNXModel, error) {
	if opts.ModelPath == "" {
		return nil, fmt.Errorf("no alignment model configured")
	}
	if opts.LibraryPath != "" {
		ort.SetSharedLibraryPath(opts.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil && err.Error() != ortAlreadyInitialized {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	var sessionOpts *ort.SessionOptions
	if opts.Threads > 0 {
		so, err := ort.NewSessionOptions()
		if err != nil {
			return nil, fmt.Errorf("creating session options: %w", err)
		}
		defer so.Destroy()
		if err := so.SetIntraOpNumThreads(opts.Threads); err != nil {
			return nil, fmt.Errorf("setting thread count: %w", err)
		}
		sessionOpts = so
	}

	session, err := ort.NewDynamicAdvancedSession(
		opts.ModelPath,
		[]string{opts.InputName},
		[]string{opts.OutputName},
		sessionOpts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session for %s: %w", opts.ModelPath, err)
	}
	return &ONNXModel{session: session, sampleRate: opts.SampleRate}, nil
}

func (m *ONNXModel) SampleRate() int { return m.sampleRate }

// Emissions runs one inference pass. onnxruntime sessions are safe for
// concurrent Run calls.
func (m *ONNXModel) Emissions(ctx context.Context, waveform []float32) (*Emission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(waveform) == 0 {
		return nil, fmt.Errorf("empty waveform")
	}

	input, err := ort.NewTensor(ort.NewShape(1, int64(len(waveform))), waveform)
	if err != nil {
		return nil, fmt.Errorf("creating input tensor: %w", err)
	}
	defer input.Destroy()

	// nil outputs are allocated by the runtime
	outputs := []ort.Value{nil}
	if err := m.session.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	defer outputs[0].Destroy()

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", outputs[0])
	}

	shape := out.GetShape()
	var frames, labels int64
	switch len(shape) {
	case 3:
		if shape[0] != 1 {
			return nil, fmt.Errorf("unexpected batch size %d", shape[0])
		}
		frames, labels = shape[1], shape[2]
	case 2:
		frames, labels = shape[0], shape[1]
	default:
		return nil, fmt.Errorf("unexpected output shape %v", shape)
	}

	data := out.GetData()
	logProbs := make([]float32, len(data))
	copy(logProbs, data)

	return &Emission{Frames: int(frames), Labels: int(labels), LogProbs: logProbs}, nil
}

// Close destroys the session and the runtime environment.
func (m *ONNXModel) Close() error {
	if m.session != nil {
		if err := m.session.Destroy(); err != nil {
			return err
		}
		m.session = nil
	}
	return ort.DestroyEnvironment()
}
