package alignment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mudler/xlog"
	"gopkg.in/yaml.v3"
)

// EmissionModel turns a mono waveform into per-frame label scores.
type EmissionModel interface {
	// SampleRate is the rate the model expects its input at.
	SampleRate() int
	Emissions(ctx context.Context, waveform []float32) (*Emission, error)
	Close() error
}

// BundleConfig describes an alignment model on disk.
type BundleConfig struct {
	Model             string   `yaml:"model"`
	SHA256            string   `yaml:"sha256"`
	SampleRate        int      `yaml:"sample_rate"`
	Labels            []string `yaml:"labels"`
	Blank             int      `yaml:"blank"`
	InputName         string   `yaml:"input_name"`
	OutputName        string   `yaml:"output_name"`
	NormalizeWaveform bool     `yaml:"normalize_waveform"`
	Threads           int      `yaml:"threads"`
}

// SetDefaults fills unset fields with the MMS-FA values.
func (c *BundleConfig) SetDefaults() {
	if c.SampleRate <= 0 {
		c.SampleRate = 16000
	}
	if len(c.Labels) == 0 {
		c.Labels = MMSLabels
	}
	if c.InputName == "" {
		c.InputName = "waveform"
	}
	if c.OutputName == "" {
		c.OutputName = "emissions"
	}
}

// LoadBundleConfig reads a YAML bundle description. A relative model path
// is resolved against the directory of the config file.
func LoadBundleConfig(path string) (*BundleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alignment config: %w", err)
	}
	cfg := &BundleConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing alignment config %s: %w", path, err)
	}
	if cfg.Model != "" && !filepath.IsAbs(cfg.Model) {
		cfg.Model = filepath.Join(filepath.Dir(path), cfg.Model)
	}
	cfg.SetDefaults()
	return cfg, nil
}

// VerifyModel checks the model file against the configured checksum.
// An empty checksum skips the check.
func (c *BundleConfig) VerifyModel() error {
	if c.SHA256 == "" {
		return nil
	}
	f, err := os.Open(c.Model)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hashing %s: %w", c.Model, err)
	}
	sum := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(sum, c.SHA256) {
		return fmt.Errorf("checksum mismatch for %s: got %s, want %s", c.Model, sum, c.SHA256)
	}
	return nil
}

// Bundle pairs an emission model with its dictionary. It is built once
// and only read afterwards, so one Bundle serves all requests.
type Bundle struct {
	model             EmissionModel
	dict              *Dictionary
	normalizeWaveform bool
}

// NewBundle wires a model to a dictionary.
func NewBundle(model EmissionModel, dict *Dictionary, normalizeWaveform bool) *Bundle {
	return &Bundle{model: model, dict: dict, normalizeWaveform: normalizeWaveform}
}

// Dictionary returns the bundle's dictionary.
func (b *Bundle) Dictionary() *Dictionary { return b.dict }

// SampleRate returns the rate the model expects.
func (b *Bundle) SampleRate() int { return b.model.SampleRate() }

// Close releases the model.
func (b *Bundle) Close() error { return b.model.Close() }

// Align runs the model over waveform and aligns tokens against its output.
func (b *Bundle) Align(ctx context.Context, waveform []float32, tokens []int) ([]Span, error) {
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}
	input := waveform
	if b.normalizeWaveform {
		input = standardize(waveform)
	}

	em, err := b.model.Emissions(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("running emission model: %w", err)
	}
	if err := em.Validate(); err != nil {
		return nil, err
	}
	if em.Labels < b.dict.Len() {
		return nil, fmt.Errorf("model emits %d labels, dictionary has %d", em.Labels, b.dict.Len())
	}
	em.LogSoftmax()

	xlog.Debug("Aligning transcript", "frames", em.Frames, "labels", em.Labels, "tokens", len(tokens))

	labels, scores, err := ForcedAlign(em, tokens, b.dict.Blank())
	if err != nil {
		return nil, err
	}
	return MergeTokens(labels, scores, b.dict.Blank()), nil
}

// standardize returns a zero-mean, unit-variance copy of x.
func standardize(x []float32) []float32 {
	out := make([]float32, len(x))
	if len(x) == 0 {
		return out
	}
	mean := 0.0
	for _, v := range x {
		mean += float64(v)
	}
	mean /= float64(len(x))
	variance := 0.0
	for _, v := range x {
		d := float64(v) - mean
		variance += d * d
	}
	std := math.Sqrt(variance/float64(len(x)) + 1e-7)
	for i, v := range x {
		out[i] = float32((float64(v) - mean) / std)
	}
	return out
}

// Load builds a bundle from cfg using the ONNX runtime library at libPath.
func Load(cfg *BundleConfig, libPath string) (*Bundle, error) {
	cfg.SetDefaults()
	dict, err := NewDictionary(cfg.Labels, cfg.Blank)
	if err != nil {
		return nil, err
	}
	if err := cfg.VerifyModel(); err != nil {
		return nil, err
	}
	model, err := NewONNXModel(ONNXOptions{
		ModelPath:   cfg.Model,
		LibraryPath: libPath,
		InputName:   cfg.InputName,
		OutputName:  cfg.OutputName,
		SampleRate:  cfg.SampleRate,
		Threads:     cfg.Threads,
	})
	if err != nil {
		return nil, err
	}
	xlog.Info("Alignment model loaded", "model", cfg.Model, "labels", dict.Len(), "sample_rate", cfg.SampleRate)
	return NewBundle(model, dict, cfg.NormalizeWaveform), nil
}
