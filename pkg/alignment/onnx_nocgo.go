//go:build !cgo

package alignment

import (
	"context"
	"errors"
)

var errNoCGO = errors.New("onnxruntime requires a cgo build")

type ONNXOptions struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	SampleRate  int
	Threads     int
}

type ONNXModel struct{}

func NewONNXModel(ONNXOptions) (*ONNXModel, error) { return nil, errNoCGO }

func (m *ONNXModel) SampleRate() int { return 0 }

func (m *ONNXModel) Emissions(context.Context, []float32) (*Emission, error) {
	return nil, errNoCGO
}

func (m *ONNXModel) Close() error { return nil }
