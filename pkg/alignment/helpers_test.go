package alignment_test

import (
	"context"
	"math"

	"github.com/phonolab/phonolab/pkg/alignment"
)

// peakedEmission returns an emission where frame t puts most of its mass on path[t].
func peakedEmission(path []int, labels int) *alignment.Emission {
	em := &alignment.Emission{Frames: len(path), Labels: labels, LogProbs: make([]float32, len(path)*labels)}
	high := math.Log(0.9)
	low := math.Log(0.1 / float64(labels-1))
	for t, l := range path {
		for k := 0; k < labels; k++ {
			v := low
			if k == l {
				v = high
			}
			em.LogProbs[t*labels+k] = float32(v)
		}
	}
	return em
}

type fakeModel struct {
	emission *alignment.Emission
	calls    int
	closed   bool
}

func (f *fakeModel) SampleRate() int { return 16000 }

func (f *fakeModel) Emissions(_ context.Context, _ []float32) (*alignment.Emission, error) {
	f.calls++
	cp := *f.emission
	cp.LogProbs = append([]float32(nil), f.emission.LogProbs...)
	return &cp, nil
}

func (f *fakeModel) Close() error {
	f.closed = true
	return nil
}
