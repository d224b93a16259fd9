package alignment

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoTokens is returned when there is nothing to align.
	ErrNoTokens = errors.New("no valid tokens found in transcript")
	// ErrTooFewFrames is returned when the audio has fewer emission frames
	// than the transcript needs.
	ErrTooFewFrames = errors.New("audio too short for transcript")
)

// Emission is a row-major [Frames x Labels] matrix of log-probabilities.
type Emission struct {
	Frames   int
	Labels   int
	LogProbs []float32
}

// At returns the log-probability of label l at frame t.
func (e *Emission) At(t, l int) float64 {
	return float64(e.LogProbs[t*e.Labels+l])
}

// Validate checks the matrix dimensions.
func (e *Emission) Validate() error {
	if e.Frames <= 0 || e.Labels <= 0 {
		return fmt.Errorf("empty emission matrix (%dx%d)", e.Frames, e.Labels)
	}
	if len(e.LogProbs) != e.Frames*e.Labels {
		return fmt.Errorf("emission data has %d values, want %d", len(e.LogProbs), e.Frames*e.Labels)
	}
	return nil
}

// LogSoftmax normalises every frame in place. Applying it to rows that
// already hold log-probabilities leaves them unchanged.
func (e *Emission) LogSoftmax() {
	for t := 0; t < e.Frames; t++ {
		row := e.LogProbs[t*e.Labels : (t+1)*e.Labels]
		maxV := math.Inf(-1)
		for _, v := range row {
			maxV = math.Max(maxV, float64(v))
		}
		sum := 0.0
		for _, v := range row {
			sum += math.Exp(float64(v) - maxV)
		}
		lse := maxV + math.Log(sum)
		for i, v := range row {
			row[i] = float32(float64(v) - lse)
		}
	}
}

// ForcedAlign finds the most likely CTC path that emits exactly tokens.
// It returns the label chosen at every frame and that label's log-probability.
func ForcedAlign(em *Emission, tokens []int, blank int) ([]int, []float64, error) {
	if err := em.Validate(); err != nil {
		return nil, nil, err
	}
	if len(tokens) == 0 {
		return nil, nil, ErrNoTokens
	}
	if blank < 0 || blank >= em.Labels {
		return nil, nil, fmt.Errorf("blank index %d out of range", blank)
	}
	repeats := 0
	for i, tok := range tokens {
		if tok < 0 || tok >= em.Labels {
			return nil, nil, fmt.Errorf("token %d out of range [0,%d)", tok, em.Labels)
		}
		if tok == blank {
			return nil, nil, fmt.Errorf("token %d is the blank label", i)
		}
		if i > 0 && tokens[i-1] == tok {
			repeats++
		}
	}
	if em.Frames < len(tokens)+repeats {
		return nil, nil, fmt.Errorf("%w: %d frames for %d tokens", ErrTooFewFrames, em.Frames, len(tokens)+repeats)
	}

	// Blank-interleaved target: b t1 b t2 b ... tN b
	S := 2*len(tokens) + 1
	ext := make([]int, S)
	for s := range ext {
		if s%2 == 0 {
			ext[s] = blank
		} else {
			ext[s] = tokens[s/2]
		}
	}

	negInf := math.Inf(-1)
	prev := make([]float64, S)
	cur := make([]float64, S)
	for s := range prev {
		prev[s] = negInf
	}
	prev[0] = em.At(0, ext[0])
	prev[1] = em.At(0, ext[1])

	// back[t][s] holds how far s moved back from frame t-1: 0, 1 or 2.
	back := make([][]int8, em.Frames)
	for t := 1; t < em.Frames; t++ {
		back[t] = make([]int8, S)
		for s := 0; s < S; s++ {
			best, step := prev[s], int8(0)
			if s >= 1 && prev[s-1] > best {
				best, step = prev[s-1], 1
			}
			if s >= 2 && ext[s] != blank && ext[s] != ext[s-2] && prev[s-2] > best {
				best, step = prev[s-2], 2
			}
			back[t][s] = step
			if math.IsInf(best, -1) {
				cur[s] = negInf
				continue
			}
			cur[s] = best + em.At(t, ext[s])
		}
		prev, cur = cur, prev
	}

	s := S - 1
	if prev[S-2] > prev[S-1] {
		s = S - 2
	}
	if math.IsInf(prev[s], -1) {
		return nil, nil, ErrTooFewFrames
	}

	labels := make([]int, em.Frames)
	scores := make([]float64, em.Frames)
	for t := em.Frames - 1; t >= 0; t-- {
		labels[t] = ext[s]
		scores[t] = em.At(t, ext[s])
		if t > 0 {
			s -= int(back[t][s])
		}
	}
	return labels, scores, nil
}

// Span is a run of identical non-blank frames. End is exclusive.
type Span struct {
	Token int
	Start int
	End   int
	Score float64
}

// MergeTokens collapses a frame-level path into token spans. scores are
// per-frame log-probabilities; a span's Score is the mean probability over
// its frames.
func MergeTokens(labels []int, scores []float64, blank int) []Span {
	var spans []Span
	for start := 0; start < len(labels); {
		end := start + 1
		for end < len(labels) && labels[end] == labels[start] {
			end++
		}
		if labels[start] != blank {
			sum := 0.0
			for _, v := range scores[start:end] {
				sum += math.Exp(v)
			}
			spans = append(spans, Span{
				Token: labels[start],
				Start: start,
				End:   end,
				Score: sum / float64(end-start),
			})
		}
		start = end
	}
	return spans
}
