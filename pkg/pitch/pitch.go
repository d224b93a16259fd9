// Package pitch estimates a fundamental-frequency contour with the
// autocorrelation method (Boersma, 1993): a Hanning-windowed short-term
// autocorrelation divided by the window's own autocorrelation, peak picking
// with parabolic interpolation, and a Viterbi pass over the candidates.
package pitch

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrTooShort is returned when the signal is shorter than one analysis window.
var ErrTooShort = errors.New("sound too short for pitch analysis")

// Config holds the analysis parameters. Zero values are replaced by the
// defaults of DefaultConfig.
type Config struct {
	// TimeStep between frame centres in seconds; 0 means 0.75 / Floor.
	TimeStep float64
	// Floor and Ceiling bound the candidate frequencies in Hz.
	Floor   float64
	Ceiling float64
	// PeriodsPerWindow sets the window length relative to Floor.
	PeriodsPerWindow float64
	MaxCandidates    int

	SilenceThreshold   float64
	VoicingThreshold   float64
	OctaveCost         float64
	OctaveJumpCost     float64
	VoicedUnvoicedCost float64
}

// DefaultConfig mirrors the usual "To Pitch (ac)" settings.
func DefaultConfig() Config {
	return Config{
		Floor:              75,
		Ceiling:            600,
		PeriodsPerWindow:   3,
		MaxCandidates:      15,
		SilenceThreshold:   0.03,
		VoicingThreshold:   0.45,
		OctaveCost:         0.01,
		OctaveJumpCost:     0.35,
		VoicedUnvoicedCost: 0.14,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Floor <= 0 {
		c.Floor = d.Floor
	}
	if c.Ceiling <= 0 {
		c.Ceiling = d.Ceiling
	}
	if c.PeriodsPerWindow <= 0 {
		c.PeriodsPerWindow = d.PeriodsPerWindow
	}
	if c.MaxCandidates < 2 {
		c.MaxCandidates = d.MaxCandidates
	}
	if c.SilenceThreshold <= 0 {
		c.SilenceThreshold = d.SilenceThreshold
	}
	if c.VoicingThreshold <= 0 {
		c.VoicingThreshold = d.VoicingThreshold
	}
	if c.OctaveCost < 0 {
		c.OctaveCost = d.OctaveCost
	}
	if c.OctaveJumpCost < 0 {
		c.OctaveJumpCost = d.OctaveJumpCost
	}
	if c.VoicedUnvoicedCost < 0 {
		c.VoicedUnvoicedCost = d.VoicedUnvoicedCost
	}
	if c.TimeStep <= 0 {
		c.TimeStep = 0.75 / c.Floor
	}
	return c
}

// Frame is one analysis frame. Frequency is 0 for unvoiced frames.
type Frame struct {
	Time      float64
	Frequency float64
	Strength  float64
}

// Point is a voiced sample of the contour.
type Point struct {
	Time      float64 `json:"time"`
	Frequency float64 `json:"frequency"`
}

// Voiced drops unvoiced frames and returns the remaining (time, frequency) pairs.
func Voiced(frames []Frame) []Point {
	points := make([]Point, 0, len(frames))
	for _, f := range frames {
		if f.Frequency > 0 {
			points = append(points, Point{Time: f.Time, Frequency: f.Frequency})
		}
	}
	return points
}

// Tracker runs the analysis. It holds no per-call state and is safe for
// concurrent use.
type Tracker struct {
	cfg Config
}

// NewTracker returns a tracker using cfg, with defaults filled in.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (t *Tracker) Config() Config {
	return t.cfg
}

type candidate struct {
	frequency float64
	strength  float64
}

// Track analyses mono samples in [-1, 1] and returns every frame,
// voiced or not, in time order.
func (t *Tracker) Track(samples []float32, sampleRate int) ([]Frame, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	cfg := t.cfg
	if cfg.Ceiling <= cfg.Floor {
		return nil, fmt.Errorf("pitch ceiling %.1f must be above floor %.1f", cfg.Ceiling, cfg.Floor)
	}

	sr := float64(sampleRate)
	duration := float64(len(samples)) / sr
	windowDuration := cfg.PeriodsPerWindow / cfg.Floor

	nWindow := int(math.Floor(windowDuration * sr))
	if nWindow%2 == 1 {
		nWindow--
	}
	if nWindow < 4 || duration < windowDuration {
		return nil, ErrTooShort
	}

	minLag := int(math.Ceil(sr / cfg.Ceiling))
	if minLag < 2 {
		minLag = 2
	}
	maxLag := int(math.Floor(float64(nWindow)/cfg.PeriodsPerWindow)) + 2
	if maxLag > nWindow-1 {
		maxLag = nWindow - 1
	}
	if minLag >= maxLag {
		return nil, fmt.Errorf("sample rate %d too low for a %.1f Hz ceiling", sampleRate, cfg.Ceiling)
	}

	numberOfFrames := int(math.Floor((duration-windowDuration)/cfg.TimeStep)) + 1
	t1 := 0.5*duration - 0.5*float64(numberOfFrames-1)*cfg.TimeStep

	// one per call, the FFT keeps scratch buffers
	corr := newAutocorrelator(nWindow)
	window := hanning(nWindow)
	windowAC := corr.compute(window, maxLag+1)
	normalize(windowAC)

	globalPeak := 0.0
	mean := meanOf(samples, 0, len(samples))
	for _, s := range samples {
		if v := math.Abs(float64(s) - mean); v > globalPeak {
			globalPeak = v
		}
	}

	candidates := make([][]candidate, numberOfFrames)
	frame := make([]float64, nWindow)
	for i := 0; i < numberOfFrames; i++ {
		centre := t1 + float64(i)*cfg.TimeStep
		start := int(math.Round(centre*sr)) - nWindow/2
		candidates[i] = t.frameCandidates(corr, samples, start, frame, window, windowAC, minLag, maxLag, sr, globalPeak)
	}

	path := t.viterbi(candidates)

	frames := make([]Frame, numberOfFrames)
	for i := range frames {
		c := candidates[i][path[i]]
		frames[i] = Frame{
			Time:      t1 + float64(i)*cfg.TimeStep,
			Frequency: c.frequency,
			Strength:  c.strength,
		}
	}
	return frames, nil
}

func (t *Tracker) frameCandidates(corr *autocorrelator, samples []float32, start int, frame, window, windowAC []float64, minLag, maxLag int, sr, globalPeak float64) []candidate {
	cfg := t.cfg
	n := len(frame)

	localMean := meanOf(samples, start, start+n)
	localPeak := 0.0
	for j := 0; j < n; j++ {
		v := 0.0
		if idx := start + j; idx >= 0 && idx < len(samples) {
			v = float64(samples[idx]) - localMean
		}
		if a := math.Abs(v); a > localPeak {
			localPeak = a
		}
		frame[j] = v * window[j]
	}

	unvoiced := candidate{strength: cfg.VoicingThreshold + 2}
	if globalPeak > 0 {
		intensity := localPeak / globalPeak
		unvoiced.strength = cfg.VoicingThreshold +
			math.Max(0, 2-intensity/(cfg.SilenceThreshold/(1+cfg.VoicingThreshold)))
	}
	out := []candidate{unvoiced}

	ac := corr.compute(frame, maxLag+2)
	if ac[0] <= 0 {
		return out
	}
	r := make([]float64, len(ac))
	for lag := range ac {
		if windowAC[min(lag, len(windowAC)-1)] <= 0 {
			continue
		}
		r[lag] = ac[lag] / ac[0] / windowAC[min(lag, len(windowAC)-1)]
	}

	var voiced []candidate
	for lag := minLag; lag <= maxLag && lag+1 < len(r); lag++ {
		if r[lag] < 0.5*cfg.VoicingThreshold || r[lag] <= r[lag-1] || r[lag] < r[lag+1] {
			continue
		}
		dr := 0.5 * (r[lag+1] - r[lag-1])
		d2r := 2*r[lag] - r[lag-1] - r[lag+1]
		offset := 0.0
		if d2r > 0 {
			offset = dr / d2r
		}
		peak := r[lag] + 0.5*dr*offset
		if peak > 1 {
			peak = 1 / peak
		}
		frequency := sr / (float64(lag) + offset)
		if frequency < cfg.Floor || frequency > cfg.Ceiling {
			continue
		}
		voiced = append(voiced, candidate{
			frequency: frequency,
			strength:  peak - cfg.OctaveCost*math.Log2(cfg.Floor/frequency),
		})
	}

	sort.Slice(voiced, func(a, b int) bool { return voiced[a].strength > voiced[b].strength })
	if len(voiced) > cfg.MaxCandidates-1 {
		voiced = voiced[:cfg.MaxCandidates-1]
	}
	return append(out, voiced...)
}

// viterbi returns, per frame, the index of the chosen candidate.
func (t *Tracker) viterbi(candidates [][]candidate) []int {
	cfg := t.cfg
	n := len(candidates)
	path := make([]int, n)
	if n == 0 {
		return path
	}

	timeStepCorrection := 0.01 / cfg.TimeStep
	jumpCost := cfg.OctaveJumpCost * timeStepCorrection
	vuCost := cfg.VoicedUnvoicedCost * timeStepCorrection

	score := make([][]float64, n)
	back := make([][]int, n)
	score[0] = make([]float64, len(candidates[0]))
	for j, c := range candidates[0] {
		score[0][j] = c.strength
	}

	for i := 1; i < n; i++ {
		score[i] = make([]float64, len(candidates[i]))
		back[i] = make([]int, len(candidates[i]))
		for j, cur := range candidates[i] {
			best := math.Inf(-1)
			for k, prev := range candidates[i-1] {
				v := score[i-1][k] - transitionCost(prev, cur, jumpCost, vuCost)
				if v > best {
					best = v
					back[i][j] = k
				}
			}
			score[i][j] = best + cur.strength
		}
	}

	bestIdx, best := 0, math.Inf(-1)
	for j, v := range score[n-1] {
		if v > best {
			best, bestIdx = v, j
		}
	}
	path[n-1] = bestIdx
	for i := n - 1; i > 0; i-- {
		path[i-1] = back[i][path[i]]
	}
	return path
}

func transitionCost(prev, cur candidate, jumpCost, vuCost float64) float64 {
	prevVoiced := prev.frequency > 0
	curVoiced := cur.frequency > 0
	switch {
	case !prevVoiced && !curVoiced:
		return 0
	case prevVoiced != curVoiced:
		return vuCost
	default:
		return jumpCost * math.Abs(math.Log2(prev.frequency/cur.frequency))
	}
}

func hanning(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i+1)/float64(n+1))
	}
	return w
}

// autocorrelator computes linear autocorrelations of frames up to n samples
// long through a zero-padded real FFT.
type autocorrelator struct {
	fft    *fourier.FFT
	padded []float64
	coeff  []complex128
	seq    []float64
}

func newAutocorrelator(n int) *autocorrelator {
	size := 1
	for size < 2*n {
		size <<= 1
	}
	return &autocorrelator{
		fft:    fourier.NewFFT(size),
		padded: make([]float64, size),
		coeff:  make([]complex128, size/2+1),
		seq:    make([]float64, size),
	}
}

// compute returns the first lags autocorrelation values of x.
func (a *autocorrelator) compute(x []float64, lags int) []float64 {
	clear(a.padded)
	copy(a.padded, x)
	a.coeff = a.fft.Coefficients(a.coeff, a.padded)
	for i, c := range a.coeff {
		a.coeff[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	// Sequence is not normalised
	a.seq = a.fft.Sequence(a.seq, a.coeff)
	scale := float64(len(a.padded))

	out := make([]float64, lags)
	for lag := 0; lag < lags && lag < len(x); lag++ {
		out[lag] = a.seq[lag] / scale
	}
	return out
}

func normalize(x []float64) {
	if len(x) == 0 || x[0] == 0 {
		return
	}
	ref := x[0]
	for i := range x {
		x[i] /= ref
	}
}

func meanOf(samples []float32, from, to int) float64 {
	if from < 0 {
		from = 0
	}
	if to > len(samples) {
		to = len(samples)
	}
	if to <= from {
		return 0
	}
	sum := 0.0
	for _, s := range samples[from:to] {
		sum += float64(s)
	}
	return sum / float64(to-from)
}
