package pitch_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phonolab/phonolab/pkg/pitch"
)

func sine(freq float64, seconds float64, rate int) []float32 {
	out := make([]float32, int(seconds*float64(rate)))
	for i := range out {
		out[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

var _ = Describe("Tracker", func() {
	var tracker *pitch.Tracker

	BeforeEach(func() {
		tracker = pitch.NewTracker(pitch.Config{})
	})

	It("fills in the default analysis settings", func() {
		cfg := tracker.Config()
		Expect(cfg.Floor).To(Equal(75.0))
		Expect(cfg.Ceiling).To(Equal(600.0))
		Expect(cfg.TimeStep).To(BeNumerically("~", 0.01, 1e-9))
		Expect(cfg.MaxCandidates).To(Equal(15))
	})

	It("recovers the frequency of a pure tone", func() {
		frames, err := tracker.Track(sine(200, 1, 16000), 16000)
		Expect(err).ToNot(HaveOccurred())
		Expect(frames).ToNot(BeEmpty())

		points := pitch.Voiced(frames)
		Expect(len(points)).To(BeNumerically(">", len(frames)*8/10))
		for _, p := range points {
			Expect(p.Frequency).To(BeNumerically("~", 200, 3))
		}
	})

	It("returns frames in increasing time order inside the signal", func() {
		frames, err := tracker.Track(sine(150, 0.5, 16000), 16000)
		Expect(err).ToNot(HaveOccurred())
		for i := 1; i < len(frames); i++ {
			Expect(frames[i].Time).To(BeNumerically(">", frames[i-1].Time))
		}
		Expect(frames[0].Time).To(BeNumerically(">", 0))
		Expect(frames[len(frames)-1].Time).To(BeNumerically("<", 0.5))
	})

	It("finds no voiced frames in silence", func() {
		frames, err := tracker.Track(make([]float32, 16000), 16000)
		Expect(err).ToNot(HaveOccurred())
		Expect(frames).ToNot(BeEmpty())
		Expect(pitch.Voiced(frames)).To(BeEmpty())
	})

	It("rejects signals shorter than one window", func() {
		_, err := tracker.Track(make([]float32, 100), 16000)
		Expect(err).To(MatchError(pitch.ErrTooShort))
	})

	It("rejects an invalid sample rate", func() {
		_, err := tracker.Track(make([]float32, 100), 0)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Voiced", func() {
	It("keeps only frames with a positive frequency", func() {
		points := pitch.Voiced([]pitch.Frame{
			{Time: 0.01, Frequency: 0},
			{Time: 0.02, Frequency: 120},
			{Time: 0.03, Frequency: 0},
			{Time: 0.04, Frequency: 121},
		})
		Expect(points).To(Equal([]pitch.Point{{Time: 0.02, Frequency: 120}, {Time: 0.04, Frequency: 121}}))
	})
})

var _ = Describe("Autocorrelation", func() {
	direct := func(x []float64, lags int) []float64 {
		out := make([]float64, lags)
		for lag := 0; lag < lags && lag < len(x); lag++ {
			for i := 0; i+lag < len(x); i++ {
				out[lag] += x[i] * x[i+lag]
			}
		}
		return out
	}

	It("matches the direct lagged sum without wrapping around", func() {
		x := []float64{0.5, -1, 2, 0.25, -0.75, 1.5, 3, -2, 0.1}
		got := pitch.Autocorrelate(x, len(x)+2)
		want := direct(x, len(x)+2)
		Expect(got).To(HaveLen(len(want)))
		for i := range want {
			Expect(got[i]).To(BeNumerically("~", want[i], 1e-9), "lag %d", i)
		}
	})

	It("agrees with the direct sum on a windowed tone", func() {
		samples := sine(220, 0.05, 16000)
		x := make([]float64, len(samples))
		for i, s := range samples {
			x[i] = float64(s)
		}
		got := pitch.Autocorrelate(x, 200)
		want := direct(x, 200)
		for i := range want {
			Expect(got[i]).To(BeNumerically("~", want[i], 1e-6), "lag %d", i)
		}
	})
})
