package alignment_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phonolab/phonolab/pkg/alignment"
)

var _ = Describe("ForcedAlign", func() {
	const labels = 28
	// h=15 e=3 l=12 o=5
	hello := []int{15, 3, 12, 12, 5}

	It("follows the most likely path and merges it into spans", func() {
		path := []int{0, 15, 15, 0, 3, 12, 0, 12, 5, 0}
		em := peakedEmission(path, labels)

		frameLabels, scores, err := alignment.ForcedAlign(em, hello, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(frameLabels).To(Equal(path))
		Expect(scores).To(HaveLen(len(path)))

		spans := alignment.MergeTokens(frameLabels, scores, 0)
		Expect(spans).To(HaveLen(5))
		type bounds struct{ token, start, end int }
		var got []bounds
		for _, s := range spans {
			got = append(got, bounds{s.Token, s.Start, s.End})
		}
		Expect(got).To(Equal([]bounds{{15, 1, 3}, {3, 4, 5}, {12, 5, 6}, {12, 7, 8}, {5, 8, 9}}))
		for _, s := range spans {
			Expect(s.Score).To(BeNumerically("~", 0.9, 1e-6))
		}
	})

	It("produces ordered spans with scores in [0,1] on flat emissions", func() {
		em := &alignment.Emission{Frames: 40, Labels: labels, LogProbs: make([]float32, 40*labels)}
		em.LogSoftmax()

		frameLabels, scores, err := alignment.ForcedAlign(em, hello, 0)
		Expect(err).ToNot(HaveOccurred())
		spans := alignment.MergeTokens(frameLabels, scores, 0)
		Expect(spans).To(HaveLen(len(hello)))

		prevEnd := 0
		for i, s := range spans {
			Expect(s.Token).To(Equal(hello[i]))
			Expect(s.Start).To(BeNumerically(">=", prevEnd))
			Expect(s.Start).To(BeNumerically("<", s.End))
			Expect(s.Score).To(BeNumerically(">=", 0))
			Expect(s.Score).To(BeNumerically("<=", 1))
			prevEnd = s.End
		}
	})

	It("needs a blank between repeated tokens", func() {
		em := peakedEmission([]int{12, 12}, labels)
		_, _, err := alignment.ForcedAlign(em, []int{12, 12}, 0)
		Expect(err).To(MatchError(alignment.ErrTooFewFrames))

		em = peakedEmission([]int{12, 0, 12}, labels)
		frameLabels, _, err := alignment.ForcedAlign(em, []int{12, 12}, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(frameLabels).To(Equal([]int{12, 0, 12}))
	})

	It("fails when there are fewer frames than tokens", func() {
		em := peakedEmission([]int{0, 15, 0}, labels)
		_, _, err := alignment.ForcedAlign(em, hello, 0)
		Expect(err).To(MatchError(alignment.ErrTooFewFrames))
	})

	It("rejects empty and out-of-range targets", func() {
		em := peakedEmission([]int{0, 1, 0}, labels)
		_, _, err := alignment.ForcedAlign(em, nil, 0)
		Expect(err).To(MatchError(alignment.ErrNoTokens))
		_, _, err = alignment.ForcedAlign(em, []int{labels}, 0)
		Expect(err).To(HaveOccurred())
		_, _, err = alignment.ForcedAlign(em, []int{0}, 0)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Emission", func() {
	It("leaves log-probabilities unchanged under LogSoftmax", func() {
		em := peakedEmission([]int{0, 3, 5}, 28)
		before := append([]float32(nil), em.LogProbs...)
		em.LogSoftmax()
		for i := range before {
			Expect(float64(em.LogProbs[i])).To(BeNumerically("~", float64(before[i]), 1e-5))
		}
	})

	It("normalises raw scores into a distribution", func() {
		em := &alignment.Emission{Frames: 1, Labels: 3, LogProbs: []float32{1, 2, 3}}
		em.LogSoftmax()
		sum := 0.0
		for _, v := range em.LogProbs {
			sum += math.Exp(float64(v))
		}
		Expect(sum).To(BeNumerically("~", 1, 1e-5))
	})

	It("validates its dimensions", func() {
		Expect((&alignment.Emission{Frames: 2, Labels: 2, LogProbs: []float32{0}}).Validate()).ToNot(Succeed())
		Expect((&alignment.Emission{}).Validate()).ToNot(Succeed())
	})
})
