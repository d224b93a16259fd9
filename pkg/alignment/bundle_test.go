package alignment_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phonolab/phonolab/pkg/alignment"
)

var _ = Describe("Bundle", func() {
	var (
		dict  *alignment.Dictionary
		model *fakeModel
		b     *alignment.Bundle
	)

	BeforeEach(func() {
		var err error
		dict, err = alignment.NewDictionary(alignment.MMSLabels, 0)
		Expect(err).ToNot(HaveOccurred())
		model = &fakeModel{emission: peakedEmission([]int{0, 5, 5, 0, 15, 0}, dict.Len())}
		b = alignment.NewBundle(model, dict, true)
	})

	It("does not run the model without tokens", func() {
		_, err := b.Align(context.Background(), make([]float32, 1600), nil)
		Expect(err).To(MatchError(alignment.ErrNoTokens))
		Expect(model.calls).To(Equal(0))
	})

	It("aligns tokens against the model output", func() {
		tokens, _ := dict.Tokenize("oh")
		spans, err := b.Align(context.Background(), make([]float32, 1600), tokens)
		Expect(err).ToNot(HaveOccurred())
		Expect(model.calls).To(Equal(1))
		Expect(spans).To(HaveLen(2))
		Expect(dict.Label(spans[0].Token)).To(Equal("o"))
		Expect(spans[0].Start).To(Equal(1))
		Expect(spans[0].End).To(Equal(3))
		Expect(dict.Label(spans[1].Token)).To(Equal("h"))
		Expect(spans[1].Start).To(Equal(4))
		Expect(spans[1].End).To(Equal(5))
	})

	It("reports transcripts longer than the audio", func() {
		tokens, _ := dict.Tokenize("hello world")
		_, err := b.Align(context.Background(), make([]float32, 1600), tokens)
		Expect(err).To(MatchError(alignment.ErrTooFewFrames))
	})

	It("rejects models with fewer labels than the dictionary", func() {
		model.emission = peakedEmission([]int{0, 1, 0}, 4)
		_, err := b.Align(context.Background(), make([]float32, 1600), []int{1})
		Expect(err).To(HaveOccurred())
	})

	It("closes the model", func() {
		Expect(b.Close()).To(Succeed())
		Expect(model.closed).To(BeTrue())
	})
})

var _ = Describe("BundleConfig", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("applies defaults and resolves the model path", func() {
		path := filepath.Join(dir, "align.yaml")
		Expect(os.WriteFile(path, []byte("model: mms-fa.onnx\nnormalize_waveform: true\n"), 0o600)).To(Succeed())

		cfg, err := alignment.LoadBundleConfig(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Model).To(Equal(filepath.Join(dir, "mms-fa.onnx")))
		Expect(cfg.SampleRate).To(Equal(16000))
		Expect(cfg.Labels).To(Equal(alignment.MMSLabels))
		Expect(cfg.Blank).To(Equal(0))
		Expect(cfg.InputName).To(Equal("waveform"))
		Expect(cfg.OutputName).To(Equal("emissions"))
		Expect(cfg.NormalizeWaveform).To(BeTrue())
	})

	It("keeps explicit values", func() {
		path := filepath.Join(dir, "align.yaml")
		content := "model: /models/fa.onnx\nsample_rate: 8000\nlabels: [\"_\", \"a\", \"b\"]\ninput_name: audio\noutput_name: logits\n"
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())

		cfg, err := alignment.LoadBundleConfig(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Model).To(Equal("/models/fa.onnx"))
		Expect(cfg.SampleRate).To(Equal(8000))
		Expect(cfg.Labels).To(Equal([]string{"_", "a", "b"}))
		Expect(cfg.InputName).To(Equal("audio"))
		Expect(cfg.OutputName).To(Equal("logits"))
	})

	It("fails on malformed yaml", func() {
		path := filepath.Join(dir, "align.yaml")
		Expect(os.WriteFile(path, []byte("labels: [a\n"), 0o600)).To(Succeed())
		_, err := alignment.LoadBundleConfig(path)
		Expect(err).To(HaveOccurred())
	})

	It("verifies the model checksum", func() {
		model := filepath.Join(dir, "model.onnx")
		data := []byte("not really a model")
		Expect(os.WriteFile(model, data, 0o600)).To(Succeed())
		sum := sha256.Sum256(data)

		cfg := &alignment.BundleConfig{Model: model, SHA256: hex.EncodeToString(sum[:])}
		Expect(cfg.VerifyModel()).To(Succeed())

		cfg.SHA256 = "deadbeef"
		Expect(cfg.VerifyModel()).ToNot(Succeed())

		cfg.SHA256 = ""
		Expect(cfg.VerifyModel()).To(Succeed())
	})
})
