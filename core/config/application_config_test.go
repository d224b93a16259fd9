package config_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phonolab/phonolab/core/config"
)

var _ = Describe("ApplicationConfig", func() {
	It("starts from the service defaults", func() {
		cfg := config.NewApplicationConfig()
		Expect(cfg.Context).ToNot(BeNil())
		Expect(cfg.Address).To(Equal(":8080"))
		Expect(cfg.MaxAlignmentUploadBytes).To(Equal(int64(10 * 1024 * 1024)))
		Expect(cfg.FFmpegPath).To(Equal("ffmpeg"))
		Expect(cfg.SpeechModel).To(Equal("tts-1"))
		Expect(cfg.SpeechVoice).To(Equal("alloy"))
		Expect(cfg.OpenAIBaseURL).To(Equal("https://api.openai.com/v1"))
		Expect(cfg.PitchFloor).To(Equal(75.0))
		Expect(cfg.PitchCeiling).To(Equal(600.0))
		Expect(cfg.DisableMetrics).To(BeFalse())
	})

	It("applies options in order", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		cfg := config.NewApplicationConfig(
			config.WithContext(ctx),
			config.WithAddress("127.0.0.1:9000"),
			config.WithStaticDir("/srv/app"),
			config.WithTempDir("/tmp/phonolab"),
			config.WithMaxAlignmentUpload(1024),
			config.WithFFmpegPath("/usr/local/bin/ffmpeg"),
			config.WithAlignmentConfigFile("/models/align.yaml"),
			config.WithONNXRuntimeLibrary("/usr/lib/libonnxruntime.so"),
			config.WithSpeechVoice("nova"),
			config.WithSpeechVoice("echo"),
			config.WithPitchRange(100, 500),
			config.WithShutdownTimeout(time.Second),
			config.DisableMetricsEndpoint,
		)
		Expect(cfg.Context).To(Equal(ctx))
		Expect(cfg.Address).To(Equal("127.0.0.1:9000"))
		Expect(cfg.StaticDir).To(Equal("/srv/app"))
		Expect(cfg.TempDir).To(Equal("/tmp/phonolab"))
		Expect(cfg.MaxAlignmentUploadBytes).To(Equal(int64(1024)))
		Expect(cfg.FFmpegPath).To(Equal("/usr/local/bin/ffmpeg"))
		Expect(cfg.AlignmentConfigFile).To(Equal("/models/align.yaml"))
		Expect(cfg.ONNXRuntimeLibrary).To(Equal("/usr/lib/libonnxruntime.so"))
		Expect(cfg.SpeechVoice).To(Equal("echo"))
		Expect(cfg.PitchFloor).To(Equal(100.0))
		Expect(cfg.PitchCeiling).To(Equal(500.0))
		Expect(cfg.ShutdownTimeout).To(Equal(time.Second))
		Expect(cfg.DisableMetrics).To(BeTrue())
	})

	It("ignores empty overrides", func() {
		cfg := config.NewApplicationConfig(
			config.WithAddress(""),
			config.WithMaxAlignmentUpload(0),
			config.WithFFmpegPath(""),
			config.WithSpeechModel(""),
			config.WithOpenAIBaseURL(""),
			config.WithPitchRange(0, 0),
		)
		Expect(cfg.Address).To(Equal(config.DefaultAddress))
		Expect(cfg.MaxAlignmentUploadBytes).To(Equal(int64(config.DefaultMaxAlignmentUpload)))
		Expect(cfg.FFmpegPath).To(Equal("ffmpeg"))
		Expect(cfg.SpeechModel).To(Equal(config.DefaultSpeechModel))
		Expect(cfg.OpenAIBaseURL).To(Equal(config.DefaultOpenAIBaseURL))
		Expect(cfg.PitchFloor).To(Equal(config.DefaultPitchFloor))
	})
})
