package config

import (
	"context"
	"time"
)

const (
	DefaultAddress            = ":8080"
	DefaultMaxAlignmentUpload = 10 * 1024 * 1024
	DefaultUploadLimitMB      = 50
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1"
	DefaultSpeechModel        = "tts-1"
	DefaultSpeechVoice        = "alloy"
	DefaultPitchFloor         = 75.0
	DefaultPitchCeiling       = 600.0
)

type ApplicationConfig struct {
	Context context.Context

	Address         string
	StaticDir       string
	TempDir         string
	ShutdownTimeout time.Duration

	// UploadLimitMB caps every request body except alignment uploads.
	UploadLimitMB           int
	// MaxAlignmentUploadBytes caps the audio accepted by the alignment endpoint.
	MaxAlignmentUploadBytes int64

	FFmpegPath string

	AlignmentConfigFile string
	AlignmentModel      string
	ONNXRuntimeLibrary  string
	AlignmentThreads    int

	PitchFloor   float64
	PitchCeiling float64

	OpenAIBaseURL string
	SpeechModel   string
	SpeechVoice   string

	DisableMetrics bool
	Debug          bool
}

type AppOption func(*ApplicationConfig)

func NewApplicationConfig(o ...AppOption) *ApplicationConfig {
	opt := &ApplicationConfig{
		Context:                 context.Background(),
		Address:                 DefaultAddress,
		ShutdownTimeout:         DefaultShutdownTimeout,
		UploadLimitMB:           DefaultUploadLimitMB,
		MaxAlignmentUploadBytes: DefaultMaxAlignmentUpload,
		FFmpegPath:              "ffmpeg",
		PitchFloor:              DefaultPitchFloor,
		PitchCeiling:            DefaultPitchCeiling,
		OpenAIBaseURL:           DefaultOpenAIBaseURL,
		SpeechModel:             DefaultSpeechModel,
		SpeechVoice:             DefaultSpeechVoice,
	}
	for _, oo := range o {
		oo(opt)
	}
	return opt
}

func WithContext(ctx context.Context) AppOption {
	return func(o *ApplicationConfig) {
		o.Context = ctx
	}
}

func WithAddress(addr string) AppOption {
	return func(o *ApplicationConfig) {
		if addr != "" {
			o.Address = addr
		}
	}
}

func WithStaticDir(dir string) AppOption {
	return func(o *ApplicationConfig) {
		o.StaticDir = dir
	}
}

func WithTempDir(dir string) AppOption {
	return func(o *ApplicationConfig) {
		o.TempDir = dir
	}
}

func WithShutdownTimeout(d time.Duration) AppOption {
	return func(o *ApplicationConfig) {
		if d > 0 {
			o.ShutdownTimeout = d
		}
	}
}

func WithUploadLimitMB(limit int) AppOption {
	return func(o *ApplicationConfig) {
		o.UploadLimitMB = limit
	}
}

// WithMaxAlignmentUpload sets the alignment upload cap; non-positive values keep the default.
func WithMaxAlignmentUpload(bytes int64) AppOption {
	return func(o *ApplicationConfig) {
		if bytes > 0 {
			o.MaxAlignmentUploadBytes = bytes
		}
	}
}

func WithFFmpegPath(path string) AppOption {
	return func(o *ApplicationConfig) {
		if path != "" {
			o.FFmpegPath = path
		}
	}
}

func WithAlignmentConfigFile(path string) AppOption {
	return func(o *ApplicationConfig) {
		o.AlignmentConfigFile = path
	}
}

func WithAlignmentModel(path string) AppOption {
	return func(o *ApplicationConfig) {
		o.AlignmentModel = path
	}
}

func WithONNXRuntimeLibrary(path string) AppOption {
	return func(o *ApplicationConfig) {
		o.ONNXRuntimeLibrary = path
	}
}

func WithAlignmentThreads(threads int) AppOption {
	return func(o *ApplicationConfig) {
		o.AlignmentThreads = threads
	}
}

func WithPitchRange(floor, ceiling float64) AppOption {
	return func(o *ApplicationConfig) {
		if floor > 0 {
			o.PitchFloor = floor
		}
		if ceiling > 0 {
			o.PitchCeiling = ceiling
		}
	}
}

func WithOpenAIBaseURL(url string) AppOption {
	return func(o *ApplicationConfig) {
		if url != "" {
			o.OpenAIBaseURL = url
		}
	}
}

func WithSpeechModel(model string) AppOption {
	return func(o *ApplicationConfig) {
		if model != "" {
			o.SpeechModel = model
		}
	}
}

func WithSpeechVoice(voice string) AppOption {
	return func(o *ApplicationConfig) {
		if voice != "" {
			o.SpeechVoice = voice
		}
	}
}

func WithDebug(debug bool) AppOption {
	return func(o *ApplicationConfig) {
		o.Debug = debug
	}
}

var DisableMetricsEndpoint AppOption = func(o *ApplicationConfig) {
	o.DisableMetrics = true
}
