package cli

import (
	"github.com/phonolab/phonolab/core/config"
)

// AudioFlags are shared by every command that reads audio.
type AudioFlags struct {
	FFmpegPath string `name:"ffmpeg-path" env:"PHONOLAB_FFMPEG_PATH,FFMPEG_PATH" default:"ffmpeg" help:"ffmpeg binary used to convert uploads to 16 kHz mono WAV" group:"audio"`
	TempDir    string `env:"PHONOLAB_TEMP_DIR,TEMP_DIR" type:"path" help:"Directory for per request scratch files (defaults to the system temp dir)" group:"audio"`

	PitchFloor   float64 `env:"PHONOLAB_PITCH_FLOOR" default:"75" help:"Lowest pitch candidate in Hz" group:"pitch"`
	PitchCeiling float64 `env:"PHONOLAB_PITCH_CEILING" default:"600" help:"Highest pitch candidate in Hz" group:"pitch"`
}

func (f *AudioFlags) options() []config.AppOption {
	return []config.AppOption{
		config.WithFFmpegPath(f.FFmpegPath),
		config.WithTempDir(f.TempDir),
		config.WithPitchRange(f.PitchFloor, f.PitchCeiling),
	}
}

// AlignmentFlags locate the forced alignment model.
type AlignmentFlags struct {
	AlignmentConfig    string `env:"PHONOLAB_ALIGNMENT_CONFIG" type:"path" help:"YAML file describing the alignment model bundle" group:"alignment"`
	AlignmentModel     string `env:"PHONOLAB_ALIGNMENT_MODEL" type:"path" help:"ONNX alignment model, overrides the model in --alignment-config" group:"alignment"`
	ONNXRuntimeLibrary string `name:"onnxruntime-library" env:"PHONOLAB_ONNXRUNTIME_LIBRARY,ONNXRUNTIME_LIB" help:"Path to the onnxruntime shared library" group:"alignment"`
	AlignmentThreads   int    `env:"PHONOLAB_ALIGNMENT_THREADS" help:"Intra op threads for the alignment model (0 lets onnxruntime decide)" group:"alignment"`
}

func (f *AlignmentFlags) options() []config.AppOption {
	return []config.AppOption{
		config.WithAlignmentConfigFile(f.AlignmentConfig),
		config.WithAlignmentModel(f.AlignmentModel),
		config.WithONNXRuntimeLibrary(f.ONNXRuntimeLibrary),
		config.WithAlignmentThreads(f.AlignmentThreads),
	}
}

// SpeechFlags select the OpenAI speech endpoint.
type SpeechFlags struct {
	OpenAIBaseURL string `name:"openai-base-url" env:"PHONOLAB_OPENAI_BASE_URL,OPENAI_BASE_URL" default:"https://api.openai.com/v1" help:"Base URL of the OpenAI compatible speech API" group:"speech"`
	SpeechModel   string `env:"PHONOLAB_SPEECH_MODEL" default:"tts-1" help:"Speech model" group:"speech"`
	SpeechVoice   string `env:"PHONOLAB_SPEECH_VOICE" default:"alloy" help:"Speech voice" group:"speech"`
}

func (f *SpeechFlags) options() []config.AppOption {
	return []config.AppOption{
		config.WithOpenAIBaseURL(f.OpenAIBaseURL),
		config.WithSpeechModel(f.SpeechModel),
		config.WithSpeechVoice(f.SpeechVoice),
	}
}
