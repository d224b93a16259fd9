package cli

import (
	"context"
	"fmt"
	"strings"

	cliContext "github.com/phonolab/phonolab/core/cli/context"
	"github.com/phonolab/phonolab/pkg/tts"
)

type TTSCMD struct {
	Text []string `arg:""`

	APIKey     string `name:"api-key" env:"OPENAI_API_KEY" help:"OpenAI API key used for the request"`
	OutputFile string `short:"o" type:"path" default:"speech.mp3" help:"The path to write the output mp3 file"`

	SpeechFlags `embed:""`
}

func (t *TTSCMD) Run(ctx *cliContext.Context) error {
	text := strings.Join(t.Text, " ")

	synth := tts.New(tts.Options{
		BaseURL: t.OpenAIBaseURL,
		Model:   t.SpeechModel,
		Voice:   t.SpeechVoice,
	})

	if err := synth.SynthesizeToFile(context.Background(), text, t.APIKey, t.OutputFile); err != nil {
		return err
	}
	fmt.Printf("Generated file %q\n", t.OutputFile)
	return nil
}
