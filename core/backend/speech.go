package backend

import (
	"context"
	"errors"
	"os"

	"github.com/phonolab/phonolab/core/schema"
	"github.com/phonolab/phonolab/pkg/tts"
	"github.com/phonolab/phonolab/pkg/utils"
)

// SynthesizeSpeech renders text to an MP3 file owned by scope and returns its path.
func SynthesizeSpeech(ctx context.Context, text, apiKey string, synth *tts.Synthesizer, scope *utils.TempScope) (string, error) {
	if text == "" {
		return "", schema.Errorf(schema.ErrorKindValidation, "No text provided")
	}
	if apiKey == "" {
		return "", schema.Errorf(schema.ErrorKindValidation, "No API key provided")
	}

	if err := os.MkdirAll(scope.Dir(), 0750); err != nil {
		return "", err
	}
	dst := scope.Path(".mp3")
	if err := synth.SynthesizeToFile(ctx, text, apiKey, dst); err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", schema.WrapError(schema.ErrorKindUpstream, err)
	}
	return dst, nil
}
