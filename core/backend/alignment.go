package backend

import (
	"context"
	"errors"

	"github.com/mudler/xlog"

	"github.com/phonolab/phonolab/core/schema"
	"github.com/phonolab/phonolab/pkg/alignment"
	"github.com/phonolab/phonolab/pkg/audio"
	"github.com/phonolab/phonolab/pkg/sound"
	"github.com/phonolab/phonolab/pkg/utils"
)

// ForcedAlignment aligns transcript against the audio at audioPath.
// Intermediate files are created in scope; the caller owns its cleanup.
// A nil bundle still validates the transcript against the default
// dictionary before failing.
func ForcedAlignment(ctx context.Context, audioPath, transcript string, bundle *alignment.Bundle, normalizer *utils.Normalizer, scope *utils.TempScope) ([]schema.AlignmentSpan, error) {
	dict := alignment.DefaultDictionary()
	if bundle != nil {
		dict = bundle.Dictionary()
	}
	tokens, dropped := dict.Tokenize(transcript)
	if len(dropped) > 0 {
		xlog.Debug("Dropped characters outside the alignment vocabulary", "count", len(dropped), "characters", string(dropped))
	}
	if len(tokens) == 0 {
		return nil, schema.WrapError(schema.ErrorKindValidation, alignment.ErrNoTokens)
	}
	if bundle == nil {
		return nil, schema.Errorf(schema.ErrorKindInference, "alignment model is not loaded")
	}

	wavPath, err := normalizer.Normalize(ctx, audioPath, scope)
	if err != nil {
		return nil, schema.Errorf(schema.ErrorKindConversion, "converting audio: %w", err)
	}

	if info, err := audio.Inspect(wavPath); err == nil {
		xlog.Debug("Normalized audio", "path", wavPath, "sample_rate", info.SampleRate, "channels", info.Channels, "duration", info.Duration)
	} else {
		xlog.Warn("Failed to inspect normalized audio", "path", wavPath, "error", err)
	}

	wf, err := audio.Decode(wavPath)
	if err != nil {
		return nil, schema.Errorf(schema.ErrorKindConversion, "reading normalized audio: %w", err)
	}
	samples := wf.Samples
	if rate := bundle.SampleRate(); rate > 0 && wf.SampleRate != rate {
		samples = sound.ResampleFloat32(samples, wf.SampleRate, rate)
		xlog.Debug("Resampled waveform", "from", wf.SampleRate, "to", rate)
	}

	spans, err := bundle.Align(ctx, samples, tokens)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, schema.Errorf(schema.ErrorKindInference, "failed during forced alignment: %w", err)
	}

	out := make([]schema.AlignmentSpan, 0, len(spans))
	for _, s := range spans {
		out = append(out, schema.AlignmentSpan{
			Token:      dict.Label(s.Token),
			StartFrame: s.Start,
			EndFrame:   s.End,
			Score:      s.Score,
		})
	}
	return out, nil
}
