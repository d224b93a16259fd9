package backend

import (
	"context"

	"github.com/mudler/xlog"

	"github.com/phonolab/phonolab/core/schema"
	"github.com/phonolab/phonolab/pkg/audio"
	"github.com/phonolab/phonolab/pkg/pitch"
	"github.com/phonolab/phonolab/pkg/utils"
)

// PitchContour returns the voiced part of the pitch contour of the file at
// audioPath. WAV files are analysed as uploaded; anything else goes through
// the normalizer first.
func PitchContour(ctx context.Context, audioPath string, tracker *pitch.Tracker, normalizer *utils.Normalizer, scope *utils.TempScope) ([]schema.PitchPoint, error) {
	wavPath := audioPath
	if !audio.IsWAV(audioPath) {
		xlog.Debug("Upload is not WAV, converting before pitch analysis", "path", audioPath)
		converted, err := normalizer.Normalize(ctx, audioPath, scope)
		if err != nil {
			return nil, schema.Errorf(schema.ErrorKindConversion, "converting audio: %w", err)
		}
		wavPath = converted
	}

	wf, err := audio.Decode(wavPath)
	if err != nil {
		return nil, schema.Errorf(schema.ErrorKindInference, "reading audio: %w", err)
	}

	frames, err := tracker.Track(wf.Samples, wf.SampleRate)
	if err != nil {
		return nil, schema.Errorf(schema.ErrorKindInference, "pitch analysis failed: %w", err)
	}

	voiced := pitch.Voiced(frames)
	xlog.Debug("Pitch analysis done", "frames", len(frames), "voiced", len(voiced), "duration", wf.Duration())

	out := make([]schema.PitchPoint, 0, len(voiced))
	for _, p := range voiced {
		out = append(out, schema.PitchPoint{Time: p.Time, Frequency: p.Frequency})
	}
	return out, nil
}
