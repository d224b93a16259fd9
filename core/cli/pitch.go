package cli

import (
	"context"

	"github.com/phonolab/phonolab/core/backend"
	cliContext "github.com/phonolab/phonolab/core/cli/context"
	"github.com/phonolab/phonolab/pkg/pitch"
	"github.com/phonolab/phonolab/pkg/utils"
)

type PitchCMD struct {
	Audio string `arg:"" type:"existingfile" help:"Recording to analyse"`

	AudioFlags `embed:""`
}

func (p *PitchCMD) Run(ctx *cliContext.Context) error {
	tracker := pitch.NewTracker(pitch.Config{Floor: p.PitchFloor, Ceiling: p.PitchCeiling})
	scope := utils.NewTempScope(p.TempDir)
	defer scope.Cleanup()

	points, err := backend.PitchContour(context.Background(), p.Audio, tracker, utils.NewNormalizer(p.FFmpegPath), scope)
	if err != nil {
		return err
	}
	return printJSON(points)
}
