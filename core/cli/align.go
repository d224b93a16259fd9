package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/phonolab/phonolab/core/application"
	"github.com/phonolab/phonolab/core/backend"
	cliContext "github.com/phonolab/phonolab/core/cli/context"
	"github.com/phonolab/phonolab/core/config"
)

type AlignCMD struct {
	Audio      string   `arg:"" type:"existingfile" help:"Recording to align"`
	Transcript []string `arg:"" help:"What is said in the recording"`

	AudioFlags     `embed:""`
	AlignmentFlags `embed:""`
}

func (a *AlignCMD) Run(ctx *cliContext.Context) error {
	opts := append([]config.AppOption{config.WithDebug(ctx.IsDebug())}, a.AudioFlags.options()...)
	opts = append(opts, a.AlignmentFlags.options()...)

	app, err := application.New(opts...)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.AlignmentBundle() == nil {
		return fmt.Errorf("no alignment model configured, set --alignment-config or --alignment-model")
	}

	scope := app.NewTempScope()
	defer scope.Cleanup()

	spans, err := backend.ForcedAlignment(context.Background(), a.Audio, strings.Join(a.Transcript, " "), app.AlignmentBundle(), app.Normalizer(), scope)
	if err != nil {
		return err
	}
	return printJSON(spans)
}
