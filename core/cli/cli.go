package cli

import (
	cliContext "github.com/phonolab/phonolab/core/cli/context"
)

var CLI struct {
	cliContext.Context `embed:""`

	Run   RunCMD   `cmd:"" help:"Run the phonolab server, this is the default command if no other command is specified. Run 'phonolab run --help' for more information" default:"withargs"`
	Align AlignCMD `cmd:"" help:"Align a transcript to a recording, character by character"`
	Pitch PitchCMD `cmd:"" help:"Print the pitch contour of a recording"`
	TTS   TTSCMD   `cmd:"" help:"Convert text to speech"`
}
