package application

import (
	"net/http"

	"github.com/phonolab/phonolab/core/config"
	"github.com/phonolab/phonolab/pkg/alignment"
	"github.com/phonolab/phonolab/pkg/pitch"
	"github.com/phonolab/phonolab/pkg/tts"
	"github.com/phonolab/phonolab/pkg/utils"
)

// Application holds everything built once at startup. All fields are
// read-only after construction and shared by concurrent requests.
type Application struct {
	applicationConfig *config.ApplicationConfig
	alignmentBundle   *alignment.Bundle
	normalizer        *utils.Normalizer
	pitchTracker      *pitch.Tracker
	synthesizer       *tts.Synthesizer
}

func newApplication(appConfig *config.ApplicationConfig, bundle *alignment.Bundle) *Application {
	return &Application{
		applicationConfig: appConfig,
		alignmentBundle:   bundle,
		normalizer:        utils.NewNormalizer(appConfig.FFmpegPath),
		pitchTracker: pitch.NewTracker(pitch.Config{
			Floor:   appConfig.PitchFloor,
			Ceiling: appConfig.PitchCeiling,
		}),
		synthesizer: tts.New(tts.Options{
			BaseURL:    appConfig.OpenAIBaseURL,
			Model:      appConfig.SpeechModel,
			Voice:      appConfig.SpeechVoice,
			HTTPClient: http.DefaultClient,
		}),
	}
}

func (a *Application) ApplicationConfig() *config.ApplicationConfig {
	return a.applicationConfig
}

// AlignmentBundle is nil when no alignment model is configured.
func (a *Application) AlignmentBundle() *alignment.Bundle {
	return a.alignmentBundle
}

func (a *Application) Normalizer() *utils.Normalizer {
	return a.normalizer
}

func (a *Application) PitchTracker() *pitch.Tracker {
	return a.pitchTracker
}

func (a *Application) Synthesizer() *tts.Synthesizer {
	return a.synthesizer
}

// NewTempScope returns a scope for one request's temporary files.
func (a *Application) NewTempScope() *utils.TempScope {
	return utils.NewTempScope(a.applicationConfig.TempDir)
}

// Close releases the alignment model.
func (a *Application) Close() error {
	if a.alignmentBundle == nil {
		return nil
	}
	return a.alignmentBundle.Close()
}
