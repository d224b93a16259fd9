package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/phonolab/phonolab/core/application"
	"github.com/phonolab/phonolab/core/http/endpoints/speech"
	"github.com/phonolab/phonolab/core/http/middleware"
)

const (
	AnalyzePitchPath    = "/api/analyze_pitch"
	TextToSpeechPath    = "/api/text_to_speech"
	ForcedAlignmentPath = "/api/forced_alignment"
)

func RegisterSpeechRoutes(e *echo.Echo, app *application.Application) {
	e.POST(AnalyzePitchPath, speech.AnalyzePitchEndpoint(app))
	e.POST(TextToSpeechPath, speech.TextToSpeechEndpoint(app))
	e.POST(ForcedAlignmentPath,
		speech.ForcedAlignmentEndpoint(app),
		middleware.UploadLimit(app.ApplicationConfig().MaxAlignmentUploadBytes))
}
