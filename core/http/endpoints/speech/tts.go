package speech

import (
	"github.com/labstack/echo/v4"

	"github.com/phonolab/phonolab/core/application"
	"github.com/phonolab/phonolab/core/backend"
	"github.com/phonolab/phonolab/core/schema"
)

// TextToSpeechEndpoint synthesizes speech with the caller's OpenAI key
// @Summary Generates audio from the input text.
// @Param request body schema.TTSRequest true "query params"
// @Success 200 {string} binary "generated audio/mpeg file"
// @Router /api/text_to_speech [post]
func TextToSpeechEndpoint(app *application.Application) echo.HandlerFunc {
	return func(c echo.Context) error {
		input := new(schema.TTSRequest)
		if err := c.Bind(input); err != nil {
			return schema.Errorf(schema.ErrorKindValidation, "invalid request body: %w", err)
		}

		scope := app.NewTempScope()
		defer scope.Cleanup()

		path, err := backend.SynthesizeSpeech(c.Request().Context(), input.Text, input.APIKey, app.Synthesizer(), scope)
		if err != nil {
			return err
		}

		c.Response().Header().Set(echo.HeaderContentType, "audio/mpeg")
		return c.Attachment(path, "speech.mp3")
	}
}
