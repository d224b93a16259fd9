package speech

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/phonolab/phonolab/core/application"
	"github.com/phonolab/phonolab/core/backend"
	"github.com/phonolab/phonolab/core/schema"
)

// AnalyzePitchEndpoint returns the voiced pitch contour of an uploaded file
// @Summary Pitch contour of the uploaded audio
// @Param audio formData file true "audio file"
// @Success 200 {array} schema.PitchPoint "Response"
// @Router /api/analyze_pitch [post]
func AnalyzePitchEndpoint(app *application.Application) echo.HandlerFunc {
	return func(c echo.Context) error {
		fh, err := c.FormFile("audio")
		if err != nil {
			return schema.Errorf(schema.ErrorKindValidation, "No audio file provided")
		}

		scope := app.NewTempScope()
		defer scope.Cleanup()

		path, err := saveUpload(fh, scope)
		if err != nil {
			return err
		}

		points, err := backend.PitchContour(c.Request().Context(), path, app.PitchTracker(), app.Normalizer(), scope)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, points)
	}
}
