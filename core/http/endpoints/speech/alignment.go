package speech

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mudler/xlog"

	"github.com/phonolab/phonolab/core/application"
	"github.com/phonolab/phonolab/core/backend"
	"github.com/phonolab/phonolab/core/http/middleware"
	"github.com/phonolab/phonolab/core/schema"
)

// ForcedAlignmentEndpoint aligns a transcript to an uploaded recording.
// It expects the form to be parsed by middleware.UploadLimit.
// @Summary Character level forced alignment
// @Param audio formData file true "audio file"
// @Param transcript formData string true "transcript"
// @Success 200 {array} schema.AlignmentSpan "Response"
// @Router /api/forced_alignment [post]
func ForcedAlignmentEndpoint(app *application.Application) echo.HandlerFunc {
	return func(c echo.Context) error {
		form := c.Request().MultipartForm
		if form == nil || len(form.File["audio"]) == 0 {
			return schema.Errorf(schema.ErrorKindValidation, "No audio file provided")
		}
		transcripts, ok := form.Value["transcript"]
		if !ok || len(transcripts) == 0 {
			return schema.Errorf(schema.ErrorKindValidation, "No transcript text provided")
		}
		fh := form.File["audio"][0]
		if limit := middleware.UploadLimitFrom(c); limit > 0 && fh.Size > limit {
			return schema.Errorf(schema.ErrorKindValidation, "Audio file too large")
		}

		scope := app.NewTempScope()
		defer scope.Cleanup()

		path, err := saveUpload(fh, scope)
		if err != nil {
			return err
		}
		xlog.Debug("Forced alignment request", "file", fh.Filename, "size", fh.Size, "transcript", transcripts[0])

		spans, err := backend.ForcedAlignment(c.Request().Context(), path, transcripts[0], app.AlignmentBundle(), app.Normalizer(), scope)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, spans)
	}
}
