package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/phonolab/phonolab/core/schema"
)

// multipartOverhead is the room left for boundaries, part headers and the
// small text fields sent next to the file.
const multipartOverhead = 1 << 20

const uploadLimitKey = "upload_limit"

// UploadLimit caps the request body of a multipart upload at maxBytes of file
// data. The form is parsed entirely in memory, so an oversized upload is
// rejected before anything reaches disk.
func UploadLimit(maxBytes int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			bodyLimit := maxBytes + multipartOverhead
			if req.ContentLength > bodyLimit {
				return schema.Errorf(schema.ErrorKindValidation, "Audio file too large")
			}
			req.Body = http.MaxBytesReader(c.Response(), req.Body, bodyLimit)

			if err := req.ParseMultipartForm(bodyLimit + 1); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					return schema.Errorf(schema.ErrorKindValidation, "Audio file too large")
				}
				if errors.Is(err, http.ErrNotMultipart) {
					return schema.Errorf(schema.ErrorKindValidation, "No audio file provided")
				}
				return schema.Errorf(schema.ErrorKindValidation, "invalid multipart form: %w", err)
			}
			c.Set(uploadLimitKey, maxBytes)
			return next(c)
		}
	}
}

// UploadLimitFrom returns the limit set by UploadLimit, or 0 when none applies.
func UploadLimitFrom(c echo.Context) int64 {
	limit, _ := c.Get(uploadLimitKey).(int64)
	return limit
}
