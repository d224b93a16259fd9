package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/phonolab/phonolab/core/schema"
)

// ErrorStatus resolves the HTTP status and error kind label for err.
// echo's own errors keep their status; everything else goes through
// schema.ErrorKind.
func ErrorStatus(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code < http.StatusInternalServerError {
			return he.Code, schema.ErrorKindValidation.String()
		}
		return he.Code, schema.ErrorKindUnknown.String()
	}
	kind := schema.KindOf(err)
	return kind.StatusCode(), kind.String()
}
