package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *NewsHandler) handleError(c echo.Context, err error, statusCode int, message string) error {
	if statusCode >= http.StatusInternalServerError {
		h.log.ErrorContext(c.Request().Context(), "handleError", "error", err, "statusCode", statusCode, "message", message)
	} else {
		h.log.DebugContext(c.Request().Context(), "handleError", "error", err, "statusCode", statusCode, "message", message)
	}

	return c.JSON(statusCode, ErrorResponse{Message: message})
}

func (h *NewsHandler) handleValidationError(c echo.Context, err error, message string) error {
	h.log.DebugContext(c.Request().Context(), "validation failed", "error", err)
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: message,
		Errors:  fieldErrors(err),
	})
}

// bindRequest decodes and validates the request body. When it reports false the
// error response has already been written and the returned error must be passed on.
func (h *NewsHandler) bindRequest(c echo.Context, req any, message string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, h.handleError(c, err, http.StatusBadRequest, message)
	}

	if err := c.Validate(req); err != nil {
		return false, h.handleValidationError(c, err, message)
	}

	return true, nil
}

// httpErrorHandler renders router and middleware errors as {message}.
func (h *NewsHandler) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := http.StatusInternalServerError, "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		h.log.ErrorContext(c.Request().Context(), "unhandled error", "error", err, "path", c.Path())
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Message: message})
	}
	if err != nil {
		h.log.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
	}
}
