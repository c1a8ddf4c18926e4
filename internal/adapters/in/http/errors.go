package http

import (
	"errors"
	"net/http"

	"custody/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalState):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrContention):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, operation string, err error) error {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("operation", operation),
			zap.String("path", ctx.Path()),
			zap.Error(err))
	}
	return ctx.JSON(code, Error{Code: code, Message: errs.UserMessage(err)})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// bind decodes and validates a JSON body. When ok is false the error
// response has already been written and err is what the handler returns.
func bind(ctx echo.Context, dst any) (ok bool, err error) {
	if err = ctx.Bind(dst); err != nil {
		return false, badRequest(ctx, "Invalid request body")
	}
	if err = ctx.Validate(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string, len(validationErrors))
			for _, ve := range validationErrors {
				fields[ve.Field()] = ve.Tag()
			}
			return false, ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid request body",
				Fields:  fields,
			})
		}
		return false, badRequest(ctx, err.Error())
	}
	return true, nil
}
