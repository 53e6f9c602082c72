package common

import (
	"net/http"

	validator "github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags on the provided payload.
func Validate(v any) error {
	return validate.Struct(v)
}

// DecodeAndValidate decodes the request body and runs struct validation,
// returning a BAD_REQUEST AppError on either failure.
func DecodeAndValidate(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return NewAppError("BAD_REQUEST", "invalid request body", http.StatusBadRequest, err)
	}
	if err := Validate(dst); err != nil {
		return &AppError{
			Code:       "VALIDATION",
			Message:    "request validation failed",
			HTTPStatus: http.StatusBadRequest,
			Err:        err,
			Details:    err.Error(),
		}
	}
	return nil
}
