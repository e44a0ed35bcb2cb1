package errs

import (
	"errors"

	"github.com/Astemirdum/bookreview-service/pkg/validate"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized: only ADMIN users can create books")
	ErrValidation   = validate.ErrValidation
)

type ErrorResponse struct {
	Error string `json:"error"`
}
