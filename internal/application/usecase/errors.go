package usecase

import (
	"errors"

	"github.com/JBB13/credit-risk-model/internal/domain/model"
)

// ErrInvalidParameters is returned for a malformed EAD amount or currency code.
var ErrInvalidParameters = errors.New("invalid risk parameters")

// IsInvalidInput reports whether err should be reported to the caller as bad input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidParameters) || model.IsValidationError(err)
}
