package handlers

import (
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
)

// bindingError reports a body that failed to decode or bind as a validation
// error with the binder's message as details.
func bindingError(err error) error {
	if errors.IsAppError(err) {
		return err
	}
	return errors.NewValidationError("Invalid request body", err.Error())
}
