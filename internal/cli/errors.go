package cli

import (
	"errors"
	"net/http"

	domainerrors "storefront/internal/domain/errors"
)

// usecaseError maps a usecase failure to an exit code: refusals the caller can fix exit 1,
// store and collaborator failures exit 2.
func usecaseError(message string, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		return WrapExitError(ExitFailure, message, err)
	}

	return WrapExitError(ExitCommandError, message, err)
}
