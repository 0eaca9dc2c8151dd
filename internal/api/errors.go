package api

import (
	"errors"

	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// validationErrs are the domain sentinels that indicate malformed input and
// should surface as HTTP 400 rather than 500.
var validationErrs = []error{
	domain.ErrUsernameTooShort,
	domain.ErrUsernameTooLong,
	domain.ErrEmptyPassword,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyTaskName,
	domain.ErrTaskNameTooLong,
	domain.ErrDescriptionTooLong,
	domain.ErrInvalidPriority,
	domain.ErrInvalidStatus,
}

func isValidationErr(err error) bool {
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
