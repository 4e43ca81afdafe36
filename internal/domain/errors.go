package domain

import (
	"fmt"

	appErrors "civiceye/internal/errors"
)

func invalidFilterError(filter string) error {
	return appErrors.New(appErrors.CodeValidationFailed, fmt.Sprintf("invalid filter: %s", filter), nil)
}
