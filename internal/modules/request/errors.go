package request

import (
	"fmt"

	"shareit/internal/pkg/apperr"
)

var (
	ErrUserNotFound    = fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	ErrRequestNotFound = fmt.Errorf("%w: request not found", apperr.ErrNotFound)
)
