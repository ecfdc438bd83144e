package user

import (
	"fmt"

	"shareit/internal/pkg/apperr"
)

var (
	ErrUserNotFound = fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	ErrEmailTaken   = fmt.Errorf("%w: email is already registered", apperr.ErrConflict)
)
