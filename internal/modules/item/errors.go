package item

import (
	"fmt"

	"shareit/internal/pkg/apperr"
)

var (
	ErrItemNotFound      = fmt.Errorf("%w: item not found", apperr.ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	ErrRequestNotFound   = fmt.Errorf("%w: request not found", apperr.ErrNotFound)
	ErrNotOwner          = fmt.Errorf("%w: user is not the owner of the item", apperr.ErrNotFound)
	ErrNotVerifiedRenter = fmt.Errorf("%w: only users who completed an approved booking of the item can comment", apperr.ErrBadRequest)
)
