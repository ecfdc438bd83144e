package booking

import (
	"fmt"

	"shareit/internal/pkg/apperr"
)

var (
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", apperr.ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("%w: item not found", apperr.ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: user not found", apperr.ErrNotFound)
	ErrOwnItem         = fmt.Errorf("%w: owners cannot book their own item", apperr.ErrNotFound)
	ErrNotItemOwner    = fmt.Errorf("%w: only the item owner can decide on a booking", apperr.ErrNotFound)
	ErrInvalidPeriod   = fmt.Errorf("%w: booking end must be after its start", apperr.ErrBadRequest)
	ErrItemUnavailable = fmt.Errorf("%w: item is not available", apperr.ErrBadRequest)
	ErrAlreadyDecided  = fmt.Errorf("%w: booking has already been decided", apperr.ErrBadRequest)
)
