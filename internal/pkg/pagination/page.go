package pagination

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/apperr"
)

const (
	DefaultFrom = 0
	DefaultSize = 20
)

// Page is a from/size window over an ordered listing.
type Page struct {
	From int
	Size int
}

// New validates from and size: from must be non-negative and size positive.
func New(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, fmt.Errorf("%w: from must be >= 0, got %d", apperr.ErrBadRequest, from)
	}
	if size <= 0 {
		return Page{}, fmt.Errorf("%w: size must be > 0, got %d", apperr.ErrBadRequest, size)
	}
	return Page{From: from, Size: size}, nil
}

// Offset rounds From down to a page boundary: a from of 5 with size 2 starts the
// third page at offset 4.
func (p Page) Offset() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.From / p.Size) * p.Size
}

func (p Page) Limit() int {
	return p.Size
}

// FromQuery reads the from and size query parameters, applying defaults when absent.
func FromQuery(c *gin.Context) (Page, error) {
	from, err := intQuery(c, "from", DefaultFrom)
	if err != nil {
		return Page{}, err
	}
	size, err := intQuery(c, "size", DefaultSize)
	if err != nil {
		return Page{}, err
	}
	return New(from, size)
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", apperr.ErrBadRequest, name)
	}
	return v, nil
}
