// Package params reads typed path and query parameters, failing with bad-request errors.
package params

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/apperr"
)

// ID parses a positive integer path parameter.
func ID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s: %q", apperr.ErrBadRequest, name, raw)
	}
	return id, nil
}

// RequiredBool parses a mandatory boolean query parameter.
func RequiredBool(c *gin.Context, name string) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return false, fmt.Errorf("%w: %s is required", apperr.ErrBadRequest, name)
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", apperr.ErrBadRequest, name)
	}
	return v, nil
}
