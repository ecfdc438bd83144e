package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/response"
)

const (
	HeaderUserID = "X-Sharer-User-Id"
	UserIDKey    = "user_id"
)

// SharerUser requires the acting user's id in X-Sharer-User-Id and stores it
// under UserIDKey.
func SharerUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if raw == "" {
			response.Error(c, http.StatusBadRequest, "BAD_REQUEST", HeaderUserID+" header is required")
			c.Abort()
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "BAD_REQUEST", HeaderUserID+" must be an integer")
			c.Abort()
			return
		}

		c.Set(UserIDKey, id)
		c.Next()
	}
}

func UserID(c *gin.Context) int64 {
	return c.GetInt64(UserIDKey)
}
