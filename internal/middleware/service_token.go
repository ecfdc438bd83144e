package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/jwt"
	"shareit/internal/pkg/response"
)

// ServiceToken accepts only requests signed by the gateway. The token's user_id
// claim must match X-Sharer-User-Id. A nil verifier disables the check.
func ServiceToken(verifier *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			Logger(c).Warn().Str("reason", "missing_token").Msg("service_token_rejected")
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Service token is required")
			c.Abort()
			return
		}

		claims, err := verifier.ValidateToken(parts[1])
		if err != nil {
			Logger(c).Warn().Str("reason", "invalid_token").Msg("service_token_rejected")
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid service token")
			c.Abort()
			return
		}

		var headerID int64
		if raw := strings.TrimSpace(c.GetHeader(HeaderUserID)); raw != "" {
			headerID, _ = strconv.ParseInt(raw, 10, 64)
		}
		if claims.UserID != headerID {
			Logger(c).Warn().
				Int64("claim_user_id", claims.UserID).
				Int64("header_user_id", headerID).
				Str("reason", "user_mismatch").
				Msg("service_token_rejected")
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Service token does not match "+HeaderUserID)
			c.Abort()
			return
		}

		c.Next()
	}
}
