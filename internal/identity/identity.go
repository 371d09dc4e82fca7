// Package identity resolves the calling user from the X-Sharer-User-Id
// header. The header value is trusted as-is; there is no token verification.
package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

// Header carries the caller's user id on every authenticated route.
const Header = "X-Sharer-User-Id"

const contextKey = "identity.userID"

// Required parses the identity header and aborts with 400 when it is
// missing or not a positive integer.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(Header)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
				Error:   "validation",
				Message: "X-Sharer-User-Id header is required",
			})
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
				Error:   "validation",
				Message: "X-Sharer-User-Id header must be a positive integer",
			})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// UserID returns the user id set by Required, or 0 when absent.
func UserID(c *gin.Context) int64 {
	v, ok := c.Get(contextKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
