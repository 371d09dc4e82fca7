package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

func reject(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
		Error:   "validation",
		Message: message,
	})
}

// validatePositiveID checks a path parameter before forwarding.
func validatePositiveID(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(name), 10, 64)
		if err != nil || id <= 0 {
			reject(c, name+" must be a positive integer")
			return
		}
		c.Next()
	}
}

// validatePaging checks the from/size query parameters. Defaults (from=0,
// size=20) pass through untouched for the server to apply.
func validatePaging(c *gin.Context) {
	if raw := c.Query("from"); raw != "" {
		from, err := strconv.Atoi(raw)
		if err != nil || from < 0 {
			reject(c, "from must be a non-negative integer")
			return
		}
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			reject(c, "size must be a positive integer")
			return
		}
	}
	c.Next()
}

// validateBookingState rejects unknown state tokens without forwarding.
func validateBookingState(c *gin.Context) {
	if raw := c.Query("state"); raw != "" {
		if _, err := booking.ParseState(raw); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{
				Error:   "unknown_state",
				Message: "Unknown state: UNSUPPORTED_STATUS",
			})
			return
		}
	}
	c.Next()
}

// validateApproved requires the approved query parameter to be a boolean.
func validateApproved(c *gin.Context) {
	if _, err := strconv.ParseBool(c.Query("approved")); err != nil {
		reject(c, "approved must be a boolean")
		return
	}
	c.Next()
}

// peekBody decodes the request body into dst and restores it for
// forwarding.
func peekBody(c *gin.Context, dst any) bool {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		reject(c, "failed to read request body")
		return false
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	if err := json.Unmarshal(raw, dst); err != nil {
		reject(c, "invalid request body")
		return false
	}
	return true
}

type bookingBody struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// validateBookingBody mirrors the shape checks the original gateway ran on
// booking creation before forwarding.
func validateBookingBody(c *gin.Context) {
	var body bookingBody
	if !peekBody(c, &body) {
		return
	}

	if body.ItemID <= 0 {
		reject(c, "itemId must be a positive integer")
		return
	}
	if body.Start == nil || body.End == nil {
		reject(c, "start and end are required")
		return
	}
	if !body.End.After(*body.Start) {
		reject(c, "end must be after start")
		return
	}
	if body.Start.Before(time.Now()) {
		reject(c, "start must be in the future")
		return
	}
	c.Next()
}

type userBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// validateUserCreateBody requires a name and a well-formed email.
func validateUserCreateBody(c *gin.Context) {
	var body userBody
	if !peekBody(c, &body) {
		return
	}

	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		reject(c, "name is required")
		return
	}
	if body.Email == nil || strings.TrimSpace(*body.Email) == "" || !strings.Contains(*body.Email, "@") {
		reject(c, "email must be non-empty and contain @")
		return
	}
	c.Next()
}

type itemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// validateItemCreateBody requires name, description and the availability
// flag.
func validateItemCreateBody(c *gin.Context) {
	var body itemBody
	if !peekBody(c, &body) {
		return
	}

	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		reject(c, "name is required")
		return
	}
	if body.Description == nil || strings.TrimSpace(*body.Description) == "" {
		reject(c, "description is required")
		return
	}
	if body.Available == nil {
		reject(c, "available is required")
		return
	}
	c.Next()
}
