// Package request holds helpers shared by HTTP handlers for parsing common
// path and query parameters.
package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

const (
	defaultFrom = "0"
	defaultSize = "20"
)

var errBadID = apperror.New(http.StatusBadRequest, "validation", "identifier must be a positive integer")

// ID parses a positive integer path parameter.
func ID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// PageParams reads the from/size query parameters, applying the defaults
// from=0, size=20. Range validation is left to the paging descriptor so the
// error is uniform across all paged queries.
func PageParams(c *gin.Context) (from, size int, err error) {
	from, err = strconv.Atoi(c.DefaultQuery("from", defaultFrom))
	if err != nil {
		return 0, 0, apperror.New(http.StatusBadRequest, "validation", "from must be an integer")
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", defaultSize))
	if err != nil {
		return 0, 0, apperror.New(http.StatusBadRequest, "validation", "size must be an integer")
	}
	return from, size, nil
}
