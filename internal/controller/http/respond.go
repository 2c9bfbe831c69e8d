package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inkwell/pkg/apperr"
)

// respondError translates a usecase error into the wire shape. Internal
// detail never reaches the caller; it is the handler's job to have logged it.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
}

func limitOffset(c *gin.Context) (int, int) {
	limit := 20
	offset := 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
