package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	DefaultPage     = 1 // Default page is 1-based
)

// CalculateOffset converts a 1-based page and a page size into a row offset.
func CalculateOffset(page, size int) int64 {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return int64(page-1) * int64(size)
}

// TotalPages returns ceil(totalItems/size); zero items give zero pages.
func TotalPages(totalItems int64, size int) int {
	if size < 1 || totalItems <= 0 {
		return 0
	}
	return int((totalItems + int64(size) - 1) / int64(size))
}

// ParsePaginationParams extracts page and limit from the query string.
// Missing, malformed or non-positive values fall back to the defaults.
// maxLimit caps the page size when positive.
func ParsePaginationParams(c *gin.Context, maxLimit int) (page, limit int) {
	page = positiveIntOr(c.Query("page"), DefaultPage)
	limit = positiveIntOr(c.Query("limit"), DefaultPageSize)
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func positiveIntOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
