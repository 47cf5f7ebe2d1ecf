package utils

import (
	"strconv"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
)

var defaultPageSize atomic.Int64

func init() {
	defaultPageSize.Store(constants.DefaultPageSize)
}

// SetDefaultPageSize changes the page size used when a request omits one.
// Values outside 1..MaxPageSize are ignored.
func SetDefaultPageSize(n int) {
	if n >= 1 && n <= constants.MaxPageSize {
		defaultPageSize.Store(int64(n))
	}
}

func DefaultPageSize() int {
	return int(defaultPageSize.Load())
}

type Pagination struct {
	Page     int
	PageSize int
}

// ValidatePagination applies defaults and caps the page size at MaxPageSize.
func ValidatePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize()
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// ParsePagination reads page and page_size from the query string.
func ParsePagination(c *gin.Context) Pagination {
	return ValidatePagination(
		parseQueryInt(c, "page", constants.DefaultPage),
		parseQueryInt(c, "page_size", DefaultPageSize()),
	)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
