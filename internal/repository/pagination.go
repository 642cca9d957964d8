package repository

import (
	"errors"

	"gorm.io/gorm"
)

// MaxPageSize is the maximum allowed page size for paginated queries
const MaxPageSize = 200

// DefaultPageSize is used when the caller does not specify one
const DefaultPageSize = 20

// ErrStaleVersion is returned when a compare-and-swap update finds that the row
// was modified after it was read
var ErrStaleVersion = errors.New("row version changed concurrently")

// NormalizePage clamps page and pageSize to sane bounds
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// TotalPages returns the number of pages needed to hold total rows
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
