package db

import (
	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/shared/constants"
)

// Paginate applies LIMIT/OFFSET for 1-based pages, clamping page size to
// constants.MaxPageSize.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = constants.DefaultPage
		}
		if pageSize < 1 {
			pageSize = constants.DefaultPageSize
		}
		if pageSize > constants.MaxPageSize {
			pageSize = constants.MaxPageSize
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
