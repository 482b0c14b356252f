package pagination

import (
	"gorm.io/gorm"
)

// DefaultLimit is used when a request does not specify a page size.
const DefaultLimit = 20

// PageRequest holds zero-based offset/limit parameters parsed from query strings.
// Limit is a pointer so an explicit limit=0 is validated instead of defaulted.
type PageRequest struct {
	Offset int  `form:"offset" binding:"omitempty,min=0"`
	Limit  *int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// PageLimit returns the requested page size, or DefaultLimit when none was given.
func (p PageRequest) PageLimit() int {
	if p.Limit == nil {
		return DefaultLimit
	}
	return *p.Limit
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT.
func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}
