package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yukikurage/task-notes-api/internal/utils"
)

// Paginate applies pagination to a GORM query. A zero Limit leaves the query unbounded.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// OwnedBy restricts a query to rows owned by ownerID.
func OwnedBy(ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

// NewestFirst orders rows by creation time, newest first, with id as tie-break.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
