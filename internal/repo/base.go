package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is the common core embedded by every domain repository. It owns the
// GORM handle and takes care of binding the caller's context to queries.
type Base struct {
	db *gorm.DB
}

// NewBase wraps a GORM connection for embedding in a repository.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB hands back the connection with ctx attached. A nil ctx returns the
// raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
