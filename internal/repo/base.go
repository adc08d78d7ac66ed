package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// ForShare returns a query that takes a shared row lock on Postgres. Other
// dialects get the plain query; SQLite serializes writers on its own.
func (b Base) ForShare(ctx context.Context) *gorm.DB {
	return b.locking(ctx, "SHARE")
}

// ForUpdate returns a query that takes an exclusive row lock on Postgres.
func (b Base) ForUpdate(ctx context.Context) *gorm.DB {
	return b.locking(ctx, clause.LockingStrengthUpdate)
}

func (b Base) locking(ctx context.Context, strength string) *gorm.DB {
	q := b.DB(ctx)
	if q.Dialector != nil && q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: strength})
	}
	return q
}
