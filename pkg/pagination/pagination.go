package pagination

import "gorm.io/gorm"

const (
	// DefaultLimit is the page size used when a page is requested without a limit.
	DefaultLimit = 25
	// MaxLimit caps how many rows a single page can return.
	MaxLimit = 100
)

// Params holds offset pagination inputs taken from ?pagina and ?limite.
// A zero Params disables pagination and lists every row.
type Params struct {
	Page  int
	Limit int
}

// Enabled reports whether the caller asked for a page.
func (p Params) Enabled() bool {
	return p.Page > 0 || p.Limit > 0
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Offset returns the row offset of the requested page. Pages start at 1.
func (p Params) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * NormalizeLimit(p.Limit)
}

// Apply adds LIMIT/OFFSET to q when pagination is enabled.
func Apply(q *gorm.DB, p Params) *gorm.DB {
	if !p.Enabled() {
		return q
	}
	return q.Limit(NormalizeLimit(p.Limit)).Offset(p.Offset())
}
