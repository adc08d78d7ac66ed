package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pressly/goose/v3"
)

// DefaultDir is where migration files live in the repository. Runs against
// it use the copy embedded in the binary.
const DefaultDir = "pkg/migrate/migrations"

//go:embed migrations/*.sql
var embedded embed.FS

func migrationsFS(dir string) (fs.FS, error) {
	if dir == "" || filepath.Clean(dir) == DefaultDir {
		return fs.Sub(embedded, "migrations")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("migrations dir %q: %w", dir, err)
	}
	return os.DirFS(dir), nil
}

func newProvider(db *sql.DB, dir string) (*goose.Provider, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	fsys, err := migrationsFS(dir)
	if err != nil {
		return nil, err
	}
	// migrations are written for Postgres
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return provider, nil
}

// Run executes up, down or status and returns one line per migration
// touched or listed.
func Run(ctx context.Context, db *sql.DB, dir string, command string) ([]string, error) {
	provider, err := newProvider(db, dir)
	if err != nil {
		return nil, err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return nil, fmt.Errorf("goose up: %w", err)
		}
		return describeResults(results...), nil
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return nil, fmt.Errorf("goose down: %w", err)
		}
		return describeResults(result), nil
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return nil, fmt.Errorf("goose status: %w", err)
		}
		lines := make([]string, 0, len(statuses))
		for _, st := range statuses {
			line := fmt.Sprintf("%d %s %s", st.Source.Version, filepath.Base(st.Source.Path), st.State)
			if !st.AppliedAt.IsZero() {
				line += " " + st.AppliedAt.UTC().Format("2006-01-02T15:04:05Z")
			}
			lines = append(lines, line)
		}
		return lines, nil
	default:
		return nil, fmt.Errorf("unsupported goose command %q", command)
	}
}

// MigrateToVersion moves the schema up or down until targetVersion is the
// latest applied migration.
func MigrateToVersion(ctx context.Context, db *sql.DB, dir string, targetVersion string) ([]string, error) {
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}
	provider, err := newProvider(db, dir)
	if err != nil {
		return nil, err
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("get db version: %w", err)
	}

	var results []*goose.MigrationResult
	switch {
	case current == target:
		return nil, nil
	case current < target:
		results, err = provider.UpTo(ctx, target)
	default:
		results, err = provider.DownTo(ctx, target)
	}
	if err != nil {
		return nil, fmt.Errorf("goose migrate to %d: %w", target, err)
	}
	return describeResults(results...), nil
}

func describeResults(results ...*goose.MigrationResult) []string {
	lines := make([]string, 0, len(results))
	for _, res := range results {
		if res == nil || res.Source == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %d %s (%s)", res.Direction, res.Source.Version, filepath.Base(res.Source.Path), res.Duration.Round(time.Millisecond)))
	}
	return lines
}
