package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks every migration in dir and reports all problems at
// once: bad filenames, duplicate versions and missing goose annotations.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}
	versions, err := listVersions(dir)
	if err != nil {
		return err
	}

	var problems error
	seen := map[string]string{}
	for _, v := range versions {
		if v.version == "" {
			problems = multierr.Append(problems, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", v.name))
			continue
		}
		if prev, ok := seen[v.version]; ok {
			problems = multierr.Append(problems, fmt.Errorf("duplicate migration version %s in %q and %q", v.version, prev, v.name))
			continue
		}
		seen[v.version] = v.name

		b, err := os.ReadFile(filepath.Join(dir, v.name))
		if err != nil {
			problems = multierr.Append(problems, fmt.Errorf("read file %q: %w", v.name, err))
			continue
		}
		txt := string(b)
		for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
			if !strings.Contains(txt, marker) {
				problems = multierr.Append(problems, fmt.Errorf("migration %q missing %q", v.name, marker))
			}
		}
	}
	return problems
}

type migrationFile struct {
	name    string
	version string
}

// listVersions returns the .sql files in dir sorted by name. version is
// empty when the name does not match the expected pattern.
func listVersions(dir string) ([]migrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}
	var out []migrationFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		f := migrationFile{name: e.Name()}
		if m := sqlFileRe.FindStringSubmatch(e.Name()); m != nil {
			f.version = m[1]
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out, nil
}
