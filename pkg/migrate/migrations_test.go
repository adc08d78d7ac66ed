package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/casamais/casamais-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestVendasMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_vendas_table.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS vendas",
		"produto_id BIGINT NOT NULL REFERENCES produtos(id)",
		"CHECK (quantidade >= 1)",
		"CHECK (desconto >= 0)",
		"CHECK (forma_pagamento IN ('Pix', 'Dinheiro', 'Débito', 'Crédito'))",
		"data_venda DATE NOT NULL DEFAULT CURRENT_DATE",
		"CREATE INDEX IF NOT EXISTS idx_vendas_data_venda_id",
		"DROP TABLE IF EXISTS vendas",
	})
}

func TestProdutosMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_receitas_produtos_tables.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS receitas",
		"CREATE TABLE IF NOT EXISTS produtos",
		"receita_id BIGINT REFERENCES receitas(id) ON DELETE SET NULL",
		"margem_percentual NUMERIC(10,2)",
		"ativo BOOLEAN NOT NULL DEFAULT TRUE",
	})
}

func TestMedicamentosMigrationSeedsUnits(t *testing.T) {
	content := readMigration(t, "*_create_medicamentos_tables.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS unidades_medida",
		"INSERT INTO unidades_medida (nome, sigla) VALUES",
		"descricao VARCHAR(250)",
		"unidade_medida_id BIGINT NOT NULL REFERENCES unidades_medida(id)",
	})
}

func TestValidateDirAcceptsRepoMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "001_init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Campanhas!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_campanhas.sql") {
		t.Fatalf("unexpected filename %q", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
	if _, err := migrate.CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatal("expected sanitized-empty name error")
	}
}

func TestCreateSQLMigrationNeverReusesVersion(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "29991231235959_future.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	first, err := migrate.CreateSQLMigration(dir, "one")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := migrate.CreateSQLMigration(dir, "two")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(first), "29991231235960_") {
		t.Fatalf("expected version after the newest file, got %q", first)
	}
	if !strings.HasPrefix(filepath.Base(second), "29991231235961_") {
		t.Fatalf("expected a fresh version, got %q", second)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"bad.sql":                       "-- +goose Up\n-- +goose Down\n",
		"20250101000001_no_down.sql":    "-- +goose Up\n",
		"20250101000000_duplicated.sql": "-- +goose Up\n-- +goose Down\n",
		"20250101000000_first.sql":      "-- +goose Up\n-- +goose Down\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	err := migrate.ValidateDir(dir)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"bad.sql", "duplicate migration version", "missing"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}
