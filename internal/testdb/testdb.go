// Package testdb opens isolated in-memory SQLite databases carrying the
// application schema, for repository and service tests.
package testdb

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/casamais/casamais-backend/pkg/db"
	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

var schema = []string{
	`CREATE TABLE usuarios (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  senha_hash TEXT NOT NULL,
  papel TEXT NOT NULL DEFAULT 'voluntario',
  ativo BOOLEAN NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
)`,
	`CREATE TABLE receitas (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  rendimento NUMERIC(12,2) NOT NULL DEFAULT 0,
  custo_total NUMERIC(12,2) NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
)`,
	`CREATE TABLE produtos (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  descricao TEXT NOT NULL DEFAULT '',
  preco_venda NUMERIC(12,2) NOT NULL DEFAULT 0,
  receita_id INTEGER REFERENCES receitas(id) ON DELETE SET NULL,
  custo_estimado NUMERIC(12,2) NOT NULL DEFAULT 0,
  margem_bruta NUMERIC(12,2) NOT NULL DEFAULT 0,
  margem_percentual NUMERIC(10,2) NOT NULL DEFAULT 0,
  ativo BOOLEAN NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
)`,
	`CREATE TABLE vendas (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  produto_id INTEGER NOT NULL REFERENCES produtos(id),
  quantidade INTEGER NOT NULL DEFAULT 1,
  valor_bruto NUMERIC(12,2) NOT NULL DEFAULT 0,
  desconto NUMERIC(12,2) NOT NULL DEFAULT 0,
  valor_final NUMERIC(12,2) NOT NULL DEFAULT 0,
  forma_pagamento TEXT NOT NULL DEFAULT 'Dinheiro',
  custo_estimado_total NUMERIC(12,2) NOT NULL DEFAULT 0,
  lucro_estimado NUMERIC(12,2) NOT NULL DEFAULT 0,
  observacoes TEXT NOT NULL DEFAULT '',
  data_venda DATE NOT NULL,
  usuario_id INTEGER REFERENCES usuarios(id) ON DELETE SET NULL,
  created_at DATETIME,
  updated_at DATETIME
)`,
	`CREATE TABLE unidades_medida (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  sigla TEXT NOT NULL UNIQUE
)`,
	`INSERT INTO unidades_medida (nome, sigla) VALUES
  ('Miligrama', 'mg'),
  ('Mililitro', 'ml'),
  ('Comprimido', 'comp')`,
	`CREATE TABLE medicamentos (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nome TEXT NOT NULL,
  forma_farmaceutica TEXT NOT NULL DEFAULT '',
  descricao VARCHAR(250) NOT NULL DEFAULT '',
  unidade_medida_id INTEGER NOT NULL REFERENCES unidades_medida(id),
  created_at DATETIME,
  updated_at DATETIME
)`,
}

// Open returns a client over a fresh schema unique to t. The pool is pinned
// to one connection so the in-memory database lives until cleanup; code under
// test must route every statement inside a transaction through that tx.
func Open(t testing.TB) *db.Client {
	t.Helper()

	client := OpenEmpty(t)
	for _, stmt := range schema {
		if err := client.DB().Exec(stmt).Error; err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return client
}

// OpenEmpty returns a client over a database with no tables, so any query
// issued against it fails.
func OpenEmpty(t testing.TB) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", unsafeName.ReplaceAllString(t.Name(), "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger: gormlogger.New(
			log.New(io.Discard, "", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Silent},
		),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db.NewFromConn(conn)
}

// SeedProduct inserts an active product priced at preco with unit cost custo.
func SeedProduct(t testing.TB, client *db.Client, nome, preco, custo string) int64 {
	t.Helper()
	product := models.Product{
		Nome:          nome,
		PrecoVenda:    decimal.RequireFromString(preco),
		CustoEstimado: decimal.RequireFromString(custo),
		Ativo:         true,
	}
	if err := client.DB().Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product.ID
}

// SeedUser inserts a staff user with a placeholder password hash.
func SeedUser(t testing.TB, client *db.Client, nome, email string, role enums.Role) int64 {
	t.Helper()
	user := models.User{
		Nome:      nome,
		Email:     email,
		SenhaHash: "seed",
		Papel:     role,
		Ativo:     true,
	}
	if err := client.DB().Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}
