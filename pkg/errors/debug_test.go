package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpCollectsChainAndPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "vendas_produto_id_fkey",
		TableName:      "vendas",
		Message:        "insert or update violates foreign key constraint",
	}
	err := Wrap(CodeDependency, fmt.Errorf("insert venda: %w", pgErr), "db: insert venda")

	d := Dump(err)
	assert.Equal(t, CodeDependency, d.Code)
	assert.Equal(t, "23503", d.PGCode)
	assert.Equal(t, "vendas_produto_id_fkey", d.PGConstraint)
	assert.Equal(t, "vendas", d.PGTable)
	require.GreaterOrEqual(t, len(d.Chain), 3)
}

func TestDumpNil(t *testing.T) {
	assert.Equal(t, ErrorDump{}, Dump(nil))
}
