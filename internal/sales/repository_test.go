package sales

import (
	"context"
	"errors"
	"testing"

	"github.com/casamais/casamais-backend/internal/testdb"
	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepositoryProductPricing(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()
	id := testdb.SeedProduct(t, client, "Bolo", "19.99", "7.50")

	pricing, err := repo.ProductPricing(ctx, id)
	require.NoError(t, err)
	assert.True(t, pricing.PrecoVenda.Equal(dec("19.99")))
	assert.True(t, pricing.CustoEstimado.Equal(dec("7.5")))

	_, err = repo.ProductPricing(ctx, id+100)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryFindAndDelete(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()
	produtoID := testdb.SeedProduct(t, client, "Bolo", "10.00", "4.00")

	rec, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, rec)

	sale := models.Sale{
		ProdutoID:      produtoID,
		Quantidade:     2,
		ValorBruto:     dec("20"),
		ValorFinal:     dec("20"),
		FormaPagamento: enums.PaymentMethodDebito,
		DataVenda:      *mustDate(t, "2024-01-05"),
	}
	require.NoError(t, repo.Create(ctx, &sale))
	require.NotZero(t, sale.ID)

	rec, err = repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, enums.PaymentMethodDebito, rec.FormaPagamento)
	assert.Equal(t, "2024-01-05", rec.DataVenda.String())
	assert.Nil(t, rec.UsuarioNome)
	assert.True(t, rec.ProdutoPreco.Valid)

	require.NoError(t, repo.UpdateFields(ctx, sale.ID, map[string]any{"observacoes": "ok"}))
	stored, err := repo.FindSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "ok", stored.Observacoes)

	affected, err := repo.Delete(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, sale.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	_, err = repo.FindSale(ctx, sale.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryWithTxRollsBack(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()
	produtoID := testdb.SeedProduct(t, client, "Bolo", "10.00", "4.00")

	boom := errors.New("boom")
	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		sale := models.Sale{
			ProdutoID:      produtoID,
			Quantidade:     1,
			FormaPagamento: enums.PaymentMethodPix,
			DataVenda:      *mustDate(t, "2024-01-05"),
		}
		if err := repo.WithTx(tx).Create(ctx, &sale); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := repo.FindAll(ctx, Filters{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
