package sales

import (
	"context"
	"testing"
	"time"

	"github.com/casamais/casamais-backend/internal/testdb"
	"github.com/casamais/casamais-backend/pkg/db"
	"github.com/casamais/casamais-backend/pkg/db/models"
	"github.com/casamais/casamais-backend/pkg/enums"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/casamais/casamais-backend/pkg/metrics"
	"github.com/casamais/casamais-backend/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, client *db.Client) *service {
	t.Helper()
	svc, err := NewService(NewRepository(client.DB()), client, nil)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return fixedNow }
	return impl
}

func mustDate(t *testing.T, raw string) *types.Date {
	t.Helper()
	d, err := types.ParseDate(raw)
	require.NoError(t, err)
	return &d
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code(), "unexpected error %v", err)
}

func setProductPrice(t *testing.T, client *db.Client, id int64, preco, custo string) {
	t.Helper()
	err := client.DB().Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]any{"preco_venda": dec(preco), "custo_estimado": dec(custo)}).Error
	require.NoError(t, err)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	client := testdb.Open(t)

	_, err := NewService(nil, client, nil)
	assert.Error(t, err)
	_, err = NewService(NewRepository(client.DB()), nil, nil)
	assert.Error(t, err)
}

func TestCreateDerivesValuesFromProduct(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	produtoID := testdb.SeedProduct(t, client, "Bolo de cenoura", "100.00", "60.00")
	userID := testdb.SeedUser(t, client, "Ana", "ana@casamais.org", enums.RoleVoluntario)

	draft := draftFrom(t, `{"quantidade": 5, "desconto": 50, "forma_pagamento": "Pix", "valor_bruto": 1}`)
	draft.ProdutoID = types.Some(produtoID)
	draft.UsuarioID = types.Some(userID)

	sale, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)

	assert.NotZero(t, sale.ID)
	assert.Equal(t, 500.0, sale.ValorBruto)
	assert.Equal(t, 450.0, sale.ValorFinal)
	assert.Equal(t, 300.0, sale.CustoEstimadoTotal)
	assert.Equal(t, 150.0, sale.LucroEstimado)
	assert.Equal(t, "Pix", sale.FormaPagamento)
	assert.Equal(t, "2024-03-15", sale.DataVenda.String())
	require.NotNil(t, sale.ProdutoNome)
	assert.Equal(t, "Bolo de cenoura", *sale.ProdutoNome)
	require.NotNil(t, sale.ProdutoPreco)
	assert.Equal(t, 100.0, *sale.ProdutoPreco)
	require.NotNil(t, sale.UsuarioNome)
	assert.Equal(t, "Ana", *sale.UsuarioNome)
}

func TestCreateRecordsMetrics(t *testing.T) {
	client := testdb.Open(t)
	reg := prometheus.NewRegistry()
	svc, err := NewService(NewRepository(client.DB()), client, metrics.NewSalesMetrics(reg))
	require.NoError(t, err)
	produtoID := testdb.SeedProduct(t, client, "Pão", "8.00", "3.00")

	draft := draftFrom(t, `{"quantidade": 2}`)
	draft.ProdutoID = types.Some(produtoID)
	_, err = svc.Create(context.Background(), draft)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "vendas_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateMissingProductIsNotFound(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)

	_, err := svc.Create(context.Background(), draftFrom(t, `{"produto_id": 999}`))
	requireCode(t, err, pkgerrors.CodeNotFound)

	var count int64
	require.NoError(t, client.DB().Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateUnknownUserIsValidation(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	produtoID := testdb.SeedProduct(t, client, "Geleia", "12.00", "5.00")

	draft := draftFrom(t, `{"usuario_id": 4242}`)
	draft.ProdutoID = types.Some(produtoID)
	_, err := svc.Create(context.Background(), draft)
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateValidationGate(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	produtoID := testdb.SeedProduct(t, client, "Sabonete", "10.00", "4.00")

	draft := draftFrom(t, `{"quantidade": 0}`)
	draft.ProdutoID = types.Some(produtoID)
	_, err := svc.Create(context.Background(), draft)
	requireCode(t, err, pkgerrors.CodeValidation)
	assert.Contains(t, pkgerrors.As(err).Details()[0], "Quantidade")

	draft = draftFrom(t, `{"forma_pagamento": "Boleto"}`)
	draft.ProdutoID = types.Some(produtoID)
	_, err = svc.Create(context.Background(), draft)
	requireCode(t, err, pkgerrors.CodeValidation)
	assert.Equal(t, []string{msgFormaPagamento}, pkgerrors.As(err).Details())

	draft = draftFrom(t, `{"desconto": 0.005}`)
	draft.ProdutoID = types.Some(produtoID)
	_, err = svc.Create(context.Background(), draft)
	requireCode(t, err, pkgerrors.CodeValidation)
	assert.Equal(t, []string{msgDescontoCentavos}, pkgerrors.As(err).Details())

	var count int64
	require.NoError(t, client.DB().Model(&models.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateRederivesFromCurrentPricing(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	produtoID := testdb.SeedProduct(t, client, "Bolo", "100.00", "60.00")

	draft := draftFrom(t, `{"quantidade": 5, "desconto": 50}`)
	draft.ProdutoID = types.Some(produtoID)
	created, err := svc.Create(ctx, draft)
	require.NoError(t, err)

	updated, changed, err := svc.Update(ctx, created.ID, draftFrom(t, `{"quantidade": 10, "desconto": 100}`))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 10, updated.Quantidade)
	assert.Equal(t, 1000.0, updated.ValorBruto)
	assert.Equal(t, 900.0, updated.ValorFinal)
	assert.Equal(t, 600.0, updated.CustoEstimadoTotal)
	assert.Equal(t, 300.0, updated.LucroEstimado)

	setProductPrice(t, client, produtoID, "110.00", "70.00")
	updated, _, err = svc.Update(ctx, created.ID, draftFrom(t, `{"quantidade": 2}`))
	require.NoError(t, err)
	assert.Equal(t, 220.0, updated.ValorBruto)
	assert.Equal(t, 120.0, updated.ValorFinal)
	assert.Equal(t, 140.0, updated.CustoEstimadoTotal)
	assert.Equal(t, -20.0, updated.LucroEstimado)
	assert.Equal(t, 100.0, updated.Desconto)
}

func TestUpdateSwitchesProduct(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	first := testdb.SeedProduct(t, client, "Bolo", "100.00", "60.00")
	second := testdb.SeedProduct(t, client, "Torta", "40.00", "15.00")

	draft := draftFrom(t, `{"quantidade": 3}`)
	draft.ProdutoID = types.Some(first)
	created, err := svc.Create(ctx, draft)
	require.NoError(t, err)

	change := SaleDraft{ProdutoID: types.Some(second)}
	updated, _, err := svc.Update(ctx, created.ID, change)
	require.NoError(t, err)
	assert.Equal(t, second, updated.ProdutoID)
	assert.Equal(t, 120.0, updated.ValorBruto)
	assert.Equal(t, 45.0, updated.CustoEstimadoTotal)

	_, _, err = svc.Update(ctx, created.ID, SaleDraft{ProdutoID: types.Some(int64(777))})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateNotesOnlyPreservesMonetaryFields(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	produtoID := testdb.SeedProduct(t, client, "Bolo", "100.00", "60.00")

	draft := draftFrom(t, `{"quantidade": 5, "desconto": 50}`)
	draft.ProdutoID = types.Some(produtoID)
	created, err := svc.Create(ctx, draft)
	require.NoError(t, err)

	setProductPrice(t, client, produtoID, "500.00", "1.00")

	updated, changed, err := svc.Update(ctx, created.ID, draftFrom(t, `{"observacoes": "cliente pediu embrulho"}`))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "cliente pediu embrulho", updated.Observacoes)
	assert.Equal(t, created.Quantidade, updated.Quantidade)
	assert.Equal(t, created.Desconto, updated.Desconto)
	assert.Equal(t, created.ValorBruto, updated.ValorBruto)
	assert.Equal(t, created.ValorFinal, updated.ValorFinal)
	assert.Equal(t, created.CustoEstimadoTotal, updated.CustoEstimadoTotal)
	assert.Equal(t, created.LucroEstimado, updated.LucroEstimado)
}

func TestUpdateWithoutFieldsIsNoop(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	produtoID := testdb.SeedProduct(t, client, "Bolo", "10.00", "6.00")

	draft := SaleDraft{ProdutoID: types.Some(produtoID)}
	created, err := svc.Create(ctx, draft)
	require.NoError(t, err)

	current, changed, err := svc.Update(ctx, created.ID, draftFrom(t, `{}`))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, created.ID, current.ID)

	_, _, err = svc.Update(ctx, 404, draftFrom(t, `{}`))
	requireCode(t, err, pkgerrors.CodeNotFound)
	_, _, err = svc.Update(ctx, 404, draftFrom(t, `{"observacoes": "x"}`))
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateValidation(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)

	_, _, err := svc.Update(context.Background(), 1, draftFrom(t, `{"desconto": -3}`))
	requireCode(t, err, pkgerrors.CodeValidation)
	assert.Equal(t, []string{msgDescontoNegativo}, pkgerrors.As(err).Details())
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	produtoID := testdb.SeedProduct(t, client, "Bolo", "10.00", "6.00")

	created, err := svc.Create(ctx, SaleDraft{ProdutoID: types.Some(produtoID)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	requireCode(t, svc.Delete(ctx, created.ID), pkgerrors.CodeNotFound)

	_, err = svc.Get(ctx, created.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestListOrderingAndFilters(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	bolo := testdb.SeedProduct(t, client, "Bolo", "10.00", "6.00")
	torta := testdb.SeedProduct(t, client, "Torta", "20.00", "8.00")

	create := func(produtoID int64, data string) int64 {
		d := SaleDraft{ProdutoID: types.Some(produtoID), DataVenda: types.Some(data)}
		sale, err := svc.Create(ctx, d)
		require.NoError(t, err)
		return sale.ID
	}
	a := create(bolo, "2024-03-01")
	b := create(torta, "2024-03-10")
	c := create(bolo, "2024-03-10")
	d := create(bolo, "2024-02-20")

	all, err := svc.List(ctx, Filters{})
	require.NoError(t, err)
	ids := make([]int64, 0, len(all))
	for _, s := range all {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{c, b, a, d}, ids)
	require.NotNil(t, all[0].ProdutoNome)
	assert.Equal(t, "Bolo", *all[0].ProdutoNome)

	byProduct, err := svc.List(ctx, Filters{ProdutoID: &torta})
	require.NoError(t, err)
	require.Len(t, byProduct, 1)
	assert.Equal(t, b, byProduct[0].ID)

	march, err := svc.List(ctx, Filters{DataInicio: mustDate(t, "2024-03-01"), DataFim: mustDate(t, "2024-03-09")})
	require.NoError(t, err)
	require.Len(t, march, 1)
	assert.Equal(t, a, march[0].ID)

	empty, err := svc.List(ctx, Filters{DataInicio: mustDate(t, "2025-01-01")})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestReportSingleDayAggregates(t *testing.T) {
	client := testdb.Open(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	bolo := testdb.SeedProduct(t, client, "Bolo", "100.00", "60.00")
	torta := testdb.SeedProduct(t, client, "Torta", "20.00", "8.00")

	bodies := []struct {
		produtoID int64
		body      string
	}{
		{bolo, `{"quantidade": 5, "desconto": 50, "data_venda": "2024-03-10"}`},
		{torta, `{"quantidade": 2, "data_venda": "2024-03-10"}`},
		{bolo, `{"quantidade": 1, "desconto": 10, "data_venda": "2024-03-10"}`},
		{bolo, `{"quantidade": 3, "data_venda": "2024-03-11"}`},
	}
	var expected ReportRowDTO
	for _, b := range bodies {
		d := draftFrom(t, b.body)
		d.ProdutoID = types.Some(b.produtoID)
		sale, err := svc.Create(ctx, d)
		require.NoError(t, err)
		if sale.DataVenda.String() != "2024-03-10" {
			continue
		}
		expected.TotalVendas++
		expected.TotalQuantidade += int64(sale.Quantidade)
		expected.TotalValorBruto += sale.ValorBruto
		expected.TotalDesconto += sale.Desconto
		expected.TotalValorFinal += sale.ValorFinal
		expected.TotalCustoEstimado += sale.CustoEstimadoTotal
		expected.TotalLucroEstimado += sale.LucroEstimado
	}

	day := mustDate(t, "2024-03-10")
	rows, err := svc.Report(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2024-03-10", row.Data.String())
	assert.Equal(t, int64(3), row.TotalVendas)
	assert.Equal(t, expected.TotalVendas, row.TotalVendas)
	assert.Equal(t, expected.TotalQuantidade, row.TotalQuantidade)
	assert.InDelta(t, expected.TotalValorBruto, row.TotalValorBruto, 0.001)
	assert.InDelta(t, expected.TotalDesconto, row.TotalDesconto, 0.001)
	assert.InDelta(t, expected.TotalValorFinal, row.TotalValorFinal, 0.001)
	assert.InDelta(t, expected.TotalCustoEstimado, row.TotalCustoEstimado, 0.001)
	assert.InDelta(t, expected.TotalLucroEstimado, row.TotalLucroEstimado, 0.001)

	rows, err = svc.Report(ctx, mustDate(t, "2024-03-01"), mustDate(t, "2024-03-31"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-03-11", rows[0].Data.String())
	assert.Equal(t, "2024-03-10", rows[1].Data.String())

	rows, err = svc.Report(ctx, mustDate(t, "2023-01-01"), mustDate(t, "2023-01-01"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReportRequiresBothBoundsBeforeQuerying(t *testing.T) {
	// No tables: any query would surface as a dependency error.
	client := testdb.OpenEmpty(t)
	svc := newTestService(t, client)
	ctx := context.Background()
	day := mustDate(t, "2024-03-10")

	_, err := svc.Report(ctx, nil, day)
	requireCode(t, err, pkgerrors.CodeValidation)
	_, err = svc.Report(ctx, day, nil)
	requireCode(t, err, pkgerrors.CodeValidation)
	_, err = svc.Report(ctx, nil, nil)
	requireCode(t, err, pkgerrors.CodeValidation)
	_, err = svc.Report(ctx, mustDate(t, "2024-03-11"), day)
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Report(ctx, day, day)
	requireCode(t, err, pkgerrors.CodeDependency)
}
