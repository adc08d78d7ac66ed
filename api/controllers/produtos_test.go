package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/casamais/casamais-backend/api/responses"
	product "github.com/casamais/casamais-backend/internal/products"
	pkgerrors "github.com/casamais/casamais-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProductService struct {
	dto     *product.ProductDTO
	list    []product.ProductDTO
	total   int64
	changed bool
	err     error

	gotID      int64
	gotDraft   product.ProductDraft
	gotFilters product.ListFilters
}

func (s *stubProductService) List(ctx context.Context, filters product.ListFilters) ([]product.ProductDTO, int64, error) {
	s.gotFilters = filters
	return s.list, s.total, s.err
}

func (s *stubProductService) Get(ctx context.Context, id int64) (*product.ProductDTO, error) {
	s.gotID = id
	return s.dto, s.err
}

func (s *stubProductService) Create(ctx context.Context, draft product.ProductDraft) (*product.ProductDTO, error) {
	s.gotDraft = draft
	return s.dto, s.err
}

func (s *stubProductService) Update(ctx context.Context, id int64, draft product.ProductDraft) (*product.ProductDTO, bool, error) {
	s.gotID = id
	s.gotDraft = draft
	return s.dto, s.changed, s.err
}

func (s *stubProductService) Delete(ctx context.Context, id int64) error {
	s.gotID = id
	return s.err
}

func TestProdutosListFilters(t *testing.T) {
	svc := &stubProductService{list: []product.ProductDTO{{ID: 1}}, total: 12}
	req := newRequest(http.MethodGet, "/api/produtos?incluir_inativos=true&busca=%20bolo%20&pagina=2&limite=5", "")

	rec, env := serve(t, ProdutosList(svc, nil), req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Total)
	assert.Equal(t, 12, *env.Total)
	assert.True(t, svc.gotFilters.IncluirInativos)
	assert.Equal(t, "bolo", svc.gotFilters.Busca)
	assert.Equal(t, 2, svc.gotFilters.Pagination.Page)
	assert.Equal(t, 5, svc.gotFilters.Pagination.Limit)
}

func TestProdutosListRejectsBadLimit(t *testing.T) {
	svc := &stubProductService{}
	rec, _ := serve(t, ProdutosList(svc, nil), newRequest(http.MethodGet, "/api/produtos?pagina=1&limite=1000", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProdutosCreate(t *testing.T) {
	svc := &stubProductService{dto: &product.ProductDTO{ID: 3, PrecoVenda: 8}}
	rec, env := serve(t, ProdutosCreate(svc, nil), newRequest(http.MethodPost, "/api/produtos", `{"nome":"Cookie","preco_venda":8}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Produto criado com sucesso", env.Message)
	assert.Equal(t, "Cookie", svc.gotDraft.Nome.Value)
}

func TestProdutosUpdateNoChanges(t *testing.T) {
	svc := &stubProductService{dto: &product.ProductDTO{ID: 3}}
	rec, env := serve(t, ProdutosUpdate(svc, nil), withPathID(newRequest(http.MethodPut, "/api/produtos/3", `{}`), "3"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, responses.MsgNothingUpdated, env.Message)
	assert.Equal(t, int64(3), svc.gotID)
}

func TestProdutosDeleteNotFound(t *testing.T) {
	svc := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Produto não encontrado")}
	rec, env := serve(t, ProdutosDelete(svc, nil), withPathID(newRequest(http.MethodDelete, "/api/produtos/8", ""), "8"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Produto não encontrado", env.Message)
}
