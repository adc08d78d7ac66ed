package controllers

import (
	"net/http"
	"strings"

	"github.com/casamais/casamais-backend/api/responses"
	"github.com/casamais/casamais-backend/api/validators"
	product "github.com/casamais/casamais-backend/internal/products"
	"github.com/casamais/casamais-backend/pkg/logger"
)

// ProdutosList returns active products, or all with ?incluir_inativos=true.
func ProdutosList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters := product.ListFilters{
			IncluirInativos: validators.ParseQueryBool(r, "incluir_inativos"),
			Busca:           strings.TrimSpace(r.URL.Query().Get("busca")),
			Pagination:      page,
		}

		list, total, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, list, int(total))
	}
}

func ProdutosGet(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func ProdutosCreate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft product.ProductDraft
		if err := validators.DecodeDraft(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Create(r.Context(), draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, dto, "Produto criado com sucesso")
	}
}

func ProdutosUpdate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var draft product.ProductDraft
		if err := validators.DecodeDraft(r, &draft); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, changed, err := svc.Update(r.Context(), id, draft)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		msg := "Produto atualizado com sucesso"
		if !changed {
			msg = responses.MsgNothingUpdated
		}
		responses.WriteSuccessStatus(w, http.StatusOK, dto, msg)
	}
}

// ProdutosDelete deactivates the product; past sales keep referencing it.
func ProdutosDelete(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Produto desativado com sucesso")
	}
}
