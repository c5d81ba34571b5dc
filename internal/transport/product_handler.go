package transport

import (
	"errors"
	"net/http"
	"strconv"

	"nevyra-be/internal/product"
	"nevyra-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productSvc product.Service
}

func NewProductHandler(productSvc product.Service) *ProductHandler {
	return &ProductHandler{productSvc: productSvc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := product.ListOptions{}

	if q := r.URL.Query().Get("search"); q != "" {
		opts.Search = utils.StrPtr(q)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	products, err := h.productSvc.List(r.Context(), opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	respondData(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.productSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, product.ErrProductNotFound.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	respondData(w, http.StatusOK, p)
}
