package transport

import (
	"errors"
	"net/http"

	"nevyra-be/internal/cart"
	"nevyra-be/internal/product"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartSvc cart.Service
}

func NewCartHandler(cartSvc cart.Service) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

type addCartItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartSvc.Get(r.Context())
	if err != nil {
		respondCartError(w, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == 0 {
		respondError(w, http.StatusBadRequest, "productId is required")
		return
	}

	item, err := h.cartSvc.Add(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(w, err)
		return
	}
	respondData(w, http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	var req updateCartItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.cartSvc.UpdateQuantity(r.Context(), itemID, req.Quantity); err != nil {
		respondCartError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "cart item updated")
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	if err := h.cartSvc.Remove(r.Context(), itemID); err != nil {
		respondCartError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "cart item removed")
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartSvc.Clear(r.Context()); err != nil {
		respondCartError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "cart cleared")
}

func respondCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrUserNotAuthenticated):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, cart.ErrInvalidQuantity.Error())
	case errors.Is(err, cart.ErrCartItemNotFound):
		respondError(w, http.StatusNotFound, cart.ErrCartItemNotFound.Error())
	case errors.Is(err, product.ErrProductNotFound):
		respondError(w, http.StatusNotFound, product.ErrProductNotFound.Error())
	default:
		respondError(w, http.StatusInternalServerError, "cart operation failed")
	}
}
