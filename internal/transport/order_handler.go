package transport

import (
	"errors"
	"net/http"

	"nevyra-be/internal/order"
	"nevyra-be/internal/payment"
	"nevyra-be/internal/product"
	"nevyra-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderSvc order.Service
}

func NewOrderHandler(orderSvc order.Service) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

type finalizeRequest struct {
	IdempotencyKey  string                `json:"idempotencyKey"`
	PaymentMethod   string                `json:"paymentMethod"`
	ShippingAddress order.AddressSnapshot `json:"shippingAddress"`
	Items           []order.FinalizeItem  `json:"items"`
	TotalAmount     int64                 `json:"totalAmount"`
	PaymentDetails  order.PaymentDetails  `json:"paymentDetails"`
}

// Finalize persists one order per idempotency key. It never touches
// the cart; the caller clears it after a success response.
func (h *OrderHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	key, err := uuid.Parse(req.IdempotencyKey)
	if err != nil {
		respondError(w, http.StatusBadRequest, "idempotencyKey must be a valid UUID")
		return
	}

	ord, err := h.orderSvc.Finalize(r.Context(), order.FinalizeInput{
		IdempotencyKey:  key,
		PaymentMethod:   payment.Method(req.PaymentMethod),
		ShippingAddress: req.ShippingAddress,
		Items:           req.Items,
		TotalAmount:     req.TotalAmount,
		PaymentDetails:  req.PaymentDetails,
	})
	if err != nil {
		respondOrderError(w, err)
		return
	}

	respondData(w, http.StatusCreated, ord)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.GetOrders(r.Context())
	if err != nil {
		respondOrderError(w, err)
		return
	}
	respondData(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ord, err := h.orderSvc.GetOrderDetail(r.Context(), id)
	if err != nil {
		respondOrderError(w, err)
		return
	}
	respondData(w, http.StatusOK, ord)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ToUint(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.orderSvc.UpdateOrderStatus(r.Context(), id, order.OrderStatus(req.Status)); err != nil {
		respondOrderError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "order status updated")
}

func respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, order.ErrUnauthorized.Error())
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, order.ErrOrderNotFound.Error())
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrMissingAddress),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrMissingPaymentProof),
		errors.Is(err, order.ErrTotalMismatch),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, product.ErrOutOfStock):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "failed to process order")
	}
}
