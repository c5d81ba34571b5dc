package transport

import (
	"errors"
	"net/http"

	"nevyra-be/internal/logger"
	"nevyra-be/internal/payment"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	gateway     payment.Gateway
	paymentRepo payment.Repository
}

func NewPaymentHandler(gateway payment.Gateway, paymentRepo payment.Repository) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, paymentRepo: paymentRepo}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createOrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	IsMock   bool   `json:"isMock,omitempty"`
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// CreateOrder opens a gateway order for the given amount in major
// units. A gateway outage degrades to a mock order rather than a 5xx.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.gateway.CreateOrder(r.Context(), req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			respondError(w, http.StatusBadRequest, payment.ErrInvalidAmount.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create payment order")
		return
	}

	rec := &payment.Payment{
		GatewayOrderID:   res.Order.GatewayOrderID,
		AmountMinorUnits: res.Order.AmountMinorUnits,
		Currency:         res.Order.Currency,
		Receipt:          res.Order.Receipt,
		Status:           payment.StatusCreated,
		IsMock:           res.IsMock,
	}
	if err := h.paymentRepo.SavePayment(r.Context(), rec); err != nil {
		logger.FromCtx(r.Context()).Error("failed to record payment order", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to create payment order")
		return
	}

	respondData(w, http.StatusCreated, createOrderResponse{
		OrderID:  res.Order.GatewayOrderID,
		Amount:   res.Order.AmountMinorUnits,
		Currency: res.Order.Currency,
		Receipt:  res.Order.Receipt,
		IsMock:   res.IsMock,
	})
}

// Verify checks a gateway callback's signature. Missing fields and
// mismatches both fail closed with a 400.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		respondError(w, http.StatusBadRequest, "missing payment verification fields")
		return
	}

	log := logger.FromCtx(r.Context()).With(
		zap.String("gateway_order_id", req.RazorpayOrderID),
	)

	if !h.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		log.Warn("payment signature mismatch")
		if err := h.paymentRepo.MarkFailed(r.Context(), req.RazorpayOrderID); err != nil &&
			!errors.Is(err, payment.ErrPaymentNotFound) {
			log.Warn("failed to mark payment failed", zap.Error(err))
		}
		respondError(w, http.StatusBadRequest, "payment verification failed")
		return
	}

	if err := h.paymentRepo.MarkVerified(r.Context(), req.RazorpayOrderID, req.RazorpayPaymentID); err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			respondError(w, http.StatusBadRequest, payment.ErrPaymentNotFound.Error())
			return
		}
		log.Error("failed to mark payment verified", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to record verification")
		return
	}

	respondMessage(w, http.StatusOK, "payment verified")
}
