package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nevyra-be/internal/address"
	"nevyra-be/internal/cart"
	"nevyra-be/internal/checkout"
	"nevyra-be/internal/order"
	"nevyra-be/internal/payment"

	"github.com/google/uuid"
)

// CheckoutHandler runs the whole checkout flow in one request: it
// resolves the selection from the caller's cart and address book,
// hands it to the orchestrator, and reports where the attempt ended.
type CheckoutHandler struct {
	orch       checkout.Orchestrator
	cartSvc    cart.Service
	addressSvc address.Service
}

func NewCheckoutHandler(orch checkout.Orchestrator, cartSvc cart.Service, addressSvc address.Service) *CheckoutHandler {
	return &CheckoutHandler{orch: orch, cartSvc: cartSvc, addressSvc: addressSvc}
}

type checkoutInteraction struct {
	Outcome   string `json:"outcome"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type checkoutRequest struct {
	IdempotencyKey string               `json:"idempotencyKey"`
	AddressID      string               `json:"addressId"`
	PaymentMethod  string               `json:"paymentMethod"`
	Interaction    *checkoutInteraction `json:"interaction,omitempty"`
}

// interactorFrom turns the request's declared gateway outcome into a
// GatewayInteractor. An omitted interaction simulates a successful
// payment with a synthesized payment id, which keeps the gateway path
// drivable in environments with no real payment UI.
func interactorFrom(itx *checkoutInteraction) checkout.GatewayInteractor {
	return checkout.InteractorFunc(func(ctx context.Context, gw payment.GatewayOrder) (checkout.Interaction, error) {
		if itx == nil || itx.Outcome == "" || itx.Outcome == string(checkout.OutcomePaid) {
			paymentID := ""
			signature := ""
			if itx != nil {
				paymentID = itx.PaymentID
				signature = itx.Signature
			}
			if paymentID == "" {
				paymentID = fmt.Sprintf("pay_sim_%d", time.Now().UnixMilli())
			}
			return checkout.Interaction{
				Outcome:   checkout.OutcomePaid,
				PaymentID: paymentID,
				Signature: signature,
			}, nil
		}

		switch checkout.Outcome(itx.Outcome) {
		case checkout.OutcomeCancelled, checkout.OutcomeFailed, checkout.OutcomeUnavailable:
			return checkout.Interaction{Outcome: checkout.Outcome(itx.Outcome)}, nil
		default:
			return checkout.Interaction{}, fmt.Errorf("unknown gateway outcome %q", itx.Outcome)
		}
	})
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	attempt := checkout.NewAttempt()
	if req.IdempotencyKey != "" {
		key, err := uuid.Parse(req.IdempotencyKey)
		if err != nil {
			respondError(w, http.StatusBadRequest, "idempotencyKey must be a valid UUID")
			return
		}
		attempt = checkout.NewAttemptWithID(key)
	}

	sel := checkout.Selection{
		PaymentMethod: payment.Method(req.PaymentMethod),
	}

	if req.AddressID != "" {
		addrID, err := uuid.Parse(req.AddressID)
		if err != nil {
			respondError(w, http.StatusBadRequest, address.ErrInvalidAddressID.Error())
			return
		}
		addr, err := h.addressSvc.Get(r.Context(), addrID)
		if err != nil {
			respondAddressError(w, err)
			return
		}
		sel.Address = addr
	}

	c, err := h.cartSvc.Get(r.Context())
	if err != nil {
		respondCartError(w, err)
		return
	}
	for _, row := range c.Items {
		sel.Items = append(sel.Items, order.FinalizeItem{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			Price:     row.Price,
		})
	}

	ord, err := h.orch.Run(r.Context(), attempt, sel, interactorFrom(req.Interaction))
	if err != nil {
		respondCheckoutError(w, err)
		return
	}

	respondData(w, http.StatusCreated, ord)
}

func respondCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrMissingAddress),
		errors.Is(err, checkout.ErrMissingPaymentMethod),
		errors.Is(err, checkout.ErrEmptySelection),
		errors.Is(err, checkout.ErrInvalidAmount):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrAttemptInFlight),
		errors.Is(err, checkout.ErrAttemptCompleted):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, checkout.ErrGatewayCancelled),
		errors.Is(err, checkout.ErrGatewayFailed):
		respondError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, checkout.ErrGatewayUnavailable):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		respondOrderError(w, err)
	}
}
