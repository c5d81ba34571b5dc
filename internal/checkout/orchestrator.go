package checkout

import (
	"context"

	"nevyra-be/internal/address"
	"nevyra-be/internal/cart"
	"nevyra-be/internal/logger"
	"nevyra-be/internal/metrics"
	"nevyra-be/internal/order"
	"nevyra-be/internal/payment"

	"go.uber.org/zap"
)

// Orchestrator drives one checkout attempt from confirmed selection
// to a persisted order. Cash-on-delivery goes straight to
// finalization; the gateway path creates a gateway order, waits for
// the payment UI, and finalizes with the payment proof. Every failure
// returns the attempt to Idle with the cart untouched; the cart is
// cleared only after the order is persisted.
type Orchestrator interface {
	Run(ctx context.Context, attempt *Attempt, sel Selection, interactor GatewayInteractor) (*order.Order, error)
	Stats() map[string]uint64
}

type orchestrator struct {
	gateway     payment.Gateway
	paymentRepo payment.Repository
	orderSvc    order.Service
	cartSvc     cart.Service
	currency    string
	stats       *metrics.Checkout
}

func NewOrchestrator(
	gateway payment.Gateway,
	paymentRepo payment.Repository,
	orderSvc order.Service,
	cartSvc cart.Service,
) Orchestrator {
	return &orchestrator{
		gateway:     gateway,
		paymentRepo: paymentRepo,
		orderSvc:    orderSvc,
		cartSvc:     cartSvc,
		currency:    "INR",
		stats:       &metrics.Checkout{},
	}
}

// Stats exposes the attempt counters.
func (o *orchestrator) Stats() map[string]uint64 {
	return o.stats.Snapshot()
}

func (o *orchestrator) Run(
	ctx context.Context,
	attempt *Attempt,
	sel Selection,
	interactor GatewayInteractor,
) (*order.Order, error) {

	if !attempt.begin() {
		if attempt.State() == StateCompleted {
			return nil, ErrAttemptCompleted
		}
		return nil, ErrAttemptInFlight
	}
	defer attempt.end()

	o.stats.AttemptsStarted.Inc()
	timer := metrics.StartTimer()

	log := logger.FromCtx(ctx).With(
		zap.String("component", "CheckoutOrchestrator"),
		zap.String("attempt_id", attempt.ID.String()),
	)

	attempt.setState(StateValidatingSelection)
	if err := validateSelection(sel); err != nil {
		log.Warn("selection rejected", zap.Error(err))
		o.stats.ValidationFailed.Inc()
		attempt.setState(StateIdle)
		return nil, err
	}

	var total int64
	for _, it := range sel.Items {
		total += it.Price * int64(it.Quantity)
	}

	details := order.PaymentDetails{}

	if sel.PaymentMethod == payment.MethodRazorpay {
		attempt.setState(StateCreatingGatewayOrder)

		if total <= 0 {
			attempt.setState(StateIdle)
			return nil, ErrInvalidAmount
		}

		res, err := o.gateway.CreateOrder(ctx, total, o.currency)
		if err != nil {
			attempt.setState(StateIdle)
			return nil, err
		}
		if res.IsMock {
			o.stats.MockGatewayOrders.Inc()
			log.Warn("proceeding with mock gateway order",
				zap.String("gateway_order_id", res.Order.GatewayOrderID),
				zap.String("reason", res.MockReason),
			)
		}

		rec := &payment.Payment{
			GatewayOrderID:   res.Order.GatewayOrderID,
			AmountMinorUnits: res.Order.AmountMinorUnits,
			Currency:         res.Order.Currency,
			Receipt:          res.Order.Receipt,
			Status:           payment.StatusCreated,
			IsMock:           res.IsMock,
		}
		if err := o.paymentRepo.SavePayment(ctx, rec); err != nil {
			log.Error("failed to record gateway order", zap.Error(err))
			attempt.setState(StateIdle)
			return nil, err
		}

		attempt.setState(StateAwaitingGatewayInteraction)
		itx, err := interactor.Present(ctx, res.Order)
		if err != nil {
			log.Warn("payment UI unavailable", zap.Error(err))
			o.stats.GatewayAbandoned.Inc()
			attempt.setState(StateIdle)
			return nil, ErrGatewayUnavailable
		}

		switch itx.Outcome {
		case OutcomePaid:
			details = order.PaymentDetails{
				RazorpayOrderID:   res.Order.GatewayOrderID,
				RazorpayPaymentID: itx.PaymentID,
				RazorpaySignature: itx.Signature,
			}
		case OutcomeCancelled:
			log.Info("payment cancelled by user")
			o.stats.GatewayAbandoned.Inc()
			attempt.setState(StateIdle)
			return nil, ErrGatewayCancelled
		case OutcomeFailed:
			if err := o.paymentRepo.MarkFailed(ctx, res.Order.GatewayOrderID); err != nil {
				log.Warn("failed to mark payment failed", zap.Error(err))
			}
			o.stats.GatewayAbandoned.Inc()
			attempt.setState(StateIdle)
			return nil, ErrGatewayFailed
		default:
			o.stats.GatewayAbandoned.Inc()
			attempt.setState(StateIdle)
			return nil, ErrGatewayUnavailable
		}
	}

	attempt.setState(StateFinalizing)

	ord, err := o.orderSvc.Finalize(ctx, order.FinalizeInput{
		IdempotencyKey:  attempt.ID,
		PaymentMethod:   sel.PaymentMethod,
		ShippingAddress: snapshotOf(sel.Address),
		Items:           sel.Items,
		TotalAmount:     total,
		PaymentDetails:  details,
	})
	if err != nil {
		log.Warn("finalization failed", zap.Error(err))
		o.stats.FinalizeFailed.Inc()
		attempt.setState(StateIdle)
		return nil, err
	}

	attempt.setState(StateCompleted)
	o.stats.Completed.Inc()

	// Order persistence won, so a cart-clear hiccup must not undo the
	// attempt. The stale cart is an annoyance, not a correctness bug.
	if err := o.cartSvc.Clear(ctx); err != nil {
		log.Warn("failed to clear cart after checkout", zap.Error(err))
	}

	log.Info("checkout completed",
		zap.Uint("order_id", ord.ID),
		zap.String("payment_method", string(sel.PaymentMethod)),
		zap.Duration("took", timer.Duration()),
	)

	return ord, nil
}

func validateSelection(sel Selection) error {
	if sel.Address == nil {
		return ErrMissingAddress
	}
	if sel.PaymentMethod == "" {
		return ErrMissingPaymentMethod
	}
	if len(sel.Items) == 0 {
		return ErrEmptySelection
	}
	return nil
}

func snapshotOf(a *address.Address) order.AddressSnapshot {
	return order.AddressSnapshot{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}
