package checkout

import (
	"context"
	"sync"

	"nevyra-be/internal/address"
	"nevyra-be/internal/order"
	"nevyra-be/internal/payment"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle                       State = "Idle"
	StateValidatingSelection        State = "ValidatingSelection"
	StateCreatingGatewayOrder       State = "CreatingGatewayOrder"
	StateAwaitingGatewayInteraction State = "AwaitingGatewayInteraction"
	StateFinalizing                 State = "Finalizing"
	StateCompleted                  State = "Completed"
)

// Selection is one checkout attempt's input, passed in explicitly so
// repeated attempts stay independent. It is never stored by the
// orchestrator.
type Selection struct {
	Address       *address.Address
	PaymentMethod payment.Method
	Items         []order.FinalizeItem
}

// Attempt tracks a single run through the checkout flow. Its ID
// doubles as the finalization idempotency key, so a retried or
// double-submitted attempt can never create a second order.
type Attempt struct {
	ID uuid.UUID

	mu       sync.Mutex
	state    State
	inFlight bool
}

func NewAttempt() *Attempt {
	return NewAttemptWithID(uuid.New())
}

// NewAttemptWithID lets a client pin the attempt to its own key so a
// resubmitted request replays instead of ordering twice.
func NewAttemptWithID(id uuid.UUID) *Attempt {
	return &Attempt{ID: id, state: StateIdle}
}

func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Attempt) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// begin claims the attempt for one run. A second caller while the
// first is still in flight gets false.
func (a *Attempt) begin() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inFlight || a.state == StateCompleted {
		return false
	}
	a.inFlight = true
	return true
}

func (a *Attempt) end() {
	a.mu.Lock()
	a.inFlight = false
	a.mu.Unlock()
}

// Outcome is what the payment UI reported back for a gateway order.
type Outcome string

const (
	OutcomePaid        Outcome = "paid"
	OutcomeCancelled   Outcome = "cancelled"
	OutcomeFailed      Outcome = "failed"
	OutcomeUnavailable Outcome = "unavailable"
)

// Interaction is the result of presenting the gateway's payment UI.
// PaymentID and Signature are set only for OutcomePaid.
type Interaction struct {
	Outcome   Outcome
	PaymentID string
	Signature string
}

// GatewayInteractor presents the gateway order to the paying user and
// reports how the interaction ended. The HTTP layer implements it by
// round-tripping through the client; tests implement it directly.
type GatewayInteractor interface {
	Present(ctx context.Context, gatewayOrder payment.GatewayOrder) (Interaction, error)
}

// InteractorFunc adapts a function to the GatewayInteractor interface.
type InteractorFunc func(ctx context.Context, gatewayOrder payment.GatewayOrder) (Interaction, error)

func (f InteractorFunc) Present(ctx context.Context, gatewayOrder payment.GatewayOrder) (Interaction, error) {
	return f(ctx, gatewayOrder)
}
