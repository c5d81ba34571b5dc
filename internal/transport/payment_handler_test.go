package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nevyra-be/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestPaymentCreateOrder(t *testing.T) {
	t.Run("Real gateway order", func(t *testing.T) {
		gw := new(MockGateway)
		repo := new(MockPaymentRepo)
		h := NewPaymentHandler(gw, repo)

		gw.On("CreateOrder", mock.Anything, int64(1500), "INR").
			Return(payment.Result{
				Order: payment.GatewayOrder{
					GatewayOrderID:   "order_abc",
					AmountMinorUnits: 150000,
					Currency:         "INR",
					Receipt:          "RCPT-1",
				},
			}, nil)
		repo.On("SavePayment", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
			return p.GatewayOrderID == "order_abc" && p.Status == payment.StatusCreated
		})).Return(nil)

		rr := postJSON(t, h.CreateOrder, "/api/payments/create-order",
			map[string]interface{}{"amount": 1500, "currency": "INR"})

		assert.Equal(t, http.StatusCreated, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.True(t, env.Success)

		data := env.Data.(map[string]interface{})
		assert.Equal(t, "order_abc", data["orderId"])
		assert.Equal(t, float64(150000), data["amount"])
		assert.Nil(t, data["isMock"])
	})

	t.Run("Mock fallback is still a success", func(t *testing.T) {
		gw := new(MockGateway)
		repo := new(MockPaymentRepo)
		h := NewPaymentHandler(gw, repo)

		gw.On("CreateOrder", mock.Anything, int64(500), "INR").
			Return(payment.Result{
				Order: payment.GatewayOrder{
					GatewayOrderID:   "order_mock_123",
					AmountMinorUnits: 50000,
					Currency:         "INR",
					Receipt:          "RCPT-2",
				},
				IsMock:     true,
				MockReason: "connection refused",
			}, nil)
		repo.On("SavePayment", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
			return p.IsMock
		})).Return(nil)

		rr := postJSON(t, h.CreateOrder, "/api/payments/create-order",
			map[string]interface{}{"amount": 500, "currency": "INR"})

		assert.Equal(t, http.StatusCreated, rr.Code)
		env := decodeEnvelope(t, rr)
		assert.True(t, env.Success)
		assert.Equal(t, true, env.Data.(map[string]interface{})["isMock"])
	})

	t.Run("Non-positive amount", func(t *testing.T) {
		gw := new(MockGateway)
		h := NewPaymentHandler(gw, new(MockPaymentRepo))

		gw.On("CreateOrder", mock.Anything, int64(0), "").
			Return(payment.Result{}, payment.ErrInvalidAmount)

		rr := postJSON(t, h.CreateOrder, "/api/payments/create-order",
			map[string]interface{}{"amount": 0})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, decodeEnvelope(t, rr).Success)
	})
}

func TestPaymentVerify(t *testing.T) {
	validBody := map[string]string{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_abc",
		"razorpay_signature":  "sig",
	}

	t.Run("Valid signature", func(t *testing.T) {
		gw := new(MockGateway)
		repo := new(MockPaymentRepo)
		h := NewPaymentHandler(gw, repo)

		gw.On("VerifySignature", "order_abc", "pay_abc", "sig").Return(true)
		repo.On("MarkVerified", mock.Anything, "order_abc", "pay_abc").Return(nil)

		rr := postJSON(t, h.Verify, "/api/payments/verify", validBody)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, decodeEnvelope(t, rr).Success)
		repo.AssertExpectations(t)
	})

	t.Run("Signature mismatch", func(t *testing.T) {
		gw := new(MockGateway)
		repo := new(MockPaymentRepo)
		h := NewPaymentHandler(gw, repo)

		gw.On("VerifySignature", "order_abc", "pay_abc", "sig").Return(false)
		repo.On("MarkFailed", mock.Anything, "order_abc").Return(nil)

		rr := postJSON(t, h.Verify, "/api/payments/verify", validBody)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, decodeEnvelope(t, rr).Success)
		repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing field", func(t *testing.T) {
		gw := new(MockGateway)
		h := NewPaymentHandler(gw, new(MockPaymentRepo))

		rr := postJSON(t, h.Verify, "/api/payments/verify", map[string]string{
			"razorpay_order_id":  "order_abc",
			"razorpay_signature": "sig",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, decodeEnvelope(t, rr).Success)
		gw.AssertNotCalled(t, "VerifySignature", mock.Anything, mock.Anything, mock.Anything)
	})
}
