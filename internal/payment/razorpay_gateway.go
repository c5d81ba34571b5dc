package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"nevyra-be/internal/logger"
	"nevyra-be/internal/utils"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

const defaultCurrency = "INR"

type razorpayGateway struct {
	keyID     string
	keySecret string

	// orderCreate wraps the SDK call so tests can stub the upstream.
	orderCreate func(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// NewRazorpayGateway builds the gateway adapter. With empty
// credentials every created order is a mock.
func NewRazorpayGateway(keyID, keySecret string) Gateway {
	if keySecret == "" {
		logger.L().Warn("Razorpay key secret is empty; orders will be mocked")
	}

	g := &razorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
	}

	if keyID != "" && keySecret != "" {
		client := razorpay.NewClient(keyID, keySecret)
		g.orderCreate = client.Order.Create
	}

	return g
}

func (g *razorpayGateway) CreateOrder(
	ctx context.Context,
	amountMajorUnits int64,
	currency string,
) (Result, error) {

	if amountMajorUnits <= 0 {
		return Result{}, ErrInvalidAmount
	}

	if currency == "" {
		currency = defaultCurrency
	}

	amountMinor := amountMajorUnits * 100
	receipt := utils.GenerateReceiptNumber()

	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "Razorpay"),
		zap.Int64("amount_minor", amountMinor),
		zap.String("currency", currency),
		zap.String("receipt", receipt),
	)

	if g.orderCreate == nil {
		log.Warn("gateway not configured, returning mock order")
		return g.mockResult(amountMinor, currency, receipt, ErrMissingCredentials.Error()), nil
	}

	body, err := g.orderCreate(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		log.Error("gateway order creation failed, returning mock order", zap.Error(err))
		return g.mockResult(amountMinor, currency, receipt, err.Error()), nil
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		log.Error("gateway returned no order id, returning mock order")
		return g.mockResult(amountMinor, currency, receipt, "malformed gateway response"), nil
	}

	log.Info("gateway order created", zap.String("gateway_order_id", orderID))

	return Result{
		Order: GatewayOrder{
			GatewayOrderID:   orderID,
			AmountMinorUnits: amountMinor,
			Currency:         currency,
			Receipt:          receipt,
		},
	}, nil
}

func (g *razorpayGateway) mockResult(amountMinor int64, currency, receipt, reason string) Result {
	return Result{
		Order: GatewayOrder{
			GatewayOrderID:   fmt.Sprintf("order_mock_%d", time.Now().UnixMilli()),
			AmountMinorUnits: amountMinor,
			Currency:         currency,
			Receipt:          receipt,
		},
		IsMock:     true,
		MockReason: reason,
	}
}

// VerifySignature checks the callback signature: HMAC-SHA256 over
// "<orderID>|<paymentID>" keyed with the shared secret. Fails closed
// on any missing field.
func (g *razorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	if g.keySecret == "" || gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
