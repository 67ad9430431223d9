package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrPaymentDeclined is returned by a gateway when the charge itself was
// rejected, as opposed to a transport failure.
var ErrPaymentDeclined = errors.New("payment declined")

// PaymentCharge is the request a checkout sends to the gateway.
type PaymentCharge struct {
	UserID          uint            `json:"userId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	PaymentMethodID string          `json:"paymentMethodId"`
}

// PaymentGateway authorizes and captures a charge before the order
// transaction opens. Implementations must not retry on their own.
type PaymentGateway interface {
	Charge(ctx context.Context, in PaymentCharge) (transactionID string, err error)
}

// OrderNotification is the confirmation payload sent after an order commits.
type OrderNotification struct {
	OrderID        uint            `json:"orderId"`
	UserID         uint            `json:"userId"`
	Email          string          `json:"email"`
	RestaurantName string          `json:"restaurantName"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	OrderType      string          `json:"orderType"`
	EstimatedAt    *time.Time      `json:"estimatedAt,omitempty"`
}

// NotificationSender delivers order confirmations. Failures are logged by the
// caller and never affect the order.
type NotificationSender interface {
	SendOrderConfirmation(ctx context.Context, n OrderNotification) error
}

// ---------------- HTTP implementations ----------------

type HTTPPaymentGateway struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPPaymentGateway(baseURL string) *HTTPPaymentGateway {
	return &HTTPPaymentGateway{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (g *HTTPPaymentGateway) Charge(ctx context.Context, in PaymentCharge) (string, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusPaymentRequired || res.StatusCode == http.StatusUnprocessableEntity {
		return "", ErrPaymentDeclined
	}
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payment gateway: unexpected status %d", res.StatusCode)
	}

	var out struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.TransactionID == "" {
		return "", errors.New("payment gateway: empty transaction id")
	}
	return out.TransactionID, nil
}

type HTTPNotificationSender struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPNotificationSender(baseURL string) *HTTPNotificationSender {
	return &HTTPNotificationSender{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *HTTPNotificationSender) SendOrderConfirmation(ctx context.Context, n OrderNotification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/v1/notifications/order-confirmed", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("notifier: unexpected status %d", res.StatusCode)
	}
	return nil
}

// ---------------- Local implementations ----------------

// SandboxPaymentGateway approves everything except method IDs carrying the
// pm_fail prefix, so declines stay reproducible in dev and tests.
type SandboxPaymentGateway struct{}

func (SandboxPaymentGateway) Charge(_ context.Context, in PaymentCharge) (string, error) {
	if strings.HasPrefix(in.PaymentMethodID, "pm_fail") {
		return "", ErrPaymentDeclined
	}
	return "txn_" + uuid.NewString(), nil
}

// LogNotificationSender writes confirmations to the process log.
type LogNotificationSender struct{}

func (LogNotificationSender) SendOrderConfirmation(_ context.Context, n OrderNotification) error {
	log.Printf("notify: order %d confirmed for user %d (%s, total %s)",
		n.OrderID, n.UserID, n.RestaurantName, n.GrandTotal.StringFixed(2))
	return nil
}
