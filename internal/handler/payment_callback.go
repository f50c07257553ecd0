// Package handler holds the provider-facing HTTP handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"zenpay/internal/metrics"
	"zenpay/internal/models"
)

// IntentSettler settles pending intents from provider callbacks.
type IntentSettler interface {
	FindByID(id string) (*models.TopUpIntent, error)
	FindByProviderID(providerID string) (*models.TopUpIntent, error)
	MarkPaid(id string) (bool, error)
	MarkFailed(id string) (bool, error)
}

// Notifier reports settled payments.
type Notifier interface {
	PaymentSucceeded(intent *models.TopUpIntent)
}

// PaymentCallbackHandler handles gateway callbacks.
type PaymentCallbackHandler struct {
	intents  IntentSettler
	notifier Notifier
	rec      metrics.Recorder
	logger   *zap.Logger
}

func NewPaymentCallbackHandler(intents IntentSettler, notifier Notifier, rec metrics.Recorder, logger *zap.Logger) *PaymentCallbackHandler {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return &PaymentCallbackHandler{intents: intents, notifier: notifier, rec: rec, logger: logger}
}

// CryptoBotCallback handles the Crypto Pay webhook.
// POST /payment/callback/cryptobot
func (h *PaymentCallbackHandler) CryptoBotCallback(c echo.Context) error {
	var update struct {
		UpdateType string `json:"update_type"`
		Payload    struct {
			Status  string `json:"status"`
			Payload string `json:"payload"`
		} `json:"payload"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&update); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if update.UpdateType != "invoice_paid" || update.Payload.Status != "paid" {
		return c.NoContent(http.StatusOK)
	}
	h.settle(update.Payload.Payload, true)
	return c.NoContent(http.StatusOK)
}

// YooKassaCallback handles YooKassa payment notifications.
// POST /payment/callback/yookassa
func (h *PaymentCallbackHandler) YooKassaCallback(c echo.Context) error {
	var notification struct {
		Event  string `json:"event"`
		Object struct {
			ID       string `json:"id"`
			Status   string `json:"status"`
			Metadata struct {
				OrderID string `json:"order_id"`
			} `json:"metadata"`
		} `json:"object"`
	}
	if err := json.NewDecoder(c.Request().Body).Decode(&notification); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	orderID := notification.Object.Metadata.OrderID
	if orderID == "" {
		if intent, err := h.intents.FindByProviderID(notification.Object.ID); err == nil {
			orderID = intent.ID
		}
	}
	if orderID == "" {
		return c.NoContent(http.StatusOK)
	}

	switch notification.Event {
	case "payment.succeeded":
		h.settle(orderID, true)
	case "payment.canceled":
		h.settle(orderID, false)
	}
	return c.NoContent(http.StatusOK)
}

// settle marks the intent and notifies once. Duplicate callbacks hit an
// already-settled row and do nothing.
func (h *PaymentCallbackHandler) settle(orderID string, paid bool) {
	var changed bool
	var err error
	if paid {
		changed, err = h.intents.MarkPaid(orderID)
	} else {
		changed, err = h.intents.MarkFailed(orderID)
	}
	if err != nil {
		h.logger.Error("failed to settle intent", zap.String("order", orderID), zap.Error(err))
		return
	}
	if !changed {
		return
	}
	h.logger.Info("intent settled",
		zap.String("order", orderID),
		zap.Bool("paid", paid))

	intent, err := h.intents.FindByID(orderID)
	if err != nil {
		return
	}
	outcome := "intent_failed"
	if paid {
		outcome = "intent_paid"
	}
	h.rec.IncCounter(outcome, map[string]string{"method": intent.MethodID})

	if paid && h.notifier != nil {
		h.notifier.PaymentSucceeded(intent)
	}
}
