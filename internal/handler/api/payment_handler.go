package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"zenpay/internal/gateway"
	"zenpay/internal/models"
	"zenpay/internal/payment"
	"zenpay/internal/pkg/utils"
)

// MethodStore is the method configuration the handler reads.
type MethodStore interface {
	FindEnabled() ([]models.MethodConfig, error)
	FindByID(id string) (*models.MethodConfig, error)
}

// IntentStore records top-up intents.
type IntentStore interface {
	Create(intent *models.TopUpIntent) error
}

// PaymentHandler serves the top-up surface: the method list and intent
// creation.
type PaymentHandler struct {
	methods     MethodStore
	intents     IntentStore
	gateways    *gateway.Registry
	callbackURL string
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewPaymentHandler(methods MethodStore, intents IntentStore, gateways *gateway.Registry, callbackURL string, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		methods:     methods,
		intents:     intents,
		gateways:    gateways,
		callbackURL: callbackURL,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Methods returns the enabled payment methods.
// GET /api/payment/methods
func (h *PaymentHandler) Methods(c echo.Context) error {
	configs, err := h.methods.FindEnabled()
	if err != nil {
		h.logger.Error("failed to list payment methods", zap.Error(err))
		return errorResponse(c, "failed to retrieve payment methods")
	}

	items := make([]payment.PaymentMethod, 0, len(configs))
	for _, m := range configs {
		items = append(items, methodDTO(&m))
	}
	return successResponse(c, "successful", map[string]interface{}{
		"methods": items,
	})
}

// CreateTopUp creates a payment intent with the method's gateway and
// returns the link the client should open.
// POST /api/payment/topup
func (h *PaymentHandler) CreateTopUp(c echo.Context) error {
	var req models.CreateTopUpRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return errorResponse(c, "invalid request body")
	}
	return h.createIntent(c, req)
}

// StarsInvoice creates a Telegram Stars invoice link for the host's
// invoice overlay.
// POST /api/payment/stars-invoice
func (h *PaymentHandler) StarsInvoice(c echo.Context) error {
	var req models.StarsInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return errorResponse(c, "invalid request body")
	}
	return h.createIntent(c, models.CreateTopUpRequest{
		AmountKopeks: req.AmountKopeks,
		Method:       "telegram_stars",
	})
}

func (h *PaymentHandler) createIntent(c echo.Context, req models.CreateTopUpRequest) error {
	method, err := h.methods.FindByID(req.Method)
	if err != nil || !method.Enabled {
		return errorResponse(c, "payment method is unavailable")
	}
	if req.AmountKopeks < method.MinAmountKopeks || req.AmountKopeks > method.MaxAmountKopeks {
		return errorResponse(c, fmt.Sprintf("amount must be within %d–%d",
			method.MinAmountKopeks, method.MaxAmountKopeks))
	}
	if len(method.SubOptions) > 0 && !hasOption(method.SubOptions, req.Option) {
		return errorResponse(c, "select a payment option")
	}

	gw := h.gateways.Get(method.Gateway)
	if gw == nil {
		return errorResponse(c, "this payment method is not yet implemented")
	}

	userID, _ := c.Get("user_id").(int64)
	orderID := utils.GenerateOrderID()
	description := fmt.Sprintf("Balance top-up via %s", method.Name)

	result, err := gw.CreatePayment(c.Request().Context(), req.AmountKopeks, orderID, description, h.callbackURL)
	if err != nil {
		h.logger.Error("gateway rejected payment",
			zap.String("gateway", gw.Name()),
			zap.String("order", orderID),
			zap.Error(err))
		return errorResponse(c, "could not create the payment, please try again")
	}

	intent := &models.TopUpIntent{
		ID:           orderID,
		UserID:       userID,
		MethodID:     method.ID,
		OptionID:     req.Option,
		AmountKopeks: req.AmountKopeks,
		Status:       models.IntentPending,
		ProviderID:   result.ProviderID,
		PaymentURL:   result.PaymentURL,
		InvoiceURL:   result.InvoiceURL,
	}
	if err := h.intents.Create(intent); err != nil {
		h.logger.Error("failed to record intent", zap.String("order", orderID), zap.Error(err))
		return errorResponse(c, "could not create the payment, please try again")
	}

	return successResponse(c, "successful", map[string]interface{}{
		"payment_id":  intent.ID,
		"payment_url": intent.PaymentURL,
		"invoice_url": intent.InvoiceURL,
	})
}

func methodDTO(m *models.MethodConfig) payment.PaymentMethod {
	options := make([]payment.PaymentOption, 0, len(m.SubOptions))
	for _, o := range m.SubOptions {
		options = append(options, payment.PaymentOption{ID: o.ID, Name: o.Name})
	}
	return payment.PaymentMethod{
		ID:              m.ID,
		Name:            m.Name,
		MinAmountKopeks: m.MinAmountKopeks,
		MaxAmountKopeks: m.MaxAmountKopeks,
		Options:         options,
		Available:       m.Enabled,
		SupportsInvoice: m.SupportsInvoice,
	}
}

func hasOption(options models.SubOptions, id string) bool {
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}
