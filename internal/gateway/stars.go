package gateway

import (
	"context"
	"fmt"

	"zenpay/internal/pkg/telegram"
)

// StarsGateway issues Telegram Stars invoice links. Stars payments are
// settled through the host's invoice overlay, not a redirect.
type StarsGateway struct {
	api *telegram.BotAPI
	// KopeksPerStar converts canonical minor units into the XTR price.
	kopeksPerStar int64
}

func NewStarsGateway(api *telegram.BotAPI, kopeksPerStar int64) *StarsGateway {
	if kopeksPerStar <= 0 {
		kopeksPerStar = 100
	}
	return &StarsGateway{api: api, kopeksPerStar: kopeksPerStar}
}

func (s *StarsGateway) Name() string {
	return "telegram_stars"
}

func (s *StarsGateway) CreatePayment(ctx context.Context, amountKopeks int64, orderID, description, callbackURL string) (*CreateResult, error) {
	stars := amountKopeks / s.kopeksPerStar
	if stars < 1 {
		stars = 1
	}

	url, err := s.api.CreateInvoiceLink(ctx, telegram.InvoiceLink{
		Title:       "Balance top-up",
		Description: description,
		Payload:     orderID,
		Amount:      stars,
	})
	if err != nil {
		return nil, fmt.Errorf("stars create invoice link failed: %w", err)
	}

	return &CreateResult{
		OrderID:    orderID,
		InvoiceURL: url,
	}, nil
}
