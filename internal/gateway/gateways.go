package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"zenpay/internal/pkg/httpclient"
)

// CryptoBotGateway implements the Gateway interface for Crypto Bot
// (@CryptoBot) invoices.
type CryptoBotGateway struct {
	asset  string
	client *httpclient.Client
}

func NewCryptoBotGateway(apiToken, asset string) *CryptoBotGateway {
	if asset == "" {
		asset = "USDT"
	}
	return &CryptoBotGateway{
		asset: asset,
		client: httpclient.New().
			WithTimeout(30*time.Second).
			WithHeader("Crypto-Pay-API-Token", apiToken),
	}
}

func (c *CryptoBotGateway) Name() string {
	return "cryptobot"
}

func (c *CryptoBotGateway) CreatePayment(ctx context.Context, amountKopeks int64, orderID, description, callbackURL string) (*CreateResult, error) {
	// Crypto Pay takes the amount as a decimal string in major units.
	amount := decimal.NewFromInt(amountKopeks).Div(decimal.NewFromInt(100))
	body := map[string]interface{}{
		"asset":       c.asset,
		"amount":      amount.StringFixed(2),
		"description": description,
		"payload":     orderID,
	}

	var result struct {
		OK     bool `json:"ok"`
		Result struct {
			InvoiceID int64  `json:"invoice_id"`
			PayURL    string `json:"pay_url"`
		} `json:"result"`
	}
	resp, err := c.client.Request().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("https://pay.crypt.bot/api/createInvoice")
	if err != nil {
		return nil, fmt.Errorf("cryptobot create invoice failed: %w", err)
	}
	if !result.OK || result.Result.PayURL == "" {
		return nil, fmt.Errorf("cryptobot rejected invoice: %s", resp.String())
	}

	return &CreateResult{
		OrderID:    orderID,
		PaymentURL: result.Result.PayURL,
		ProviderID: fmt.Sprintf("%d", result.Result.InvoiceID),
	}, nil
}

// YooKassaGateway implements the Gateway interface for YooKassa
// redirect payments.
type YooKassaGateway struct {
	shopID string
	client *httpclient.Client
}

func NewYooKassaGateway(shopID, secretKey string) *YooKassaGateway {
	c := httpclient.New().WithTimeout(30 * time.Second)
	c.Raw().SetBasicAuth(shopID, secretKey)
	return &YooKassaGateway{shopID: shopID, client: c}
}

func (y *YooKassaGateway) Name() string {
	return "yookassa"
}

func (y *YooKassaGateway) CreatePayment(ctx context.Context, amountKopeks int64, orderID, description, callbackURL string) (*CreateResult, error) {
	amount := decimal.NewFromInt(amountKopeks).Div(decimal.NewFromInt(100))
	body := map[string]interface{}{
		"amount": map[string]string{
			"value":    amount.StringFixed(2),
			"currency": "RUB",
		},
		"capture":     true,
		"description": description,
		"confirmation": map[string]string{
			"type":       "redirect",
			"return_url": callbackURL,
		},
		"metadata": map[string]string{
			"order_id": orderID,
		},
	}

	var result struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		Confirmation struct {
			ConfirmationURL string `json:"confirmation_url"`
		} `json:"confirmation"`
	}
	resp, err := y.client.Request().
		SetContext(ctx).
		SetHeader("Idempotence-Key", uuid.NewString()).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		Post("https://api.yookassa.ru/v3/payments")
	if err != nil {
		return nil, fmt.Errorf("yookassa create payment failed: %w", err)
	}
	if result.Confirmation.ConfirmationURL == "" {
		return nil, fmt.Errorf("yookassa no confirmation url: %s", resp.String())
	}

	return &CreateResult{
		OrderID:    orderID,
		PaymentURL: result.Confirmation.ConfirmationURL,
		ProviderID: result.ID,
	}, nil
}
