package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"zenpay/internal/pkg/httpclient"
)

// intentEnvelope is the service response wrapper shared by all zenpay
// API endpoints.
type intentEnvelope struct {
	Status bool            `json:"status"`
	Msg    string          `json:"msg"`
	Obj    json.RawMessage `json:"obj"`
}

type intentPayload struct {
	PaymentID  string `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
	InvoiceURL string `json:"invoice_url"`
}

// Client calls the intent service over HTTP. It implements IntentClient.
type Client struct {
	http    *httpclient.Client
	baseURL string
}

// NewClient builds an intent client for the service at baseURL. The
// initData string authenticates every request the way the mini-app
// surface does.
func NewClient(baseURL, initData string) *Client {
	c := httpclient.New().WithTimeout(15 * time.Second)
	if initData != "" {
		c.WithHeader("X-Init-Data", initData)
	}
	return &Client{http: c, baseURL: baseURL}
}

// CreateTopUp posts a top-up intent and returns the issued payment link.
// A service-level rejection surfaces as *ProviderDetailError carrying
// the service's message.
func (c *Client) CreateTopUp(ctx context.Context, amountKopeks int64, methodID, optionID string) (*IntentResponse, error) {
	body := map[string]interface{}{
		"amount_kopeks": amountKopeks,
		"method":        methodID,
	}
	if optionID != "" {
		body["option"] = optionID
	}

	resp, err := c.http.Request().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.baseURL + "/api/payment/topup")
	if err != nil {
		return nil, fmt.Errorf("create topup: %w", err)
	}

	var env intentEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("create topup: decode response: %w", err)
	}
	if !env.Status {
		return nil, &ProviderDetailError{Detail: env.Msg}
	}

	var payload intentPayload
	if err := json.Unmarshal(env.Obj, &payload); err != nil {
		return nil, fmt.Errorf("create topup: decode payload: %w", err)
	}
	return &IntentResponse{
		PaymentID:  payload.PaymentID,
		PaymentURL: payload.PaymentURL,
		InvoiceURL: payload.InvoiceURL,
	}, nil
}
