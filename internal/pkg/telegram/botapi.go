// Package telegram is a thin direct Bot API client for the calls the
// payment flow needs beyond telebot: invoice links and pre-checkout
// answers.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// BotAPI provides a direct Telegram Bot API client.
type BotAPI struct {
	token  string
	client *resty.Client
}

// NewBotAPI creates a new direct Telegram Bot API client.
func NewBotAPI(token string) *BotAPI {
	return &BotAPI{
		token:  token,
		client: resty.New().SetBaseURL("https://api.telegram.org/bot" + token),
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// Call makes a raw API call and returns the result payload.
func (b *BotAPI) Call(ctx context.Context, method string, params map[string]interface{}) (json.RawMessage, error) {
	var out apiResponse
	_, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(params).
		SetResult(&out).
		Post("/" + method)
	if err != nil {
		return nil, fmt.Errorf("telegram API call %s failed: %w", method, err)
	}
	if !out.OK {
		return nil, fmt.Errorf("telegram API call %s rejected: %s", method, out.Description)
	}
	return out.Result, nil
}

// SendMessage sends an HTML-formatted text message.
func (b *BotAPI) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := b.Call(ctx, "sendMessage", map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	return err
}

// InvoiceLink describes a Telegram Stars invoice. Amount is the price
// in XTR.
type InvoiceLink struct {
	Title       string
	Description string
	Payload     string
	Amount      int64
}

// CreateInvoiceLink creates a Stars invoice link for the host's invoice
// overlay.
func (b *BotAPI) CreateInvoiceLink(ctx context.Context, inv InvoiceLink) (string, error) {
	result, err := b.Call(ctx, "createInvoiceLink", map[string]interface{}{
		"title":       inv.Title,
		"description": inv.Description,
		"payload":     inv.Payload,
		"currency":    "XTR",
		"prices": []map[string]interface{}{
			{"label": inv.Title, "amount": inv.Amount},
		},
	})
	if err != nil {
		return "", err
	}
	var url string
	if err := json.Unmarshal(result, &url); err != nil {
		return "", fmt.Errorf("telegram invoice link: unexpected result: %w", err)
	}
	return url, nil
}

// AnswerPreCheckoutQuery confirms or rejects a pre-checkout query.
// errorMessage is shown to the user when ok is false.
func (b *BotAPI) AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage string) error {
	params := map[string]interface{}{
		"pre_checkout_query_id": queryID,
		"ok":                    ok,
	}
	if !ok && errorMessage != "" {
		params["error_message"] = errorMessage
	}
	_, err := b.Call(ctx, "answerPreCheckoutQuery", params)
	return err
}
