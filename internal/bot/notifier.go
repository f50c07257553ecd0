// Package bot handles the Telegram side of payments: Stars checkout
// updates and admin notifications.
package bot

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"zenpay/internal/models"
	"zenpay/internal/pkg/utils"
	"zenpay/internal/repository"
)

// Bot wraps the telebot instance. It settles Telegram Stars payments
// (pre-checkout and successful_payment updates) and notifies the admin
// about settled top-ups.
type Bot struct {
	tb      *tele.Bot
	intents *repository.IntentRepository
	adminID int64
	logger  *zap.Logger
}

// New creates a long-polling bot.
func New(token string, adminID int64, intents *repository.IntentRepository, logger *zap.Logger) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("telebot error", zap.Error(err))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("bot init failed: %w", err)
	}

	b := &Bot{tb: tb, intents: intents, adminID: adminID, logger: logger}
	b.registerHandlers()
	return b, nil
}

func (b *Bot) registerHandlers() {
	// Stars invoices route the checkout through the bot itself.
	b.tb.Handle(tele.OnCheckout, func(c tele.Context) error {
		q := c.PreCheckoutQuery()
		intent, err := b.intents.FindByID(q.Payload)
		if err != nil || intent.Status != models.IntentPending {
			return c.Accept("this payment is no longer valid")
		}
		return c.Accept()
	})

	b.tb.Handle(tele.OnPayment, func(c tele.Context) error {
		payload := c.Message().Payment.Payload
		changed, err := b.intents.MarkPaid(payload)
		if err != nil {
			b.logger.Error("failed to settle stars payment", zap.String("order", payload), zap.Error(err))
			return nil
		}
		if !changed {
			return nil
		}
		if intent, err := b.intents.FindByID(payload); err == nil {
			b.PaymentSucceeded(intent)
		}
		return nil
	})
}

// Start begins polling. Blocks until Stop.
func (b *Bot) Start() {
	b.logger.Info("bot polling started")
	b.tb.Start()
}

// Stop shuts the poller down.
func (b *Bot) Stop() {
	b.tb.Stop()
}

// PaymentSucceeded notifies the admin about a settled top-up.
func (b *Bot) PaymentSucceeded(intent *models.TopUpIntent) {
	if b.adminID == 0 {
		return
	}
	text := fmt.Sprintf(
		"💰 Top-up settled\nOrder: %s\nUser: %d\nMethod: %s\nAmount: %s kopeks",
		intent.ID, intent.UserID, intent.MethodID, utils.FormatNumber(intent.AmountKopeks),
	)
	if _, err := b.tb.Send(&tele.User{ID: b.adminID}, text); err != nil {
		b.logger.Warn("admin notification failed", zap.Error(err))
	}
}
