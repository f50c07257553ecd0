package payment

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"zenpay/internal/currency"
	"zenpay/internal/host"
	"zenpay/internal/metrics"
	"zenpay/internal/popup"
	"zenpay/internal/ratelimit"
)

// Links issued by the platform itself are handed to the host link
// primitive instead of window navigation.
var platformLinkRE = regexp.MustCompile(`(?i)^https?://t\.me/`)

// IntentResponse is the payment-intent API reply. Exactly one of
// PaymentURL and InvoiceURL is populated on success.
type IntentResponse struct {
	PaymentID  string
	PaymentURL string
	InvoiceURL string
}

// ProviderDetailError carries the human-readable detail string a
// provider or the intent service returned with a rejection.
type ProviderDetailError struct {
	Detail string
}

func (e *ProviderDetailError) Error() string {
	return e.Detail
}

// IntentClient creates payment intents on the backing service.
type IntentClient interface {
	CreateTopUp(ctx context.Context, amountKopeks int64, methodID, optionID string) (*IntentResponse, error)
}

// Events receives dispatcher notifications. All fields are optional.
// Terminal success and cancel signals let the enclosing surface close
// its modal and invalidate cached balance data.
type Events struct {
	OnTransition func(a *Attempt, to AttemptState)
	OnSucceeded  func(a *Attempt)
	OnCancelled  func(a *Attempt)
	OnError      func(a *Attempt, err *Error)
}

// Config tunes a dispatcher.
type Config struct {
	// MaxAttempts and Window bound submissions per LimiterKey.
	MaxAttempts int
	Window      time.Duration
	LimiterKey  string
	// Currency is the display currency of submitted amounts; empty
	// means the canonical currency.
	Currency string
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.Window <= 0 {
		c.Window = 30 * time.Second
	}
	if c.LimiterKey == "" {
		c.LimiterKey = "payment"
	}
	return c
}

// Deps bundles the collaborators of a dispatcher.
type Deps struct {
	Caps      host.Capabilities
	Bridge    host.Bridge
	Popups    *popup.Manager
	Limiter   *ratelimit.Window
	Converter *currency.Converter
	Client    IntentClient
	Metrics   metrics.Recorder
	Logger    *zap.Logger
}

// Dispatcher owns the single in-flight payment attempt of a top-up
// surface and routes issued payment URLs to the right channel: the
// host-native invoice overlay, the host link primitive, a reserved
// popup window, a fresh tab or top-level navigation.
type Dispatcher struct {
	caps    host.Capabilities
	bridge  host.Bridge
	popups  *popup.Manager
	limiter *ratelimit.Window
	conv    *currency.Converter
	client  IntentClient
	rec     metrics.Recorder
	logger  *zap.Logger
	events  Events
	cfg     Config

	mu      sync.Mutex
	current *Attempt
}

// NewDispatcher wires a dispatcher for one payment surface.
func NewDispatcher(deps Deps, cfg Config, events Events) *Dispatcher {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewNoop()
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewWindow()
	}
	if deps.Popups == nil {
		deps.Popups = popup.NewManager(nil, deps.Logger)
	}
	return &Dispatcher{
		caps:    deps.Caps,
		bridge:  deps.Bridge,
		popups:  deps.Popups,
		limiter: deps.Limiter,
		conv:    deps.Converter,
		client:  deps.Client,
		rec:     deps.Metrics,
		logger:  deps.Logger,
		events:  events,
		cfg:     cfg.withDefaults(),
	}
}

// SubmitRequest carries the user's choices from the top-up surface. The
// amount is the raw input string in the display currency.
type SubmitRequest struct {
	Method   *PaymentMethod
	OptionID string
	Amount   string
	Currency string
}

// Submit runs one payment attempt through the state machine. It must be
// called from the user-gesture event so the popup reservation can open
// synchronously. The returned attempt is terminal or waiting on a host
// callback; the returned error, when non-nil, is always a *Error.
func (d *Dispatcher) Submit(ctx context.Context, req SubmitRequest) (*Attempt, error) {
	d.mu.Lock()
	if d.current != nil && !d.current.State().Terminal() {
		d.mu.Unlock()
		return nil, newError(KindRateLimited, "a payment attempt is already in progress", nil)
	}
	a := &Attempt{
		ID:       uuid.NewString(),
		Method:   req.Method,
		OptionID: req.OptionID,
	}
	d.current = a
	d.mu.Unlock()

	d.to(a, StateValidating)

	// Validation precedes the limiter so rejected input consumes no
	// attempt slot.
	if e := d.validate(a, req); e != nil {
		return d.fail(a, StateInvalid, e)
	}

	if !d.limiter.Check(d.cfg.LimiterKey, d.cfg.MaxAttempts, d.cfg.Window) {
		wait := d.limiter.ResetTimeSeconds(d.cfg.LimiterKey)
		return d.fail(a, StateRateLimited,
			newError(KindRateLimited, fmt.Sprintf("too many attempts, retry in %d seconds", wait), nil))
	}

	// Reserve the redirect window before any network round-trip; after
	// the response arrives the gesture context is gone and a blocked
	// open can no longer be recovered.
	if !d.caps.Embedded {
		r := d.popups.Reserve()
		a.setReservation(r)
		if !r.Held() {
			d.logger.Warn("popup reservation blocked, will fall back to direct navigation",
				zap.String("attempt", a.ID))
			d.rec.IncCounter("reservation_blocked", map[string]string{"method": a.Method.ID})
		}
	}
	d.to(a, StateReserved)

	d.to(a, StateSubmitting)
	start := time.Now()
	resp, err := d.client.CreateTopUp(ctx, a.AmountKopeks, a.Method.ID, a.OptionID)
	d.rec.ObserveLatency("create_intent", time.Since(start), map[string]string{"method": a.Method.ID})
	if err != nil {
		d.popups.Discard(a.takeReservation())
		return d.fail(a, StateFailed, providerError(err))
	}

	return d.route(a, resp)
}

// Cancel settles the in-flight attempt as user-cancelled: closing the
// reserved popup, dismissing the invoice overlay or navigating away all
// route here. Cancellation is terminal, silent and releases the window
// handle.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	a := d.current
	d.mu.Unlock()
	if a == nil {
		return
	}
	d.popups.Discard(a.takeReservation())
	if !a.transition(StateCancelled) {
		return
	}
	d.emitTransition(a, StateCancelled)
	d.clearCurrent(a)
	d.rec.IncCounter("attempt_cancelled", map[string]string{"method": methodID(a)})
	if d.events.OnCancelled != nil {
		d.events.OnCancelled(a)
	}
}

// State reports the surface state: the in-flight attempt's state, or
// Idle when none is active.
func (d *Dispatcher) State() AttemptState {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return StateIdle
	}
	return d.current.State()
}

// Current returns the in-flight attempt, nil when idle.
func (d *Dispatcher) Current() *Attempt {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Dispatcher) validate(a *Attempt, req SubmitRequest) *Error {
	m := req.Method
	if m == nil || !m.Available {
		return newError(KindValidation, "payment method is unavailable", nil)
	}
	if m.HasOptions() && (req.OptionID == "" || m.Option(req.OptionID) == nil) {
		return newError(KindValidation, "select a payment option", nil)
	}

	amount, err := currency.ParseAmount(req.Amount)
	if err != nil {
		return newError(KindValidation, "enter a valid amount", err)
	}
	cur := req.Currency
	if cur == "" {
		cur = d.cfg.Currency
	}
	if cur == "" {
		cur = d.conv.Canonical()
	}
	minor, err := d.conv.ToCanonicalMinor(amount, cur)
	if err != nil {
		return newError(KindValidation, "unsupported currency", err)
	}
	if minor < m.MinAmountKopeks || minor > m.MaxAmountKopeks {
		return newError(KindValidation,
			fmt.Sprintf("amount must be within %d–%d", m.MinAmountKopeks, m.MaxAmountKopeks), nil)
	}
	a.AmountKopeks = minor
	return nil
}

// route inspects the intent response for its channel and hands the
// attempt off accordingly.
func (d *Dispatcher) route(a *Attempt, resp *IntentResponse) (*Attempt, error) {
	if resp == nil || (resp.PaymentURL == "" && resp.InvoiceURL == "") {
		d.popups.Discard(a.takeReservation())
		return d.fail(a, StateFailed,
			newError(KindProviderRejected, "payment service returned no payment link", nil))
	}

	if a.Method.SupportsInvoice && resp.InvoiceURL != "" {
		if !d.caps.HasInvoiceOverlay || d.bridge == nil || d.bridge.Invoices() == nil {
			d.popups.Discard(a.takeReservation())
			return d.fail(a, StateFailed,
				newError(KindValidation, "this payment method is only available inside the host app", nil))
		}
		// The overlay never uses the reserved window.
		d.popups.Discard(a.takeReservation())
		d.to(a, StateInvoiceOpen)
		d.bridge.Invoices().OpenInvoice(resp.InvoiceURL, func(status host.InvoiceStatus) {
			d.settleInvoice(a, status)
		})
		return a, nil
	}

	url := resp.PaymentURL
	if url == "" {
		url = resp.InvoiceURL
	}
	d.openPaymentLink(a, url)
	d.to(a, StateRedirected)

	// Control is back with the app; settlement happens out of band, so
	// the attempt completes optimistically and the surface may close.
	if a.transition(StateSucceeded) {
		d.emitTransition(a, StateSucceeded)
	}
	d.clearCurrent(a)
	d.rec.IncCounter("attempt_redirected", map[string]string{"method": a.Method.ID})
	if d.events.OnSucceeded != nil {
		d.events.OnSucceeded(a)
	}
	return a, nil
}

// openPaymentLink mirrors the channel preference order of the top-up
// surface: platform links go through the host, an embedded host opens
// external URLs itself, and a standalone browser consumes the reserved
// window with its fallbacks.
func (d *Dispatcher) openPaymentLink(a *Attempt, url string) {
	var links host.LinkAPI
	if d.bridge != nil {
		links = d.bridge.Links()
	}

	switch {
	case links != nil && platformLinkRE.MatchString(url):
		links.OpenPlatformLink(url)
		d.popups.Discard(a.takeReservation())
	case links != nil && d.caps.Embedded:
		links.OpenLink(url)
		d.popups.Discard(a.takeReservation())
	default:
		d.popups.Redirect(a.takeReservation(), url)
	}
}

// settleInvoice resolves the overlay callback. Any status other than
// paid or failed, including a dismissal without status, is treated as
// silent cancellation. Terminal transitions are idempotent even if the
// host fires the callback twice.
func (d *Dispatcher) settleInvoice(a *Attempt, status host.InvoiceStatus) {
	switch status {
	case host.InvoicePaid:
		if !a.transition(StateSucceeded) {
			return
		}
		d.emitTransition(a, StateSucceeded)
		d.clearCurrent(a)
		d.rec.IncCounter("attempt_succeeded", map[string]string{"method": a.Method.ID})
		if d.events.OnSucceeded != nil {
			d.events.OnSucceeded(a)
		}
	case host.InvoiceFailed:
		e := newError(KindProviderRejected, "payment was not completed", nil)
		a.setErr(e)
		if !a.transition(StateFailed) {
			return
		}
		d.emitTransition(a, StateFailed)
		d.clearCurrent(a)
		d.rec.IncCounter("attempt_failed", map[string]string{"method": a.Method.ID})
		if d.events.OnError != nil {
			d.events.OnError(a, e)
		}
	default:
		if !a.transition(StateCancelled) {
			return
		}
		d.emitTransition(a, StateCancelled)
		d.clearCurrent(a)
		d.rec.IncCounter("attempt_cancelled", map[string]string{"method": a.Method.ID})
		if d.events.OnCancelled != nil {
			d.events.OnCancelled(a)
		}
	}
}

func (d *Dispatcher) to(a *Attempt, s AttemptState) {
	if !a.transition(s) {
		return
	}
	d.emitTransition(a, s)
}

func (d *Dispatcher) emitTransition(a *Attempt, s AttemptState) {
	if d.events.OnTransition != nil {
		d.events.OnTransition(a, s)
	}
}

// fail settles the attempt in a terminal failure state and frees the
// slot so a retry needs no reload.
func (d *Dispatcher) fail(a *Attempt, s AttemptState, e *Error) (*Attempt, error) {
	a.setErr(e)
	d.to(a, s)
	d.clearCurrent(a)
	d.rec.IncCounter("attempt_"+s.String(), map[string]string{"method": methodID(a)})
	d.logger.Info("payment attempt rejected",
		zap.String("attempt", a.ID),
		zap.String("state", s.String()),
		zap.String("kind", e.Kind.String()),
		zap.Error(e.Unwrap()))
	if d.events.OnError != nil {
		d.events.OnError(a, e)
	}
	return a, e
}

func (d *Dispatcher) clearCurrent(a *Attempt) {
	d.mu.Lock()
	if d.current == a {
		d.current = nil
	}
	d.mu.Unlock()
}

// providerError normalizes a transport or service failure; the raw error
// is kept only as the wrapped cause.
func providerError(err error) *Error {
	var detail *ProviderDetailError
	if errors.As(err, &detail) && detail.Detail != "" {
		return newError(KindProviderRejected, detail.Detail, err)
	}
	return newError(KindProviderRejected, "could not create the payment, please try again", err)
}

func methodID(a *Attempt) string {
	if a.Method == nil {
		return ""
	}
	return a.Method.ID
}
