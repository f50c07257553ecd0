// Package popup reserves browser windows ahead of asynchronous payment
// redirects. A blank window opened synchronously inside the user gesture
// can be pointed at the real payment URL later without tripping popup
// blocker heuristics.
package popup

import (
	"go.uber.org/zap"

	"zenpay/internal/browser"
)

// Reservation is a window opened blank during a user gesture, waiting to
// be redirected once the server has issued a payment URL. It is owned by
// exactly one payment attempt until consumed or discarded, and settles
// exactly once.
type Reservation struct {
	win  browser.Window // nil when the open was blocked
	done bool
}

// Held reports whether the reservation actually holds an open window.
func (r *Reservation) Held() bool {
	return r != nil && !r.done && r.win != nil && !r.win.Closed()
}

// Manager opens and settles popup reservations.
type Manager struct {
	env    browser.Env
	logger *zap.Logger
}

// NewManager creates a reservation manager over the given environment.
func NewManager(env browser.Env, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{env: env, logger: logger}
}

// Reserve synchronously opens a blank window. It must run inside the
// originating gesture call stack. A blocked open still yields a usable
// reservation with no window: the later Redirect falls back to a fresh
// tab or top-level navigation.
func (m *Manager) Reserve() *Reservation {
	if m.env == nil {
		return &Reservation{}
	}
	win, err := m.env.OpenBlank()
	if err != nil || win == nil {
		m.logger.Warn("popup reservation blocked", zap.Error(err))
		return &Reservation{}
	}
	return &Reservation{win: win}
}

// Redirect settles the reservation onto url, focusing the reserved
// window. A nil, already-settled, blocked or meanwhile-closed reservation
// falls back to a fresh tab and finally to top-level navigation; the
// redirect itself never fails the attempt.
func (m *Manager) Redirect(r *Reservation, url string) {
	if r == nil || r.done {
		m.openFresh(url)
		return
	}
	r.done = true

	if r.win != nil && !r.win.Closed() {
		if err := r.win.Navigate(url); err == nil {
			r.win.Focus()
			return
		}
		m.logger.Warn("reserved window navigation failed, opening fresh")
	}
	m.openFresh(url)
}

// Discard closes a still-open reserved window, typically because the
// attempt failed before a URL existed. Idempotent.
func (m *Manager) Discard(r *Reservation) {
	if r == nil || r.done {
		return
	}
	r.done = true
	if r.win != nil && !r.win.Closed() {
		r.win.Close()
	}
}

func (m *Manager) openFresh(url string) {
	if m.env == nil {
		return
	}
	if _, err := m.env.OpenTab(url); err == nil {
		return
	}
	// Last resort: take over the current page.
	m.env.Navigate(url)
}
