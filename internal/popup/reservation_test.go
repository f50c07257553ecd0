package popup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenpay/internal/browser"
)

type fakeWindow struct {
	url     string
	focused bool
	closed  bool
	navErr  error
}

func (w *fakeWindow) Navigate(url string) error {
	if w.navErr != nil {
		return w.navErr
	}
	w.url = url
	return nil
}

func (w *fakeWindow) Focus()       { w.focused = true }
func (w *fakeWindow) Close()       { w.closed = true }
func (w *fakeWindow) Closed() bool { return w.closed }

type fakeEnv struct {
	blank     *fakeWindow
	blocked   bool
	tabErr    error
	tabs      []string
	navigated []string
}

func (e *fakeEnv) OpenBlank() (browser.Window, error) {
	if e.blocked {
		return nil, browser.ErrBlocked
	}
	e.blank = &fakeWindow{}
	return e.blank, nil
}

func (e *fakeEnv) OpenTab(url string) (browser.Window, error) {
	if e.tabErr != nil {
		return nil, e.tabErr
	}
	e.tabs = append(e.tabs, url)
	return &fakeWindow{url: url}, nil
}

func (e *fakeEnv) Navigate(url string)    { e.navigated = append(e.navigated, url) }
func (e *fakeEnv) Alert(string)           {}
func (e *fakeEnv) Confirm(string) bool    { return false }

func TestReserveAndRedirect(t *testing.T) {
	env := &fakeEnv{}
	m := NewManager(env, nil)

	r := m.Reserve()
	require.True(t, r.Held())

	m.Redirect(r, "https://pay.example/123")

	assert.Equal(t, "https://pay.example/123", env.blank.url)
	assert.True(t, env.blank.focused)
	assert.Empty(t, env.tabs, "held window must be consumed, not a fresh tab")
}

func TestReserveBlockedFallsBackToTab(t *testing.T) {
	env := &fakeEnv{blocked: true}
	m := NewManager(env, nil)

	r := m.Reserve()
	assert.False(t, r.Held())

	m.Redirect(r, "https://pay.example/123")
	assert.Equal(t, []string{"https://pay.example/123"}, env.tabs)
}

func TestRedirectClosedWindowFallsBack(t *testing.T) {
	env := &fakeEnv{}
	m := NewManager(env, nil)

	r := m.Reserve()
	env.blank.closed = true

	m.Redirect(r, "https://pay.example/123")
	assert.Equal(t, []string{"https://pay.example/123"}, env.tabs)
}

func TestRedirectNavigationFailureFallsBack(t *testing.T) {
	env := &fakeEnv{}
	m := NewManager(env, nil)

	r := m.Reserve()
	env.blank.navErr = errors.New("cross-origin")

	m.Redirect(r, "https://pay.example/123")
	assert.Equal(t, []string{"https://pay.example/123"}, env.tabs)
}

func TestRedirectLastResortNavigatesTopLevel(t *testing.T) {
	env := &fakeEnv{blocked: true, tabErr: browser.ErrBlocked}
	m := NewManager(env, nil)

	m.Redirect(m.Reserve(), "https://pay.example/123")
	assert.Equal(t, []string{"https://pay.example/123"}, env.navigated)
}

func TestDiscardClosesOnce(t *testing.T) {
	env := &fakeEnv{}
	m := NewManager(env, nil)

	r := m.Reserve()
	m.Discard(r)
	assert.True(t, env.blank.closed)
	assert.False(t, r.Held())

	// Idempotent, including on nil.
	m.Discard(r)
	m.Discard(nil)
}

func TestRedirectAfterDiscardOpensFresh(t *testing.T) {
	env := &fakeEnv{}
	m := NewManager(env, nil)

	r := m.Reserve()
	m.Discard(r)
	m.Redirect(r, "https://pay.example/123")

	assert.Equal(t, []string{"https://pay.example/123"}, env.tabs)
}

func TestNilEnvReservationNeverHeld(t *testing.T) {
	m := NewManager(nil, nil)
	r := m.Reserve()
	assert.False(t, r.Held())

	// Nothing to open or navigate; must not panic.
	m.Redirect(r, "https://pay.example/123")
}
