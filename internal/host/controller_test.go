package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenpay/internal/browser"
)

func TestBackButtonSingleHandler(t *testing.T) {
	b := fullBridge()
	c := NewBackButton(Probe(b), b)

	var first, second int
	c.Show(func() { first++ })
	c.Show(func() { second++ })

	require.Equal(t, 1, b.back.active())
	b.back.click()

	assert.Equal(t, 0, first, "stale handler must not fire")
	assert.Equal(t, 1, second)
	assert.True(t, b.back.visible)
}

func TestBackButtonHideDetaches(t *testing.T) {
	b := fullBridge()
	c := NewBackButton(Probe(b), b)

	var clicks int
	c.Show(func() { clicks++ })
	c.Hide()
	c.Hide()

	b.back.click()
	assert.Zero(t, clicks)
	assert.False(t, b.back.visible)
	assert.Zero(t, b.back.active())
}

func TestBackButtonNoCapability(t *testing.T) {
	c := NewBackButton(Capabilities{}, nil)

	// Must not panic.
	c.Show(func() {})
	c.Hide()
}

func TestMainButtonShowConfig(t *testing.T) {
	b := fullBridge()
	c := NewMainButton(Probe(b), b)

	var clicks int
	c.Show(MainButtonConfig{Text: "Pay", OnClick: func() { clicks++ }})

	assert.Equal(t, "Pay", b.main.text)
	assert.True(t, b.main.enabled)
	assert.False(t, b.main.progress)
	assert.True(t, b.main.visible)

	b.main.click()
	assert.Equal(t, 1, clicks)
}

func TestMainButtonLoadingDisabled(t *testing.T) {
	b := fullBridge()
	c := NewMainButton(Probe(b), b)

	c.Show(MainButtonConfig{Text: "Pay", Disabled: true, Loading: true})
	assert.False(t, b.main.enabled)
	assert.True(t, b.main.progress)

	c.SetLoading(false)
	c.SetActive(true)
	assert.False(t, b.main.progress)
	assert.True(t, b.main.enabled)
}

func TestMainButtonReShowReplacesHandler(t *testing.T) {
	b := fullBridge()
	c := NewMainButton(Probe(b), b)

	var old, current int
	c.Show(MainButtonConfig{Text: "Pay", OnClick: func() { old++ }})
	c.Show(MainButtonConfig{Text: "Pay 200", OnClick: func() { current++ }})

	b.main.click()
	assert.Zero(t, old)
	assert.Equal(t, 1, current)
}

func TestMainButtonHideClearsProgress(t *testing.T) {
	b := fullBridge()
	c := NewMainButton(Probe(b), b)

	c.Show(MainButtonConfig{Text: "Pay", Loading: true})
	c.Hide()

	assert.False(t, b.main.progress)
	assert.False(t, b.main.visible)
}

func TestHapticsDefaultsAndDegradation(t *testing.T) {
	b := fullBridge()
	h := NewHaptics(Probe(b), b)

	h.Impact("")
	h.Impact(ImpactHeavy)
	h.Notify(HapticSuccess)
	h.Selection()

	assert.Equal(t, []HapticImpactStyle{ImpactMedium, ImpactHeavy}, b.haptics.impacts)
	assert.Equal(t, []HapticNotification{HapticSuccess}, b.haptics.notified)
	assert.Equal(t, 1, b.haptics.selections)

	// Missing capability: every call is a silent no-op.
	none := NewHaptics(Capabilities{}, nil)
	none.Impact(ImpactLight)
	none.Notify(HapticError)
	none.Selection()
}

func TestDialogNativeConfirm(t *testing.T) {
	b := fullBridge()
	b.dialogs.answer = "cancel"
	d := NewDialog(Probe(b), b, nil)

	var got *bool
	d.Confirm("sure?", func(ok bool) { got = &ok })

	require.NotNil(t, got)
	assert.False(t, *got)
	require.Len(t, b.dialogs.shown, 1)
	assert.Len(t, b.dialogs.shown[0].Buttons, 2)
}

func TestDialogBrowserFallback(t *testing.T) {
	env := &stubEnv{confirmResult: true}
	d := NewDialog(Capabilities{}, nil, env)

	var confirmed bool
	d.Confirm("sure?", func(ok bool) { confirmed = ok })
	assert.True(t, confirmed)

	var done bool
	d.Alert("saved", func() { done = true })
	assert.True(t, done)
	assert.Equal(t, []string{"saved"}, env.alerts)

	// Custom popup collapses to confirm: "ok" or "".
	env.confirmResult = false
	var button string
	d.Popup(DialogOptions{Message: "pick"}, func(id string) { button = id })
	assert.Equal(t, "", button)
}

type stubEnv struct {
	alerts        []string
	confirmResult bool
}

func (s *stubEnv) OpenBlank() (browser.Window, error)          { return nil, browser.ErrBlocked }
func (s *stubEnv) OpenTab(url string) (browser.Window, error)  { return nil, browser.ErrBlocked }
func (s *stubEnv) Navigate(url string)                         {}
func (s *stubEnv) Alert(message string)                        { s.alerts = append(s.alerts, message) }
func (s *stubEnv) Confirm(message string) bool                 { return s.confirmResult }
