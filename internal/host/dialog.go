package host

import "zenpay/internal/browser"

// DialogController shows host-native popups. A dialog's result is part
// of the application's control flow and cannot simply vanish, so unlike
// the other controllers this one never degrades to a silent no-op: when
// the host has no popup primitive it falls back to the blocking browser
// dialogs with the same semantics.
type DialogController struct {
	api DialogAPI
	env browser.Env
}

// NewDialog returns a dialog controller backed by the host popup when
// available, or by the browser primitives otherwise.
func NewDialog(caps Capabilities, b Bridge, env browser.Env) *DialogController {
	c := &DialogController{env: env}
	if caps.HasNativeDialogs && b != nil {
		c.api = b.Dialogs()
	}
	return c
}

// Alert shows a message with a single OK button and calls done once it
// is dismissed.
func (c *DialogController) Alert(message string, done func()) {
	if c.api != nil {
		c.api.ShowPopup(DialogOptions{
			Message: message,
			Buttons: []DialogButton{{Type: "ok"}},
		}, func(string) {
			if done != nil {
				done()
			}
		})
		return
	}
	if c.env != nil {
		c.env.Alert(message)
	}
	if done != nil {
		done()
	}
}

// Confirm asks an ok/cancel question and reports the choice.
func (c *DialogController) Confirm(message string, cb func(ok bool)) {
	if c.api != nil {
		c.api.ShowPopup(DialogOptions{
			Message: message,
			Buttons: []DialogButton{
				{ID: "ok", Type: "ok"},
				{ID: "cancel", Type: "cancel"},
			},
		}, func(buttonID string) {
			if cb != nil {
				cb(buttonID == "ok")
			}
		})
		return
	}
	ok := c.env != nil && c.env.Confirm(message)
	if cb != nil {
		cb(ok)
	}
}

// Popup shows a popup with custom typed buttons; the callback receives
// the pressed button id, or "" when dismissed. The browser fallback
// collapses to a confirm that reports "ok" or "".
func (c *DialogController) Popup(opts DialogOptions, cb func(buttonID string)) {
	if c.api != nil {
		c.api.ShowPopup(opts, func(buttonID string) {
			if cb != nil {
				cb(buttonID)
			}
		})
		return
	}
	id := ""
	if c.env != nil && c.env.Confirm(opts.Message) {
		id = "ok"
	}
	if cb != nil {
		cb(id)
	}
}
