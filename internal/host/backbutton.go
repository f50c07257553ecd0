package host

// BackButtonController drives the host back-navigation control. It keeps
// at most one active handler: Show detaches the previous registration
// before attaching the new one, so rapid re-shows never stack handlers.
// When the capability is absent every method is a safe no-op.
type BackButtonController struct {
	api BackButtonAPI
	off func()
}

// NewBackButton returns a controller for the host back control, or a
// no-op controller when the capability is missing.
func NewBackButton(caps Capabilities, b Bridge) *BackButtonController {
	if !caps.HasBackButton || b == nil {
		return &BackButtonController{}
	}
	return &BackButtonController{api: b.BackButton()}
}

// Show displays the back control and routes clicks to onClick. Any
// previously registered handler is detached first.
func (c *BackButtonController) Show(onClick func()) {
	if c.api == nil {
		return
	}
	c.detach()
	c.off = c.api.OnClick(onClick)
	c.api.Show()
}

// Hide detaches the active handler and hides the control. Hiding an
// already-hidden control is a no-op, not an error.
func (c *BackButtonController) Hide() {
	if c.api == nil {
		return
	}
	c.detach()
	c.api.Hide()
}

func (c *BackButtonController) detach() {
	if c.off != nil {
		c.off()
		c.off = nil
	}
}
