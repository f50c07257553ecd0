package host

// MainButtonConfig configures a Show of the primary action button. The
// zero value of Disabled keeps the button active, matching the host
// default.
type MainButtonConfig struct {
	Text     string
	Disabled bool
	Loading  bool
	OnClick  func()
}

// MainButtonController drives the host primary action button with the
// same single-active-handler contract as the back button.
type MainButtonController struct {
	api MainButtonAPI
	off func()
}

// NewMainButton returns a controller for the host main button, or a
// no-op controller when the capability is missing.
func NewMainButton(caps Capabilities, b Bridge) *MainButtonController {
	if !caps.HasMainButton || b == nil {
		return &MainButtonController{}
	}
	return &MainButtonController{api: b.MainButton()}
}

// Show configures and displays the button. The previous click handler,
// if any, is detached before the new one can fire.
func (c *MainButtonController) Show(cfg MainButtonConfig) {
	if c.api == nil {
		return
	}
	c.detach()

	c.api.SetText(cfg.Text)
	if cfg.Disabled {
		c.api.Disable()
	} else {
		c.api.Enable()
	}
	if cfg.Loading {
		c.api.ShowProgress()
	} else {
		c.api.HideProgress()
	}

	if cfg.OnClick != nil {
		c.off = c.api.OnClick(cfg.OnClick)
	}
	c.api.Show()
}

// Hide detaches the handler, clears any progress state and hides the
// button. Idempotent.
func (c *MainButtonController) Hide() {
	if c.api == nil {
		return
	}
	c.detach()
	c.api.HideProgress()
	c.api.Hide()
}

// SetText updates the label without touching the handler.
func (c *MainButtonController) SetText(text string) {
	if c.api == nil {
		return
	}
	c.api.SetText(text)
}

// SetLoading toggles the progress indicator.
func (c *MainButtonController) SetLoading(loading bool) {
	if c.api == nil {
		return
	}
	if loading {
		c.api.ShowProgress()
	} else {
		c.api.HideProgress()
	}
}

// SetActive enables or disables the button.
func (c *MainButtonController) SetActive(active bool) {
	if c.api == nil {
		return
	}
	if active {
		c.api.Enable()
	} else {
		c.api.Disable()
	}
}

func (c *MainButtonController) detach() {
	if c.off != nil {
		c.off()
		c.off = nil
	}
}
