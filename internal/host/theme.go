package host

// ThemeController syncs chrome colors with the host theme. No-op when
// the host has no theme surface.
type ThemeController struct {
	api ThemeAPI
}

// NewTheme returns a theme controller, no-op when unsupported.
func NewTheme(caps Capabilities, b Bridge) *ThemeController {
	if !caps.HasThemeSync || b == nil {
		return &ThemeController{}
	}
	return &ThemeController{api: b.Theme()}
}

// SetHeaderColor sets the host header color.
func (c *ThemeController) SetHeaderColor(color string) {
	if c.api == nil {
		return
	}
	c.api.SetHeaderColor(color)
}

// SetBottomBarColor sets the host bottom bar color. Older hosts lack the
// call; the bridge implementation is expected to swallow that.
func (c *ThemeController) SetBottomBarColor(color string) {
	if c.api == nil {
		return
	}
	c.api.SetBottomBarColor(color)
}

// Params returns the host theme parameters, nil outside the host.
func (c *ThemeController) Params() map[string]string {
	if c.api == nil {
		return nil
	}
	return c.api.ThemeParams()
}
