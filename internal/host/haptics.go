package host

// HapticsController triggers haptic feedback, silently degrading to a
// no-op when the host has none.
type HapticsController struct {
	api HapticAPI
}

// NewHaptics returns a haptics controller, no-op when unsupported.
func NewHaptics(caps Capabilities, b Bridge) *HapticsController {
	if !caps.HasHaptics || b == nil {
		return &HapticsController{}
	}
	return &HapticsController{api: b.Haptics()}
}

// Impact triggers an impact vibration. An empty style means medium.
func (c *HapticsController) Impact(style HapticImpactStyle) {
	if c.api == nil {
		return
	}
	if style == "" {
		style = ImpactMedium
	}
	c.api.ImpactOccurred(style)
}

// Notify triggers a semantic notification vibration.
func (c *HapticsController) Notify(kind HapticNotification) {
	if c.api == nil {
		return
	}
	c.api.NotificationOccurred(kind)
}

// Selection triggers the selection-changed tick.
func (c *HapticsController) Selection() {
	if c.api == nil {
		return
	}
	c.api.SelectionChanged()
}
