package host

import (
	"strings"

	"zenpay/internal/browser"
)

// Capabilities describes which privileged host controls exist. It is
// built once per session by Probe and never mutated afterwards; host
// capabilities cannot change mid-session.
type Capabilities struct {
	// Embedded is true inside the privileged webview, false in a plain
	// browser tab.
	Embedded          bool
	HasBackButton     bool
	HasMainButton     bool
	HasHaptics        bool
	HasNativeDialogs  bool
	HasThemeSync      bool
	HasInvoiceOverlay bool
	HasCloudStorage   bool
	HasShare          bool
	Version           string
}

// Probe inspects the ambient bridge and reports its capabilities. It
// never panics: a nil bridge or a missing control degrades the matching
// flag to false instead of failing the whole probe.
func Probe(b Bridge) Capabilities {
	if b == nil {
		return Capabilities{HasShare: true}
	}

	embedded := strings.TrimSpace(b.InitData()) != ""
	return Capabilities{
		Embedded:          embedded,
		HasBackButton:     embedded && b.BackButton() != nil,
		HasMainButton:     embedded && b.MainButton() != nil,
		HasHaptics:        embedded && b.Haptics() != nil,
		HasNativeDialogs:  embedded && b.Dialogs() != nil,
		HasThemeSync:      embedded && b.Theme() != nil,
		HasInvoiceOverlay: b.Invoices() != nil,
		HasCloudStorage:   embedded && b.CloudStorage() != nil,
		HasShare:          true,
		Version:           b.Version(),
	}
}

// Platform bundles the probed capabilities with one controller per
// capability, so calling code never repeats host-existence checks.
// Build it once at startup and share it for the session.
type Platform struct {
	Caps       Capabilities
	BackButton *BackButtonController
	MainButton *MainButtonController
	Haptics    *HapticsController
	Dialogs    *DialogController
	Theme      *ThemeController
	// CloudStorage is nil when the host has no store; callers must treat
	// that as "persistence unavailable", not as an error.
	CloudStorage *CloudStorageController
}

// NewPlatform probes the bridge and constructs every controller from the
// resulting descriptor.
func NewPlatform(b Bridge, env browser.Env) *Platform {
	caps := Probe(b)
	return &Platform{
		Caps:         caps,
		BackButton:   NewBackButton(caps, b),
		MainButton:   NewMainButton(caps, b),
		Haptics:      NewHaptics(caps, b),
		Dialogs:      NewDialog(caps, b, env),
		Theme:        NewTheme(caps, b),
		CloudStorage: NewCloudStorage(caps, b),
	}
}
