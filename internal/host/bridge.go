package host

import "context"

// InvoiceStatus is the terminal status the host invoice overlay reports.
type InvoiceStatus string

const (
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceFailed    InvoiceStatus = "failed"
	InvoiceCancelled InvoiceStatus = "cancelled"
	InvoicePending   InvoiceStatus = "pending"
)

// HapticImpactStyle selects the strength of an impact vibration.
type HapticImpactStyle string

const (
	ImpactLight  HapticImpactStyle = "light"
	ImpactMedium HapticImpactStyle = "medium"
	ImpactHeavy  HapticImpactStyle = "heavy"
	ImpactRigid  HapticImpactStyle = "rigid"
	ImpactSoft   HapticImpactStyle = "soft"
)

// HapticNotification selects the semantic notification vibration.
type HapticNotification string

const (
	HapticError   HapticNotification = "error"
	HapticSuccess HapticNotification = "success"
	HapticWarning HapticNotification = "warning"
)

// DialogButton is a typed button of the host popup primitive.
type DialogButton struct {
	ID   string
	Type string // "default", "ok", "cancel", "close", "destructive"
	Text string
}

// DialogOptions configures a host popup.
type DialogOptions struct {
	Title   string
	Message string
	Buttons []DialogButton
}

// BackButtonAPI is the host's navigation-back control. OnClick returns a
// detach func for the handler it registered.
type BackButtonAPI interface {
	Show()
	Hide()
	OnClick(fn func()) (off func())
}

// MainButtonAPI is the host's primary action button.
type MainButtonAPI interface {
	Show()
	Hide()
	SetText(text string)
	Enable()
	Disable()
	ShowProgress()
	HideProgress()
	OnClick(fn func()) (off func())
}

// HapticAPI triggers host haptic feedback.
type HapticAPI interface {
	ImpactOccurred(style HapticImpactStyle)
	NotificationOccurred(kind HapticNotification)
	SelectionChanged()
}

// DialogAPI shows a host popup. The callback receives the id of the
// pressed button, or "" when the popup was dismissed without a choice.
type DialogAPI interface {
	ShowPopup(opts DialogOptions, cb func(buttonID string))
}

// ThemeAPI syncs chrome colors with the host theme.
type ThemeAPI interface {
	SetHeaderColor(color string)
	SetBottomBarColor(color string)
	ThemeParams() map[string]string
}

// CloudStorageAPI is the host key-value store scoped to the current user.
type CloudStorageAPI interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// InvoiceAPI opens the host-native invoice overlay. The callback fires at
// most once per open with the terminal status; it may never fire if the
// user abandons the overlay.
type InvoiceAPI interface {
	OpenInvoice(url string, cb func(status InvoiceStatus))
}

// LinkAPI opens links through the host, distinguishing external URLs from
// platform-internal ones.
type LinkAPI interface {
	OpenLink(url string)
	OpenPlatformLink(url string)
}

// Bridge is the privileged surface an embedded webview host exposes.
// Every accessor returns nil when the host lacks that control; a nil
// Bridge means no bridge at all (plain browser).
type Bridge interface {
	// Version reports the host API version, empty when unknown.
	Version() string
	// InitData is the signed launch payload, non-empty only inside the
	// embedded host.
	InitData() string
	BackButton() BackButtonAPI
	MainButton() MainButtonAPI
	Haptics() HapticAPI
	Dialogs() DialogAPI
	Theme() ThemeAPI
	CloudStorage() CloudStorageAPI
	Invoices() InvoiceAPI
	Links() LinkAPI
}
