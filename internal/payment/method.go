// Package payment drives balance top-up initiation: amount validation,
// provider selection, intent creation and routing of the issued payment
// URL to the right host channel.
package payment

// PaymentOption is a sub-choice of a method, e.g. a card network or SBP.
type PaymentOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaymentMethod describes a selectable top-up method as served by the
// methods endpoint. Amount bounds are canonical-currency minor units.
type PaymentMethod struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	MinAmountKopeks int64           `json:"min_amount_kopeks"`
	MaxAmountKopeks int64           `json:"max_amount_kopeks"`
	Options         []PaymentOption `json:"options,omitempty"`
	Available       bool            `json:"available"`
	// SupportsInvoice marks methods settled through the host-native
	// invoice overlay instead of a redirect.
	SupportsInvoice bool `json:"supports_invoice"`
}

// HasOptions reports whether the method requires a sub-choice.
func (m *PaymentMethod) HasOptions() bool {
	return len(m.Options) > 0
}

// Option returns the option with the given id, or nil.
func (m *PaymentMethod) Option(id string) *PaymentOption {
	for i := range m.Options {
		if m.Options[i].ID == id {
			return &m.Options[i]
		}
	}
	return nil
}
