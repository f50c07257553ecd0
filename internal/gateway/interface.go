// Package gateway talks to the external payment providers the top-up
// methods are backed by.
package gateway

import "context"

// CreateResult contains the result of creating a payment with a
// provider. Redirect providers fill PaymentURL; invoice providers fill
// InvoiceURL for the host overlay.
type CreateResult struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url,omitempty"`
	InvoiceURL string `json:"invoice_url,omitempty"`
	ProviderID string `json:"provider_id,omitempty"`
}

// Gateway defines the interface for payment provider implementations.
type Gateway interface {
	// Name returns the gateway identifier.
	Name() string

	// CreatePayment initiates a new payment for the amount in
	// canonical minor units and returns the link the client should
	// open.
	CreatePayment(ctx context.Context, amountKopeks int64, orderID, description, callbackURL string) (*CreateResult, error)
}

// Registry maps method gateway identifiers to implementations.
type Registry struct {
	gateways map[string]Gateway
}

// NewRegistry builds a registry over the given gateways.
func NewRegistry(gateways ...Gateway) *Registry {
	m := make(map[string]Gateway, len(gateways))
	for _, g := range gateways {
		m[g.Name()] = g
	}
	return &Registry{gateways: m}
}

// Get returns the gateway registered under name, nil when unknown.
func (r *Registry) Get(name string) Gateway {
	return r.gateways[name]
}
