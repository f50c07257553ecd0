// Package currency converts display-currency amounts into canonical
// minor units for bound checks and back for display. All arithmetic uses
// decimals so minor-unit amounts stay exact.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Converter holds the canonical currency and the conversion rates. A
// rate gives the canonical minor units bought by one unit of a display
// currency, e.g. RUB -> 100 when the canonical minor unit is the kopek.
// Converters are immutable after construction; the conversion layer is
// pure and side-effect free.
type Converter struct {
	canonical string
	rates     map[string]decimal.Decimal
}

// NewConverter builds a converter. Rates are decimal strings keyed by
// currency code; the canonical currency must be present in the table.
func NewConverter(canonical string, rates map[string]string) (*Converter, error) {
	canonical = strings.ToUpper(strings.TrimSpace(canonical))
	if canonical == "" {
		return nil, fmt.Errorf("currency: canonical code is empty")
	}

	parsed := make(map[string]decimal.Decimal, len(rates))
	for code, raw := range rates {
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("currency: rate for %s: %w", code, err)
		}
		if rate.Sign() <= 0 {
			return nil, fmt.Errorf("currency: rate for %s must be positive", code)
		}
		parsed[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	if _, ok := parsed[canonical]; !ok {
		return nil, fmt.Errorf("currency: no rate for canonical currency %s", canonical)
	}

	return &Converter{canonical: canonical, rates: parsed}, nil
}

// Canonical reports the canonical currency code.
func (c *Converter) Canonical() string {
	return c.canonical
}

// Supports reports whether a rate exists for the currency.
func (c *Converter) Supports(code string) bool {
	_, ok := c.rates[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// ParseAmount parses user input as a strictly positive decimal amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("currency: %q is not a number", s)
	}
	if amount.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("currency: amount must be positive")
	}
	return amount, nil
}

// ToCanonicalMinor converts an amount in the given display currency to
// canonical minor units, rounding to the nearest unit. Bound checks
// happen on its result only.
func (c *Converter) ToCanonicalMinor(amount decimal.Decimal, code string) (int64, error) {
	rate, ok := c.rates[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0, fmt.Errorf("currency: unsupported currency %q", code)
	}
	return amount.Mul(rate).Round(0).IntPart(), nil
}

// FromCanonicalMinor renders canonical minor units in the given display
// currency, rounded to its display precision. This direction exists for
// display only and never feeds validation.
func (c *Converter) FromCanonicalMinor(minor int64, code string) (decimal.Decimal, error) {
	rate, ok := c.rates[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return decimal.Zero, fmt.Errorf("currency: unsupported currency %q", code)
	}
	return decimal.NewFromInt(minor).Div(rate).Round(Decimals(code)), nil
}

// Decimals reports the display precision for a currency: whole numbers
// for RUB and IRR, two places otherwise.
func Decimals(code string) int32 {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "RUB", "IRR":
		return 0
	default:
		return 2
	}
}
