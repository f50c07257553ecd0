// Package models defines the database schema for payment methods and
// top-up intents.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SubOption is a sub-choice of a payment method, stored as JSON inside
// the method row.
type SubOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SubOptions serializes as a JSON column.
type SubOptions []SubOption

func (o SubOptions) Value() (driver.Value, error) {
	if len(o) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *SubOptions) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("sub_options: cannot scan %T", src)
	}
}

// MethodConfig maps to the `payment_methods` table.
type MethodConfig struct {
	ID              string     `gorm:"column:id;primaryKey;size:100" json:"id"`
	Name            string     `gorm:"column:name;size:200" json:"name"`
	Gateway         string     `gorm:"column:gateway;size:100" json:"gateway"`
	MinAmountKopeks int64      `gorm:"column:min_amount_kopeks" json:"min_amount_kopeks"`
	MaxAmountKopeks int64      `gorm:"column:max_amount_kopeks" json:"max_amount_kopeks"`
	SubOptions      SubOptions `gorm:"column:sub_options;type:text" json:"sub_options"`
	Enabled         bool       `gorm:"column:enabled" json:"enabled"`
	SupportsInvoice bool       `gorm:"column:supports_invoice" json:"supports_invoice"`
	SortOrder       int        `gorm:"column:sort_order" json:"sort_order"`
}

func (MethodConfig) TableName() string {
	return "payment_methods"
}
