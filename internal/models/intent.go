package models

import "time"

// Intent statuses.
const (
	IntentPending = "pending"
	IntentPaid    = "paid"
	IntentFailed  = "failed"
	IntentExpired = "expired"
)

// TopUpIntent maps to the `topup_intents` table. One row per payment
// attempt that reached the service.
type TopUpIntent struct {
	ID           string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	UserID       int64     `gorm:"column:user_id;index" json:"user_id"`
	MethodID     string    `gorm:"column:method_id;size:100" json:"method_id"`
	OptionID     string    `gorm:"column:option_id;size:100" json:"option_id"`
	AmountKopeks int64     `gorm:"column:amount_kopeks" json:"amount_kopeks"`
	Status       string    `gorm:"column:status;size:20;index" json:"status"`
	ProviderID   string    `gorm:"column:provider_id;size:200" json:"provider_id"`
	PaymentURL   string    `gorm:"column:payment_url;size:2000" json:"payment_url"`
	InvoiceURL   string    `gorm:"column:invoice_url;size:2000" json:"invoice_url"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (TopUpIntent) TableName() string {
	return "topup_intents"
}
