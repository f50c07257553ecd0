package models

// CreateTopUpRequest is the body of POST /api/payment/topup.
type CreateTopUpRequest struct {
	AmountKopeks int64  `json:"amount_kopeks" validate:"required,gt=0"`
	Method       string `json:"method" validate:"required"`
	Option       string `json:"option"`
}

// StarsInvoiceRequest is the body of POST /api/payment/stars-invoice.
type StarsInvoiceRequest struct {
	AmountKopeks int64 `json:"amount_kopeks" validate:"required,gt=0"`
}
