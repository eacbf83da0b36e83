package domain

import "time"

// AuditFields are embedded in all persisted entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// PaymentMethod identifies how money changed hands for a business event.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentMobileMoney  PaymentMethod = "MOBILE_MONEY"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentCheck        PaymentMethod = "CHECK"
)
