package models

import "github.com/shopspring/decimal"

// PublicEntryRate is the database row model for the public_entry_rates table.
type PublicEntryRate struct {
	RateID   int64           `db:"rate_id"`
	Category string          `db:"category"`
	Mode     string          `db:"mode"`
	Rate     decimal.Decimal `db:"rate"`
	IsActive bool            `db:"is_active"`
	AuditFields
}
