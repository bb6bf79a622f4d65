package domain

import "github.com/shopspring/decimal"

// RateCategory is the guest category a rate applies to.
type RateCategory string

const (
	Adult RateCategory = "ADULT"
	Kid   RateCategory = "KID"
)

// PublicEntryRate is a versioned head-count price for a (category, mode) pair.
// At most one rate per pair is active at any time; exclusivity is maintained
// procedurally by the rate service (deactivate-before-activate), not by a DB
// constraint.
type PublicEntryRate struct {
	RateID   int64           `json:"rateID"`
	Category RateCategory    `json:"category"`
	Mode     TimeMode        `json:"mode"` // DayTime or NightTime only
	Rate     decimal.Decimal `json:"rate"`
	IsActive bool            `json:"isActive"`
	AuditFields
}
