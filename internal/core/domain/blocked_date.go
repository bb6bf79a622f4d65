package domain

import "time"

// BlockedDateStatus is the state of an administrative blackout date.
type BlockedDateStatus string

const (
	BlockActive    BlockedDateStatus = "ACTIVE"
	BlockCancelled BlockedDateStatus = "CANCELLED"
)

// BlockedDate is an administrative blackout of a calendar date. Active rows
// veto any reservation on that date regardless of mode.
type BlockedDate struct {
	BlockedDateID int64             `json:"blockedDateID"`
	Date          time.Time         `json:"date"`
	Category      CancelCategory    `json:"category"`
	Status        BlockedDateStatus `json:"status"`
	Remarks       string            `json:"remarks,omitempty"`
	AuditFields
}
