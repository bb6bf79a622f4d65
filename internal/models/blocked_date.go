package models

import "time"

// BlockedDate is the database row model for the blocked_dates table.
type BlockedDate struct {
	BlockedDateID int64     `db:"blocked_date_id"`
	Date          time.Time `db:"date"`
	Category      string    `db:"category"`
	Status        string    `db:"status"`
	Remarks       *string   `db:"remarks"` // Nullable
	AuditFields
}
