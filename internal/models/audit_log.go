package models

import "time"

// AuditLog is the database row model for the audit_logs table.
type AuditLog struct {
	AuditID   string    `db:"audit_id"`
	UserID    string    `db:"user_id"`
	Action    string    `db:"action"`
	TableName string    `db:"table_name"`
	RecordID  string    `db:"record_id"`
	Data      string    `db:"data"`
	Remarks   *string   `db:"remarks"` // Nullable
	CreatedAt time.Time `db:"created_at"`
}
