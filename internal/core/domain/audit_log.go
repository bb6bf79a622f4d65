package domain

import "time"

// AuditLog is one audit trail entry. Entries are written in the same
// transaction as the mutation they record.
type AuditLog struct {
	AuditID   string    `json:"auditID"` // UUID
	UserID    string    `json:"userID"`
	Action    string    `json:"action"`
	TableName string    `json:"tableName"`
	RecordID  string    `json:"recordID"`
	Data      string    `json:"data"` // JSON snapshot of the change
	Remarks   string    `json:"remarks,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
