package repositories

import (
	"context"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditRepositoryFacade persists audit trail entries. InsertAuditLogInTx is
// used by composite repository writes so the audit entry commits with the
// mutation it records.
type AuditRepositoryFacade interface {
	// SaveAuditLog persists a standalone audit entry.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error

	// InsertAuditLogInTx persists an audit entry within an existing
	// transaction.
	InsertAuditLogInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLog) error
}

// PermissionRepositoryFacade is the capability gate consulted before every
// mutating operation.
type PermissionRepositoryFacade interface {
	// HasPermission reports whether the user may perform the action on the
	// resource table.
	HasPermission(ctx context.Context, userID, tableName, action string) (bool, error)
}
