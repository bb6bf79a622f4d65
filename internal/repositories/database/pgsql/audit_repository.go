package pgsql

import (
	"context"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for audit trail entries.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const insertAuditQuery = `
	INSERT INTO audit_logs (audit_id, user_id, action, table_name, record_id, data, remarks, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

// SaveAuditLog persists a standalone audit entry.
func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	_, err := r.Pool.Exec(ctx, insertAuditQuery,
		entry.AuditID,
		entry.UserID,
		entry.Action,
		entry.TableName,
		entry.RecordID,
		entry.Data,
		nullIfEmpty(entry.Remarks),
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log "+entry.AuditID, err)
	}
	return nil
}

// InsertAuditLogInTx persists an audit entry within an existing transaction so
// it commits with the mutation it records.
func (r *PgxAuditRepository) InsertAuditLogInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLog) error {
	_, err := tx.Exec(ctx, insertAuditQuery,
		entry.AuditID,
		entry.UserID,
		entry.Action,
		entry.TableName,
		entry.RecordID,
		entry.Data,
		nullIfEmpty(entry.Remarks),
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log "+entry.AuditID, err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
