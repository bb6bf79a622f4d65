package pgsql

import (
	"context"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPermissionRepository struct {
	BaseRepository
}

// newPgxPermissionRepository creates a new repository for the capability gate.
func newPgxPermissionRepository(pool *pgxpool.Pool) portsrepo.PermissionRepositoryFacade {
	return &PgxPermissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PermissionRepositoryFacade = (*PgxPermissionRepository)(nil)

// HasPermission reports whether the user may perform the action on the
// resource table. The system user bypasses the table; it only acts through
// the background sweeps.
func (r *PgxPermissionRepository) HasPermission(ctx context.Context, userID, tableName, action string) (bool, error) {
	if userID == "system" {
		return true, nil
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM permissions
			WHERE user_id = $1 AND table_name = $2 AND action = $3
		);
	`
	var allowed bool
	if err := r.Pool.QueryRow(ctx, query, userID, tableName, action).Scan(&allowed); err != nil {
		return false, apperrors.NewAppError(500, "failed to check permission for user "+userID, err)
	}
	return allowed, nil
}
