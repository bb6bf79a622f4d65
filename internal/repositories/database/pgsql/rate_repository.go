package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	"github.com/aquaverde/resort_backend/internal/models"
	"github.com/aquaverde/resort_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRateRepository struct {
	BaseRepository
	auditRepo portsrepo.AuditRepositoryFacade
}

// newPgxRateRepository creates a new repository for public entry rates.
func newPgxRateRepository(pool *pgxpool.Pool, auditRepo portsrepo.AuditRepositoryFacade) portsrepo.RateRepositoryFacade {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
		auditRepo:      auditRepo,
	}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)

const rateColumns = `
	rate_id, category, mode, rate, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanRate(row pgx.Row) (*models.PublicEntryRate, error) {
	var m models.PublicEntryRate
	err := row.Scan(
		&m.RateID,
		&m.Category,
		&m.Mode,
		&m.Rate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxRateRepository) queryRates(ctx context.Context, query string, args ...any) ([]domain.PublicEntryRate, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rates", err)
	}
	defer rows.Close()

	var ms []models.PublicEntryRate
	for rows.Next() {
		m, serr := scanRate(rows)
		if serr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rate row", serr)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate rate rows", err)
	}
	return mapping.ToDomainRateSlice(ms), nil
}

// FindRateByID retrieves a rate by its ID.
func (r *PgxRateRepository) FindRateByID(ctx context.Context, rateID int64) (*domain.PublicEntryRate, error) {
	query := `SELECT ` + rateColumns + ` FROM public_entry_rates WHERE rate_id = $1;`

	m, err := scanRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rate %d: %w", rateID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find rate "+strconv.FormatInt(rateID, 10), err)
	}
	rate := mapping.ToDomainRate(*m)
	return &rate, nil
}

// FindActiveRate retrieves the single active rate for a (category, mode) pair.
func (r *PgxRateRepository) FindActiveRate(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) (*domain.PublicEntryRate, error) {
	query := `SELECT ` + rateColumns + `
		FROM public_entry_rates
		WHERE category = $1 AND mode = $2 AND is_active
		ORDER BY created_at DESC
		LIMIT 1;`

	m, err := scanRate(r.Pool.QueryRow(ctx, query, string(category), string(mode)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("active rate %s/%s: %w", category, mode, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find active rate", err)
	}
	rate := mapping.ToDomainRate(*m)
	return &rate, nil
}

// FindActiveRates retrieves every active rate for a (category, mode) pair.
func (r *PgxRateRepository) FindActiveRates(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) ([]domain.PublicEntryRate, error) {
	query := `SELECT ` + rateColumns + `
		FROM public_entry_rates
		WHERE category = $1 AND mode = $2 AND is_active
		ORDER BY created_at DESC;`
	return r.queryRates(ctx, query, string(category), string(mode))
}

// FindInactiveRates retrieves inactive rates for a (category, mode) pair,
// most recently created first.
func (r *PgxRateRepository) FindInactiveRates(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) ([]domain.PublicEntryRate, error) {
	query := `SELECT ` + rateColumns + `
		FROM public_entry_rates
		WHERE category = $1 AND mode = $2 AND NOT is_active
		ORDER BY created_at DESC;`
	return r.queryRates(ctx, query, string(category), string(mode))
}

// ListRates retrieves all rates.
func (r *PgxRateRepository) ListRates(ctx context.Context) ([]domain.PublicEntryRate, error) {
	query := `SELECT ` + rateColumns + `
		FROM public_entry_rates
		ORDER BY category, mode, created_at DESC;`
	return r.queryRates(ctx, query)
}

// SaveRate inserts a rate and its audit entry within one transaction and
// returns the assigned identifier.
func (r *PgxRateRepository) SaveRate(ctx context.Context, rate domain.PublicEntryRate, audit domain.AuditLog) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelRate(rate)
	query := `
		INSERT INTO public_entry_rates (category, mode, rate, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING rate_id;
	`
	var rateID int64
	err = tx.QueryRow(ctx, query,
		m.Category,
		m.Mode,
		m.Rate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&rateID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert rate", err)
	}

	audit.RecordID = strconv.FormatInt(rateID, 10)
	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return rateID, nil
}

func (r *PgxRateRepository) setActiveInTx(ctx context.Context, tx pgx.Tx, rateID int64, active bool, updatedBy string, now time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE public_entry_rates SET is_active = $1, last_updated_at = $2, last_updated_by = $3 WHERE rate_id = $4;`,
		active, now, updatedBy, rateID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to flip rate "+strconv.FormatInt(rateID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rate %d: %w", rateID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxRateRepository) insertAuditsInTx(ctx context.Context, tx pgx.Tx, audits []domain.AuditLog) error {
	for _, a := range audits {
		if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, a); err != nil {
			return err
		}
	}
	return nil
}

// ActivateRate deactivates the listed siblings, activates the target, and
// writes the audit entries in one transaction.
func (r *PgxRateRepository) ActivateRate(ctx context.Context, rateID int64, deactivateIDs []int64, audits []domain.AuditLog, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	for _, id := range deactivateIDs {
		if err := r.setActiveInTx(ctx, tx, id, false, updatedBy, now); err != nil {
			return err
		}
	}
	if err := r.setActiveInTx(ctx, tx, rateID, true, updatedBy, now); err != nil {
		return err
	}
	if err := r.insertAuditsInTx(ctx, tx, audits); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeactivateRate deactivates the target and promotes the fallback row, when
// one was selected, in the same transaction.
func (r *PgxRateRepository) DeactivateRate(ctx context.Context, rateID int64, promoteRateID *int64, audits []domain.AuditLog, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	if err := r.setActiveInTx(ctx, tx, rateID, false, updatedBy, now); err != nil {
		return err
	}
	if promoteRateID != nil {
		if err := r.setActiveInTx(ctx, tx, *promoteRateID, true, updatedBy, now); err != nil {
			return err
		}
	}
	if err := r.insertAuditsInTx(ctx, tx, audits); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteRate removes the target, promoting the fallback row first when one
// was selected, in the same transaction.
func (r *PgxRateRepository) DeleteRate(ctx context.Context, rateID int64, promoteRateID *int64, audits []domain.AuditLog, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	if promoteRateID != nil {
		if err := r.setActiveInTx(ctx, tx, *promoteRateID, true, updatedBy, now); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM public_entry_rates WHERE rate_id = $1;`, rateID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete rate "+strconv.FormatInt(rateID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rate %d: %w", rateID, apperrors.ErrNotFound)
	}

	if err := r.insertAuditsInTx(ctx, tx, audits); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
