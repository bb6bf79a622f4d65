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

type PgxBlockedDateRepository struct {
	BaseRepository
	auditRepo portsrepo.AuditRepositoryFacade
}

// newPgxBlockedDateRepository creates a new repository for blackout dates.
func newPgxBlockedDateRepository(pool *pgxpool.Pool, auditRepo portsrepo.AuditRepositoryFacade) portsrepo.BlockedDateRepositoryFacade {
	return &PgxBlockedDateRepository{
		BaseRepository: BaseRepository{Pool: pool},
		auditRepo:      auditRepo,
	}
}

var _ portsrepo.BlockedDateRepositoryFacade = (*PgxBlockedDateRepository)(nil)

const blockedDateColumns = `
	blocked_date_id, date, category, status, remarks,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanBlockedDate(row pgx.Row) (*models.BlockedDate, error) {
	var m models.BlockedDate
	err := row.Scan(
		&m.BlockedDateID,
		&m.Date,
		&m.Category,
		&m.Status,
		&m.Remarks,
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

// FindActiveBlockByDate retrieves the active blackout for a calendar date.
func (r *PgxBlockedDateRepository) FindActiveBlockByDate(ctx context.Context, date time.Time) (*domain.BlockedDate, error) {
	query := `SELECT ` + blockedDateColumns + `
		FROM blocked_dates
		WHERE date::date = $1::date AND status = 'ACTIVE'
		LIMIT 1;`

	m, err := scanBlockedDate(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("blocked date %s: %w", date.Format("2006-01-02"), apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find blocked date", err)
	}
	block := mapping.ToDomainBlockedDate(*m)
	return &block, nil
}

// FindBlockedDateByID retrieves a blackout row by its ID.
func (r *PgxBlockedDateRepository) FindBlockedDateByID(ctx context.Context, blockedDateID int64) (*domain.BlockedDate, error) {
	query := `SELECT ` + blockedDateColumns + ` FROM blocked_dates WHERE blocked_date_id = $1;`

	m, err := scanBlockedDate(r.Pool.QueryRow(ctx, query, blockedDateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("blocked date %d: %w", blockedDateID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find blocked date "+strconv.FormatInt(blockedDateID, 10), err)
	}
	block := mapping.ToDomainBlockedDate(*m)
	return &block, nil
}

// ListBlockedDates retrieves all blackout rows, newest first.
func (r *PgxBlockedDateRepository) ListBlockedDates(ctx context.Context) ([]domain.BlockedDate, error) {
	query := `SELECT ` + blockedDateColumns + `
		FROM blocked_dates
		ORDER BY date DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list blocked dates", err)
	}
	defer rows.Close()

	var ms []models.BlockedDate
	for rows.Next() {
		m, serr := scanBlockedDate(rows)
		if serr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan blocked date row", serr)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate blocked date rows", err)
	}
	return mapping.ToDomainBlockedDateSlice(ms), nil
}

// SaveBlockedDate inserts a blackout and its audit entry within one
// transaction and returns the assigned identifier.
func (r *PgxBlockedDateRepository) SaveBlockedDate(ctx context.Context, block domain.BlockedDate, audit domain.AuditLog) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBlockedDate(block)
	query := `
		INSERT INTO blocked_dates (date, category, status, remarks, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING blocked_date_id;
	`
	var blockedDateID int64
	err = tx.QueryRow(ctx, query,
		m.Date,
		m.Category,
		m.Status,
		m.Remarks,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&blockedDateID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert blocked date", err)
	}

	audit.RecordID = strconv.FormatInt(blockedDateID, 10)
	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return blockedDateID, nil
}

// UpdateBlockedDate persists status and remark changes plus the audit entry
// within one transaction.
func (r *PgxBlockedDateRepository) UpdateBlockedDate(ctx context.Context, block domain.BlockedDate, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBlockedDate(block)
	query := `
		UPDATE blocked_dates
		SET status = $1,
		    remarks = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE blocked_date_id = $5;
	`
	tag, err := tx.Exec(ctx, query,
		m.Status,
		m.Remarks,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.BlockedDateID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update blocked date "+strconv.FormatInt(m.BlockedDateID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("blocked date %d: %w", m.BlockedDateID, apperrors.ErrNotFound)
	}

	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
