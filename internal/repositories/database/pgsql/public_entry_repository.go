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
	"github.com/aquaverde/resort_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPublicEntryRepository struct {
	BaseRepository
	auditRepo portsrepo.AuditRepositoryFacade
}

// newPgxPublicEntryRepository creates a new repository for public entry data.
func newPgxPublicEntryRepository(pool *pgxpool.Pool, auditRepo portsrepo.AuditRepositoryFacade) portsrepo.PublicEntryRepositoryFacade {
	return &PgxPublicEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		auditRepo:      auditRepo,
	}
}

var _ portsrepo.PublicEntryRepositoryFacade = (*PgxPublicEntryRepository)(nil)

const publicEntryColumns = `
	public_entry_id, guest_name, contact_number, email, entry_date, mode,
	adult_count, kid_count, adult_rate_id, kid_rate_id, discount_percent,
	status, total_amount, amount_paid, remaining_balance, payment_status,
	cancel_category, cancel_reason, created_at, created_by, last_updated_at, last_updated_by
`

func scanPublicEntry(row pgx.Row) (*models.PublicEntry, error) {
	var m models.PublicEntry
	err := row.Scan(
		&m.PublicEntryID,
		&m.GuestName,
		&m.ContactNumber,
		&m.Email,
		&m.EntryDate,
		&m.Mode,
		&m.AdultCount,
		&m.KidCount,
		&m.AdultRateID,
		&m.KidRateID,
		&m.DiscountPercent,
		&m.Status,
		&m.TotalAmount,
		&m.AmountPaid,
		&m.RemainingBalance,
		&m.PaymentStatus,
		&m.CancelCategory,
		&m.CancelReason,
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

// FindPublicEntryByID retrieves a public entry by its ID.
func (r *PgxPublicEntryRepository) FindPublicEntryByID(ctx context.Context, publicEntryID int64) (*domain.PublicEntry, error) {
	query := `SELECT ` + publicEntryColumns + ` FROM public_entries WHERE public_entry_id = $1;`

	m, err := scanPublicEntry(r.Pool.QueryRow(ctx, query, publicEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("public entry %d: %w", publicEntryID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find public entry "+strconv.FormatInt(publicEntryID, 10), err)
	}
	entry := mapping.ToDomainPublicEntry(*m)
	return &entry, nil
}

// ListPublicEntries retrieves a page of public entries ordered by entry date,
// newest first, using token-based keyset pagination.
func (r *PgxPublicEntryRepository) ListPublicEntries(ctx context.Context, limit int, nextToken *string) ([]domain.PublicEntry, *string, error) {
	query := `SELECT ` + publicEntryColumns + `
		FROM public_entries
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $1;`
	args := []any{limit + 1}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query = `SELECT ` + publicEntryColumns + `
			FROM public_entries
			WHERE (entry_date, created_at) < ($1, $2)
			ORDER BY entry_date DESC, created_at DESC
			LIMIT $3;`
		args = []any{entryDate, createdAt, limit + 1}
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list public entries", err)
	}
	defer rows.Close()

	var ms []models.PublicEntry
	for rows.Next() {
		m, serr := scanPublicEntry(rows)
		if serr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan public entry row", serr)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate public entry rows", err)
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return mapping.ToDomainPublicEntrySlice(ms), token, nil
}

// FindActivePublicEntriesByDate retrieves non-terminal public entries on the
// given calendar date, optionally excluding one entry.
func (r *PgxPublicEntryRepository) FindActivePublicEntriesByDate(ctx context.Context, date time.Time, excludeID *int64) ([]domain.PublicEntry, error) {
	query := `SELECT ` + publicEntryColumns + `
		FROM public_entries
		WHERE entry_date::date = $1::date
		  AND status NOT IN ('CANCELLED', 'COMPLETED')
		  AND ($2::bigint IS NULL OR public_entry_id <> $2);`

	rows, err := r.Pool.Query(ctx, query, date, excludeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find public entries by date", err)
	}
	defer rows.Close()

	var ms []models.PublicEntry
	for rows.Next() {
		m, serr := scanPublicEntry(rows)
		if serr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan public entry row", serr)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate public entry rows", err)
	}
	return mapping.ToDomainPublicEntrySlice(ms), nil
}

// SavePublicEntry inserts a public entry and its audit entry within one
// transaction and returns the assigned identifier.
func (r *PgxPublicEntryRepository) SavePublicEntry(ctx context.Context, entry domain.PublicEntry, audit domain.AuditLog) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPublicEntry(entry)
	query := `
		INSERT INTO public_entries (
			guest_name, contact_number, email, entry_date, mode,
			adult_count, kid_count, adult_rate_id, kid_rate_id, discount_percent,
			status, total_amount, amount_paid, remaining_balance, payment_status,
			cancel_category, cancel_reason, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING public_entry_id;
	`
	var publicEntryID int64
	err = tx.QueryRow(ctx, query,
		m.GuestName,
		m.ContactNumber,
		m.Email,
		m.EntryDate,
		m.Mode,
		m.AdultCount,
		m.KidCount,
		m.AdultRateID,
		m.KidRateID,
		m.DiscountPercent,
		m.Status,
		m.TotalAmount,
		m.AmountPaid,
		m.RemainingBalance,
		m.PaymentStatus,
		m.CancelCategory,
		m.CancelReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&publicEntryID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert public entry", err)
	}

	audit.RecordID = strconv.FormatInt(publicEntryID, 10)
	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return publicEntryID, nil
}

// UpdatePublicEntry persists all mutable fields of a public entry plus its
// audit entry within one transaction.
func (r *PgxPublicEntryRepository) UpdatePublicEntry(ctx context.Context, entry domain.PublicEntry, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPublicEntry(entry)
	query := `
		UPDATE public_entries
		SET guest_name = $1,
		    contact_number = $2,
		    email = $3,
		    entry_date = $4,
		    mode = $5,
		    adult_count = $6,
		    kid_count = $7,
		    adult_rate_id = $8,
		    kid_rate_id = $9,
		    discount_percent = $10,
		    status = $11,
		    total_amount = $12,
		    amount_paid = $13,
		    remaining_balance = $14,
		    payment_status = $15,
		    cancel_category = $16,
		    cancel_reason = $17,
		    last_updated_at = $18,
		    last_updated_by = $19
		WHERE public_entry_id = $20;
	`
	tag, err := tx.Exec(ctx, query,
		m.GuestName,
		m.ContactNumber,
		m.Email,
		m.EntryDate,
		m.Mode,
		m.AdultCount,
		m.KidCount,
		m.AdultRateID,
		m.KidRateID,
		m.DiscountPercent,
		m.Status,
		m.TotalAmount,
		m.AmountPaid,
		m.RemainingBalance,
		m.PaymentStatus,
		m.CancelCategory,
		m.CancelReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.PublicEntryID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update public entry "+strconv.FormatInt(m.PublicEntryID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("public entry %d: %w", m.PublicEntryID, apperrors.ErrNotFound)
	}

	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
