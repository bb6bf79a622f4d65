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

type PgxRefundRepository struct {
	BaseRepository
	auditRepo portsrepo.AuditRepositoryFacade
}

// newPgxRefundRepository creates a new repository for refund data.
func newPgxRefundRepository(pool *pgxpool.Pool, auditRepo portsrepo.AuditRepositoryFacade) portsrepo.RefundRepositoryFacade {
	return &PgxRefundRepository{
		BaseRepository: BaseRepository{Pool: pool},
		auditRepo:      auditRepo,
	}
}

var _ portsrepo.RefundRepositoryFacade = (*PgxRefundRepository)(nil)

const refundColumns = `
	refund_id, booking_id, public_entry_id, refund_amount, status, method, reason,
	gcash_reference, gcash_image_url, remarks, acknowledged,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanRefund(row pgx.Row) (*models.Refund, error) {
	var m models.Refund
	err := row.Scan(
		&m.RefundID,
		&m.BookingID,
		&m.PublicEntryID,
		&m.RefundAmount,
		&m.Status,
		&m.Method,
		&m.Reason,
		&m.GcashReference,
		&m.GcashImageURL,
		&m.Remarks,
		&m.Acknowledged,
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

func (r *PgxRefundRepository) queryRefunds(ctx context.Context, query string, args ...any) ([]domain.Refund, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query refunds", err)
	}
	defer rows.Close()

	var ms []models.Refund
	for rows.Next() {
		m, serr := scanRefund(rows)
		if serr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan refund row", serr)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate refund rows", err)
	}
	return mapping.ToDomainRefundSlice(ms), nil
}

// FindRefundByID retrieves a refund by its ID.
func (r *PgxRefundRepository) FindRefundByID(ctx context.Context, refundID int64) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE refund_id = $1;`

	m, err := scanRefund(r.Pool.QueryRow(ctx, query, refundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("refund %d: %w", refundID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find refund "+strconv.FormatInt(refundID, 10), err)
	}
	refund := mapping.ToDomainRefund(*m)
	return &refund, nil
}

// FindCompletedRefundByReservation retrieves the completed refund for a
// reservation. Backs the one-completed-refund-per-reservation rule.
func (r *PgxRefundRepository) FindCompletedRefundByReservation(ctx context.Context, ref domain.ReservationRef) (*domain.Refund, error) {
	where, id := refWhereClause(ref)
	query := `SELECT ` + refundColumns + `
		FROM refunds
		WHERE ` + where + ` AND status = 'COMPLETED'
		LIMIT 1;`

	m, err := scanRefund(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("completed refund for %s: %w", ref, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find completed refund for "+ref.String(), err)
	}
	refund := mapping.ToDomainRefund(*m)
	return &refund, nil
}

// ListRefunds retrieves all refunds, newest first.
func (r *PgxRefundRepository) ListRefunds(ctx context.Context) ([]domain.Refund, error) {
	query := `SELECT ` + refundColumns + `
		FROM refunds
		ORDER BY created_at DESC;`
	return r.queryRefunds(ctx, query)
}

// FindRefundPaymentsByRefundID retrieves the allocation rows of a refund.
func (r *PgxRefundRepository) FindRefundPaymentsByRefundID(ctx context.Context, refundID int64) ([]domain.RefundPayment, error) {
	query := `
		SELECT refund_id, payment_id, amount_refunded
		FROM refund_payments
		WHERE refund_id = $1
		ORDER BY payment_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, refundID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query refund payments", err)
	}
	defer rows.Close()

	var allocations []domain.RefundPayment
	for rows.Next() {
		var a domain.RefundPayment
		if err := rows.Scan(&a.RefundID, &a.PaymentID, &a.AmountRefunded); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan refund payment row", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate refund payment rows", err)
	}
	return allocations, nil
}

// FindStaleUnacknowledgedRefunds retrieves completed, unacknowledged refunds
// last updated before the cutoff. Input for the acknowledgement sweep.
func (r *PgxRefundRepository) FindStaleUnacknowledgedRefunds(ctx context.Context, cutoff time.Time) ([]domain.Refund, error) {
	query := `SELECT ` + refundColumns + `
		FROM refunds
		WHERE status = 'COMPLETED' AND NOT acknowledged AND last_updated_at < $1
		ORDER BY last_updated_at ASC;`
	return r.queryRefunds(ctx, query, cutoff)
}

// SaveRefund inserts the refund, its allocation rows, the reservation ledger
// update, and the audit entry in one transaction.
func (r *PgxRefundRepository) SaveRefund(ctx context.Context, refund domain.Refund, allocations []domain.RefundPayment, ledger domain.LedgerUpdate, audit domain.AuditLog) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelRefund(refund)
	query := `
		INSERT INTO refunds (
			booking_id, public_entry_id, refund_amount, status, method, reason,
			gcash_reference, gcash_image_url, remarks, acknowledged,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING refund_id;
	`
	var refundID int64
	err = tx.QueryRow(ctx, query,
		m.BookingID,
		m.PublicEntryID,
		m.RefundAmount,
		m.Status,
		m.Method,
		m.Reason,
		m.GcashReference,
		m.GcashImageURL,
		m.Remarks,
		m.Acknowledged,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&refundID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert refund", err)
	}

	batch := &pgx.Batch{}
	allocQuery := `INSERT INTO refund_payments (refund_id, payment_id, amount_refunded) VALUES ($1, $2, $3);`
	for _, a := range allocations {
		batch.Queue(allocQuery, refundID, a.PaymentID, a.AmountRefunded)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert refund allocations for refund "+strconv.FormatInt(refundID, 10), err)
	}

	if err := applyLedgerInTx(ctx, tx, ledger, refund.RefundAmount.Neg(), refund.LastUpdatedAt); err != nil {
		return 0, err
	}

	audit.RecordID = strconv.FormatInt(refundID, 10)
	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return refundID, nil
}

// UpdateRefund persists refund field changes and, when ledger is non-nil,
// applies the reservation adjustment in the same transaction.
func (r *PgxRefundRepository) UpdateRefund(ctx context.Context, refund domain.Refund, ledger *domain.LedgerUpdate, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelRefund(refund)
	query := `
		UPDATE refunds
		SET status = $1,
		    remarks = $2,
		    acknowledged = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE refund_id = $6;
	`
	tag, err := tx.Exec(ctx, query,
		m.Status,
		m.Remarks,
		m.Acknowledged,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.RefundID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update refund "+strconv.FormatInt(m.RefundID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refund %d: %w", m.RefundID, apperrors.ErrNotFound)
	}

	if ledger != nil {
		if err := applyLedgerInTx(ctx, tx, *ledger, refund.RefundAmount.Neg(), refund.LastUpdatedAt); err != nil {
			return err
		}
	}

	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
