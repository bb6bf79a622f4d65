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

type PgxPaymentRepository struct {
	BaseRepository
	auditRepo portsrepo.AuditRepositoryFacade
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool, auditRepo portsrepo.AuditRepositoryFacade) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		auditRepo:      auditRepo,
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `
	payment_id, booking_id, public_entry_id, net_paid_amount, method, status, remarks,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.BookingID,
		&m.PublicEntryID,
		&m.NetPaidAmount,
		&m.Method,
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

// refWhereClause builds the reservation filter for the nullable column pair.
func refWhereClause(ref domain.ReservationRef) (string, int64) {
	if ref.Kind == domain.KindPublicEntry {
		return "public_entry_id = $1", ref.ID
	}
	return "booking_id = $1", ref.ID
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment %d: %w", paymentID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find payment "+strconv.FormatInt(paymentID, 10), err)
	}
	payment := mapping.ToDomainPayment(*m)
	return &payment, nil
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()

	var ms []models.Payment
	for rows.Next() {
		m, serr := scanPayment(rows)
		if serr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", serr)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate payment rows", err)
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}

// FindValidPaymentsByReservation retrieves every VALID payment for a
// reservation, oldest first.
func (r *PgxPaymentRepository) FindValidPaymentsByReservation(ctx context.Context, ref domain.ReservationRef) ([]domain.Payment, error) {
	where, id := refWhereClause(ref)
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE ` + where + ` AND status = 'VALID'
		ORDER BY created_at ASC;`
	return r.queryPayments(ctx, query, id)
}

// ListPaymentsByReservation retrieves every payment for a reservation
// regardless of status, oldest first.
func (r *PgxPaymentRepository) ListPaymentsByReservation(ctx context.Context, ref domain.ReservationRef) ([]domain.Payment, error) {
	where, id := refWhereClause(ref)
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE ` + where + `
		ORDER BY created_at ASC;`
	return r.queryPayments(ctx, query, id)
}

// SavePayment inserts a payment, applies the reservation ledger update, and
// writes the audit entry in one transaction.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, ledger domain.LedgerUpdate, audit domain.AuditLog) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (booking_id, public_entry_id, net_paid_amount, method, status, remarks, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING payment_id;
	`
	var paymentID int64
	err = tx.QueryRow(ctx, query,
		m.BookingID,
		m.PublicEntryID,
		m.NetPaidAmount,
		m.Method,
		m.Status,
		m.Remarks,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&paymentID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert payment", err)
	}

	if err := applyLedgerInTx(ctx, tx, ledger, payment.NetPaidAmount, payment.LastUpdatedAt); err != nil {
		return 0, err
	}

	audit.RecordID = strconv.FormatInt(paymentID, 10)
	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return paymentID, nil
}

// VoidPayment marks a payment voided and applies the reversing ledger update
// in one transaction.
func (r *PgxPaymentRepository) VoidPayment(ctx context.Context, payment domain.Payment, ledger domain.LedgerUpdate, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	tag, err := tx.Exec(ctx,
		`UPDATE payments SET status = 'VOIDED', last_updated_at = $1, last_updated_by = $2 WHERE payment_id = $3 AND status = 'VALID';`,
		now, payment.LastUpdatedBy, payment.PaymentID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void payment "+strconv.FormatInt(payment.PaymentID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("valid payment %d: %w", payment.PaymentID, apperrors.ErrNotFound)
	}

	if err := applyLedgerInTx(ctx, tx, ledger, payment.NetPaidAmount.Neg(), now); err != nil {
		return err
	}

	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
