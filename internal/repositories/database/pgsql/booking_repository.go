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

type PgxBookingRepository struct {
	BaseRepository
	auditRepo portsrepo.AuditRepositoryFacade
}

// newPgxBookingRepository creates a new repository for booking data.
func newPgxBookingRepository(pool *pgxpool.Pool, auditRepo portsrepo.AuditRepositoryFacade) portsrepo.BookingRepositoryFacade {
	return &PgxBookingRepository{
		BaseRepository: BaseRepository{Pool: pool},
		auditRepo:      auditRepo,
	}
}

var _ portsrepo.BookingRepositoryFacade = (*PgxBookingRepository)(nil)

const bookingColumns = `
	booking_id, guest_name, contact_number, email, check_in_date, check_out_date,
	mode, status, total_amount, amount_paid, remaining_balance, payment_status,
	cancel_category, cancel_reason, created_at, created_by, last_updated_at, last_updated_by
`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var m models.Booking
	err := row.Scan(
		&m.BookingID,
		&m.GuestName,
		&m.ContactNumber,
		&m.Email,
		&m.CheckInDate,
		&m.CheckOutDate,
		&m.Mode,
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

// FindBookingByID retrieves a booking by its ID.
func (r *PgxBookingRepository) FindBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1;`

	m, err := scanBooking(r.Pool.QueryRow(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", bookingID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find booking "+strconv.FormatInt(bookingID, 10), err)
	}
	booking := mapping.ToDomainBooking(*m)
	return &booking, nil
}

// ListBookings retrieves a page of bookings ordered by check-in date, newest
// first, using token-based keyset pagination.
func (r *PgxBookingRepository) ListBookings(ctx context.Context, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY check_in_date DESC, created_at DESC
		LIMIT $1;`
	args := []any{limit + 1}

	if nextToken != nil && *nextToken != "" {
		checkInDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query = `SELECT ` + bookingColumns + `
			FROM bookings
			WHERE (check_in_date, created_at) < ($1, $2)
			ORDER BY check_in_date DESC, created_at DESC
			LIMIT $3;`
		args = []any{checkInDate, createdAt, limit + 1}
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list bookings", err)
	}
	defer rows.Close()

	var ms []models.Booking
	for rows.Next() {
		m, serr := scanBooking(rows)
		if serr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan booking row", serr)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate booking rows", err)
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.CheckInDate, last.CreatedAt)
		token = &t
	}
	return mapping.ToDomainBookingSlice(ms), token, nil
}

// FindActiveBookingsByDate retrieves non-terminal bookings on the given
// calendar date, optionally excluding one booking.
func (r *PgxBookingRepository) FindActiveBookingsByDate(ctx context.Context, date time.Time, excludeID *int64) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE check_in_date::date = $1::date
		  AND status NOT IN ('CANCELLED', 'COMPLETED')
		  AND ($2::bigint IS NULL OR booking_id <> $2);`

	rows, err := r.Pool.Query(ctx, query, date, excludeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find bookings by date", err)
	}
	defer rows.Close()

	var ms []models.Booking
	for rows.Next() {
		m, serr := scanBooking(rows)
		if serr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan booking row", serr)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate booking rows", err)
	}
	return mapping.ToDomainBookingSlice(ms), nil
}

// FindExpiredBookings retrieves confirmed or rescheduled bookings whose
// check-in date falls before the cutoff. Input for the forfeit sweep.
func (r *PgxBookingRepository) FindExpiredBookings(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status IN ('CONFIRMED', 'RESCHEDULED')
		  AND check_in_date < $1;`

	rows, err := r.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find expired bookings", err)
	}
	defer rows.Close()

	var ms []models.Booking
	for rows.Next() {
		m, serr := scanBooking(rows)
		if serr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan booking row", serr)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate booking rows", err)
	}
	return mapping.ToDomainBookingSlice(ms), nil
}

// SaveBooking inserts a booking and its audit entry within one transaction
// and returns the assigned identifier.
func (r *PgxBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking, audit domain.AuditLog) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBooking(booking)
	query := `
		INSERT INTO bookings (
			guest_name, contact_number, email, check_in_date, check_out_date,
			mode, status, total_amount, amount_paid, remaining_balance, payment_status,
			cancel_category, cancel_reason, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING booking_id;
	`
	var bookingID int64
	err = tx.QueryRow(ctx, query,
		m.GuestName,
		m.ContactNumber,
		m.Email,
		m.CheckInDate,
		m.CheckOutDate,
		m.Mode,
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
	).Scan(&bookingID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert booking", err)
	}

	audit.RecordID = strconv.FormatInt(bookingID, 10)
	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return bookingID, nil
}

// UpdateBooking persists all mutable fields of a booking plus its audit entry
// within one transaction.
func (r *PgxBookingRepository) UpdateBooking(ctx context.Context, booking domain.Booking, audit domain.AuditLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBooking(booking)
	query := `
		UPDATE bookings
		SET guest_name = $1,
		    contact_number = $2,
		    email = $3,
		    check_in_date = $4,
		    check_out_date = $5,
		    mode = $6,
		    status = $7,
		    total_amount = $8,
		    amount_paid = $9,
		    remaining_balance = $10,
		    payment_status = $11,
		    cancel_category = $12,
		    cancel_reason = $13,
		    last_updated_at = $14,
		    last_updated_by = $15
		WHERE booking_id = $16;
	`
	tag, err := tx.Exec(ctx, query,
		m.GuestName,
		m.ContactNumber,
		m.Email,
		m.CheckInDate,
		m.CheckOutDate,
		m.Mode,
		m.Status,
		m.TotalAmount,
		m.AmountPaid,
		m.RemainingBalance,
		m.PaymentStatus,
		m.CancelCategory,
		m.CancelReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.BookingID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update booking "+strconv.FormatInt(m.BookingID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %d: %w", m.BookingID, apperrors.ErrNotFound)
	}

	if err := r.auditRepo.InsertAuditLogInTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
