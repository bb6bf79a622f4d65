package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// applyLedgerInTx applies a reservation balance and status adjustment within
// an existing transaction. It is the write half of the atomic ledger
// invariant: a payment or refund row never commits without its parent
// reservation's adjusted balances.
//
// The reservation row is re-read FOR UPDATE and the delta applied against the
// locked balances, so concurrent writers serialize on the row and a stale
// service-side read cannot overwrite another committer's effect.
func applyLedgerInTx(ctx context.Context, tx pgx.Tx, ledger domain.LedgerUpdate, delta decimal.Decimal, now time.Time) error {
	table, idCol := "bookings", "booking_id"
	if ledger.Ref.Kind == domain.KindPublicEntry {
		table, idCol = "public_entries", "public_entry_id"
	}

	lockQuery := fmt.Sprintf(`SELECT amount_paid, remaining_balance FROM %s WHERE %s = $1 FOR UPDATE;`, table, idCol)
	var amountPaid, remainingBalance decimal.Decimal
	if err := tx.QueryRow(ctx, lockQuery, ledger.Ref.ID).Scan(&amountPaid, &remainingBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("ledger update target %s: %w", ledger.Ref, apperrors.ErrNotFound)
		}
		return apperrors.NewAppError(500, "failed to lock reservation row for "+ledger.Ref.String(), err)
	}

	newPaid, newRemaining, err := adjustBalances(amountPaid, remainingBalance, delta)
	if err != nil {
		return fmt.Errorf("%w for %s", err, ledger.Ref)
	}

	var cancelCategory *string
	if ledger.CancelCategory != nil {
		s := string(*ledger.CancelCategory)
		cancelCategory = &s
	}
	var cancelReason *string
	if ledger.CancelReason != "" {
		cancelReason = &ledger.CancelReason
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1,
		    payment_status = $2,
		    amount_paid = $3,
		    remaining_balance = $4,
		    cancel_category = COALESCE($5, cancel_category),
		    cancel_reason = COALESCE($6, cancel_reason),
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE %s = $9;
	`, table, idCol)

	_, err = tx.Exec(ctx, query,
		string(ledger.Status),
		string(domain.DerivePaymentStatus(newPaid, newRemaining)),
		newPaid,
		newRemaining,
		cancelCategory,
		cancelReason,
		now,
		ledger.UpdatedBy,
		ledger.Ref.ID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply ledger update to "+ledger.Ref.String(), err)
	}
	return nil
}

// adjustBalances applies a signed money delta to a reservation's locked
// balances. The delta moves money into paid (positive, a payment) or out of it
// (negative, a refund or void); either balance going negative means the
// caller's view of the reservation raced a concurrent committer.
func adjustBalances(amountPaid, remainingBalance, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	newPaid := amountPaid.Add(delta)
	newRemaining := remainingBalance.Sub(delta)
	if newPaid.IsNegative() || newRemaining.IsNegative() {
		return decimal.Decimal{}, decimal.Decimal{}, fmt.Errorf("%w: ledger adjustment of %s would drive balances negative", apperrors.ErrConflict, delta)
	}
	return newPaid, newRemaining, nil
}
