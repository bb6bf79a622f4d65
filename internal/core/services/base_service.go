package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// Resource table names used by the permission gate and audit trail.
const (
	tableBookings     = "bookings"
	tablePublicEntry  = "public_entries"
	tableRates        = "public_entry_rates"
	tableBlockedDates = "blocked_dates"
	tablePayments     = "payments"
	tableRefunds      = "refunds"
)

// Permission actions.
const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
)

// SystemUserID attributes mutations performed by background sweeps.
const SystemUserID = "system"

// checkPermission consults the capability gate and converts a denial into
// apperrors.ErrForbidden.
func checkPermission(ctx context.Context, repo portsrepo.PermissionRepositoryFacade, userID, tableName, action string) error {
	ok, err := repo.HasPermission(ctx, userID, tableName, action)
	if err != nil {
		return fmt.Errorf("permission check for %s on %s failed: %w", action, tableName, err)
	}
	if !ok {
		return fmt.Errorf("%w: user %s may not %s %s", apperrors.ErrForbidden, userID, action, tableName)
	}
	return nil
}

// newAuditLog builds an audit entry with a JSON snapshot of the change.
func newAuditLog(userID, action, tableName, recordID string, payload any, remarks string) domain.AuditLog {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}
	return domain.AuditLog{
		AuditID:   uuid.NewString(),
		UserID:    userID,
		Action:    action,
		TableName: tableName,
		RecordID:  recordID,
		Data:      string(data),
		Remarks:   remarks,
		CreatedAt: time.Now().UTC(),
	}
}

// statusChange is the audit payload recorded for every lifecycle transition.
type statusChange struct {
	From domain.ReservationStatus `json:"from"`
	To   domain.ReservationStatus `json:"to"`
}
