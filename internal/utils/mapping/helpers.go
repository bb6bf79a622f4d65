package mapping

import (
	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/models"
)

// toModelAudit converts domain audit fields to model audit fields.
func toModelAudit(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// toDomainAudit converts model audit fields to domain audit fields.
func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// nullableString maps an empty string to nil for nullable columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullableCancelCategory(c *domain.CancelCategory) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}

func toDomainCancelCategory(s *string) *domain.CancelCategory {
	if s == nil {
		return nil
	}
	c := domain.CancelCategory(*s)
	return &c
}

// RefToColumns splits a tagged reservation reference into the nullable
// booking_id / public_entry_id column pair.
func RefToColumns(ref domain.ReservationRef) (bookingID, publicEntryID *int64) {
	id := ref.ID
	if ref.Kind == domain.KindBooking {
		return &id, nil
	}
	return nil, &id
}

// ColumnsToRef reassembles a tagged reference from the nullable column pair.
// Rows with both or neither column set do not occur; booking takes precedence
// if storage is ever inconsistent.
func ColumnsToRef(bookingID, publicEntryID *int64) domain.ReservationRef {
	if bookingID != nil {
		return domain.BookingRef(*bookingID)
	}
	if publicEntryID != nil {
		return domain.PublicEntryRef(*publicEntryID)
	}
	return domain.ReservationRef{}
}
