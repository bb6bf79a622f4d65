package mapping

import (
	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/models"
)

// ToModelPublicEntry converts a domain PublicEntry to a model PublicEntry.
func ToModelPublicEntry(d domain.PublicEntry) models.PublicEntry {
	return models.PublicEntry{
		PublicEntryID:    d.PublicEntryID,
		GuestName:        d.GuestName,
		ContactNumber:    d.ContactNumber,
		Email:            d.Email,
		EntryDate:        d.EntryDate,
		Mode:             string(d.Mode),
		AdultCount:       d.AdultCount,
		KidCount:         d.KidCount,
		AdultRateID:      d.AdultRateID,
		KidRateID:        d.KidRateID,
		DiscountPercent:  d.DiscountPercent,
		Status:           string(d.Status),
		TotalAmount:      d.TotalAmount,
		AmountPaid:       d.AmountPaid,
		RemainingBalance: d.RemainingBalance,
		PaymentStatus:    string(d.PaymentStatus),
		CancelCategory:   nullableCancelCategory(d.CancelCategory),
		CancelReason:     nullableString(d.CancelReason),
		AuditFields:      toModelAudit(d.AuditFields),
	}
}

// ToDomainPublicEntry converts a model PublicEntry to a domain PublicEntry.
func ToDomainPublicEntry(m models.PublicEntry) domain.PublicEntry {
	return domain.PublicEntry{
		PublicEntryID:    m.PublicEntryID,
		GuestName:        m.GuestName,
		ContactNumber:    m.ContactNumber,
		Email:            m.Email,
		EntryDate:        m.EntryDate,
		Mode:             domain.TimeMode(m.Mode),
		AdultCount:       m.AdultCount,
		KidCount:         m.KidCount,
		AdultRateID:      m.AdultRateID,
		KidRateID:        m.KidRateID,
		DiscountPercent:  m.DiscountPercent,
		Status:           domain.ReservationStatus(m.Status),
		TotalAmount:      m.TotalAmount,
		AmountPaid:       m.AmountPaid,
		RemainingBalance: m.RemainingBalance,
		PaymentStatus:    domain.PaymentStatus(m.PaymentStatus),
		CancelCategory:   toDomainCancelCategory(m.CancelCategory),
		CancelReason:     stringOrEmpty(m.CancelReason),
		AuditFields:      toDomainAudit(m.AuditFields),
	}
}

// ToDomainPublicEntrySlice converts model PublicEntries to domain PublicEntries.
func ToDomainPublicEntrySlice(ms []models.PublicEntry) []domain.PublicEntry {
	ds := make([]domain.PublicEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPublicEntry(m)
	}
	return ds
}
