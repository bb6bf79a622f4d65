package mapping

import (
	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/models"
)

// ToModelRefund converts a domain Refund to a model Refund.
func ToModelRefund(d domain.Refund) models.Refund {
	bookingID, publicEntryID := RefToColumns(d.Reservation)
	return models.Refund{
		RefundID:       d.RefundID,
		BookingID:      bookingID,
		PublicEntryID:  publicEntryID,
		RefundAmount:   d.RefundAmount,
		Status:         string(d.Status),
		Method:         string(d.Method),
		Reason:         d.Reason,
		GcashReference: nullableString(d.GcashReference),
		GcashImageURL:  nullableString(d.GcashImageURL),
		Remarks:        nullableString(d.Remarks),
		Acknowledged:   d.Acknowledged,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

// ToDomainRefund converts a model Refund to a domain Refund.
func ToDomainRefund(m models.Refund) domain.Refund {
	return domain.Refund{
		RefundID:       m.RefundID,
		Reservation:    ColumnsToRef(m.BookingID, m.PublicEntryID),
		RefundAmount:   m.RefundAmount,
		Status:         domain.RefundStatus(m.Status),
		Method:         domain.PaymentMethod(m.Method),
		Reason:         m.Reason,
		GcashReference: stringOrEmpty(m.GcashReference),
		GcashImageURL:  stringOrEmpty(m.GcashImageURL),
		Remarks:        stringOrEmpty(m.Remarks),
		Acknowledged:   m.Acknowledged,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

// ToDomainRefundSlice converts model refunds to domain refunds.
func ToDomainRefundSlice(ms []models.Refund) []domain.Refund {
	ds := make([]domain.Refund, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRefund(m)
	}
	return ds
}
