package mapping

import (
	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment, splitting the
// tagged reservation reference into the nullable column pair.
func ToModelPayment(d domain.Payment) models.Payment {
	bookingID, publicEntryID := RefToColumns(d.Reservation)
	return models.Payment{
		PaymentID:     d.PaymentID,
		BookingID:     bookingID,
		PublicEntryID: publicEntryID,
		NetPaidAmount: d.NetPaidAmount,
		Method:        string(d.Method),
		Status:        string(d.Status),
		Remarks:       nullableString(d.Remarks),
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:     m.PaymentID,
		Reservation:   ColumnsToRef(m.BookingID, m.PublicEntryID),
		NetPaidAmount: m.NetPaidAmount,
		Method:        domain.PaymentMethod(m.Method),
		Status:        domain.PaymentRecordStatus(m.Status),
		Remarks:       stringOrEmpty(m.Remarks),
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts model payments to domain payments.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
