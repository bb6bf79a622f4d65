package mapping

import (
	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/models"
)

// ToModelBlockedDate converts a domain BlockedDate to a model BlockedDate.
func ToModelBlockedDate(d domain.BlockedDate) models.BlockedDate {
	return models.BlockedDate{
		BlockedDateID: d.BlockedDateID,
		Date:          d.Date,
		Category:      string(d.Category),
		Status:        string(d.Status),
		Remarks:       nullableString(d.Remarks),
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainBlockedDate converts a model BlockedDate to a domain BlockedDate.
func ToDomainBlockedDate(m models.BlockedDate) domain.BlockedDate {
	return domain.BlockedDate{
		BlockedDateID: m.BlockedDateID,
		Date:          m.Date,
		Category:      domain.CancelCategory(m.Category),
		Status:        domain.BlockedDateStatus(m.Status),
		Remarks:       stringOrEmpty(m.Remarks),
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToDomainBlockedDateSlice converts model blocked dates to domain blocked dates.
func ToDomainBlockedDateSlice(ms []models.BlockedDate) []domain.BlockedDate {
	ds := make([]domain.BlockedDate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBlockedDate(m)
	}
	return ds
}
