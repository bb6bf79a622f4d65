package mapping

import (
	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/models"
)

// ToModelRate converts a domain PublicEntryRate to a model PublicEntryRate.
func ToModelRate(d domain.PublicEntryRate) models.PublicEntryRate {
	return models.PublicEntryRate{
		RateID:      d.RateID,
		Category:    string(d.Category),
		Mode:        string(d.Mode),
		Rate:        d.Rate,
		IsActive:    d.IsActive,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainRate converts a model PublicEntryRate to a domain PublicEntryRate.
func ToDomainRate(m models.PublicEntryRate) domain.PublicEntryRate {
	return domain.PublicEntryRate{
		RateID:      m.RateID,
		Category:    domain.RateCategory(m.Category),
		Mode:        domain.TimeMode(m.Mode),
		Rate:        m.Rate,
		IsActive:    m.IsActive,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToDomainRateSlice converts model rates to domain rates.
func ToDomainRateSlice(ms []models.PublicEntryRate) []domain.PublicEntryRate {
	ds := make([]domain.PublicEntryRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRate(m)
	}
	return ds
}
