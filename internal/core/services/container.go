package services

import (
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// NewServiceContainer wires all application services against the repository
// provider. retention is the refund retention fraction from configuration.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, retention decimal.Decimal) *portssvc.ServiceContainer {
	conflicts := NewConflictService(repos.BlockedDateRepo, repos.PublicEntryRepo, repos.BookingRepo)
	rates := NewRateService(repos.RateRepo, repos.PermissionRepo)

	return &portssvc.ServiceContainer{
		Booking:     NewBookingService(repos.BookingRepo, repos.PaymentRepo, repos.RefundRepo, repos.PermissionRepo, conflicts, retention),
		PublicEntry: NewPublicEntryService(repos.PublicEntryRepo, repos.PaymentRepo, repos.RefundRepo, repos.PermissionRepo, conflicts, rates, retention),
		Rate:        rates,
		Refund:      NewRefundService(repos.RefundRepo, repos.PaymentRepo, repos.BookingRepo, repos.PublicEntryRepo, repos.PermissionRepo, retention),
		Payment:     NewPaymentService(repos.PaymentRepo, repos.BookingRepo, repos.PublicEntryRepo, repos.PermissionRepo),
		BlockedDate: NewBlockedDateService(repos.BlockedDateRepo, repos.PermissionRepo),
		Conflict:    conflicts,
	}
}
