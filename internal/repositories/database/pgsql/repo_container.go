package pgsql

import (
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	auditRepo := newPgxAuditRepository(dbPool)
	bookingRepo := newPgxBookingRepository(dbPool, auditRepo)
	publicEntryRepo := newPgxPublicEntryRepository(dbPool, auditRepo)
	rateRepo := newPgxRateRepository(dbPool, auditRepo)
	blockedDateRepo := newPgxBlockedDateRepository(dbPool, auditRepo)
	paymentRepo := newPgxPaymentRepository(dbPool, auditRepo)
	refundRepo := newPgxRefundRepository(dbPool, auditRepo)
	permissionRepo := newPgxPermissionRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BookingRepo:     bookingRepo,
		PublicEntryRepo: publicEntryRepo,
		RateRepo:        rateRepo,
		BlockedDateRepo: blockedDateRepo,
		PaymentRepo:     paymentRepo,
		RefundRepo:      refundRepo,
		AuditRepo:       auditRepo,
		PermissionRepo:  permissionRepo,
	}
}
