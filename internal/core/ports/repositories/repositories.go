package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	BookingRepo     BookingRepositoryFacade
	PublicEntryRepo PublicEntryRepositoryFacade
	RateRepo        RateRepositoryFacade
	BlockedDateRepo BlockedDateRepositoryFacade
	PaymentRepo     PaymentRepositoryFacade
	RefundRepo      RefundRepositoryFacade
	AuditRepo       AuditRepositoryFacade
	PermissionRepo  PermissionRepositoryFacade
}
