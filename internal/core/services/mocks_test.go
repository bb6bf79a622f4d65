package services_test

import (
	"context"
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// Shared repository and service mocks used by the service test suites.

// --- Mock BookingRepository ---
type MockBookingRepository struct {
	mock.Mock
}

var _ portsrepo.BookingRepositoryFacade = (*MockBookingRepository)(nil)

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookings(ctx context.Context, limit int, nextToken *string) ([]domain.Booking, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Booking), returnedNextToken, args.Error(2)
}

func (m *MockBookingRepository) FindActiveBookingsByDate(ctx context.Context, date time.Time, excludeID *int64) ([]domain.Booking, error) {
	args := m.Called(ctx, date, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindExpiredBookings(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking, audit domain.AuditLog) (int64, error) {
	args := m.Called(ctx, booking, audit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) UpdateBooking(ctx context.Context, booking domain.Booking, audit domain.AuditLog) error {
	args := m.Called(ctx, booking, audit)
	return args.Error(0)
}

// --- Mock PublicEntryRepository ---
type MockPublicEntryRepository struct {
	mock.Mock
}

var _ portsrepo.PublicEntryRepositoryFacade = (*MockPublicEntryRepository)(nil)

func (m *MockPublicEntryRepository) FindPublicEntryByID(ctx context.Context, publicEntryID int64) (*domain.PublicEntry, error) {
	args := m.Called(ctx, publicEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicEntry), args.Error(1)
}

func (m *MockPublicEntryRepository) ListPublicEntries(ctx context.Context, limit int, nextToken *string) ([]domain.PublicEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.PublicEntry), returnedNextToken, args.Error(2)
}

func (m *MockPublicEntryRepository) FindActivePublicEntriesByDate(ctx context.Context, date time.Time, excludeID *int64) ([]domain.PublicEntry, error) {
	args := m.Called(ctx, date, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicEntry), args.Error(1)
}

func (m *MockPublicEntryRepository) SavePublicEntry(ctx context.Context, entry domain.PublicEntry, audit domain.AuditLog) (int64, error) {
	args := m.Called(ctx, entry, audit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPublicEntryRepository) UpdatePublicEntry(ctx context.Context, entry domain.PublicEntry, audit domain.AuditLog) error {
	args := m.Called(ctx, entry, audit)
	return args.Error(0)
}

// --- Mock RateRepository ---
type MockRateRepository struct {
	mock.Mock
}

var _ portsrepo.RateRepositoryFacade = (*MockRateRepository)(nil)

func (m *MockRateRepository) FindRateByID(ctx context.Context, rateID int64) (*domain.PublicEntryRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicEntryRate), args.Error(1)
}

func (m *MockRateRepository) FindActiveRate(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) (*domain.PublicEntryRate, error) {
	args := m.Called(ctx, category, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicEntryRate), args.Error(1)
}

func (m *MockRateRepository) FindActiveRates(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) ([]domain.PublicEntryRate, error) {
	args := m.Called(ctx, category, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicEntryRate), args.Error(1)
}

func (m *MockRateRepository) FindInactiveRates(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) ([]domain.PublicEntryRate, error) {
	args := m.Called(ctx, category, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicEntryRate), args.Error(1)
}

func (m *MockRateRepository) ListRates(ctx context.Context) ([]domain.PublicEntryRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicEntryRate), args.Error(1)
}

func (m *MockRateRepository) SaveRate(ctx context.Context, rate domain.PublicEntryRate, audit domain.AuditLog) (int64, error) {
	args := m.Called(ctx, rate, audit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateRepository) ActivateRate(ctx context.Context, rateID int64, deactivateIDs []int64, audits []domain.AuditLog, updatedBy string) error {
	args := m.Called(ctx, rateID, deactivateIDs, audits, updatedBy)
	return args.Error(0)
}

func (m *MockRateRepository) DeactivateRate(ctx context.Context, rateID int64, promoteRateID *int64, audits []domain.AuditLog, updatedBy string) error {
	args := m.Called(ctx, rateID, promoteRateID, audits, updatedBy)
	return args.Error(0)
}

func (m *MockRateRepository) DeleteRate(ctx context.Context, rateID int64, promoteRateID *int64, audits []domain.AuditLog, updatedBy string) error {
	args := m.Called(ctx, rateID, promoteRateID, audits, updatedBy)
	return args.Error(0)
}

// --- Mock BlockedDateRepository ---
type MockBlockedDateRepository struct {
	mock.Mock
}

var _ portsrepo.BlockedDateRepositoryFacade = (*MockBlockedDateRepository)(nil)

func (m *MockBlockedDateRepository) FindActiveBlockByDate(ctx context.Context, date time.Time) (*domain.BlockedDate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockedDate), args.Error(1)
}

func (m *MockBlockedDateRepository) FindBlockedDateByID(ctx context.Context, blockedDateID int64) (*domain.BlockedDate, error) {
	args := m.Called(ctx, blockedDateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockedDate), args.Error(1)
}

func (m *MockBlockedDateRepository) ListBlockedDates(ctx context.Context) ([]domain.BlockedDate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BlockedDate), args.Error(1)
}

func (m *MockBlockedDateRepository) SaveBlockedDate(ctx context.Context, block domain.BlockedDate, audit domain.AuditLog) (int64, error) {
	args := m.Called(ctx, block, audit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlockedDateRepository) UpdateBlockedDate(ctx context.Context, block domain.BlockedDate, audit domain.AuditLog) error {
	args := m.Called(ctx, block, audit)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindValidPaymentsByReservation(ctx context.Context, ref domain.ReservationRef) ([]domain.Payment, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByReservation(ctx context.Context, ref domain.ReservationRef) ([]domain.Payment, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, ledger domain.LedgerUpdate, audit domain.AuditLog) (int64, error) {
	args := m.Called(ctx, payment, ledger, audit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) VoidPayment(ctx context.Context, payment domain.Payment, ledger domain.LedgerUpdate, audit domain.AuditLog) error {
	args := m.Called(ctx, payment, ledger, audit)
	return args.Error(0)
}

// --- Mock RefundRepository ---
type MockRefundRepository struct {
	mock.Mock
}

var _ portsrepo.RefundRepositoryFacade = (*MockRefundRepository)(nil)

func (m *MockRefundRepository) FindRefundByID(ctx context.Context, refundID int64) (*domain.Refund, error) {
	args := m.Called(ctx, refundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindCompletedRefundByReservation(ctx context.Context, ref domain.ReservationRef) (*domain.Refund, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) ListRefunds(ctx context.Context) ([]domain.Refund, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindRefundPaymentsByRefundID(ctx context.Context, refundID int64) ([]domain.RefundPayment, error) {
	args := m.Called(ctx, refundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RefundPayment), args.Error(1)
}

func (m *MockRefundRepository) FindStaleUnacknowledgedRefunds(ctx context.Context, cutoff time.Time) ([]domain.Refund, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) SaveRefund(ctx context.Context, refund domain.Refund, allocations []domain.RefundPayment, ledger domain.LedgerUpdate, audit domain.AuditLog) (int64, error) {
	args := m.Called(ctx, refund, allocations, ledger, audit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefundRepository) UpdateRefund(ctx context.Context, refund domain.Refund, ledger *domain.LedgerUpdate, audit domain.AuditLog) error {
	args := m.Called(ctx, refund, ledger, audit)
	return args.Error(0)
}

// --- Mock PermissionRepository ---
type MockPermissionRepository struct {
	mock.Mock
}

var _ portsrepo.PermissionRepositoryFacade = (*MockPermissionRepository)(nil)

func (m *MockPermissionRepository) HasPermission(ctx context.Context, userID, tableName, action string) (bool, error) {
	args := m.Called(ctx, userID, tableName, action)
	return args.Bool(0), args.Error(1)
}

// allowAll wires the permission mock to grant everything, for tests that are
// not about the capability gate.
func (m *MockPermissionRepository) allowAll() {
	m.On("HasPermission", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
}

// --- Mock ConflictChecker ---
type MockConflictChecker struct {
	mock.Mock
}

var _ portssvc.ConflictCheckerSvc = (*MockConflictChecker)(nil)

func (m *MockConflictChecker) CheckConflicts(ctx context.Context, date time.Time, mode domain.TimeMode, exclude portssvc.ConflictExclusions) error {
	args := m.Called(ctx, date, mode, exclude)
	return args.Error(0)
}

// --- Mock RateResolver ---
type MockRateResolver struct {
	mock.Mock
}

var _ portssvc.RateResolverSvc = (*MockRateResolver)(nil)

func (m *MockRateResolver) ResolveActiveRate(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) (*domain.PublicEntryRate, error) {
	args := m.Called(ctx, category, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicEntryRate), args.Error(1)
}
