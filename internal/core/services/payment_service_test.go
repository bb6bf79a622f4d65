package services_test

import (
	"context"
	"testing"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/core/services"
	"github.com/aquaverde/resort_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo     *MockPaymentRepository
	mockBookingRepo     *MockBookingRepository
	mockPublicEntryRepo *MockPublicEntryRepository
	mockPermissionRepo  *MockPermissionRepository
	service             portssvc.PaymentSvcFacade
	userID              string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockPublicEntryRepo = new(MockPublicEntryRepository)
	suite.mockPermissionRepo = new(MockPermissionRepository)
	suite.mockPermissionRepo.allowAll()
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockBookingRepo,
		suite.mockPublicEntryRepo,
		suite.mockPermissionRepo,
	)
	suite.userID = "staff-1"
}

func (suite *PaymentServiceTestSuite) openBooking() *domain.Booking {
	return &domain.Booking{
		BookingID:        42,
		Status:           domain.StatusConfirmed,
		TotalAmount:      decimal.NewFromInt(5000),
		AmountPaid:       decimal.NewFromInt(1000),
		RemainingBalance: decimal.NewFromInt(4000),
		PaymentStatus:    domain.PayPartiallyPaid,
	}
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	ref := domain.BookingRef(42)
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.openBooking(), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.NetPaidAmount.Equal(decimal.NewFromInt(2000)) &&
				p.Status == domain.PaymentValid &&
				p.Method == domain.MethodGcash
		}),
		mock.MatchedBy(func(l domain.LedgerUpdate) bool {
			return l.Status == domain.StatusConfirmed &&
				l.AmountPaid.Equal(decimal.NewFromInt(3000)) &&
				l.RemainingBalance.Equal(decimal.NewFromInt(2000)) &&
				l.PaymentStatus == domain.PayPartiallyPaid
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(int64(15), nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(2000), Method: domain.MethodGcash}
	payment, err := suite.service.RecordPayment(ctx, ref, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(15), payment.PaymentID)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_SettlesBalance() {
	ctx := context.Background()
	ref := domain.BookingRef(42)
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.openBooking(), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"),
		mock.MatchedBy(func(l domain.LedgerUpdate) bool {
			return l.PaymentStatus == domain.PayFullyPaid && l.RemainingBalance.IsZero()
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(int64(16), nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(4000), Method: domain.MethodCash}
	_, err := suite.service.RecordPayment(ctx, ref, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordPaymentRequest{Amount: decimal.Zero, Method: domain.MethodCash}

	_, err := suite.service.RecordPayment(ctx, domain.BookingRef(42), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindBookingByID", mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_OverpaymentRejected() {
	ctx := context.Background()
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.openBooking(), nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(4500), Method: domain.MethodCash}
	_, err := suite.service.RecordPayment(ctx, domain.BookingRef(42), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "exceeds remaining balance")
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_TerminalReservationRejected() {
	ctx := context.Background()
	booking := suite.openBooking()
	booking.Status = domain.StatusCancelled
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(booking, nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(500), Method: domain.MethodCash}
	_, err := suite.service.RecordPayment(ctx, domain.BookingRef(42), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PublicEntryRef() {
	ctx := context.Background()
	entry := &domain.PublicEntry{
		PublicEntryID:    9,
		Status:           domain.StatusReserved,
		TotalAmount:      decimal.NewFromInt(380),
		AmountPaid:       decimal.Zero,
		RemainingBalance: decimal.NewFromInt(380),
		PaymentStatus:    domain.PayUnpaid,
	}
	suite.mockPublicEntryRepo.On("FindPublicEntryByID", ctx, int64(9)).Return(entry, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"),
		mock.MatchedBy(func(l domain.LedgerUpdate) bool {
			return l.Ref == domain.PublicEntryRef(9) && l.PaymentStatus == domain.PayPartiallyPaid
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(int64(20), nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.NewFromInt(100), Method: domain.MethodCash}
	_, err := suite.service.RecordPayment(ctx, domain.PublicEntryRef(9), req, suite.userID)

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindBookingByID", mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVoidPayment_ReversesLedger() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID:     15,
		Reservation:   domain.BookingRef(42),
		NetPaidAmount: decimal.NewFromInt(1000),
		Method:        domain.MethodCash,
		Status:        domain.PaymentValid,
	}
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, int64(15)).Return(payment, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.openBooking(), nil).Once()
	suite.mockPaymentRepo.On("VoidPayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.Status == domain.PaymentVoided && p.PaymentID == 15
		}),
		mock.MatchedBy(func(l domain.LedgerUpdate) bool {
			return l.AmountPaid.IsZero() &&
				l.RemainingBalance.Equal(decimal.NewFromInt(5000)) &&
				l.PaymentStatus == domain.PayUnpaid
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(nil).Once()

	err := suite.service.VoidPayment(ctx, 15, suite.userID)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVoidPayment_AlreadyVoided() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID:     15,
		Reservation:   domain.BookingRef(42),
		NetPaidAmount: decimal.NewFromInt(1000),
		Status:        domain.PaymentVoided,
	}
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, int64(15)).Return(payment, nil).Once()

	err := suite.service.VoidPayment(ctx, 15, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindBookingByID", mock.Anything, mock.Anything)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "VoidPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestVoidPayment_TerminalReservationRejected() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID:     15,
		Reservation:   domain.BookingRef(42),
		NetPaidAmount: decimal.NewFromInt(1000),
		Status:        domain.PaymentValid,
	}
	booking := suite.openBooking()
	booking.Status = domain.StatusCompleted
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, int64(15)).Return(payment, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(booking, nil).Once()

	err := suite.service.VoidPayment(ctx, 15, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "VoidPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestVoidPayment_NegativePaidRejected() {
	ctx := context.Background()
	payment := &domain.Payment{
		PaymentID:     15,
		Reservation:   domain.BookingRef(42),
		NetPaidAmount: decimal.NewFromInt(2000),
		Status:        domain.PaymentValid,
	}
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, int64(15)).Return(payment, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.openBooking(), nil).Once()

	err := suite.service.VoidPayment(ctx, 15, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "VoidPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestListPaymentsForReservation_UnknownReservation() {
	ctx := context.Background()
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListPaymentsForReservation(ctx, domain.BookingRef(99))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ListPaymentsByReservation", mock.Anything, mock.Anything)
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
