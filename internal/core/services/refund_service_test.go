package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/core/services"
	"github.com/aquaverde/resort_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RefundServiceTestSuite struct {
	suite.Suite
	mockRefundRepo      *MockRefundRepository
	mockPaymentRepo     *MockPaymentRepository
	mockBookingRepo     *MockBookingRepository
	mockPublicEntryRepo *MockPublicEntryRepository
	mockPermissionRepo  *MockPermissionRepository
	service             portssvc.RefundSvcFacade
	userID              string
}

func (suite *RefundServiceTestSuite) SetupTest() {
	suite.mockRefundRepo = new(MockRefundRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.mockPublicEntryRepo = new(MockPublicEntryRepository)
	suite.mockPermissionRepo = new(MockPermissionRepository)
	suite.mockPermissionRepo.allowAll()
	suite.service = services.NewRefundService(
		suite.mockRefundRepo,
		suite.mockPaymentRepo,
		suite.mockBookingRepo,
		suite.mockPublicEntryRepo,
		suite.mockPermissionRepo,
		decimal.NewFromFloat(0.5),
	)
	suite.userID = "staff-1"
}

func (suite *RefundServiceTestSuite) paidBooking() *domain.Booking {
	return &domain.Booking{
		BookingID:        42,
		Status:           domain.StatusConfirmed,
		TotalAmount:      decimal.NewFromInt(5000),
		AmountPaid:       decimal.NewFromInt(1000),
		RemainingBalance: decimal.NewFromInt(4000),
		PaymentStatus:    domain.PayPartiallyPaid,
	}
}

func (suite *RefundServiceTestSuite) issueReq() dto.IssueRefundRequest {
	return dto.IssueRefundRequest{
		Method:         domain.MethodCash,
		Reason:         "typhoon cancellation",
		CancelCategory: domain.CancelNaturalDisaster,
		CancelReason:   "typhoon",
	}
}

func (suite *RefundServiceTestSuite) TestIssueRefund_SplitsAllocationsProportionally() {
	ctx := context.Background()
	ref := domain.BookingRef(42)
	payments := []domain.Payment{
		{PaymentID: 1, Reservation: ref, NetPaidAmount: decimal.NewFromInt(600), Status: domain.PaymentValid},
		{PaymentID: 2, Reservation: ref, NetPaidAmount: decimal.NewFromInt(400), Status: domain.PaymentValid},
	}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.paidBooking(), nil).Once()
	suite.mockPaymentRepo.On("FindValidPaymentsByReservation", ctx, ref).Return(payments, nil).Once()
	suite.mockRefundRepo.On("FindCompletedRefundByReservation", ctx, ref).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRefundRepo.On("SaveRefund", ctx,
		mock.MatchedBy(func(r domain.Refund) bool {
			return r.RefundAmount.Equal(decimal.NewFromInt(500)) &&
				r.Status == domain.RefundCompleted &&
				r.Method == domain.MethodCash &&
				!r.Acknowledged
		}),
		mock.MatchedBy(func(allocs []domain.RefundPayment) bool {
			if len(allocs) != 2 {
				return false
			}
			return allocs[0].PaymentID == 1 && allocs[0].AmountRefunded.Equal(decimal.NewFromInt(300)) &&
				allocs[1].PaymentID == 2 && allocs[1].AmountRefunded.Equal(decimal.NewFromInt(200))
		}),
		mock.MatchedBy(func(l domain.LedgerUpdate) bool {
			return l.Status == domain.StatusCancelled &&
				l.AmountPaid.Equal(decimal.NewFromInt(500)) &&
				l.RemainingBalance.Equal(decimal.NewFromInt(4500))
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(int64(3), nil).Once()

	refund, err := suite.service.IssueRefund(ctx, ref, suite.issueReq(), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(3), refund.RefundID)
	suite.True(refund.RefundAmount.Equal(decimal.NewFromInt(500)))
	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestIssueRefund_SubCentPaymentsNeverAllocateNegative() {
	ctx := context.Background()
	ref := domain.BookingRef(42)
	cent := decimal.NewFromFloat(0.01)
	payments := []domain.Payment{
		{PaymentID: 1, Reservation: ref, NetPaidAmount: cent, Status: domain.PaymentValid},
		{PaymentID: 2, Reservation: ref, NetPaidAmount: cent, Status: domain.PaymentValid},
		{PaymentID: 3, Reservation: ref, NetPaidAmount: cent, Status: domain.PaymentValid},
		{PaymentID: 4, Reservation: ref, NetPaidAmount: cent, Status: domain.PaymentValid},
	}
	booking := suite.paidBooking()
	booking.AmountPaid = decimal.NewFromFloat(0.04)
	booking.RemainingBalance = decimal.NewFromFloat(4999.96)

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(booking, nil).Once()
	suite.mockPaymentRepo.On("FindValidPaymentsByReservation", ctx, ref).Return(payments, nil).Once()
	suite.mockRefundRepo.On("FindCompletedRefundByReservation", ctx, ref).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRefundRepo.On("SaveRefund", ctx,
		mock.MatchedBy(func(r domain.Refund) bool {
			return r.RefundAmount.Equal(decimal.NewFromFloat(0.02))
		}),
		mock.MatchedBy(func(allocs []domain.RefundPayment) bool {
			sum := decimal.Zero
			for _, a := range allocs {
				if a.AmountRefunded.IsNegative() {
					return false
				}
				sum = sum.Add(a.AmountRefunded)
			}
			return len(allocs) == 4 && sum.Equal(decimal.NewFromFloat(0.02))
		}),
		mock.AnythingOfType("domain.LedgerUpdate"),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(int64(8), nil).Once()

	_, err := suite.service.IssueRefund(ctx, ref, suite.issueReq(), suite.userID)

	suite.Require().NoError(err)
	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestIssueRefund_NoValidPayments() {
	ctx := context.Background()
	ref := domain.BookingRef(42)
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.paidBooking(), nil).Once()
	suite.mockPaymentRepo.On("FindValidPaymentsByReservation", ctx, ref).Return([]domain.Payment{}, nil).Once()

	_, err := suite.service.IssueRefund(ctx, ref, suite.issueReq(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoValidPayments)
	suite.mockRefundRepo.AssertNotCalled(suite.T(), "SaveRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestIssueRefund_DuplicateCompletedRefund() {
	ctx := context.Background()
	ref := domain.BookingRef(42)
	payments := []domain.Payment{{PaymentID: 1, Reservation: ref, NetPaidAmount: decimal.NewFromInt(1000), Status: domain.PaymentValid}}
	existing := &domain.Refund{RefundID: 2, Reservation: ref, Status: domain.RefundCompleted}

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.paidBooking(), nil).Once()
	suite.mockPaymentRepo.On("FindValidPaymentsByReservation", ctx, ref).Return(payments, nil).Once()
	suite.mockRefundRepo.On("FindCompletedRefundByReservation", ctx, ref).Return(existing, nil).Once()

	_, err := suite.service.IssueRefund(ctx, ref, suite.issueReq(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateRefund)
	suite.mockRefundRepo.AssertNotCalled(suite.T(), "SaveRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestIssueRefund_GcashMissingFields() {
	ctx := context.Background()
	ref := domain.BookingRef(42)
	req := suite.issueReq()
	req.Method = domain.MethodGcash

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.paidBooking(), nil).Once()

	_, err := suite.service.IssueRefund(ctx, ref, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindValidPaymentsByReservation", mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestIssueRefund_CashWithGcashFields() {
	ctx := context.Background()
	ref := domain.BookingRef(42)
	req := suite.issueReq()
	req.GcashReference = "REF-123"

	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(suite.paidBooking(), nil).Once()

	_, err := suite.service.IssueRefund(ctx, ref, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RefundServiceTestSuite) TestIssueRefund_CompletedReservationRejected() {
	ctx := context.Background()
	booking := suite.paidBooking()
	booking.Status = domain.StatusCompleted
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(booking, nil).Once()

	_, err := suite.service.IssueRefund(ctx, domain.BookingRef(42), suite.issueReq(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindValidPaymentsByReservation", mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestIssueRefund_CancelledReservationRejected() {
	ctx := context.Background()
	booking := suite.paidBooking()
	booking.Status = domain.StatusCancelled
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(booking, nil).Once()

	_, err := suite.service.IssueRefund(ctx, domain.BookingRef(42), suite.issueReq(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "already cancelled")
}

func (suite *RefundServiceTestSuite) TestIssueRefund_OthersWithoutReason() {
	ctx := context.Background()
	req := suite.issueReq()
	req.CancelCategory = domain.CancelOthers
	req.CancelReason = ""

	_, err := suite.service.IssueRefund(ctx, domain.BookingRef(42), req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindBookingByID", mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestUpdateRefund_CompletedStatusImmutable() {
	ctx := context.Background()
	refund := &domain.Refund{RefundID: 3, Reservation: domain.BookingRef(42), Status: domain.RefundCompleted, RefundAmount: decimal.NewFromInt(500)}
	failed := domain.RefundFailed

	suite.mockRefundRepo.On("FindRefundByID", ctx, int64(3)).Return(refund, nil).Once()

	_, err := suite.service.UpdateRefund(ctx, 3, dto.UpdateRefundRequest{Status: &failed}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRefundRepo.AssertNotCalled(suite.T(), "UpdateRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestUpdateRefund_PendingToFailedSkipsLedger() {
	ctx := context.Background()
	refund := &domain.Refund{RefundID: 3, Reservation: domain.BookingRef(42), Status: domain.RefundPending, RefundAmount: decimal.NewFromInt(500)}
	failed := domain.RefundFailed

	suite.mockRefundRepo.On("FindRefundByID", ctx, int64(3)).Return(refund, nil).Once()
	suite.mockRefundRepo.On("UpdateRefund", ctx, mock.MatchedBy(func(r domain.Refund) bool {
		return r.Status == domain.RefundFailed
	}), (*domain.LedgerUpdate)(nil), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	updated, err := suite.service.UpdateRefund(ctx, 3, dto.UpdateRefundRequest{Status: &failed}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RefundFailed, updated.Status)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindBookingByID", mock.Anything, mock.Anything)
	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestUpdateRefund_PendingToCompletedAppliesLedger() {
	ctx := context.Background()
	refund := &domain.Refund{RefundID: 3, Reservation: domain.BookingRef(42), Status: domain.RefundPending, RefundAmount: decimal.NewFromInt(500)}
	completed := domain.RefundCompleted
	category := domain.CancelNaturalDisaster
	booking := suite.paidBooking()
	booking.CancelCategory = &category
	booking.CancelReason = "typhoon"

	suite.mockRefundRepo.On("FindRefundByID", ctx, int64(3)).Return(refund, nil).Once()
	suite.mockBookingRepo.On("FindBookingByID", ctx, int64(42)).Return(booking, nil).Once()
	suite.mockRefundRepo.On("UpdateRefund", ctx,
		mock.MatchedBy(func(r domain.Refund) bool {
			return r.Status == domain.RefundCompleted
		}),
		mock.MatchedBy(func(l *domain.LedgerUpdate) bool {
			return l != nil &&
				l.Status == domain.StatusCancelled &&
				l.AmountPaid.Equal(decimal.NewFromInt(500)) &&
				l.RemainingBalance.Equal(decimal.NewFromInt(4500)) &&
				l.CancelCategory != nil && *l.CancelCategory == domain.CancelNaturalDisaster
		}),
		mock.AnythingOfType("domain.AuditLog"),
	).Return(nil).Once()

	updated, err := suite.service.UpdateRefund(ctx, 3, dto.UpdateRefundRequest{Status: &completed}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RefundCompleted, updated.Status)
	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestUpdateRefund_RemarksAndAcknowledgePatch() {
	ctx := context.Background()
	refund := &domain.Refund{RefundID: 3, Reservation: domain.BookingRef(42), Status: domain.RefundCompleted, RefundAmount: decimal.NewFromInt(500)}
	remarks := "guest confirmed receipt"
	ack := true

	suite.mockRefundRepo.On("FindRefundByID", ctx, int64(3)).Return(refund, nil).Once()
	suite.mockRefundRepo.On("UpdateRefund", ctx, mock.MatchedBy(func(r domain.Refund) bool {
		return r.Remarks == remarks && r.Acknowledged && r.Status == domain.RefundCompleted
	}), (*domain.LedgerUpdate)(nil), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	updated, err := suite.service.UpdateRefund(ctx, 3, dto.UpdateRefundRequest{Remarks: &remarks, Acknowledged: &ack}, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Acknowledged)
	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestAcknowledgeStaleRefunds_CountsAndContinues() {
	ctx := context.Background()
	stale := []domain.Refund{
		{RefundID: 1, Reservation: domain.BookingRef(10), Status: domain.RefundCompleted},
		{RefundID: 2, Reservation: domain.BookingRef(11), Status: domain.RefundCompleted},
	}

	suite.mockRefundRepo.On("FindStaleUnacknowledgedRefunds", ctx, mock.AnythingOfType("time.Time")).Return(stale, nil).Once()
	suite.mockRefundRepo.On("UpdateRefund", ctx, mock.MatchedBy(func(r domain.Refund) bool {
		return r.RefundID == 1 && r.Acknowledged && r.LastUpdatedBy == services.SystemUserID
	}), (*domain.LedgerUpdate)(nil), mock.AnythingOfType("domain.AuditLog")).Return(errors.New("write failed")).Once()
	suite.mockRefundRepo.On("UpdateRefund", ctx, mock.MatchedBy(func(r domain.Refund) bool {
		return r.RefundID == 2 && r.Acknowledged
	}), (*domain.LedgerUpdate)(nil), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	count, err := suite.service.AcknowledgeStaleRefunds(ctx, 168*time.Hour)

	suite.Require().NoError(err)
	suite.Equal(1, count)
	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func TestRefundService(t *testing.T) {
	suite.Run(t, new(RefundServiceTestSuite))
}
