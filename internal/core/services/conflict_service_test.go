package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConflictServiceTestSuite struct {
	suite.Suite
	mockBlockedDateRepo *MockBlockedDateRepository
	mockPublicEntryRepo *MockPublicEntryRepository
	mockBookingRepo     *MockBookingRepository
	service             portssvc.ConflictCheckerSvc
	date                time.Time
}

func (suite *ConflictServiceTestSuite) SetupTest() {
	suite.mockBlockedDateRepo = new(MockBlockedDateRepository)
	suite.mockPublicEntryRepo = new(MockPublicEntryRepository)
	suite.mockBookingRepo = new(MockBookingRepository)
	suite.service = services.NewConflictService(suite.mockBlockedDateRepo, suite.mockPublicEntryRepo, suite.mockBookingRepo)
	suite.date = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *ConflictServiceTestSuite) noBlock(ctx context.Context) {
	suite.mockBlockedDateRepo.On("FindActiveBlockByDate", ctx, suite.date).Return(nil, apperrors.ErrNotFound).Once()
}

func (suite *ConflictServiceTestSuite) noPublicEntries(ctx context.Context, excludeID *int64) {
	suite.mockPublicEntryRepo.On("FindActivePublicEntriesByDate", ctx, suite.date, excludeID).Return([]domain.PublicEntry{}, nil).Once()
}

func (suite *ConflictServiceTestSuite) TestBlockedDateWins() {
	ctx := context.Background()
	block := &domain.BlockedDate{BlockedDateID: 1, Date: suite.date, Category: domain.CancelNaturalDisaster, Status: domain.BlockActive}
	suite.mockBlockedDateRepo.On("FindActiveBlockByDate", ctx, suite.date).Return(block, nil).Once()

	err := suite.service.CheckConflicts(ctx, suite.date, domain.DayTime, portssvc.ConflictExclusions{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPublicEntryRepo.AssertNotCalled(suite.T(), "FindActivePublicEntriesByDate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindActiveBookingsByDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConflictServiceTestSuite) TestPublicEntryConflictIsModeBlind() {
	ctx := context.Background()
	suite.noBlock(ctx)
	entries := []domain.PublicEntry{{PublicEntryID: 4, Mode: domain.NightTime, Status: domain.StatusReserved}}
	suite.mockPublicEntryRepo.On("FindActivePublicEntriesByDate", ctx, suite.date, (*int64)(nil)).Return(entries, nil).Once()

	err := suite.service.CheckConflicts(ctx, suite.date, domain.DayTime, portssvc.ConflictExclusions{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBookingRepo.AssertNotCalled(suite.T(), "FindActiveBookingsByDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConflictServiceTestSuite) TestWholeDayRequestConflictsWithPartialBooking() {
	ctx := context.Background()
	suite.noBlock(ctx)
	suite.noPublicEntries(ctx, nil)
	bookings := []domain.Booking{{BookingID: 2, Mode: domain.DayTime, Status: domain.StatusConfirmed}}
	suite.mockBookingRepo.On("FindActiveBookingsByDate", ctx, suite.date, (*int64)(nil)).Return(bookings, nil).Once()

	err := suite.service.CheckConflicts(ctx, suite.date, domain.WholeDay, portssvc.ConflictExclusions{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ConflictServiceTestSuite) TestPartialRequestConflictsWithWholeDayBooking() {
	ctx := context.Background()
	suite.noBlock(ctx)
	suite.noPublicEntries(ctx, nil)
	bookings := []domain.Booking{{BookingID: 2, Mode: domain.WholeDay, Status: domain.StatusConfirmed}}
	suite.mockBookingRepo.On("FindActiveBookingsByDate", ctx, suite.date, (*int64)(nil)).Return(bookings, nil).Once()

	err := suite.service.CheckConflicts(ctx, suite.date, domain.NightTime, portssvc.ConflictExclusions{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ConflictServiceTestSuite) TestSameModeBookingConflicts() {
	ctx := context.Background()
	suite.noBlock(ctx)
	suite.noPublicEntries(ctx, nil)
	bookings := []domain.Booking{{BookingID: 2, Mode: domain.DayTime, Status: domain.StatusConfirmed}}
	suite.mockBookingRepo.On("FindActiveBookingsByDate", ctx, suite.date, (*int64)(nil)).Return(bookings, nil).Once()

	err := suite.service.CheckConflicts(ctx, suite.date, domain.DayTime, portssvc.ConflictExclusions{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ConflictServiceTestSuite) TestOppositePartialModesCoexist() {
	ctx := context.Background()
	suite.noBlock(ctx)
	suite.noPublicEntries(ctx, nil)
	bookings := []domain.Booking{{BookingID: 2, Mode: domain.NightTime, Status: domain.StatusConfirmed}}
	suite.mockBookingRepo.On("FindActiveBookingsByDate", ctx, suite.date, (*int64)(nil)).Return(bookings, nil).Once()

	err := suite.service.CheckConflicts(ctx, suite.date, domain.DayTime, portssvc.ConflictExclusions{})

	suite.Require().NoError(err)
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *ConflictServiceTestSuite) TestFreeDatePasses() {
	ctx := context.Background()
	suite.noBlock(ctx)
	suite.noPublicEntries(ctx, nil)
	suite.mockBookingRepo.On("FindActiveBookingsByDate", ctx, suite.date, (*int64)(nil)).Return([]domain.Booking{}, nil).Once()

	err := suite.service.CheckConflicts(ctx, suite.date, domain.WholeDay, portssvc.ConflictExclusions{})

	suite.Require().NoError(err)
	suite.mockBlockedDateRepo.AssertExpectations(suite.T())
	suite.mockPublicEntryRepo.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func (suite *ConflictServiceTestSuite) TestExclusionsReachRepositories() {
	ctx := context.Background()
	bookingID := int64(10)
	entryID := int64(20)
	suite.noBlock(ctx)
	suite.mockPublicEntryRepo.On("FindActivePublicEntriesByDate", ctx, suite.date, &entryID).Return([]domain.PublicEntry{}, nil).Once()
	suite.mockBookingRepo.On("FindActiveBookingsByDate", ctx, suite.date, &bookingID).Return([]domain.Booking{}, nil).Once()

	err := suite.service.CheckConflicts(ctx, suite.date, domain.DayTime, portssvc.ConflictExclusions{BookingID: &bookingID, PublicEntryID: &entryID})

	suite.Require().NoError(err)
	suite.mockPublicEntryRepo.AssertExpectations(suite.T())
	suite.mockBookingRepo.AssertExpectations(suite.T())
}

func TestConflictService(t *testing.T) {
	suite.Run(t, new(ConflictServiceTestSuite))
}
