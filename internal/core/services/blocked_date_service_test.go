package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/core/services"
	"github.com/aquaverde/resort_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BlockedDateServiceTestSuite struct {
	suite.Suite
	mockBlockedDateRepo *MockBlockedDateRepository
	mockPermissionRepo  *MockPermissionRepository
	service             portssvc.BlockedDateSvcFacade
	userID              string
}

func (suite *BlockedDateServiceTestSuite) SetupTest() {
	suite.mockBlockedDateRepo = new(MockBlockedDateRepository)
	suite.mockPermissionRepo = new(MockPermissionRepository)
	suite.mockPermissionRepo.allowAll()
	suite.service = services.NewBlockedDateService(suite.mockBlockedDateRepo, suite.mockPermissionRepo)
	suite.userID = "staff-1"
}

func (suite *BlockedDateServiceTestSuite) TestCreateBlockedDate_Success() {
	ctx := context.Background()
	req := dto.CreateBlockedDateRequest{Date: "2025-12-24", Category: domain.CancelHoliday, Remarks: "closed for the holidays"}

	suite.mockBlockedDateRepo.On("FindActiveBlockByDate", ctx, time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBlockedDateRepo.On("SaveBlockedDate", ctx, mock.MatchedBy(func(b domain.BlockedDate) bool {
		return b.Status == domain.BlockActive && b.Category == domain.CancelHoliday
	}), mock.AnythingOfType("domain.AuditLog")).Return(int64(5), nil).Once()

	block, err := suite.service.CreateBlockedDate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(5), block.BlockedDateID)
	suite.Equal(domain.BlockActive, block.Status)
	suite.mockBlockedDateRepo.AssertExpectations(suite.T())
}

func (suite *BlockedDateServiceTestSuite) TestCreateBlockedDate_DateAlreadyBlocked() {
	ctx := context.Background()
	existing := &domain.BlockedDate{BlockedDateID: 1, Date: time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC), Status: domain.BlockActive}
	suite.mockBlockedDateRepo.On("FindActiveBlockByDate", ctx, existing.Date).Return(existing, nil).Once()

	req := dto.CreateBlockedDateRequest{Date: "2025-12-24", Category: domain.CancelMaintenance}
	_, err := suite.service.CreateBlockedDate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBlockedDateRepo.AssertNotCalled(suite.T(), "SaveBlockedDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BlockedDateServiceTestSuite) TestCancelBlockedDate_LiftsBlock() {
	ctx := context.Background()
	block := &domain.BlockedDate{BlockedDateID: 5, Status: domain.BlockActive, Category: domain.CancelMaintenance}

	suite.mockBlockedDateRepo.On("FindBlockedDateByID", ctx, int64(5)).Return(block, nil).Once()
	suite.mockBlockedDateRepo.On("UpdateBlockedDate", ctx, mock.MatchedBy(func(b domain.BlockedDate) bool {
		return b.Status == domain.BlockCancelled
	}), mock.AnythingOfType("domain.AuditLog")).Return(nil).Once()

	err := suite.service.CancelBlockedDate(ctx, 5, suite.userID)

	suite.Require().NoError(err)
	suite.mockBlockedDateRepo.AssertExpectations(suite.T())
}

func (suite *BlockedDateServiceTestSuite) TestCancelBlockedDate_AlreadyCancelled() {
	ctx := context.Background()
	block := &domain.BlockedDate{BlockedDateID: 5, Status: domain.BlockCancelled}
	suite.mockBlockedDateRepo.On("FindBlockedDateByID", ctx, int64(5)).Return(block, nil).Once()

	err := suite.service.CancelBlockedDate(ctx, 5, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBlockedDateRepo.AssertNotCalled(suite.T(), "UpdateBlockedDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestBlockedDateService(t *testing.T) {
	suite.Run(t, new(BlockedDateServiceTestSuite))
}
