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

type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo       *MockRateRepository
	mockPermissionRepo *MockPermissionRepository
	service            portssvc.RateSvcFacade
	userID             string
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockRateRepository)
	suite.mockPermissionRepo = new(MockPermissionRepository)
	suite.mockPermissionRepo.allowAll()
	suite.service = services.NewRateService(suite.mockRateRepo, suite.mockPermissionRepo)
	suite.userID = "staff-1"
}

func (suite *RateServiceTestSuite) TestResolveActiveRate_DirectHit() {
	ctx := context.Background()
	want := &domain.PublicEntryRate{RateID: 7, Category: domain.Adult, Mode: domain.DayTime, Rate: decimal.NewFromInt(150), IsActive: true}
	suite.mockRateRepo.On("FindActiveRate", ctx, domain.Adult, domain.DayTime).Return(want, nil).Once()

	got, err := suite.service.ResolveActiveRate(ctx, domain.Adult, domain.DayTime)

	suite.Require().NoError(err)
	suite.Equal(int64(7), got.RateID)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestResolveActiveRate_OppositeModeFallback() {
	ctx := context.Background()
	nightRate := &domain.PublicEntryRate{RateID: 9, Category: domain.Kid, Mode: domain.NightTime, Rate: decimal.NewFromInt(80), IsActive: true}
	suite.mockRateRepo.On("FindActiveRate", ctx, domain.Kid, domain.DayTime).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindActiveRate", ctx, domain.Kid, domain.NightTime).Return(nightRate, nil).Once()

	got, err := suite.service.ResolveActiveRate(ctx, domain.Kid, domain.DayTime)

	suite.Require().NoError(err)
	suite.Equal(int64(9), got.RateID)
	suite.Equal(domain.NightTime, got.Mode)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestResolveActiveRate_NeitherModeActive() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindActiveRate", ctx, domain.Adult, domain.NightTime).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindActiveRate", ctx, domain.Adult, domain.DayTime).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveActiveRate(ctx, domain.Adult, domain.NightTime)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoActiveRate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestCreateRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateRateRequest{Category: domain.Adult, Mode: domain.DayTime, Rate: decimal.Zero}

	_, err := suite.service.CreateRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestCreateRate_WholeDayRejected() {
	ctx := context.Background()
	req := dto.CreateRateRequest{Category: domain.Adult, Mode: domain.WholeDay, Rate: decimal.NewFromInt(200)}

	_, err := suite.service.CreateRate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestCreateRate_StartsInactive() {
	ctx := context.Background()
	req := dto.CreateRateRequest{Category: domain.Kid, Mode: domain.NightTime, Rate: decimal.NewFromInt(90)}

	suite.mockRateRepo.On("SaveRate", ctx, mock.MatchedBy(func(r domain.PublicEntryRate) bool {
		return !r.IsActive && r.Category == domain.Kid && r.Mode == domain.NightTime
	}), mock.AnythingOfType("domain.AuditLog")).Return(int64(11), nil).Once()

	rate, err := suite.service.CreateRate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(11), rate.RateID)
	suite.False(rate.IsActive)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestActivateRate_DisplacesActiveSiblings() {
	ctx := context.Background()
	target := &domain.PublicEntryRate{RateID: 3, Category: domain.Adult, Mode: domain.DayTime, Rate: decimal.NewFromInt(175)}
	siblings := []domain.PublicEntryRate{
		{RateID: 1, Category: domain.Adult, Mode: domain.DayTime, IsActive: true},
		{RateID: 2, Category: domain.Adult, Mode: domain.DayTime, IsActive: true},
	}

	suite.mockRateRepo.On("FindRateByID", ctx, int64(3)).Return(target, nil).Once()
	suite.mockRateRepo.On("FindActiveRates", ctx, domain.Adult, domain.DayTime).Return(siblings, nil).Once()
	suite.mockRateRepo.On("ActivateRate", ctx, int64(3), []int64{1, 2}, mock.AnythingOfType("[]domain.AuditLog"), suite.userID).Return(nil).Once()

	rate, err := suite.service.ActivateRate(ctx, 3, suite.userID)

	suite.Require().NoError(err)
	suite.True(rate.IsActive)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestDeactivateRate_AlreadyInactive() {
	ctx := context.Background()
	target := &domain.PublicEntryRate{RateID: 5, Category: domain.Kid, Mode: domain.DayTime, IsActive: false}
	suite.mockRateRepo.On("FindRateByID", ctx, int64(5)).Return(target, nil).Once()

	err := suite.service.DeactivateRate(ctx, 5, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "DeactivateRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestDeactivateRate_PromotesNewestInactiveSibling() {
	ctx := context.Background()
	target := &domain.PublicEntryRate{RateID: 5, Category: domain.Kid, Mode: domain.DayTime, IsActive: true}
	inactive := []domain.PublicEntryRate{
		{RateID: 8, Category: domain.Kid, Mode: domain.DayTime},
		{RateID: 4, Category: domain.Kid, Mode: domain.DayTime},
	}

	suite.mockRateRepo.On("FindRateByID", ctx, int64(5)).Return(target, nil).Once()
	suite.mockRateRepo.On("FindInactiveRates", ctx, domain.Kid, domain.DayTime).Return(inactive, nil).Once()
	suite.mockRateRepo.On("DeactivateRate", ctx, int64(5), mock.MatchedBy(func(promote *int64) bool {
		return promote != nil && *promote == 8
	}), mock.AnythingOfType("[]domain.AuditLog"), suite.userID).Return(nil).Once()

	err := suite.service.DeactivateRate(ctx, 5, suite.userID)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestDeactivateRate_NoFallbackAvailable() {
	ctx := context.Background()
	target := &domain.PublicEntryRate{RateID: 5, Category: domain.Kid, Mode: domain.NightTime, IsActive: true}

	suite.mockRateRepo.On("FindRateByID", ctx, int64(5)).Return(target, nil).Once()
	suite.mockRateRepo.On("FindInactiveRates", ctx, domain.Kid, domain.NightTime).Return([]domain.PublicEntryRate{}, nil).Once()
	suite.mockRateRepo.On("DeactivateRate", ctx, int64(5), (*int64)(nil), mock.AnythingOfType("[]domain.AuditLog"), suite.userID).Return(nil).Once()

	err := suite.service.DeactivateRate(ctx, 5, suite.userID)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestDeleteRate_ActivePromotesFallback() {
	ctx := context.Background()
	target := &domain.PublicEntryRate{RateID: 6, Category: domain.Adult, Mode: domain.NightTime, IsActive: true}
	inactive := []domain.PublicEntryRate{{RateID: 2, Category: domain.Adult, Mode: domain.NightTime}}

	suite.mockRateRepo.On("FindRateByID", ctx, int64(6)).Return(target, nil).Once()
	suite.mockRateRepo.On("FindInactiveRates", ctx, domain.Adult, domain.NightTime).Return(inactive, nil).Once()
	suite.mockRateRepo.On("DeleteRate", ctx, int64(6), mock.MatchedBy(func(promote *int64) bool {
		return promote != nil && *promote == 2
	}), mock.AnythingOfType("[]domain.AuditLog"), suite.userID).Return(nil).Once()

	err := suite.service.DeleteRate(ctx, 6, suite.userID)

	suite.Require().NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestCreateRate_PermissionDenied() {
	ctx := context.Background()
	denyingPerms := new(MockPermissionRepository)
	denyingPerms.On("HasPermission", ctx, "intruder", "public_entry_rates", "create").Return(false, nil).Once()
	service := services.NewRateService(suite.mockRateRepo, denyingPerms)

	_, err := service.CreateRate(ctx, dto.CreateRateRequest{Category: domain.Adult, Mode: domain.DayTime, Rate: decimal.NewFromInt(100)}, "intruder")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	denyingPerms.AssertExpectations(suite.T())
}

func TestRateService(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
