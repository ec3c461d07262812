package services_test

import (
	"context"
	"testing"

	"github.com/crmworks/bizmanage_backend/internal/apperrors"
	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	portssvc "github.com/crmworks/bizmanage_backend/internal/core/ports/services"
	"github.com/crmworks/bizmanage_backend/internal/core/services"
	"github.com/crmworks/bizmanage_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CompanySetupRepository ---
type MockCompanySetupRepository struct {
	mock.Mock
}

func (m *MockCompanySetupRepository) GetCompanyConfig(ctx context.Context) (*domain.CompanyCurrencyConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyCurrencyConfig), args.Error(1)
}

func (m *MockCompanySetupRepository) SaveCompanyConfig(ctx context.Context, config domain.CompanyCurrencyConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// --- Test Suite ---
type CompanySetupServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo  *MockCompanySetupRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.CompanySetupSvcFacade
}

func (suite *CompanySetupServiceTestSuite) SetupTest() {
	suite.mockCompanyRepo = new(MockCompanySetupRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewCompanySetupService(suite.mockCompanyRepo, suite.mockCurrencyRepo)
}

func (suite *CompanySetupServiceTestSuite) TestGetCompanyConfig_Success() {
	ctx := context.Background()
	expected := &domain.CompanyCurrencyConfig{
		BaseCurrencyCode:     "USD",
		AdditionalCurrencies: []string{"EUR", "INR"},
	}

	suite.mockCompanyRepo.On("GetCompanyConfig", ctx).Return(expected, nil).Once()

	config, err := suite.service.GetCompanyConfig(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, config)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *CompanySetupServiceTestSuite) TestUpdateCompanyConfig_Success() {
	ctx := context.Background()
	editorUserID := uuid.NewString()
	req := dto.UpdateCompanyConfigRequest{
		BaseCurrencyCode:     "usd",
		AdditionalCurrencies: []string{"eur", "inr"},
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "INR").Return(&domain.Currency{CurrencyCode: "INR"}, nil).Once()
	suite.mockCompanyRepo.On("SaveCompanyConfig", ctx, mock.AnythingOfType("domain.CompanyCurrencyConfig")).Return(nil).Once()

	config, err := suite.service.UpdateCompanyConfig(ctx, req, editorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(config)
	suite.Equal("USD", config.BaseCurrencyCode)
	suite.Equal([]string{"EUR", "INR"}, config.AdditionalCurrencies)
	suite.Equal(editorUserID, config.LastUpdatedBy)

	suite.mockCompanyRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *CompanySetupServiceTestSuite) TestUpdateCompanyConfig_BaseDroppedFromAdditional() {
	ctx := context.Background()
	req := dto.UpdateCompanyConfigRequest{
		BaseCurrencyCode:     "USD",
		AdditionalCurrencies: []string{"USD", "EUR", "EUR"},
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil)
	suite.mockCompanyRepo.On("SaveCompanyConfig", ctx, mock.MatchedBy(func(config domain.CompanyCurrencyConfig) bool {
		return len(config.AdditionalCurrencies) == 1 && config.AdditionalCurrencies[0] == "EUR"
	})).Return(nil).Once()

	config, err := suite.service.UpdateCompanyConfig(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	// Toggling the base currency into the additional set is a no-op.
	suite.Equal([]string{"EUR"}, config.AdditionalCurrencies)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *CompanySetupServiceTestSuite) TestUpdateCompanyConfig_UnknownCurrencyRejected() {
	ctx := context.Background()
	req := dto.UpdateCompanyConfigRequest{
		BaseCurrencyCode:     "USD",
		AdditionalCurrencies: []string{"ZZZ"},
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	config, err := suite.service.UpdateCompanyConfig(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(config)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "ZZZ")
	// Nothing is persisted when validation fails.
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveCompanyConfig")
}

func (suite *CompanySetupServiceTestSuite) TestUpdateCompanyConfig_UnknownBaseRejected() {
	ctx := context.Background()
	req := dto.UpdateCompanyConfigRequest{BaseCurrencyCode: "ZZZ"}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	config, err := suite.service.UpdateCompanyConfig(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(config)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveCompanyConfig")
}

// --- Run Suite ---
func TestCompanySetupService(t *testing.T) {
	suite.Run(t, new(CompanySetupServiceTestSuite))
}
