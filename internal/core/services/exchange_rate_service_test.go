package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crmworks/bizmanage_backend/internal/apperrors"
	"github.com/crmworks/bizmanage_backend/internal/core/domain"
	portsprov "github.com/crmworks/bizmanage_backend/internal/core/ports/providers"
	portssvc "github.com/crmworks/bizmanage_backend/internal/core/ports/services"
	"github.com/crmworks/bizmanage_backend/internal/core/services"
	"github.com/crmworks/bizmanage_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) UpsertRates(ctx context.Context, rates []domain.ExchangeRate) (int, error) {
	args := m.Called(ctx, rates)
	return args.Int(0), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// MockCurrencyService implements the CurrencyReaderSvc interface
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// MockCompanySetupService implements the CompanySetupReaderSvc interface
type MockCompanySetupService struct {
	mock.Mock
}

func (m *MockCompanySetupService) GetCompanyConfig(ctx context.Context) (*domain.CompanyCurrencyConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyCurrencyConfig), args.Error(1)
}

// MockRateProvider implements the RateProvider interface
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchLatestRates(ctx context.Context, baseCurrencyCode string) (*portsprov.ProviderRates, error) {
	args := m.Called(ctx, baseCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsprov.ProviderRates), args.Error(1)
}

func (m *MockRateProvider) FetchCurrencies(ctx context.Context) ([]portsprov.ProviderCurrency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsprov.ProviderCurrency), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencySvc  *MockCurrencyService
	mockCompanySetup *MockCompanySetupService
	mockProvider     *MockRateProvider
	service          portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.mockCompanySetup = new(MockCompanySetupService)
	suite.mockProvider = new(MockRateProvider)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, suite.mockCurrencySvc, suite.mockCompanySetup, suite.mockProvider)
}

// --- SetManualRate ---

func (suite *ExchangeRateServiceTestSuite) TestSetManualRate_Success() {
	ctx := context.Background()
	editorUserID := uuid.NewString()
	req := dto.SetManualRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "INR",
		Rate:               decimal.NewFromFloat(83.25),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "INR").Return(&domain.Currency{CurrencyCode: "INR"}, nil).Once()
	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	rate, err := suite.service.SetManualRate(ctx, req, editorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.Equal("USD", rate.FromCurrencyCode)
	suite.Equal("INR", rate.ToCurrencyCode)
	suite.True(req.Rate.Equal(rate.Rate))
	suite.Equal(domain.RateSourceManual, rate.Source)
	suite.Equal(editorUserID, rate.CreatedBy)

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSetManualRate_NonPositiveRate() {
	ctx := context.Background()
	for _, value := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		req := dto.SetManualRateRequest{
			BaseCurrencyCode:   "USD",
			TargetCurrencyCode: "INR",
			Rate:               value,
		}

		rate, err := suite.service.SetManualRate(ctx, req, uuid.NewString())

		suite.Require().Error(err)
		suite.Nil(rate)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Contains(err.Error(), "must be positive")
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestSetManualRate_SameCurrency() {
	ctx := context.Background()
	req := dto.SetManualRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "usd",
		Rate:               decimal.NewFromInt(1),
	}

	rate, err := suite.service.SetManualRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cannot be the same")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

func (suite *ExchangeRateServiceTestSuite) TestSetManualRate_UnknownTargetCurrency() {
	ctx := context.Background()
	req := dto.SetManualRateRequest{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "XXX",
		Rate:               decimal.NewFromInt(2),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.SetManualRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "not found")
	suite.mockCurrencySvc.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate")
}

// --- RefreshRates ---

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	config := &domain.CompanyCurrencyConfig{BaseCurrencyCode: "USD", AdditionalCurrencies: []string{"EUR", "INR"}}
	known := []domain.Currency{
		{CurrencyCode: "USD"}, {CurrencyCode: "EUR"}, {CurrencyCode: "INR"},
	}
	fetched := &portsprov.ProviderRates{
		BaseCurrencyCode: "USD",
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.NewFromFloat(0.92),
			"INR": decimal.NewFromFloat(83.10),
			"USD": decimal.NewFromInt(1),    // base, skipped
			"ZZZ": decimal.NewFromFloat(5), // unknown currency, skipped
		},
		FetchedAt: time.Now(),
	}

	suite.mockCompanySetup.On("GetCompanyConfig", ctx).Return(config, nil).Once()
	suite.mockCurrencySvc.On("ListCurrencies", ctx).Return(known, nil).Once()
	suite.mockProvider.On("FetchLatestRates", ctx, "USD").Return(fetched, nil).Once()
	suite.mockRateRepo.On("UpsertRates", ctx, mock.MatchedBy(func(rates []domain.ExchangeRate) bool {
		if len(rates) != 2 {
			return false
		}
		for _, r := range rates {
			if r.FromCurrencyCode != "USD" || r.Source != domain.RateSourceOnline {
				return false
			}
		}
		return true
	})).Return(2, nil).Once()

	summary, err := suite.service.RefreshRates(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal(2, summary.UpdatedCount)
	suite.Equal("USD", summary.BaseCurrencyCode)
	suite.False(summary.RefreshedAt.IsZero())

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_ProviderFailureLeavesRatesIntact() {
	ctx := context.Background()
	config := &domain.CompanyCurrencyConfig{BaseCurrencyCode: "USD"}

	suite.mockCompanySetup.On("GetCompanyConfig", ctx).Return(config, nil).Once()
	suite.mockCurrencySvc.On("ListCurrencies", ctx).Return([]domain.Currency{{CurrencyCode: "USD"}}, nil).Once()
	suite.mockProvider.On("FetchLatestRates", ctx, "USD").Return(nil, errors.New("connection refused")).Once()

	summary, err := suite.service.RefreshRates(ctx, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrProviderUnavailable)
	// No write reaches the repository on a failed fetch.
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertRates")
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_StaleRefreshSuperseded() {
	ctx := context.Background()
	config := &domain.CompanyCurrencyConfig{BaseCurrencyCode: "USD"}
	known := []domain.Currency{{CurrencyCode: "USD"}, {CurrencyCode: "EUR"}}
	fetched := &portsprov.ProviderRates{
		BaseCurrencyCode: "USD",
		Rates:            map[string]decimal.Decimal{"EUR": decimal.NewFromFloat(0.92)},
		FetchedAt:        time.Now(),
	}

	suite.mockCompanySetup.On("GetCompanyConfig", ctx).Return(config, nil)
	suite.mockCurrencySvc.On("ListCurrencies", ctx).Return(known, nil)

	// The first refresh stalls in the provider until the second completes.
	firstFetchStarted := make(chan struct{})
	release := make(chan struct{})
	suite.mockProvider.On("FetchLatestRates", ctx, "USD").Run(func(args mock.Arguments) {
		close(firstFetchStarted)
		<-release
	}).Return(fetched, nil).Once()
	suite.mockProvider.On("FetchLatestRates", ctx, "USD").Return(fetched, nil).Once()
	suite.mockRateRepo.On("UpsertRates", ctx, mock.Anything).Return(1, nil).Once()

	firstDone := make(chan error, 1)
	go func() {
		_, err := suite.service.RefreshRates(ctx, "user-1")
		firstDone <- err
	}()
	<-firstFetchStarted

	summary, err := suite.service.RefreshRates(ctx, "user-2")
	suite.Require().NoError(err)
	suite.Equal(1, summary.UpdatedCount)

	close(release)
	err = <-firstDone
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRefreshSuperseded)

	// Only the winning refresh wrote anything.
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "UpsertRates", 1)
}

// --- ConvertAmount ---

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_DirectRate() {
	ctx := context.Background()
	config := &domain.CompanyCurrencyConfig{BaseCurrencyCode: "USD"}
	stored := []domain.ExchangeRate{
		{FromCurrencyCode: "USD", ToCurrencyCode: "INR", Rate: decimal.NewFromInt(83), Source: domain.RateSourceOnline},
	}

	suite.mockCompanySetup.On("GetCompanyConfig", ctx).Return(config, nil).Once()
	suite.mockRateRepo.On("ListExchangeRates", ctx).Return(stored, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "INR").Return(&domain.Currency{CurrencyCode: "INR", Precision: 2}, nil).Once()

	result, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(100), "usd", "inr")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.ConvertedAmount.Equal(decimal.NewFromInt(8300)))
	suite.Equal("8300", result.FormattedAmount)
	suite.Equal(domain.RateSourceOnline, result.RateSource)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_Identity() {
	ctx := context.Background()
	config := &domain.CompanyCurrencyConfig{BaseCurrencyCode: "USD"}

	suite.mockCompanySetup.On("GetCompanyConfig", ctx).Return(config, nil).Once()
	suite.mockRateRepo.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate{}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR", Precision: 2}, nil).Once()

	amount := decimal.RequireFromString("10.555")
	result, err := suite.service.ConvertAmount(ctx, amount, "EUR", "EUR")

	suite.Require().NoError(err)
	suite.True(result.ConvertedAmount.Equal(amount))
	suite.Equal("10.555", result.FormattedAmount)
	suite.Equal(domain.RateSourceIdentity, result.RateSource)
	suite.True(result.ExchangeRate.Equal(decimal.NewFromInt(1)))
	suite.False(result.RateLastUpdatedAt.IsZero())
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_RateUnavailable() {
	ctx := context.Background()
	config := &domain.CompanyCurrencyConfig{BaseCurrencyCode: "USD"}

	suite.mockCompanySetup.On("GetCompanyConfig", ctx).Return(config, nil).Once()
	suite.mockRateRepo.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate{}, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "INR").Return(&domain.Currency{CurrencyCode: "INR", Precision: 2}, nil).Maybe()

	result, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(100), "EUR", "INR")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_InvalidCode() {
	ctx := context.Background()

	result, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(100), "US", "EUR")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ListExchangeRates")
}

// --- GetExchangeRate / ListExchangeRates ---

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_Success() {
	ctx := context.Background()
	expected := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR"}

	suite.mockRateRepo.On("FindExchangeRate", ctx, "USD", "EUR").Return(expected, nil).Once()

	rate, err := suite.service.GetExchangeRate(ctx, "usd", "eur")

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_InvalidCode() {
	ctx := context.Background()
	rate, err := suite.service.GetExchangeRate(ctx, "US", "EUR")
	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates_EmptyNotNil() {
	ctx := context.Background()
	suite.mockRateRepo.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate(nil), nil).Once()

	rates, err := suite.service.ListExchangeRates(ctx)

	suite.Require().NoError(err)
	suite.NotNil(rates)
	suite.Empty(rates)
}

func TestNewExchangeRateService(t *testing.T) {
	service := services.NewExchangeRateService(
		new(MockExchangeRateRepository),
		new(MockCurrencyService),
		new(MockCompanySetupService),
		new(MockRateProvider),
	)

	assert.NotNil(t, service)
	var _ portssvc.ExchangeRateSvcFacade = service
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
