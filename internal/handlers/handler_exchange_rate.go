package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crmworks/bizmanage_backend/internal/apperrors"
	portssvc "github.com/crmworks/bizmanage_backend/internal/core/ports/services"
	"github.com/crmworks/bizmanage_backend/internal/dto"
	"github.com/crmworks/bizmanage_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	currency := rg.Group("/currency")
	{
		currency.GET("/rates", h.listRates)
		currency.GET("/rates/:from/:to", h.getRate)
		currency.POST("/update-rates", h.refreshRates)
		currency.POST("/set-manual-rate", h.setManualRate)
		currency.POST("/convert", h.convert)
	}
}

// listRates godoc
// @Summary List exchange rates
// @Description Lists all stored exchange rates with their source and last update time
// @Tags exchange rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Security BearerAuth
// @Router /currency/rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the stored exchange rate for a currency pair
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)"
// @Param   to   path string true "To Currency Code (3 letters)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /currency/rates/{from}/{to} [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error getting exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Exchange rate not found", slog.String("from", fromCode), slog.String("to", toCode))
			c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
		} else {
			logger.Error("Failed to get exchange rate from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// refreshRates godoc
// @Summary Refresh exchange rates from the online provider
// @Description Pulls the latest rates for the company base currency and overwrites the stored set. A provider failure leaves stored rates untouched.
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.RefreshRatesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Superseded by a newer refresh"
// @Failure 502 {object} map[string]string "Rate provider unavailable"
// @Security BearerAuth
// @Router /currency/update-rates [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.exchangeRateService.RefreshRates(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProviderUnavailable) {
			logger.Warn("Rate provider unavailable, stored rates unchanged", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Rate provider unavailable; existing rates were kept"})
		} else if errors.Is(err, apperrors.ErrRefreshSuperseded) {
			logger.Info("Rate refresh superseded by a newer one")
			c.JSON(http.StatusConflict, gin.H{"error": "A newer rate refresh has already been applied"})
		} else {
			logger.Error("Failed to refresh rates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh rates"})
		}
		return
	}

	logger.Info("Exchange rates refreshed",
		slog.Int("updated_count", summary.UpdatedCount),
		slog.String("base_currency", summary.BaseCurrencyCode),
	)
	c.JSON(http.StatusOK, dto.ToRefreshRatesResponse(summary))
}

// setManualRate godoc
// @Summary Set a manual exchange rate
// @Description Stores a user-entered rate override; it supersedes the online value until the next refresh
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.SetManualRateRequest true "Manual rate details"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save manual rate"
// @Security BearerAuth
// @Router /currency/set-manual-rate [post]
func (h *exchangeRateHandler) setManualRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetManualRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetManualRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("editor_user_id", userID))
	logger.Info("Received request to set manual rate",
		slog.String("base", req.BaseCurrencyCode),
		slog.String("target", req.TargetCurrencyCode),
		slog.Any("rate", req.Rate),
	)

	savedRate, err := h.exchangeRateService.SetManualRate(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting manual rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set manual rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save manual rate"})
		}
		return
	}

	logger.Info("Manual rate saved", slog.String("rate_id", savedRate.ExchangeRateID))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(savedRate))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts using the direct rate, or a cross-rate via the company base currency when no direct rate exists
// @Tags exchange rates
// @Produce  json
// @Param   amount        query string true "Amount to convert"
// @Param   from_currency query string true "From Currency Code (3 letters)"
// @Param   to_currency   query string true "To Currency Code (3 letters)"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid amount or currency code"
// @Failure 404 {object} map[string]string "Rate unavailable for the pair"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Security BearerAuth
// @Router /currency/convert [post]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		logger.Warn("Invalid amount for Convert", slog.String("amount", req.Amount))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a valid number"})
		return
	}

	result, err := h.exchangeRateService.ConvertAmount(c.Request.Context(), amount, req.FromCurrencyCode, req.ToCurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error converting amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrRateUnavailable) {
			logger.Warn("Rate unavailable for conversion",
				slog.String("from", req.FromCurrencyCode),
				slog.String("to", req.ToCurrencyCode),
			)
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to convert amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}
