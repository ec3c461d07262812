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
)

// companySetupHandler handles HTTP requests for the company currency setup.
type companySetupHandler struct {
	companySetupService portssvc.CompanySetupSvcFacade
}

// newCompanySetupHandler creates a new companySetupHandler.
func newCompanySetupHandler(css portssvc.CompanySetupSvcFacade) *companySetupHandler {
	return &companySetupHandler{
		companySetupService: css,
	}
}

// registerCompanySetupRoutes registers routes for the company currency setup.
func registerCompanySetupRoutes(rg *gin.RouterGroup, companySetupService portssvc.CompanySetupSvcFacade) {
	h := newCompanySetupHandler(companySetupService)

	setup := rg.Group("/setup")
	{
		setup.GET("/company", h.getCompanyConfig)
		setup.PUT("/company", h.updateCompanyConfig)
	}
}

// getCompanyConfig godoc
// @Summary Get the company currency configuration
// @Description Retrieves the base currency and the additional tracked currencies
// @Tags company setup
// @Produce  json
// @Success 200 {object} dto.CompanyConfigResponse
// @Failure 404 {object} map[string]string "Company settings not found"
// @Failure 500 {object} map[string]string "Failed to retrieve company settings"
// @Security BearerAuth
// @Router /setup/company [get]
func (h *companySetupHandler) getCompanyConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	config, err := h.companySetupService.GetCompanyConfig(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Company settings not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Company settings not found"})
		} else {
			logger.Error("Failed to get company settings", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve company settings"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyConfigResponse(config))
}

// updateCompanyConfig godoc
// @Summary Update the company currency configuration
// @Description Replaces the base currency and the additional tracked currencies in one save. The base currency is never kept in the additional set.
// @Tags company setup
// @Accept  json
// @Produce  json
// @Param   config body dto.UpdateCompanyConfigRequest true "Company currency configuration"
// @Success 200 {object} dto.CompanyConfigResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown currency code"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save company settings"
// @Security BearerAuth
// @Router /setup/company [put]
func (h *companySetupHandler) updateCompanyConfig(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCompanyConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCompanyConfig", slog.String("error", err.Error()))
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
	logger.Info("Received request to update company currency config",
		slog.String("base_currency", req.BaseCurrencyCode),
		slog.Int("additional_count", len(req.AdditionalCurrencies)),
	)

	config, err := h.companySetupService.UpdateCompanyConfig(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating company config", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update company config", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save company settings"})
		}
		return
	}

	logger.Info("Company currency config saved", slog.String("base_currency", config.BaseCurrencyCode))
	c.JSON(http.StatusOK, dto.ToCompanyConfigResponse(config))
}
