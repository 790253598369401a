package handlers

import (
	"log/slog"
	"net/http"

	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/currconv/currency_conversion_app/internal/core/services"
	"github.com/currconv/currency_conversion_app/internal/dto"
	"github.com/currconv/currency_conversion_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests for the available-currency listing.
type currencyHandler struct {
	currencyService ports.CurrencySvcFacade
}

func newCurrencyHandler(cs ports.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService ports.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listAvailableCurrencies)
	}
}

// listAvailableCurrencies godoc
// @Summary List available currencies
// @Description Lists the currencies the rate provider currently quotes, with their latest USD-based rates
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.AvailableCurrenciesResponse
// @Failure 502 {object} map[string]string "Rate provider failure"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listAvailableCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.currencyService.ListAvailableCurrencies(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list available currencies", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAvailableCurrenciesResponse(services.SnapshotBaseCurrency, rates))
}
