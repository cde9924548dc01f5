package http

import (
	"net/http"
	"strings"

	"stock-radar/internal/dto"
	"stock-radar/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStocks(base *echo.Group) {
	v1 := base.Group("/v1/stocks")
	{
		v1.GET("", h.GetStocks)
		v1.GET("/:ticker", h.GetStockDetail)
		v1.DELETE("/:ticker", h.DeleteStock)
	}
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	payload := map[string]interface{}{"status": "ok"}
	if lastUpdated, err := h.service.ViewService.LastUpdatedAt(c.Request().Context()); err == nil && !lastUpdated.IsZero() {
		payload["last_updated_at"] = lastUpdated
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", payload))
}

func (h *HttpAPIHandler) GetStocks(c echo.Context) error {
	var req dto.GetStocksRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	page, err := h.service.ViewService.GetPage(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError,
			dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("stocks retrieved", page))
}

// GetStockDetail fetches live fundamentals and a one-year price series for
// one ticker, straight from the provider. A provider failure surfaces as an
// inline error response and leaves the rest of the view untouched.
func (h *HttpAPIHandler) GetStockDetail(c echo.Context) error {
	ticker := normalizeTicker(c.Param("ticker"))
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("ticker must be alphabetic"))
	}

	detail, err := h.service.ViewService.GetDetail(c.Request().Context(), ticker)
	if err != nil {
		return c.JSON(http.StatusBadGateway,
			dto.NewBaseResponse(http.StatusBadGateway, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("detail retrieved", detail))
}

func (h *HttpAPIHandler) DeleteStock(c echo.Context) error {
	ticker := normalizeTicker(c.Param("ticker"))
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("ticker must be alphabetic"))
	}

	if err := h.service.ViewService.DeleteTicker(c.Request().Context(), ticker); err != nil {
		return c.JSON(http.StatusInternalServerError,
			dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ticker deleted", nil))
}

func normalizeTicker(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if !utils.IsAlpha(ticker) {
		return ""
	}
	return ticker
}
