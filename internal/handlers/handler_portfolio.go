package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/SscSPs/microloan_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type portfolioHandler struct {
	portfolioService portssvc.PortfolioSvc
}

// RegisterPortfolioRoutes registers the read-only portfolio routes.
func RegisterPortfolioRoutes(rg *gin.RouterGroup, portfolioService portssvc.PortfolioSvc) {
	h := &portfolioHandler{portfolioService: portfolioService}

	portfolio := rg.Group("/portfolio")
	portfolio.GET("/stats", h.getStats)
	portfolio.GET("/overdue", h.listOverdue)
}

func parseProduct(raw string) (domain.ProductVariant, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return "", nil
	}
	p, err := domain.ParseProductVariant(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, err)
	}
	return p, nil
}

// getStats godoc
// @Summary Portfolio statistics
// @Description Account counts, amounts lent, paid and remaining, and live overdue exposure
// @Tags portfolio
// @Produce  json
// @Param   product query string false "VARIABLE, FIXED_MICRO or all"
// @Success 200 {object} domain.PortfolioStats
// @Failure 400 {object} map[string]string "Unknown product"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute statistics"
// @Security BearerAuth
// @Router /portfolio/stats [get]
func (h *portfolioHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PortfolioParams
	_ = c.ShouldBindQuery(&params)
	product, err := parseProduct(params.Product)
	if err != nil {
		respondError(c, logger, err, "Failed to compute statistics")
		return
	}

	stats, err := h.portfolioService.GetStats(c.Request.Context(), product)
	if err != nil {
		respondError(c, logger, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// listOverdue godoc
// @Summary Loans in arrears
// @Description Active loans with past-due installments, oldest arrears first
// @Tags portfolio
// @Produce  json
// @Param   product query string false "VARIABLE, FIXED_MICRO or all"
// @Success 200 {object} dto.OverdueListResponse
// @Failure 400 {object} map[string]string "Unknown product"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list overdue loans"
// @Security BearerAuth
// @Router /portfolio/overdue [get]
func (h *portfolioHandler) listOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.PortfolioParams
	_ = c.ShouldBindQuery(&params)
	product, err := parseProduct(params.Product)
	if err != nil {
		respondError(c, logger, err, "Failed to list overdue loans")
		return
	}

	loans, total, err := h.portfolioService.ListOverdue(c.Request.Context(), product)
	if err != nil {
		respondError(c, logger, err, "Failed to list overdue loans")
		return
	}
	c.JSON(http.StatusOK, dto.OverdueListResponse{Loans: loans, Count: len(loans), TotalOverdue: total})
}
