package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/SscSPs/microloan_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type incomeHandler struct {
	incomeService portssvc.IncomeSvcFacade
}

func newIncomeHandler(is portssvc.IncomeSvcFacade) *incomeHandler {
	return &incomeHandler{
		incomeService: is,
	}
}

// RegisterIncomeRoutes registers the extra income register routes.
func RegisterIncomeRoutes(rg *gin.RouterGroup, incomeService portssvc.IncomeSvcFacade, mutationLimit ...gin.HandlerFunc) {
	h := newIncomeHandler(incomeService)

	income := rg.Group("/income")
	income.GET("", h.listIncome)
	income.POST("", append(append([]gin.HandlerFunc{}, mutationLimit...), h.addIncome)...)
}

// listIncome godoc
// @Summary List extra income
// @Description Fees, interest and manual income, newest first, with their total
// @Tags income
// @Produce  json
// @Param   loanId query string false "Only income tied to this loan"
// @Success 200 {object} dto.ListIncomeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list income"
// @Security BearerAuth
// @Router /income [get]
func (h *incomeHandler) listIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, total, err := h.incomeService.ListIncome(c.Request.Context(), c.Query("loanId"))
	if err != nil {
		respondError(c, logger, err, "Failed to list income")
		return
	}
	if records == nil {
		records = []domain.ExtraIncomeRecord{}
	}

	c.JSON(http.StatusOK, dto.ListIncomeResponse{Records: records, Total: total})
}

// addIncome godoc
// @Summary Record manual income
// @Description Credits the wallet and records the income. An optional loan reference must exist.
// @Tags income
// @Accept  json
// @Produce  json
// @Param   income body dto.AddIncomeRequest true "Income details"
// @Success 201 {object} domain.ExtraIncomeRecord
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Referenced loan not found"
// @Failure 500 {object} map[string]string "Failed to record income"
// @Security BearerAuth
// @Router /income [post]
func (h *incomeHandler) addIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	record, err := h.incomeService.AddIncome(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record income")
		return
	}

	c.JSON(http.StatusCreated, record)
}
