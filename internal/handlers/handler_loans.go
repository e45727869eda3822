package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/SscSPs/microloan_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loan accounts.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{
		loanService: ls,
	}
}

// RegisterLoanRoutes registers loan account routes. Payments are nested under
// a loan and share its path parameter. mutationLimit guards every write.
func RegisterLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, paymentService portssvc.PaymentSvc, mutationLimit ...gin.HandlerFunc) {
	h := newLoanHandler(loanService)
	ph := newPaymentHandler(paymentService)

	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mutationLimit...), handler)
	}

	loans := rg.Group("/loans")
	{
		loans.POST("", write(h.createLoan)...)
		loans.GET("", h.listLoans)
		loans.GET("/:loanID", h.getLoan)
		loans.PUT("/:loanID", write(h.updateLoan)...)
		loans.DELETE("/:loanID", write(h.deleteLoan)...)
		loans.GET("/:loanID/schedule", h.getSchedule)
		loans.GET("/:loanID/payments", h.listPayments)
		loans.POST("/:loanID/payments", write(ph.applyPayment)...)
	}

	rg.POST("/schedules/preview", h.previewSchedule)
}

// parseLoanFilter turns query parameters into a filter. "all" and empty mean no filter.
func parseLoanFilter(params dto.ListLoansParams) (domain.LoanFilter, error) {
	var filter domain.LoanFilter
	switch status := strings.ToLower(strings.TrimSpace(params.Status)); status {
	case "", "all":
	case string(domain.LoanActive), string(domain.LoanInactive):
		filter.Status = domain.LoanStatus(status)
	default:
		return filter, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidParameters, params.Status)
	}
	if p := strings.TrimSpace(params.Product); p != "" && !strings.EqualFold(p, "all") {
		product, err := domain.ParseProductVariant(p)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", apperrors.ErrInvalidParameters, err)
		}
		filter.Product = product
	}
	return filter, nil
}

// createLoan godoc
// @Summary Issue a new loan
// @Description Validates the borrower and terms, generates the schedule, disburses from the wallet and records creation fees
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.CreateLoanRequest true "Borrower and loan terms"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} map[string]interface{} "Missing fields or invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate borrower identity"
// @Failure 422 {object} map[string]string "Insufficient wallet funds"
// @Failure 500 {object} map[string]string "Failed to create loan"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create loan", slog.String("product", req.Product))

	loan, err := h.loanService.CreateLoan(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create loan")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan, true))
}

// listLoans godoc
// @Summary List loan accounts
// @Description Lists loans newest first, optionally filtered by status and product
// @Tags loans
// @Produce  json
// @Param   status query string false "active, inactive or all"
// @Param   product query string false "VARIABLE or FIXED_MICRO"
// @Success 200 {object} dto.ListLoansResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list loans"
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListLoans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	filter, err := parseLoanFilter(params)
	if err != nil {
		respondError(c, logger, err, "Failed to list loans")
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list loans")
		return
	}

	logger.Debug("Loans listed", slog.Int("count", len(loans)))
	c.JSON(http.StatusOK, dto.ToListLoansResponse(loans))
}

// getLoan godoc
// @Summary Get a loan account
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 500 {object} map[string]string "Failed to retrieve loan"
// @Security BearerAuth
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	loan, err := h.loanService.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, logger.With(slog.String("loan_id", loanID)), err, "Failed to retrieve loan")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, true))
}

// updateLoan godoc
// @Summary Edit borrower details
// @Description Only non-financial fields can change. Schedule, totals and status are ignored if sent.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Param   details body dto.UpdateLoanRequest true "Fields to change"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 409 {object} map[string]string "Duplicate borrower identity"
// @Failure 500 {object} map[string]string "Failed to update loan"
// @Security BearerAuth
// @Router /loans/{loanID} [put]
func (h *loanHandler) updateLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	var req dto.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), loanID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("loan_id", loanID)), err, "Failed to update loan")
		return
	}

	c.JSON(http.StatusOK, dto.ToLoanResponse(loan, false))
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Refused once anything has been paid against the loan
// @Tags loans
// @Param   loanID path string true "Loan ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 409 {object} map[string]string "Loan has payments"
// @Failure 500 {object} map[string]string "Failed to delete loan"
// @Security BearerAuth
// @Router /loans/{loanID} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	if err := h.loanService.DeleteLoan(c.Request.Context(), loanID, userID); err != nil {
		respondError(c, logger.With(slog.String("loan_id", loanID)), err, "Failed to delete loan")
		return
	}

	c.Status(http.StatusNoContent)
}

// getSchedule godoc
// @Summary Get a loan's schedule with live overdue figures
// @Tags loans
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.ScheduleResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 500 {object} map[string]string "Failed to retrieve schedule"
// @Security BearerAuth
// @Router /loans/{loanID}/schedule [get]
func (h *loanHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	entries, err := h.loanService.GetSchedule(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, logger.With(slog.String("loan_id", loanID)), err, "Failed to retrieve schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ScheduleResponse{LoanID: loanID, Entries: entries})
}

// listPayments godoc
// @Summary List payments applied to a loan
// @Tags payments
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /loans/{loanID}/payments [get]
func (h *loanHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	payments, err := h.loanService.ListPayments(c.Request.Context(), loanID)
	if err != nil {
		respondError(c, logger.With(slog.String("loan_id", loanID)), err, "Failed to list payments")
		return
	}
	if payments == nil {
		payments = []domain.PaymentRecord{}
	}

	c.JSON(http.StatusOK, dto.ListPaymentsResponse{LoanID: loanID, Payments: payments})
}

// previewSchedule godoc
// @Summary Calculate a schedule without saving it
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   terms body dto.PreviewScheduleRequest true "Loan terms"
// @Success 200 {object} dto.PreviewScheduleResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /schedules/preview [post]
func (h *loanHandler) previewSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PreviewScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewSchedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.loanService.PreviewSchedule(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToPreviewScheduleResponse(plan))
}
