package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/SscSPs/microloan_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles payment application against a loan.
type paymentHandler struct {
	paymentService portssvc.PaymentSvc
}

func newPaymentHandler(ps portssvc.PaymentSvc) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// applyPayment godoc
// @Summary Apply a payment to a loan
// @Description Settles one installment (SINGLE_EMI), every overdue installment (ALL_OVERDUE, any excess reduces the balance) or the whole balance (FULL). The wallet is credited and interest is recorded as income.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   loanID path string true "Loan ID"
// @Param   payment body dto.ApplyPaymentRequest true "Payment mode, target and amount"
// @Success 200 {object} dto.PaymentReceiptResponse
// @Failure 400 {object} map[string]interface{} "Invalid input or insufficient payment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Loan not found"
// @Failure 409 {object} map[string]string "Installment already settled"
// @Failure 422 {object} map[string]string "No overdue installments"
// @Failure 500 {object} map[string]string "Payment failed or partially applied"
// @Security BearerAuth
// @Router /loans/{loanID}/payments [post]
func (h *paymentHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("loanID")

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("loan_id", loanID), slog.String("mode", req.Mode))
	receipt, err := h.paymentService.ApplyPayment(c.Request.Context(), loanID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to apply payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentReceiptResponse(receipt))
}
