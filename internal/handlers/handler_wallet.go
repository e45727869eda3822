package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/microloan_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microloan_ledger/internal/core/ports/services"
	"github.com/SscSPs/microloan_ledger/internal/dto"
	"github.com/SscSPs/microloan_ledger/internal/middleware"
	"github.com/SscSPs/microloan_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

const maxTransactionPage = 200

// walletHandler handles HTTP requests for the pooled wallet.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{
		walletService: ws,
	}
}

// RegisterWalletRoutes registers wallet routes. mutationLimit guards every write.
func RegisterWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade, mutationLimit ...gin.HandlerFunc) {
	h := newWalletHandler(walletService)

	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mutationLimit...), handler)
	}

	wallet := rg.Group("/wallet")
	{
		wallet.GET("", h.getWallet)
		wallet.GET("/transactions", h.listTransactions)
		wallet.POST("/deposits", write(h.deposit)...)
		wallet.POST("/withdrawals", write(h.withdraw)...)
		wallet.DELETE("/transactions/:transactionID", write(h.deleteTransaction)...)
	}
}

// getWallet godoc
// @Summary Get the wallet balance
// @Tags wallet
// @Produce  json
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to read wallet"
// @Security BearerAuth
// @Router /wallet [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	w, err := h.walletService.GetWallet(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to read wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(w))
}

// listTransactions godoc
// @Summary List wallet transactions
// @Description Newest first. Pass nextToken from a previous page to continue.
// @Tags wallet
// @Produce  json
// @Param   type query string false "credit or debit"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /wallet/transactions [get]
func (h *walletHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if params.Limit <= 0 || params.Limit > maxTransactionPage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 200"})
		return
	}

	filter := domain.WalletTransactionFilter{
		Direction: domain.Direction(strings.ToLower(strings.TrimSpace(params.Type))),
		// One extra row tells whether another page exists.
		Limit: params.Limit + 1,
	}
	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextToken"})
			return
		}
		filter.Before = &domain.WalletCursor{CreatedAt: createdAt, TransactionID: id}
	}

	txns, err := h.walletService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}

	res := dto.ListTransactionsResponse{Transactions: txns}
	if len(txns) > params.Limit {
		res.Transactions = txns[:params.Limit]
		last := res.Transactions[params.Limit-1]
		res.NextToken = pagination.EncodeToken(last.CreatedAt, last.TransactionID)
	}
	if res.Transactions == nil {
		res.Transactions = []domain.WalletTransaction{}
	}
	c.JSON(http.StatusOK, res)
}

// deposit godoc
// @Summary Deposit cash into the wallet
// @Tags wallet
// @Accept  json
// @Produce  json
// @Param   movement body dto.WalletMovementRequest true "Amount and description"
// @Success 201 {object} domain.WalletTransaction
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to deposit"
// @Security BearerAuth
// @Router /wallet/deposits [post]
func (h *walletHandler) deposit(c *gin.Context) {
	h.move(c, domain.Credit)
}

// withdraw godoc
// @Summary Withdraw cash from the wallet
// @Tags wallet
// @Accept  json
// @Produce  json
// @Param   movement body dto.WalletMovementRequest true "Amount and description"
// @Success 201 {object} domain.WalletTransaction
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to withdraw"
// @Security BearerAuth
// @Router /wallet/withdrawals [post]
func (h *walletHandler) withdraw(c *gin.Context) {
	h.move(c, domain.Debit)
}

func (h *walletHandler) move(c *gin.Context, dir domain.Direction) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WalletMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for wallet movement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	m := domain.WalletMovement{Amount: req.Amount, Description: req.Description, UserID: userID}
	apply := h.walletService.Credit
	if dir == domain.Debit {
		apply = h.walletService.Debit
	}
	txn, err := apply(c.Request.Context(), m)
	if err != nil {
		respondError(c, logger.With(slog.String("direction", string(dir))), err, "Failed to record wallet "+string(dir))
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// deleteTransaction godoc
// @Summary Delete a wallet transaction
// @Description Reverses the transaction's effect on the balance. Income records are not touched.
// @Tags wallet
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Security BearerAuth
// @Router /wallet/transactions/{transactionID} [delete]
func (h *walletHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	userID, ok := currentUser(c, logger)
	if !ok {
		return
	}

	if err := h.walletService.DeleteTransaction(c.Request.Context(), transactionID, userID); err != nil {
		respondError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}
