package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// ListTransactionsQuery holds the query string of GET /transactions.
type ListTransactionsQuery struct {
	pagination.PageRequest
	Filter      string `form:"filter" binding:"max=200"`
	CustomTagID string `form:"custom_tag_id" binding:"omitempty,uuid"`
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Description string             `json:"description" binding:"max=500"`
	PaymentType models.PaymentType `json:"payment_type" binding:"omitempty,payment_type"`
	Category    models.Category    `json:"category" binding:"omitempty,category"`
	Amount      *decimal.Decimal   `json:"amount" swaggertype:"number"`
	Date        string             `json:"date" binding:"omitempty,txdate" example:"2024-03-15"`
	Location    *string            `json:"location" binding:"omitempty,max=255"`
}

// UpdateTransactionRequest represents a partial update; omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	Description *string             `json:"description" binding:"omitempty,max=500"`
	PaymentType *models.PaymentType `json:"payment_type" binding:"omitempty,payment_type"`
	Category    *models.Category    `json:"category" binding:"omitempty,category"`
	Amount      *decimal.Decimal    `json:"amount" swaggertype:"number"`
	Date        *string             `json:"date" binding:"omitempty,txdate"`
	Location    *string             `json:"location" binding:"omitempty,max=255"`
}

// TransactionResponse wraps a single transaction.
type TransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

// CategoryStatisticsResponse lists per-category sums.
type CategoryStatisticsResponse struct {
	Statistics []models.CategoryStatistic `json:"statistics"`
}

// ListTransactions returns one page of the current user's transactions
// @Summary     List transactions
// @Description Page through the current user's transactions, newest first. The filter is a free-text term matched against description, location, date (YYYY-MM-DD or DD.MM.YYYY), payment type, category and amount.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       offset        query int    false "Rows to skip" minimum(0)
// @Param       limit         query int    false "Page size" minimum(1) maximum(100) default(20)
// @Param       filter        query string false "Search term"
// @Param       custom_tag_id query string false "Use the search term of this custom tag"
// @Success     200 {object} services.TransactionPage "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Custom tag not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	page, err := h.transactionService.ListTransactions(currentUser(c), services.ListQuery{
		Offset:      q.Offset,
		Limit:       q.PageLimit(),
		Filter:      q.Filter,
		CustomTagID: q.CustomTagID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetTransaction returns one transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(currentUser(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: *transaction})
}

// CategoryStatistics returns per-category sums
// @Summary     Category statistics
// @Description Sum of the current user's transaction amounts per category. Categories without transactions are omitted.
// @Tags        statistics
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} CategoryStatisticsResponse "Statistics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /statistics/categories [get]
func (h *TransactionHandler) CategoryStatistics(c *gin.Context) {
	stats, err := h.transactionService.CategoryStatistics(currentUser(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryStatisticsResponse{Statistics: stats})
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a transaction for the current user. Location defaults to an empty string.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(currentUser(c), services.TransactionInput{
		Description: req.Description,
		PaymentType: req.PaymentType,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Location:    req.Location,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.TransactionCreated(transaction, c.ClientIP())

	c.JSON(http.StatusCreated, TransactionResponse{Transaction: *transaction})
}

// UpdateTransaction applies a partial update
// @Summary     Update a transaction
// @Description Change only the supplied fields of one of the current user's transactions
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} TransactionResponse "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.TransactionUpdate{
		TransactionID: id,
		Description:   req.Description,
		PaymentType:   req.PaymentType,
		Category:      req.Category,
		Amount:        req.Amount,
		Date:          req.Date,
		Location:      req.Location,
	}

	transaction, err := h.transactionService.UpdateTransaction(currentUser(c), update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.TransactionUpdated(transaction, update, c.ClientIP())

	c.JSON(http.StatusOK, TransactionResponse{Transaction: *transaction})
}

// DeleteTransaction deletes one transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Deleted transaction"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.DeleteTransaction(currentUser(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.TransactionDeleted(transaction, c.ClientIP())

	c.JSON(http.StatusOK, TransactionResponse{Transaction: *transaction})
}

// DeleteAllTransactions deletes every transaction of a user
// @Summary     Delete all transactions
// @Description Delete every transaction of the given user. Only that user may do this.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "User ID"
// @Success     200 {object} services.DeleteAllResult "Result"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{id}/transactions [delete]
func (h *TransactionHandler) DeleteAllTransactions(c *gin.Context) {
	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.DeleteAllTransactions(currentUser(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.TransactionsCleared(userID, result, c.ClientIP())

	c.JSON(http.StatusOK, result)
}
