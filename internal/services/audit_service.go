package services

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise/internal/logger"
	"spendwise/internal/models"
)

// Audit actions recorded for transactions.
const (
	AuditCreateTransaction     = "CREATE_TRANSACTION"
	AuditUpdateTransaction     = "UPDATE_TRANSACTION"
	AuditDeleteTransaction     = "DELETE_TRANSACTION"
	AuditDeleteAllTransactions = "DELETE_ALL_TRANSACTIONS"

	auditResourceTransaction = "transaction"
)

// TransactionAudit is the payload stored with a transaction audit entry.
// Only the fields that were set or changed are present.
type TransactionAudit struct {
	Description *string             `json:"description,omitempty"`
	PaymentType *models.PaymentType `json:"payment_type,omitempty"`
	Category    *models.Category    `json:"category,omitempty"`
	Amount      *decimal.Decimal    `json:"amount,omitempty"`
	Date        *string             `json:"date,omitempty"`
	Location    *string             `json:"location,omitempty"`
	Deleted     *int64              `json:"deleted,omitempty"`
}

// auditService records who did what to which transaction.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// TransactionCreated records the stored values of a new transaction.
func (s *auditService) TransactionCreated(tx *models.Transaction, ipAddress string) {
	s.record(tx.UserID, AuditCreateTransaction, tx.ID, ipAddress, &TransactionAudit{
		Description: &tx.Description,
		PaymentType: &tx.PaymentType,
		Category:    &tx.Category,
		Amount:      &tx.Amount,
		Date:        &tx.Date,
		Location:    &tx.Location,
	})
}

// TransactionUpdated records the new values of the fields update touched,
// read back from the stored transaction so dates appear normalized.
func (s *auditService) TransactionUpdated(tx *models.Transaction, update TransactionUpdate, ipAddress string) {
	var changes TransactionAudit
	if update.Description != nil {
		changes.Description = &tx.Description
	}
	if update.PaymentType != nil {
		changes.PaymentType = &tx.PaymentType
	}
	if update.Category != nil {
		changes.Category = &tx.Category
	}
	if update.Amount != nil {
		changes.Amount = &tx.Amount
	}
	if update.Date != nil {
		changes.Date = &tx.Date
	}
	if update.Location != nil {
		changes.Location = &tx.Location
	}
	s.record(tx.UserID, AuditUpdateTransaction, tx.ID, ipAddress, &changes)
}

// TransactionDeleted records the removal of a single transaction.
func (s *auditService) TransactionDeleted(tx *models.Transaction, ipAddress string) {
	s.record(tx.UserID, AuditDeleteTransaction, tx.ID, ipAddress, nil)
}

// TransactionsCleared records a bulk delete of every transaction of userID.
func (s *auditService) TransactionsCleared(userID string, result *DeleteAllResult, ipAddress string) {
	deleted := result.Deleted
	s.record(userID, AuditDeleteAllTransactions, "", ipAddress, &TransactionAudit{Deleted: &deleted})
}

// record persists one entry. Failures are logged and swallowed so the
// audited operation still succeeds.
func (s *auditService) record(userID, action, resourceID, ipAddress string, changes *TransactionAudit) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: auditResourceTransaction,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}

	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit payload", "error", err, "action", action)
		} else {
			entry.Changes = string(data)
		}
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_id", resourceID,
		)
	}
}
