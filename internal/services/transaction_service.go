package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/filter"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db         *gorm.DB
	tagService TagServicer
}

// NewTransactionService creates a new TransactionServicer. tagService resolves
// saved searches passed as ListQuery.CustomTagID.
func NewTransactionService(db *gorm.DB, tagService TagServicer) TransactionServicer {
	return &transactionService{
		db:         db,
		tagService: tagService,
	}
}

// ListTransactions returns one page of the actor's transactions matching the
// query's filter, newest first.
func (s *transactionService) ListTransactions(actor *models.User, q ListQuery) (*TransactionPage, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if q.Limit < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Limit must be at least 1")
	}
	if q.Offset < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Offset must not be negative")
	}

	term := q.Filter
	if q.CustomTagID != "" {
		customTag, err := s.tagService.GetCustomTag(q.CustomTagID)
		if err != nil {
			return nil, err
		}
		term = customTag.SearchTerm
	}
	predicate := filter.ForTransactions(term)

	// Count and Find each get a fresh chain; a GORM statement is not reusable
	// once executed.
	scoped := func() *gorm.DB {
		return s.db.Model(&models.Transaction{}).
			Where("user_id = ?", actor.ID).
			Scopes(filter.Scope(predicate))
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	transactions := []models.Transaction{}
	if int64(q.Offset) < total {
		if err := scoped().
			Order("date DESC").Order("created_at DESC").Order("id DESC").
			Scopes(pagination.Paginate(q.Offset, q.Limit)).
			Find(&transactions).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternal, err)
		}
	}

	return &TransactionPage{Transactions: transactions, Total: total}, nil
}

// GetTransaction retrieves one of the actor's transactions. Rows owned by
// other users are reported as not found.
func (s *transactionService) GetTransaction(actor *models.User, id string) (*models.Transaction, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return s.findOwned(s.db, actor.ID, id)
}

func (s *transactionService) findOwned(db *gorm.DB, userID, id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &transaction, nil
}

// CategoryStatistics sums the actor's transaction amounts per category.
// Categories without transactions are omitted.
func (s *transactionService) CategoryStatistics(actor *models.User) ([]models.CategoryStatistic, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	stats := []models.CategoryStatistic{}
	if err := s.db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS total_amount").
		Where("user_id = ?", actor.ID).
		Group("category").
		Order("category").
		Scan(&stats).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	for i := range stats {
		stats[i].TotalAmount = stats[i].TotalAmount.Round(2)
	}
	return stats, nil
}

// CreateTransaction validates input and records a transaction owned by actor.
func (s *transactionService) CreateTransaction(actor *models.User, input TransactionInput) (*models.Transaction, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	if isBlank(input.Description) || isBlank(string(input.PaymentType)) || isBlank(string(input.Category)) ||
		input.Amount == nil || isBlank(input.Date) {
		return nil, apperrors.ErrMissingFields
	}
	if err := validateAmount(*input.Amount); err != nil {
		return nil, err
	}
	if err := validatePaymentType(input.PaymentType); err != nil {
		return nil, err
	}
	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}
	date, err := normalizeDate(input.Date)
	if err != nil {
		return nil, err
	}

	location := ""
	if input.Location != nil {
		location = strings.TrimSpace(*input.Location)
	}

	transaction := &models.Transaction{
		UserID:      actor.ID,
		Description: strings.TrimSpace(input.Description),
		PaymentType: input.PaymentType,
		Category:    input.Category,
		Amount:      *input.Amount,
		Location:    location,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return transaction, nil
}

// UpdateTransaction applies the supplied fields to one of the actor's
// transactions. Each supplied field is validated like on create.
func (s *transactionService) UpdateTransaction(actor *models.User, input TransactionUpdate) (*models.Transaction, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if isBlank(input.TransactionID) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Transaction ID is required")
	}

	updates, err := updateColumns(input)
	if err != nil {
		return nil, err
	}

	var updated *models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.findOwned(tx, actor.ID, input.TransactionID)
		if err != nil {
			return err
		}
		if err := tx.Model(transaction).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		updated, err = s.findOwned(tx, actor.ID, input.TransactionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// updateColumns validates the supplied fields and maps them to columns.
func updateColumns(input TransactionUpdate) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if input.Description != nil {
		if isBlank(*input.Description) {
			return nil, apperrors.ErrMissingFields
		}
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.PaymentType != nil {
		if isBlank(string(*input.PaymentType)) {
			return nil, apperrors.ErrMissingFields
		}
		if err := validatePaymentType(*input.PaymentType); err != nil {
			return nil, err
		}
		updates["payment_type"] = *input.PaymentType
	}
	if input.Category != nil {
		if isBlank(string(*input.Category)) {
			return nil, apperrors.ErrMissingFields
		}
		if err := validateCategory(*input.Category); err != nil {
			return nil, err
		}
		updates["category"] = *input.Category
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		updates["amount"] = *input.Amount
	}
	if input.Date != nil {
		if isBlank(*input.Date) {
			return nil, apperrors.ErrMissingFields
		}
		date, err := normalizeDate(*input.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
	}
	if input.Location != nil {
		updates["location"] = strings.TrimSpace(*input.Location)
	}

	if len(updates) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}
	return updates, nil
}

// DeleteTransaction removes one of the actor's transactions and returns it.
func (s *transactionService) DeleteTransaction(actor *models.User, id string) (*models.Transaction, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	transaction, err := s.findOwned(s.db, actor.ID, id)
	if err != nil {
		return nil, err
	}

	result := s.db.Where("id = ? AND user_id = ?", id, actor.ID).Delete(&models.Transaction{})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	return transaction, nil
}

// DeleteAllTransactions removes every transaction of userID in one database
// transaction. Only the user themself may do this.
func (s *transactionService) DeleteAllTransactions(actor *models.User, userID string) (*DeleteAllResult, error) {
	if actor == nil || actor.ID != userID {
		return nil, apperrors.ErrUnauthorized
	}

	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ?", userID).Delete(&models.Transaction{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}

	return &DeleteAllResult{
		Success: true,
		Message: fmt.Sprintf("Deleted %d transactions", deleted),
		Deleted: deleted,
	}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validateAmount requires a positive amount that fits NUMERIC(14,2).
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrNonPositiveAmount
	}
	if !models.AmountIntegerDigitsOK(amount) {
		return apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("Amount must have at most %d digits before the decimal point", models.AmountIntegerDigits))
	}
	if !models.AmountScaleOK(amount) {
		return apperrors.WithMessage(apperrors.ErrValidation, "Amount must have at most two decimal places")
	}
	return nil
}

func validatePaymentType(p models.PaymentType) error {
	if !p.Valid() {
		return apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("Invalid payment type %q", p))
	}
	return nil
}

func validateCategory(c models.Category) error {
	if !c.Valid() {
		return apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("Invalid category %q", c))
	}
	return nil
}

func normalizeDate(s string) (string, error) {
	date, ok := models.NormalizeDate(strings.TrimSpace(s))
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrValidation, "Date must be YYYY-MM-DD or DD.MM.YYYY")
	}
	return date, nil
}
