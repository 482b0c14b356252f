package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"spendwise/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithUsername(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Name:     "Test " + username,
		Password: string(hash),
		Gender:   models.GenderDiverse,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// TransactionOption customizes a fixture transaction.
type TransactionOption func(*models.Transaction)

// WithDescription sets the description.
func WithDescription(d string) TransactionOption {
	return func(tx *models.Transaction) { tx.Description = d }
}

// WithLocation sets the location.
func WithLocation(l string) TransactionOption {
	return func(tx *models.Transaction) { tx.Location = l }
}

// WithDate sets the ISO date.
func WithDate(d string) TransactionOption {
	return func(tx *models.Transaction) { tx.Date = d }
}

// WithCategory sets the category.
func WithCategory(c models.Category) TransactionOption {
	return func(tx *models.Transaction) { tx.Category = c }
}

// WithPaymentType sets the payment type.
func WithPaymentType(p models.PaymentType) TransactionOption {
	return func(tx *models.Transaction) { tx.PaymentType = p }
}

// WithAmount sets the amount from a decimal string.
func WithAmount(a string) TransactionOption {
	return func(tx *models.Transaction) { tx.Amount = decimal.RequireFromString(a) }
}

// CreateTestTransaction creates an expense of 10 paid in cash on 2024-01-15
// unless options say otherwise.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, opts ...TransactionOption) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		PaymentType: models.PaymentTypeCash,
		Category:    models.CategoryExpense,
		Amount:      decimal.NewFromInt(10),
		Date:        "2024-01-15",
	}
	for _, opt := range opts {
		opt(tx)
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestTag creates a tag with a unique name.
func CreateTestTag(t *testing.T, db *gorm.DB) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: fmt.Sprintf("tag-%d", nextID())}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}

// CreateTestCustomTag creates a saved search for the given term.
func CreateTestCustomTag(t *testing.T, db *gorm.DB, searchTerm string) *models.CustomTag {
	t.Helper()

	ct := &models.CustomTag{Name: fmt.Sprintf("search-%d", nextID()), SearchTerm: searchTerm}
	if err := db.Create(ct).Error; err != nil {
		t.Fatalf("failed to create test custom tag: %v", err)
	}
	return ct
}
