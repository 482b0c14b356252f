package services

import (
	"github.com/shopspring/decimal"

	"spendwise/internal/models"
)

// SignUpInput holds the fields required to register a user.
type SignUpInput struct {
	Username string
	Name     string
	Password string
	Gender   models.Gender
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	SignUp(input SignUpInput) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUser(id string) (*models.User, error)
	ListUsers() ([]models.User, error)
}

// SessionMeta describes the client a session was opened for.
type SessionMeta struct {
	IPAddress string
	UserAgent string
}

// SessionServicer issues, resolves and revokes server-side sessions.
type SessionServicer interface {
	Create(user *models.User, meta SessionMeta) (string, error)
	Resolve(token string) (*models.User, error)
	Revoke(token string) error
}

// ListQuery selects one page of the actor's transactions.
// A non-empty CustomTagID replaces Filter with that saved search's term.
type ListQuery struct {
	Offset      int
	Limit       int
	Filter      string
	CustomTagID string
}

// TransactionPage is one page of transactions plus the total number of matches.
type TransactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
}

// TransactionInput holds the fields of a new transaction. Nil pointers are missing fields.
type TransactionInput struct {
	Description string
	PaymentType models.PaymentType
	Category    models.Category
	Amount      *decimal.Decimal
	Date        string
	Location    *string
}

// TransactionUpdate is a partial update: only non-nil fields change.
type TransactionUpdate struct {
	TransactionID string
	Description   *string
	PaymentType   *models.PaymentType
	Category      *models.Category
	Amount        *decimal.Decimal
	Date          *string
	Location      *string
}

// DeleteAllResult reports the outcome of a bulk delete.
type DeleteAllResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted int64  `json:"-"`
}

// TransactionServicer defines the contract for transaction-related business logic.
// actor is the authenticated user or nil.
type TransactionServicer interface {
	ListTransactions(actor *models.User, q ListQuery) (*TransactionPage, error)
	GetTransaction(actor *models.User, id string) (*models.Transaction, error)
	CategoryStatistics(actor *models.User) ([]models.CategoryStatistic, error)
	CreateTransaction(actor *models.User, input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(actor *models.User, input TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(actor *models.User, id string) (*models.Transaction, error)
	DeleteAllTransactions(actor *models.User, userID string) (*DeleteAllResult, error)
}

// TagServicer defines the contract for tags and saved searches.
type TagServicer interface {
	ListTags() ([]models.Tag, error)
	CreateTag(actor *models.User, name string) (*models.Tag, error)
	UserTags(userID string) ([]models.Tag, error)
	AddUserTag(actor *models.User, userID, tagID string) (*models.User, error)
	ListCustomTags() ([]models.CustomTag, error)
	GetCustomTag(id string) (*models.CustomTag, error)
	CreateCustomTag(actor *models.User, name, searchTerm string) (*models.CustomTag, error)
}

// AuditServicer defines the contract for audit logging of transaction changes.
type AuditServicer interface {
	TransactionCreated(tx *models.Transaction, ipAddress string)
	TransactionUpdated(tx *models.Transaction, update TransactionUpdate, ipAddress string)
	TransactionDeleted(tx *models.Transaction, ipAddress string)
	TransactionsCleared(userID string, result *DeleteAllResult, ipAddress string)
}
