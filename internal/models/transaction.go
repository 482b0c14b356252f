package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts are numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// PaymentType is how a transaction was paid.
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeDebit  PaymentType = "debit"
	PaymentTypeCredit PaymentType = "credit"
	PaymentTypeTwint  PaymentType = "twint"
)

// PaymentTypes returns every payment type in declaration order.
func PaymentTypes() []PaymentType {
	return []PaymentType{PaymentTypeCash, PaymentTypeDebit, PaymentTypeCredit, PaymentTypeTwint}
}

// Valid reports whether p is a known payment type.
func (p PaymentType) Valid() bool {
	for _, v := range PaymentTypes() {
		if p == v {
			return true
		}
	}
	return false
}

// Category is the bucket a transaction is accounted under.
type Category string

const (
	CategoryInvestment Category = "investment"
	CategorySaving     Category = "saving"
	CategoryExpense    Category = "expense"
)

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{CategoryInvestment, CategorySaving, CategoryExpense}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, v := range Categories() {
		if c == v {
			return true
		}
	}
	return false
}

// Transaction represents a financial transaction owned by a single user.
// Date is stored as an ISO YYYY-MM-DD string.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string          `gorm:"not null" json:"description"`
	PaymentType PaymentType     `gorm:"not null" json:"payment_type"`
	Category    Category        `gorm:"not null;index" json:"category"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Location    string          `gorm:"not null;default:''" json:"location"`
	Date        string          `gorm:"type:varchar(10);not null;index" json:"date"`
}

// Amounts are stored as NUMERIC(14,2).
const (
	AmountScale         = 2
	AmountIntegerDigits = 12
)

var amountLimit = decimal.New(1, AmountIntegerDigits)

// AmountIntegerDigitsOK reports whether d has at most AmountIntegerDigits
// digits before the decimal point without expanding the exponent.
func AmountIntegerDigitsOK(d decimal.Decimal) bool {
	// NumDigits may be off by one near powers of ten.
	magnitude := int64(d.NumDigits()) + int64(d.Exponent())
	switch {
	case magnitude > AmountIntegerDigits+1:
		return false
	case magnitude < AmountIntegerDigits:
		return true
	}
	return d.Abs().LessThan(amountLimit)
}

// AmountScaleOK reports whether d has at most AmountScale decimal places
// once trailing zeros are dropped.
func AmountScaleOK(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp >= -AmountScale {
		return true
	}
	// A coefficient of n digits has fewer than n trailing zeros.
	if -exp-AmountScale > int64(d.NumDigits()) {
		return false
	}
	return d.Equal(d.Round(AmountScale))
}

// AmountFits reports whether d can be stored as a transaction amount.
func AmountFits(d decimal.Decimal) bool {
	return AmountIntegerDigitsOK(d) && AmountScaleOK(d)
}

// CategoryStatistic is the sum of a user's transaction amounts for one category.
type CategoryStatistic struct {
	Category    Category        `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
