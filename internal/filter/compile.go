package filter

import (
	"strings"

	"github.com/shopspring/decimal"

	"spendwise/internal/models"
)

// Compile turns a free-text search term into a disjunction over transaction
// fields. An empty or whitespace-only term matches everything.
//
// The term is matched against description and location as a substring,
// against the date (exactly for a valid DD.MM.YYYY date, otherwise through
// partial year/month/day substrings), against every payment type and
// category whose name contains it, and against the amount when it parses as
// a number an amount column can hold. Parts that do not apply are simply left out.
func Compile(term string, paymentTypes, categories []string) Predicate {
	term = strings.TrimSpace(term)
	if term == "" {
		return All()
	}

	conds := []Predicate{
		Contains(FieldDescription, term),
		Contains(FieldLocation, term),
	}
	conds = append(conds, dateConditions(term)...)

	if matches := enumMatches(term, paymentTypes); len(matches) > 0 {
		conds = append(conds, In(FieldPaymentType, matches...))
	}
	if matches := enumMatches(term, categories); len(matches) > 0 {
		conds = append(conds, In(FieldCategory, matches...))
	}

	if amount, err := decimal.NewFromString(term); err == nil && models.AmountFits(amount) {
		conds = append(conds, Equals(FieldAmount, amount.String()))
	}

	return Or(conds...)
}

// ForTransactions compiles term against the transaction enum universes.
func ForTransactions(term string) Predicate {
	pts := models.PaymentTypes()
	paymentTypes := make([]string, len(pts))
	for i, p := range pts {
		paymentTypes[i] = string(p)
	}

	cats := models.Categories()
	categories := make([]string, len(cats))
	for i, c := range cats {
		categories[i] = string(c)
	}

	return Compile(term, paymentTypes, categories)
}

// dateConditions maps a day-first term onto the ISO storage format. A full
// valid DD.MM.YYYY date becomes an equality; anything else yields up to three
// best-effort substring conditions that may produce false positives.
func dateConditions(term string) []Predicate {
	if iso, ok := models.LocalDateToISO(term); ok {
		return []Predicate{Equals(FieldDate, iso)}
	}

	runes := []rune(term)
	n := len(runes)

	var conds []Predicate
	if n >= 4 {
		conds = append(conds, Contains(FieldDate, string(runes[n-4:])))
	}
	if n >= 7 {
		conds = append(conds, Contains(FieldDate, "-"+string(runes[n-7:n-5])+"-"))
	}
	if n == 10 {
		conds = append(conds, Contains(FieldDate, "-"+string(runes[:2])))
	}
	return conds
}

func enumMatches(term string, universe []string) []string {
	needle := strings.ToLower(term)
	var matches []string
	for _, v := range universe {
		if strings.Contains(strings.ToLower(v), needle) {
			matches = append(matches, v)
		}
	}
	return matches
}

// TransactionRecord adapts a transaction for Predicate.Eval.
func TransactionRecord(tx *models.Transaction) Record {
	return transactionRecord{tx}
}

type transactionRecord struct {
	tx *models.Transaction
}

func (r transactionRecord) FieldValue(f Field) string {
	switch f {
	case FieldDescription:
		return r.tx.Description
	case FieldLocation:
		return r.tx.Location
	case FieldDate:
		return r.tx.Date
	case FieldPaymentType:
		return string(r.tx.PaymentType)
	case FieldCategory:
		return string(r.tx.Category)
	case FieldAmount:
		return r.tx.Amount.String()
	}
	return ""
}
