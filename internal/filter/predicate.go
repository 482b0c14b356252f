// Package filter turns a free-text search term into a structured predicate
// over transaction fields and translates that predicate into GORM clauses.
//
// The predicate is a small tagged variant (All, None, And, Or, Equals,
// Contains, In). Compile builds it without touching storage, Eval evaluates
// it in memory, and Expression/Scope render it for the database.
package filter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags the variant held by a Predicate.
type Kind int

const (
	KindAll Kind = iota
	KindNone
	KindAnd
	KindOr
	KindEquals
	KindContains
	KindIn
)

func (k Kind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindNone:
		return "none"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindEquals:
		return "eq"
	case KindContains:
		return "contains"
	case KindIn:
		return "in"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field names a filterable transaction column.
type Field string

const (
	FieldDescription Field = "description"
	FieldLocation    Field = "location"
	FieldDate        Field = "date"
	FieldPaymentType Field = "payment_type"
	FieldCategory    Field = "category"
	FieldAmount      Field = "amount"
)

// Predicate is a boolean condition over a Record.
//
// Equals and Contains use Value, In uses Values, And and Or use Children.
// Amount values are canonical decimal strings.
type Predicate struct {
	Kind     Kind
	Field    Field
	Value    string
	Values   []string
	Children []Predicate
}

// All matches every record.
func All() Predicate { return Predicate{Kind: KindAll} }

// None matches no record.
func None() Predicate { return Predicate{Kind: KindNone} }

// Equals matches records whose field equals v.
func Equals(f Field, v string) Predicate {
	return Predicate{Kind: KindEquals, Field: f, Value: v}
}

// Contains matches records whose field contains v, ignoring case.
func Contains(f Field, v string) Predicate {
	return Predicate{Kind: KindContains, Field: f, Value: v}
}

// In matches records whose field is one of vs. An empty set matches nothing.
func In(f Field, vs ...string) Predicate {
	if len(vs) == 0 {
		return None()
	}
	return Predicate{Kind: KindIn, Field: f, Values: vs}
}

// Or matches when any child matches. No children yields None and a single
// child is returned unchanged.
func Or(children ...Predicate) Predicate {
	switch len(children) {
	case 0:
		return None()
	case 1:
		return children[0]
	}
	return Predicate{Kind: KindOr, Children: children}
}

// And matches when every child matches. No children yields All and a single
// child is returned unchanged.
func And(children ...Predicate) Predicate {
	switch len(children) {
	case 0:
		return All()
	case 1:
		return children[0]
	}
	return Predicate{Kind: KindAnd, Children: children}
}

// IsAll reports whether p matches everything without inspecting records.
func (p Predicate) IsAll() bool { return p.Kind == KindAll }

// Record exposes field values for in-memory evaluation.
type Record interface {
	FieldValue(f Field) string
}

// Eval reports whether r satisfies p. Contains is case-insensitive, matching
// the SQL translation.
func (p Predicate) Eval(r Record) bool {
	switch p.Kind {
	case KindAll:
		return true
	case KindNone:
		return false
	case KindAnd:
		for _, c := range p.Children {
			if !c.Eval(r) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range p.Children {
			if c.Eval(r) {
				return true
			}
		}
		return false
	case KindEquals:
		return valuesEqual(p.Field, r.FieldValue(p.Field), p.Value)
	case KindContains:
		return strings.Contains(strings.ToLower(r.FieldValue(p.Field)), strings.ToLower(p.Value))
	case KindIn:
		got := r.FieldValue(p.Field)
		for _, v := range p.Values {
			if valuesEqual(p.Field, got, v) {
				return true
			}
		}
		return false
	}
	return false
}

func valuesEqual(f Field, a, b string) bool {
	if f != FieldAmount {
		return a == b
	}
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA != nil || errB != nil {
		return false
	}
	return da.Equal(db)
}

// String renders p in a compact prefix form, e.g. or(contains(description,"x"),...).
func (p Predicate) String() string {
	switch p.Kind {
	case KindAll, KindNone:
		return p.Kind.String()
	case KindAnd, KindOr:
		parts := make([]string, len(p.Children))
		for i, c := range p.Children {
			parts[i] = c.String()
		}
		return p.Kind.String() + "(" + strings.Join(parts, ",") + ")"
	case KindEquals, KindContains:
		return fmt.Sprintf("%s(%s,%q)", p.Kind, p.Field, p.Value)
	case KindIn:
		quoted := make([]string, len(p.Values))
		for i, v := range p.Values {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return fmt.Sprintf("in(%s,[%s])", p.Field, strings.Join(quoted, ","))
	}
	return p.Kind.String()
}
