package filter

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Expression translates p into a GORM clause expression. ok is false when p
// matches everything and no condition needs to be added.
func Expression(p Predicate) (expr clause.Expression, ok bool) {
	switch p.Kind {
	case KindAll:
		return nil, false
	case KindNone:
		return clause.Expr{SQL: "1 = 0"}, true
	case KindEquals:
		return clause.Eq{Column: clause.Column{Name: string(p.Field)}, Value: columnValue(p.Field, p.Value)}, true
	case KindContains:
		return containsExpr{column: string(p.Field), pattern: likePattern(p.Value)}, true
	case KindIn:
		values := make([]interface{}, len(p.Values))
		for i, v := range p.Values {
			values[i] = columnValue(p.Field, v)
		}
		return clause.IN{Column: clause.Column{Name: string(p.Field)}, Values: values}, true
	case KindOr:
		exprs := make([]clause.Expression, 0, len(p.Children))
		for _, c := range p.Children {
			e, ok := Expression(c)
			if !ok {
				return nil, false
			}
			exprs = append(exprs, e)
		}
		return junction(" OR ", exprs), true
	case KindAnd:
		exprs := make([]clause.Expression, 0, len(p.Children))
		for _, c := range p.Children {
			if e, ok := Expression(c); ok {
				exprs = append(exprs, e)
			}
		}
		if len(exprs) == 0 {
			return nil, false
		}
		return junction(" AND ", exprs), true
	}
	return clause.Expr{SQL: "1 = 0"}, true
}

// Scope returns a GORM scope that adds p to the WHERE clause, ANDed with any
// conditions already on the query.
func Scope(p Predicate) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		expr, ok := Expression(p)
		if !ok {
			return db
		}
		return db.Where(expr)
	}
}

func columnValue(f Field, v string) interface{} {
	if f == FieldAmount {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return v
}

// junction joins expressions with op inside parentheses. GORM treats a
// single-element clause.OrConditions as "OR with the previous condition",
// so Or/And are rendered here instead.
func junction(op string, exprs []clause.Expression) clause.Expression {
	if len(exprs) == 1 {
		return group{exprs[0]}
	}
	return joined{op: op, exprs: exprs}
}

type joined struct {
	op    string
	exprs []clause.Expression
}

func (j joined) Build(b clause.Builder) {
	b.WriteByte('(')
	for i, e := range j.exprs {
		if i > 0 {
			b.WriteString(j.op)
		}
		e.Build(b)
	}
	b.WriteByte(')')
}

type group struct {
	expr clause.Expression
}

func (g group) Build(b clause.Builder) {
	b.WriteByte('(')
	g.expr.Build(b)
	b.WriteByte(')')
}

// containsExpr renders a case-insensitive substring match that behaves the
// same on PostgreSQL and SQLite.
type containsExpr struct {
	column  string
	pattern string
}

func (e containsExpr) Build(b clause.Builder) {
	b.WriteString("LOWER(")
	b.WriteQuoted(clause.Column{Name: e.column})
	b.WriteString(") LIKE ")
	b.AddVar(b, e.pattern)
	b.WriteString(` ESCAPE '\'`)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(v string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(v)) + "%"
}
