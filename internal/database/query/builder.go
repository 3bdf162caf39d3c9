// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package query

import (
	"strconv"
	"strings"
)

// WhereBuilder constructs SQL WHERE clauses with numbered ($n) placeholders,
// the form accepted by both DuckDB and PostgreSQL.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddClause("p.status = ?", 1)
//	wb.AddNotIn("p.id", []int64{3, 7})
//	where, args := wb.Build()
//	// WHERE p.status = $1 AND p.id NOT IN ($2, $3)
type WhereBuilder struct {
	clauses []string
	args    []any
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// AddClause adds a condition. Each "?" in clause is replaced by the next
// numbered placeholder and bound to the matching argument.
func (wb *WhereBuilder) AddClause(clause string, args ...any) *WhereBuilder {
	var b strings.Builder
	next := 0
	for _, r := range clause {
		if r == '?' && next < len(args) {
			wb.args = append(wb.args, args[next])
			next++
			b.WriteString(wb.placeholder())
			continue
		}
		b.WriteRune(r)
	}
	wb.clauses = append(wb.clauses, b.String())
	return wb
}

// AddNotIn adds "column NOT IN (...)". An empty list adds nothing.
func (wb *WhereBuilder) AddNotIn(column string, ids []int64) *WhereBuilder {
	if len(ids) == 0 {
		return wb
	}
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		wb.args = append(wb.args, id)
		placeholders[i] = wb.placeholder()
	}
	wb.clauses = append(wb.clauses, column+" NOT IN ("+strings.Join(placeholders, ", ")+")")
	return wb
}

// Arg binds a value outside the WHERE clause (LIMIT, for example) and
// returns its placeholder.
func (wb *WhereBuilder) Arg(v any) string {
	wb.args = append(wb.args, v)
	return wb.placeholder()
}

// placeholder returns the placeholder of the most recently bound argument.
func (wb *WhereBuilder) placeholder() string {
	return "$" + strconv.Itoa(len(wb.args))
}

// Build returns the WHERE clause (empty when no conditions were added) and
// the arguments in placeholder order.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.clauses) == 0 {
		return "", wb.args
	}
	return "WHERE " + strings.Join(wb.clauses, " AND "), wb.args
}
