// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package advisor

import (
	"fmt"
	"math"

	"github.com/google/cel-go/cel"
)

// Rule is one entry of the advisor's decision table. When is a CEL
// expression over the snapshot variables (see ruleEnv) that must yield a
// bool; Message renders the advice for a matching snapshot.
type Rule struct {
	Name     string
	When     string
	Priority Priority
	Message  func(s *Snapshot) string
}

// DefaultRules returns the built-in table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "low_stock",
			When:     `turnover_rate > 2.0 && stock < monthly_sales * 0.3`,
			Priority: PriorityHigh,
			Message: func(s *Snapshot) string {
				return fmt.Sprintf("Low stock: expected to sell out in %d days, restock soon", DaysToEmpty(s.Stock, s.MonthlySales))
			},
		},
		{
			Name:     "stale_inventory",
			When:     `recent_sales == 0.0 && stock > 50.0`,
			Priority: PriorityMedium,
			Message: func(*Snapshot) string {
				return "No sales in the last 7 days with high stock, consider a discount or a better description"
			},
		},
		{
			Name:     "declining_sales",
			When:     `change_pct < -10.0 && turnover_rate < 0.5`,
			Priority: PriorityMedium,
			Message: func(s *Snapshot) string {
				return fmt.Sprintf("Sales down %.2f%% week over week, consider a limited-time discount", math.Abs(s.ChangePct))
			},
		},
		{
			Name:     "price_increase",
			When:     `change_pct > 20.0 && price < avg_category_price * 0.9 && stock > 100.0`,
			Priority: PriorityLow,
			Message: func(s *Snapshot) string {
				return fmt.Sprintf("Selling well and priced below the category average, consider raising the price to %.2f", s.Price*1.1)
			},
		},
		{
			Name:     "excess_inventory",
			When:     `turnover_rate < 0.2 && stock > 200.0`,
			Priority: PriorityMedium,
			Message: func(s *Snapshot) string {
				return fmt.Sprintf("Turnover rate only %.2f, optimize inventory or run a promotion", s.TurnoverRate)
			},
		},
		{
			Name:     "restock",
			When:     `turnover_rate > 1.5 && stock < 50.0`,
			Priority: PriorityLow,
			Message: func(*Snapshot) string {
				return "Selling well, increase stock to meet demand"
			},
		},
	}
}

// ruleEnv declares the variables rule conditions can reference. Every
// variable is a double so conditions never mix numeric types.
func ruleEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("recent_sales", cel.DoubleType),
		cel.Variable("previous_sales", cel.DoubleType),
		cel.Variable("monthly_sales", cel.DoubleType),
		cel.Variable("stock", cel.DoubleType),
		cel.Variable("price", cel.DoubleType),
		cel.Variable("avg_category_price", cel.DoubleType),
		cel.Variable("turnover_rate", cel.DoubleType),
		cel.Variable("change_pct", cel.DoubleType),
	)
}

func activation(s *Snapshot) map[string]any {
	return map[string]any{
		"recent_sales":       float64(s.RecentSales),
		"previous_sales":     float64(s.PreviousSales),
		"monthly_sales":      float64(s.MonthlySales),
		"stock":              float64(s.Stock),
		"price":              s.Price,
		"avg_category_price": s.AvgCategoryPrice,
		"turnover_rate":      s.TurnoverRate,
		"change_pct":         s.ChangePct,
	}
}

type compiledRule struct {
	Rule
	program cel.Program
}

// RuleEngine evaluates an ordered rule table; the first matching rule wins.
// Programs are compiled once and are safe for concurrent use.
type RuleEngine struct {
	rules []compiledRule
}

// NewRuleEngine compiles the rules. Order is preserved.
func NewRuleEngine(rules []Rule) (*RuleEngine, error) {
	env, err := ruleEnv()
	if err != nil {
		return nil, fmt.Errorf("rule environment: %w", err)
	}

	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		if r.Message == nil {
			return nil, fmt.Errorf("rule %s: missing message", r.Name)
		}
		if r.Priority.Rank() > PriorityLow.Rank() {
			return nil, fmt.Errorf("rule %s: unknown priority %q", r.Name, r.Priority)
		}
		ast, issues := env.Compile(r.When)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("rule %s: compile: %w", r.Name, issues.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("rule %s: condition must be boolean, got %s", r.Name, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %s: program: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, program: prg})
	}
	return &RuleEngine{rules: compiled}, nil
}

// Match is the outcome of a matching rule.
type Match struct {
	Rule     string
	Priority Priority
	Message  string
}

// Evaluate returns the first rule matching the snapshot, or nil when none
// does.
func (e *RuleEngine) Evaluate(s *Snapshot) (*Match, error) {
	vars := activation(s)
	for i := range e.rules {
		r := &e.rules[i]
		out, _, err := r.program.Eval(vars)
		if err != nil {
			return nil, fmt.Errorf("rule %s: eval: %w", r.Name, err)
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return nil, fmt.Errorf("rule %s: expected bool, got %T", r.Name, out.Value())
		}
		if matched {
			return &Match{Rule: r.Name, Priority: r.Priority, Message: r.Message(s)}, nil
		}
	}
	return nil, nil
}

// Names lists the rule names in evaluation order.
func (e *RuleEngine) Names() []string {
	names := make([]string, len(e.rules))
	for i := range e.rules {
		names[i] = e.rules[i].Name
	}
	return names
}
