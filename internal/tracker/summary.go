package tracker

import (
	"sort"
	"time"

	"telegram-budget-bot/internal/models"

	"github.com/shopspring/decimal"
)

// Periods accepted by Summary.
const (
	PeriodCurrentMonth = "current_month"
	PeriodLastMonth    = "last_month"
	PeriodAllTime      = "all_time"
)

// periodRange returns the half-open [start, end) window for a named period.
// The exclusive end on the first instant of the following month makes the
// whole last calendar day inclusive. Zero times mean unbounded; anything
// unrecognized falls back to all time.
func periodRange(period string, now time.Time) (time.Time, time.Time) {
	switch period {
	case PeriodCurrentMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	case PeriodLastMonth:
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return end.AddDate(0, -1, 0), end
	default:
		return time.Time{}, time.Time{}
	}
}

func inRange(ts, start, end time.Time) bool {
	if !start.IsZero() && ts.Before(start) {
		return false
	}
	if !end.IsZero() && !ts.Before(end) {
		return false
	}
	return true
}

// Summary aggregates the user's transactions over the named period:
// income and expense totals, per-category expenses, and alerts for every
// budgeted category whose period spending exceeded its ceiling. The
// TotalSavings field is the all-time running balance regardless of period.
func (t *Tracker) Summary(userID, period string) models.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	summary := models.Summary{
		Period:             period,
		TotalIncome:        decimal.Zero,
		TotalExpenses:      decimal.Zero,
		NetSavings:         decimal.Zero,
		ExpensesByCategory: make(map[string]decimal.Decimal),
		TotalSavings:       decimal.Zero,
	}

	acc, ok := t.doc.Users[userID]
	if !ok {
		return summary
	}
	summary.TotalSavings = acc.TotalSavings

	start, end := periodRange(period, t.now())
	for _, tx := range acc.Transactions {
		if !inRange(tx.Date.Time, start, end) {
			continue
		}
		switch tx.Type {
		case models.TypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case models.TypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(tx.Amount)
			spent, exists := summary.ExpensesByCategory[tx.Category]
			if !exists {
				spent = decimal.Zero
			}
			summary.ExpensesByCategory[tx.Category] = spent.Add(tx.Amount)
		}
	}
	summary.NetSavings = summary.TotalIncome.Sub(summary.TotalExpenses)

	// Alerts in a stable order: category names sorted.
	categories := make([]string, 0, len(acc.Budgets))
	for category := range acc.Budgets {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		spent, exists := summary.ExpensesByCategory[category]
		if !exists {
			continue
		}
		budget := acc.Budgets[category]
		if spent.GreaterThan(budget.Amount) {
			summary.BudgetAlerts = append(summary.BudgetAlerts, models.BudgetAlert{
				Category: category,
				Spent:    spent,
				Budget:   budget.Amount,
			})
		}
	}

	return summary
}
