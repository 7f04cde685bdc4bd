// Package format renders tracker outputs as Telegram-ready Markdown text.
package format

import (
	"fmt"
	"sort"
	"strings"

	"telegram-budget-bot/internal/models"

	"github.com/shopspring/decimal"
)

func typeTitle(txType string) string {
	if txType == models.TypeIncome {
		return "Income"
	}
	return "Expense"
}

// TransactionAdded is the confirmation for a recorded transaction.
func TransactionAdded(tx models.Transaction) string {
	return fmt.Sprintf("✅ %s of $%s added successfully!", typeTitle(tx.Type), tx.Amount.StringFixed(2))
}

// BudgetSet is the confirmation for a configured budget.
func BudgetSet(category string, entry models.BudgetEntry) string {
	return fmt.Sprintf("✅ Budget of $%s set for %s", entry.Amount.StringFixed(2), category)
}

// GoalAdded is the confirmation for a new savings goal.
func GoalAdded(goal models.SavingsGoal) string {
	return fmt.Sprintf("✅ Savings goal '%s' added successfully!", goal.Name)
}

// GoalContribution is the confirmation for a goal contribution.
func GoalContribution(goal models.SavingsGoal, amount decimal.Decimal) string {
	return fmt.Sprintf("✅ Added $%s to '%s'. Total saved: $%s", amount.StringFixed(2), goal.Name, goal.CurrentAmount.StringFixed(2))
}

// SummaryText renders a financial summary report.
func SummaryText(s models.Summary) string {
	periodTitle := strings.ReplaceAll(s.Period, "_", " ")
	var b strings.Builder

	fmt.Fprintf(&b, "📊 *Financial Summary* (%s)\n\n", periodTitle)
	b.WriteString("*Income & Expenses:*\n")
	fmt.Fprintf(&b, "💰 Total Income: $%s\n", s.TotalIncome.StringFixed(2))
	fmt.Fprintf(&b, "💸 Total Expenses: $%s\n", s.TotalExpenses.StringFixed(2))
	fmt.Fprintf(&b, "📈 Net Savings: $%s\n", s.NetSavings.StringFixed(2))
	fmt.Fprintf(&b, "💼 Total Savings: $%s\n", s.TotalSavings.StringFixed(2))

	if len(s.ExpensesByCategory) > 0 {
		b.WriteString("\n*Expenses by Category:*\n")
		categories := make([]string, 0, len(s.ExpensesByCategory))
		for category := range s.ExpensesByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Fprintf(&b, "  • %s: $%s\n", category, s.ExpensesByCategory[category].StringFixed(2))
		}
	}

	if len(s.BudgetAlerts) > 0 {
		b.WriteString("\n*🚨 Budget Alerts:*\n")
		for _, alert := range s.BudgetAlerts {
			fmt.Fprintf(&b, "  ⚠️ %s: $%s spent (budget: $%s)\n",
				alert.Category, alert.Spent.StringFixed(2), alert.Budget.StringFixed(2))
		}
	}

	return b.String()
}

// TransactionList renders recent transactions, most recent first.
func TransactionList(transactions []models.Transaction) string {
	if len(transactions) == 0 {
		return "No transactions found."
	}

	var b strings.Builder
	b.WriteString("📋 *Recent Transactions:*\n\n")
	for _, tx := range transactions {
		emoji := "💸"
		if tx.Type == models.TypeIncome {
			emoji = "💰"
		}
		fmt.Fprintf(&b, "%s %s\n", emoji, tx.Date.Format(models.DateLayout))
		fmt.Fprintf(&b, "   %s: %s\n", typeTitle(tx.Type), tx.Category)
		fmt.Fprintf(&b, "   Amount: $%s\n", tx.Amount.StringFixed(2))
		if tx.Description != "" {
			fmt.Fprintf(&b, "   Note: %s\n", tx.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// GoalList renders all savings goals with their progress bars.
func GoalList(goals []models.SavingsGoal) string {
	if len(goals) == 0 {
		return "No savings goals set."
	}

	var b strings.Builder
	b.WriteString("🎯 *Savings Goals:*\n\n")
	for _, goal := range goals {
		fmt.Fprintf(&b, "🏁 %s\n", goal.Name)
		fmt.Fprintf(&b, "   Target: $%s\n", goal.TargetAmount.StringFixed(2))
		fmt.Fprintf(&b, "   Saved: $%s\n", goal.CurrentAmount.StringFixed(2))
		fmt.Fprintf(&b, "   Progress: %s\n", ProgressBar(goal.Progress(), 10))
		fmt.Fprintf(&b, "   Due: %s\n\n", goal.TargetDate)
	}
	return b.String()
}

// ProgressBar builds a visual bar like "███░░░░░░░ 30.0%". Progress beyond
// 100% fills the whole bar.
func ProgressBar(progress float64, length int) string {
	filled := int(float64(length) * progress / 100)
	if filled > length {
		filled = length
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
	return fmt.Sprintf("%s %.1f%%", bar, progress)
}
