package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Layouts used for persisted date fields.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// DateTime is a second-precision timestamp persisted as "2006-01-02 15:04:05".
type DateTime struct {
	time.Time
}

// NewDateTime truncates t to second precision.
func NewDateTime(t time.Time) DateTime {
	return DateTime{t.Truncate(time.Second)}
}

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid datetime %s", s)
	}
	t, err := time.ParseInLocation(DateTimeLayout, s[1:len(s)-1], time.Local)
	if err != nil {
		return fmt.Errorf("invalid datetime %s: %w", s, err)
	}
	d.Time = t
	return nil
}

// Transaction is one immutable ledger record. IDs are assigned sequentially
// per account and never reused.
type Transaction struct {
	ID          int             `json:"id"`
	Date        DateTime        `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
}

// BudgetEntry is the spending ceiling for one category. Setting the same
// category again replaces the entry, no history is kept.
type BudgetEntry struct {
	Amount  decimal.Decimal `json:"amount"`
	SetDate string          `json:"set_date"`
}

// SavingsGoal tracks progress toward a named target amount.
type SavingsGoal struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date"`
	CreatedDate   string          `json:"created_date"`
}

// Progress returns how far along the goal is, as a percentage.
// A zero target reads as 0% rather than dividing by zero.
func (g SavingsGoal) Progress() float64 {
	if g.TargetAmount.IsZero() {
		return 0
	}
	ratio, _ := g.CurrentAmount.Div(g.TargetAmount).Float64()
	return ratio * 100
}

// UserAccount holds everything recorded for one user. TotalSavings is the
// running balance of all income minus all expenses, maintained incrementally
// on every recorded transaction.
type UserAccount struct {
	Transactions []Transaction          `json:"transactions"`
	Budgets      map[string]BudgetEntry `json:"budgets"`
	SavingsGoals []SavingsGoal          `json:"savings_goals"`
	TotalSavings decimal.Decimal        `json:"total_savings"`
}

// NewUserAccount returns an empty account with zero balance.
func NewUserAccount() *UserAccount {
	return &UserAccount{
		Transactions: []Transaction{},
		Budgets:      make(map[string]BudgetEntry),
		SavingsGoals: []SavingsGoal{},
		TotalSavings: decimal.Zero,
	}
}

// LedgerDocument is the whole persisted ledger, one account per user id.
type LedgerDocument struct {
	Users map[string]*UserAccount `json:"users"`
}

// NewLedgerDocument returns an empty document.
func NewLedgerDocument() *LedgerDocument {
	return &LedgerDocument{Users: make(map[string]*UserAccount)}
}

// BudgetAlert signals that spending in a category exceeded its budget
// within the summarized period.
type BudgetAlert struct {
	Category string
	Spent    decimal.Decimal
	Budget   decimal.Decimal
}

// Summary is the aggregate report for one user over one period.
// TotalSavings is the all-time running balance regardless of the period.
type Summary struct {
	Period             string
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	NetSavings         decimal.Decimal
	ExpensesByCategory map[string]decimal.Decimal
	BudgetAlerts       []BudgetAlert
	TotalSavings       decimal.Decimal
}
