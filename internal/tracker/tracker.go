package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"telegram-budget-bot/internal/models"
	"telegram-budget-bot/internal/storage"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeAmount rejects negative amounts at the engine boundary.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrInvalidType rejects transaction types other than income/expense.
	ErrInvalidType = errors.New("unknown transaction type")
	// ErrGoalNotFound is returned when a goal id does not exist for the user.
	ErrGoalNotFound = errors.New("savings goal not found")
)

// Tracker is the ledger engine. One instance owns the in-memory document
// and persists every mutation through its store before confirming it.
// A single mutex serializes access; persistence is whole-document, so
// finer-grained locking would buy nothing.
type Tracker struct {
	mu    sync.Mutex
	store storage.Store
	doc   *models.LedgerDocument
	now   func() time.Time
}

// New loads the ledger document and returns a ready tracker.
func New(ctx context.Context, store storage.Store) (*Tracker, error) {
	doc, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return &Tracker{
		store: store,
		doc:   doc,
		now:   time.Now,
	}, nil
}

// account fetches or creates the user's account. Callers must hold mu.
func (t *Tracker) account(userID string) *models.UserAccount {
	acc, ok := t.doc.Users[userID]
	if !ok {
		acc = models.NewUserAccount()
		t.doc.Users[userID] = acc
	}
	return acc
}

// AddTransaction appends a new transaction and updates the running balance.
// If the save fails the in-memory change is rolled back and nothing is
// considered recorded.
func (t *Tracker) AddTransaction(ctx context.Context, userID string, amount decimal.Decimal, category, txType, description string) (models.Transaction, error) {
	if amount.IsNegative() {
		return models.Transaction{}, ErrNegativeAmount
	}
	if txType != models.TypeIncome && txType != models.TypeExpense {
		return models.Transaction{}, ErrInvalidType
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	acc := t.account(userID)
	tx := models.Transaction{
		ID:          len(acc.Transactions) + 1,
		Date:        models.NewDateTime(t.now()),
		Amount:      amount,
		Category:    category,
		Type:        txType,
		Description: description,
	}

	prevSavings := acc.TotalSavings
	acc.Transactions = append(acc.Transactions, tx)
	if txType == models.TypeIncome {
		acc.TotalSavings = acc.TotalSavings.Add(amount)
	} else {
		acc.TotalSavings = acc.TotalSavings.Sub(amount)
	}

	if err := t.store.Save(ctx, t.doc); err != nil {
		acc.Transactions = acc.Transactions[:len(acc.Transactions)-1]
		acc.TotalSavings = prevSavings
		return models.Transaction{}, fmt.Errorf("failed to save ledger: %w", err)
	}
	return tx, nil
}

// SetBudget sets the spending ceiling for a category, replacing any
// previous entry for it.
func (t *Tracker) SetBudget(ctx context.Context, userID, category string, amount decimal.Decimal) (models.BudgetEntry, error) {
	if amount.IsNegative() {
		return models.BudgetEntry{}, ErrNegativeAmount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	acc := t.account(userID)
	prev, had := acc.Budgets[category]
	entry := models.BudgetEntry{
		Amount:  amount,
		SetDate: t.now().Format(models.DateLayout),
	}
	acc.Budgets[category] = entry

	if err := t.store.Save(ctx, t.doc); err != nil {
		if had {
			acc.Budgets[category] = prev
		} else {
			delete(acc.Budgets, category)
		}
		return models.BudgetEntry{}, fmt.Errorf("failed to save ledger: %w", err)
	}
	return entry, nil
}

// AddSavingsGoal appends a new goal starting at zero saved.
func (t *Tracker) AddSavingsGoal(ctx context.Context, userID, name string, targetAmount decimal.Decimal, targetDate string) (models.SavingsGoal, error) {
	if targetAmount.IsNegative() {
		return models.SavingsGoal{}, ErrNegativeAmount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	acc := t.account(userID)
	goal := models.SavingsGoal{
		ID:            len(acc.SavingsGoals) + 1,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    targetDate,
		CreatedDate:   t.now().Format(models.DateLayout),
	}
	acc.SavingsGoals = append(acc.SavingsGoals, goal)

	if err := t.store.Save(ctx, t.doc); err != nil {
		acc.SavingsGoals = acc.SavingsGoals[:len(acc.SavingsGoals)-1]
		return models.SavingsGoal{}, fmt.Errorf("failed to save ledger: %w", err)
	}
	return goal, nil
}

// ContributeToGoal adds the amount to the goal's saved total. Contributions
// are earmarking only: they do not create transactions and do not touch the
// running balance.
func (t *Tracker) ContributeToGoal(ctx context.Context, userID string, goalID int, amount decimal.Decimal) (models.SavingsGoal, error) {
	if amount.IsNegative() {
		return models.SavingsGoal{}, ErrNegativeAmount
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	acc := t.account(userID)
	for i := range acc.SavingsGoals {
		if acc.SavingsGoals[i].ID != goalID {
			continue
		}
		prev := acc.SavingsGoals[i].CurrentAmount
		acc.SavingsGoals[i].CurrentAmount = prev.Add(amount)

		if err := t.store.Save(ctx, t.doc); err != nil {
			acc.SavingsGoals[i].CurrentAmount = prev
			return models.SavingsGoal{}, fmt.Errorf("failed to save ledger: %w", err)
		}
		return acc.SavingsGoals[i], nil
	}
	return models.SavingsGoal{}, ErrGoalNotFound
}

// RecentTransactions returns up to limit transactions, most recent first.
func (t *Tracker) RecentTransactions(userID string, limit int) []models.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()

	acc, ok := t.doc.Users[userID]
	if !ok {
		return nil
	}

	n := len(acc.Transactions)
	if limit <= 0 || limit > n {
		limit = n
	}

	recent := make([]models.Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		recent = append(recent, acc.Transactions[i])
	}
	return recent
}

// SavingsGoals returns the user's goals in the order they were added.
func (t *Tracker) SavingsGoals(userID string) []models.SavingsGoal {
	t.mu.Lock()
	defer t.mu.Unlock()

	acc, ok := t.doc.Users[userID]
	if !ok {
		return nil
	}

	goals := make([]models.SavingsGoal, len(acc.SavingsGoals))
	copy(goals, acc.SavingsGoals)
	return goals
}

// AccountSnapshot returns a copy of the user's account, safe to read
// without holding the tracker lock. The second result is false for a user
// with no recorded data.
func (t *Tracker) AccountSnapshot(userID string) (models.UserAccount, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	acc, ok := t.doc.Users[userID]
	if !ok {
		return models.UserAccount{}, false
	}

	snap := models.UserAccount{
		Transactions: make([]models.Transaction, len(acc.Transactions)),
		Budgets:      make(map[string]models.BudgetEntry, len(acc.Budgets)),
		SavingsGoals: make([]models.SavingsGoal, len(acc.SavingsGoals)),
		TotalSavings: acc.TotalSavings,
	}
	copy(snap.Transactions, acc.Transactions)
	copy(snap.SavingsGoals, acc.SavingsGoals)
	for category, entry := range acc.Budgets {
		snap.Budgets[category] = entry
	}
	return snap, true
}

// Users returns all known user ids, sorted.
func (t *Tracker) Users() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	users := make([]string, 0, len(t.doc.Users))
	for id := range t.doc.Users {
		users = append(users, id)
	}
	sort.Strings(users)
	return users
}
