package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"telegram-budget-bot/internal/models"

	"github.com/shopspring/decimal"
)

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))

	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc == nil || doc.Users == nil {
		t.Fatal("expected initialized empty document")
	}
	if len(doc.Users) != 0 {
		t.Errorf("users = %d, want 0", len(doc.Users))
	}
}

func TestFileStoreLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load should self-heal on malformed content, got: %v", err)
	}
	if len(doc.Users) != 0 {
		t.Errorf("users = %d, want 0 for a fresh document", len(doc.Users))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "ledger.json")
	store := NewFileStore(path)
	ctx := context.Background()

	doc := models.NewLedgerDocument()
	acc := models.NewUserAccount()
	acc.Transactions = append(acc.Transactions, models.Transaction{
		ID:          1,
		Date:        models.NewDateTime(mustParseDateTime(t, "2025-06-15 13:45:01")),
		Amount:      decimal.RequireFromString("1234.56"),
		Category:    "Salary",
		Type:        models.TypeIncome,
		Description: "June paycheck",
	})
	acc.Budgets["Food"] = models.BudgetEntry{
		Amount:  decimal.RequireFromString("300"),
		SetDate: "2025-06-01",
	}
	acc.SavingsGoals = append(acc.SavingsGoals, models.SavingsGoal{
		ID:           1,
		Name:         "Car",
		TargetAmount: decimal.RequireFromString("5000"),
		TargetDate:   "2025-12-31",
		CreatedDate:  "2025-06-15",
	})
	acc.TotalSavings = decimal.RequireFromString("1234.56")
	doc.Users["u1"] = acc

	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := loaded.Users["u1"]
	if got == nil {
		t.Fatal("user u1 missing after round trip")
	}
	if len(got.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(got.Transactions))
	}
	tx := got.Transactions[0]
	if !tx.Amount.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("amount = %s, want 1234.56", tx.Amount)
	}
	if tx.Date.Format(models.DateTimeLayout) != "2025-06-15 13:45:01" {
		t.Errorf("date = %s, want 2025-06-15 13:45:01", tx.Date.Format(models.DateTimeLayout))
	}
	if tx.Description != "June paycheck" {
		t.Errorf("description = %q", tx.Description)
	}
	if !got.TotalSavings.Equal(acc.TotalSavings) {
		t.Errorf("total savings = %s, want %s", got.TotalSavings, acc.TotalSavings)
	}
	if !got.Budgets["Food"].Amount.Equal(decimal.RequireFromString("300")) {
		t.Errorf("Food budget = %s, want 300", got.Budgets["Food"].Amount)
	}
	if got.SavingsGoals[0].Name != "Car" {
		t.Errorf("goal name = %q, want Car", got.SavingsGoals[0].Name)
	}

	// Saving the loaded document again must not change the content.
	if err := store.Save(ctx, loaded); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	again, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	first, _ := json.Marshal(loaded)
	second, _ := json.Marshal(again)
	if string(first) != string(second) {
		t.Error("save(load()) changed the document content")
	}
}

func TestFileStoreSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.json")
	store := NewFileStore(path)

	if err := store.Save(context.Background(), models.NewLedgerDocument()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("ledger file missing after save: %v", err)
	}
}

func TestFileStoreUsesStableFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store := NewFileStore(path)
	ctx := context.Background()

	doc := models.NewLedgerDocument()
	acc := models.NewUserAccount()
	acc.Transactions = append(acc.Transactions, models.Transaction{
		ID:       1,
		Date:     models.NewDateTime(mustParseDateTime(t, "2025-06-15 08:00:00")),
		Amount:   decimal.RequireFromString("10"),
		Category: "Food",
		Type:     models.TypeExpense,
	})
	acc.Budgets["Food"] = models.BudgetEntry{Amount: decimal.RequireFromString("50"), SetDate: "2025-06-01"}
	acc.SavingsGoals = append(acc.SavingsGoals, models.SavingsGoal{ID: 1, Name: "Car"})
	doc.Users["u1"] = acc

	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]map[string]map[string]any
	if err := json.Unmarshal(content, &raw); err != nil {
		t.Fatalf("persisted file is not valid JSON: %v", err)
	}
	account, ok := raw["users"]["u1"]
	if !ok {
		t.Fatal("persisted document missing users.u1")
	}
	for _, field := range []string{"transactions", "budgets", "savings_goals", "total_savings"} {
		if _, ok := account[field]; !ok {
			t.Errorf("persisted account missing field %q", field)
		}
	}
}

func mustParseDateTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(models.DateTimeLayout, s, time.Local)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}
