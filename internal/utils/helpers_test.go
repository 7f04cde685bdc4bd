package utils

import (
	"bytes"
	"strings"
	"testing"

	"telegram-budget-bot/internal/models"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"25.50", "25.5", true},
		{" 100 ", "100", true},
		{"0", "0", true},
		{"0.01", "0.01", true},
		{"-5", "", false},
		{"abc", "", false},
		{"12,50", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ValidateAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Errorf("%q: unexpected error %v", tc.in, err)
				continue
			}
			if !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Errorf("%q = %s, want %s", tc.in, got, tc.out)
			}
		} else if err == nil {
			t.Errorf("%q: expected error, got %s", tc.in, got)
		}
	}
}

func TestValidateDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-12-31", true},
		{" 2025-01-01 ", true},
		{"2025-13-01", false},
		{"2025-02-30", false},
		{"31-12-2025", false},
		{"tomorrow", false},
		{"", false},
	}
	for _, tc := range cases {
		got, err := ValidateDate(tc.in)
		if tc.ok && err != nil {
			t.Errorf("%q: unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%q: expected error, got %q", tc.in, got)
		}
	}
}

func TestCategoryKeyboard(t *testing.T) {
	categories := []string{"Salary", "Other Income"}
	keyboard := CategoryKeyboard(categories, "income")

	if len(keyboard.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(keyboard.InlineKeyboard))
	}
	btn := keyboard.InlineKeyboard[1][0]
	if btn.Text != "Other Income" {
		t.Errorf("button text = %q", btn.Text)
	}
	if btn.CallbackData == nil || *btn.CallbackData != "income_Other Income" {
		t.Errorf("callback data = %v, want income_Other Income", btn.CallbackData)
	}
}

func TestGoalSelectKeyboard(t *testing.T) {
	goals := []models.SavingsGoal{
		{ID: 1, Name: "Car"},
		{ID: 2, Name: "Vacation"},
	}
	keyboard := GoalSelectKeyboard(goals)

	if len(keyboard.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(keyboard.InlineKeyboard))
	}
	btn := keyboard.InlineKeyboard[1][0]
	if btn.CallbackData == nil || *btn.CallbackData != "contribute_2" {
		t.Errorf("callback data = %v, want contribute_2", btn.CallbackData)
	}
}

func TestGenerateTransactionsCSV(t *testing.T) {
	account := models.NewUserAccount()
	account.Transactions = append(account.Transactions, models.Transaction{
		ID:          1,
		Amount:      decimal.RequireFromString("1000"),
		Category:    "Salary",
		Type:        models.TypeIncome,
		Description: "June paycheck",
	})
	account.TotalSavings = decimal.RequireFromString("1000")

	var buffer bytes.Buffer
	if err := GenerateTransactionsCSV(account, &buffer); err != nil {
		t.Fatalf("GenerateTransactionsCSV: %v", err)
	}

	out := buffer.String()
	for _, want := range []string{
		"Transaction Export",
		"Total Transactions,1",
		"Total Savings,1000.00",
		"ID,Date,Type,Category,Amount,Description",
		"1,", "income,Salary,1000.00,June paycheck",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("CSV missing %q:\n%s", want, out)
		}
	}
}
