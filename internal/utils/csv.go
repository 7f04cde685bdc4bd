package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"telegram-budget-bot/internal/models"
)

// GenerateTransactionsCSV writes a user's transaction history as CSV,
// oldest first, with a small summary header.
func GenerateTransactionsCSV(account *models.UserAccount, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := [][]string{
		{"Transaction Export"},
		{"Generated", time.Now().Format(models.DateTimeLayout)},
		{"Total Transactions", strconv.Itoa(len(account.Transactions))},
		{"Total Savings", account.TotalSavings.StringFixed(2)},
		{}, // Empty row
		{"ID", "Date", "Type", "Category", "Amount", "Description"},
	}
	for _, row := range header {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for _, tx := range account.Transactions {
		row := []string{
			strconv.Itoa(tx.ID),
			tx.Date.Format(models.DateTimeLayout),
			tx.Type,
			tx.Category,
			tx.Amount.StringFixed(2),
			tx.Description,
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write transaction row: %w", err)
		}
	}

	return nil
}
