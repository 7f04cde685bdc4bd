package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"telegram-budget-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

// ValidateAmount validates and parses a monetary amount from user input.
func ValidateAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format")
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	return amount, nil
}

// ValidateDate checks a YYYY-MM-DD date string and returns it normalized.
func ValidateDate(text string) (string, error) {
	text = strings.TrimSpace(text)
	t, err := time.Parse(models.DateLayout, text)
	if err != nil {
		return "", fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}
	return t.Format(models.DateLayout), nil
}

// CategoryKeyboard builds a one-category-per-row inline keyboard with
// callback data "<prefix>_<category>".
func CategoryKeyboard(categories []string, prefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, category := range categories {
		btn := tgbotapi.NewInlineKeyboardButtonData(
			category,
			fmt.Sprintf("%s_%s", prefix, category),
		)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{btn})
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// GoalMenuKeyboard builds the menu shown under the goals list.
func GoalMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("➕ Add New Goal", "add_goal"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📈 Update Goal Progress", "update_goal"),
		},
	)
}

// GoalSelectKeyboard builds a keyboard to pick a goal to contribute to.
func GoalSelectKeyboard(goals []models.SavingsGoal) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, goal := range goals {
		btn := tgbotapi.NewInlineKeyboardButtonData(
			goal.Name,
			fmt.Sprintf("contribute_%s", strconv.Itoa(goal.ID)),
		)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{btn})
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// PeriodKeyboard builds the summary period selection keyboard.
func PeriodKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📅 Current Month", "summary_current_month"),
			tgbotapi.NewInlineKeyboardButtonData("📆 Last Month", "summary_last_month"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🗓 All Time", "summary_all_time"),
		},
	)
}
