package handlers

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"time"

	"telegram-budget-bot/internal/config"
	"telegram-budget-bot/internal/format"
	"telegram-budget-bot/internal/models"
	"telegram-budget-bot/internal/tracker"
	"telegram-budget-bot/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	tracker *tracker.Tracker
	config  *config.Config
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(tr *tracker.Tracker, config *config.Config) *CommandHandler {
	return &CommandHandler{
		tracker: tr,
		config:  config,
	}
}

// SendWelcome sends the welcome message for /start
func (h *CommandHandler) SendWelcome(bot *tgbotapi.BotAPI, chatID int64) {
	welcomeText := `💰 *Welcome to Your Personal Budget Tracker Bot!* 💰

I'll help you track your income, expenses, and savings goals. Here's what you can do:

*Main Commands:*
/start - Show this welcome message
/add_income - Add income transaction
/add_expense - Add expense transaction
/set_budget - Set budget for categories
/summary - View financial summary
/transactions - View recent transactions
/goals - Manage savings goals
/export - Export transactions as CSV
/help - Show help information

Let's get your finances organized! 💪`

	msg := tgbotapi.NewMessage(chatID, welcomeText)
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// SendHelp sends help information
func (h *CommandHandler) SendHelp(bot *tgbotapi.BotAPI, chatID int64) {
	helpText := `📖 *Budget Tracker Help*

*Available Commands:*
/start - Welcome message
/add_income - Add income (salary, freelance, etc.)
/add_expense - Add expense (food, transport, etc.)
/set_budget - Set monthly budgets
/summary - Financial overview
/transactions - Recent transactions
/goals - Savings goals
/export - CSV export of your history
/help - This help message

*How to use:*
1. Set your budgets with /set_budget
2. Add income with /add_income
3. Add expenses with /add_expense
4. Check your progress with /summary
5. Set savings goals with /goals

On the 1st of each month I'll send you last month's summary automatically.

Your data is stored securely and privately! 🔒`

	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// SendIncomeCategories starts the add-income flow with a category keyboard
func (h *CommandHandler) SendIncomeCategories(bot *tgbotapi.BotAPI, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "💵 Choose income category:")
	msg.ReplyMarkup = utils.CategoryKeyboard(h.config.Categories[models.TypeIncome], "income")
	bot.Send(msg)
}

// SendExpenseCategories starts the add-expense flow with a category keyboard
func (h *CommandHandler) SendExpenseCategories(bot *tgbotapi.BotAPI, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "💸 Choose expense category:")
	msg.ReplyMarkup = utils.CategoryKeyboard(h.config.Categories[models.TypeExpense], "expense")
	bot.Send(msg)
}

// SendBudgetCategories starts the set-budget flow with a category keyboard
func (h *CommandHandler) SendBudgetCategories(bot *tgbotapi.BotAPI, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "📊 Choose category to set budget:")
	msg.ReplyMarkup = utils.CategoryKeyboard(h.config.Categories[models.TypeExpense], "budget")
	bot.Send(msg)
}

// SendSummary sends the financial summary for the given period, with
// buttons to switch to another period.
func (h *CommandHandler) SendSummary(bot *tgbotapi.BotAPI, chatID int64, userID, period string) {
	summary := h.tracker.Summary(userID, period)

	msg := tgbotapi.NewMessage(chatID, format.SummaryText(summary))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = utils.PeriodKeyboard()
	bot.Send(msg)
}

// SendTransactionHistory sends recent transactions, most recent first
func (h *CommandHandler) SendTransactionHistory(bot *tgbotapi.BotAPI, chatID int64, userID string, limit int) {
	transactions := h.tracker.RecentTransactions(userID, limit)

	msg := tgbotapi.NewMessage(chatID, format.TransactionList(transactions))
	msg.ParseMode = "Markdown"
	bot.Send(msg)
}

// SendGoals sends the savings goal list with the goal menu
func (h *CommandHandler) SendGoals(bot *tgbotapi.BotAPI, chatID int64, userID string) {
	goals := h.tracker.SavingsGoals(userID)

	msg := tgbotapi.NewMessage(chatID, format.GoalList(goals))
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = utils.GoalMenuKeyboard()
	bot.Send(msg)
}

// ExportTransactions sends the user's full transaction history as a CSV file
func (h *CommandHandler) ExportTransactions(bot *tgbotapi.BotAPI, chatID int64, userID string) {
	account, ok := h.tracker.AccountSnapshot(userID)
	if !ok || len(account.Transactions) == 0 {
		msg := tgbotapi.NewMessage(chatID, "No transactions to export.")
		bot.Send(msg)
		return
	}

	var buffer bytes.Buffer
	if err := utils.GenerateTransactionsCSV(&account, &buffer); err != nil {
		log.Printf("Failed to generate CSV: %v", err)
		msg := tgbotapi.NewMessage(chatID, "⚠️ CSV generation failed.")
		bot.Send(msg)
		return
	}

	document := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("transactions_%s.csv", time.Now().Format("2006-01-02")),
		Bytes: buffer.Bytes(),
	}

	documentMsg := tgbotapi.NewDocument(chatID, document)
	documentMsg.Caption = fmt.Sprintf("📊 Transaction export\n💾 %d transactions, total savings $%s",
		len(account.Transactions), account.TotalSavings.StringFixed(2))

	if _, err := bot.Send(documentMsg); err != nil {
		log.Printf("Failed to send CSV file: %v", err)
		msg := tgbotapi.NewMessage(chatID, "⚠️ Failed to send CSV file.")
		bot.Send(msg)
	}
}

// MonthlyReport sends every known user their summary for the month that
// just ended. User ids are Telegram user ids, which double as private chat
// ids, so the report goes straight to each user.
func (h *CommandHandler) MonthlyReport(bot *tgbotapi.BotAPI) {
	for _, userID := range h.tracker.Users() {
		chatID, err := strconv.ParseInt(userID, 10, 64)
		if err != nil {
			log.Printf("Skipping monthly report for user %s: %v", userID, err)
			continue
		}

		summary := h.tracker.Summary(userID, tracker.PeriodLastMonth)
		text := "📅 *Your Monthly Report*\n\n" + format.SummaryText(summary)

		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = "Markdown"
		if _, err := bot.Send(msg); err != nil {
			log.Printf("Failed to send monthly report to %s: %v", userID, err)
		}
	}
	log.Println("Monthly report run complete.")
}
