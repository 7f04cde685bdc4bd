package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"telegram-budget-bot/internal/config"
	"telegram-budget-bot/internal/format"
	"telegram-budget-bot/internal/models"
	"telegram-budget-bot/internal/session"
	"telegram-budget-bot/internal/tracker"
	"telegram-budget-bot/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// EventHandler handles Telegram events
type EventHandler struct {
	tracker  *tracker.Tracker
	config   *config.Config
	sessions *session.Manager
	commands *CommandHandler
}

// NewEventHandler creates a new event handler
func NewEventHandler(tr *tracker.Tracker, config *config.Config, sessions *session.Manager) *EventHandler {
	return &EventHandler{
		tracker:  tr,
		config:   config,
		sessions: sessions,
		commands: NewCommandHandler(tr, config),
	}
}

// HandleMessage handles incoming messages
func (h *EventHandler) HandleMessage(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	if message.From == nil || message.From.IsBot {
		return
	}

	if message.IsCommand() {
		h.handleCommand(bot, message)
		return
	}

	h.handleText(bot, message)
}

// handleCommand processes bot commands
func (h *EventHandler) handleCommand(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := strconv.FormatInt(message.From.ID, 10)

	// A command aborts any half-finished dialogue.
	h.sessions.Clear(userID)

	switch message.Command() {
	case "start":
		h.commands.SendWelcome(bot, chatID)
	case "help":
		h.commands.SendHelp(bot, chatID)
	case "add_income":
		h.commands.SendIncomeCategories(bot, chatID)
	case "add_expense":
		h.commands.SendExpenseCategories(bot, chatID)
	case "set_budget":
		h.commands.SendBudgetCategories(bot, chatID)
	case "summary":
		h.commands.SendSummary(bot, chatID, userID, tracker.PeriodCurrentMonth)
	case "transactions":
		h.commands.SendTransactionHistory(bot, chatID, userID, 10)
	case "goals":
		h.commands.SendGoals(bot, chatID, userID)
	case "export":
		h.commands.ExportTransactions(bot, chatID, userID)
	}
}

// HandleCallbackQuery handles inline button callbacks
func (h *EventHandler) HandleCallbackQuery(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.From == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	userID := strconv.FormatInt(callback.From.ID, 10)
	data := callback.Data

	switch {
	case strings.HasPrefix(data, "income_"):
		category := strings.TrimPrefix(data, "income_")
		h.sessions.Set(userID, session.State{Action: session.ActionIncomeAmount, Category: category})
		h.editText(bot, chatID, messageID,
			fmt.Sprintf("💵 Adding %s income\n\nPlease enter the amount (add an optional note after it):", category))

	case strings.HasPrefix(data, "expense_"):
		category := strings.TrimPrefix(data, "expense_")
		h.sessions.Set(userID, session.State{Action: session.ActionExpenseAmount, Category: category})
		h.editText(bot, chatID, messageID,
			fmt.Sprintf("💸 Adding %s expense\n\nPlease enter the amount (add an optional note after it):", category))

	case strings.HasPrefix(data, "budget_"):
		category := strings.TrimPrefix(data, "budget_")
		h.sessions.Set(userID, session.State{Action: session.ActionBudgetAmount, Category: category})
		h.editText(bot, chatID, messageID,
			fmt.Sprintf("📊 Setting budget for %s\n\nPlease enter the budget amount:", category))

	case data == "add_goal":
		h.sessions.Set(userID, session.State{Action: session.ActionGoalName})
		h.editText(bot, chatID, messageID,
			"🎯 Let's add a new savings goal!\n\nWhat would you like to call this goal?")

	case data == "update_goal":
		goals := h.tracker.SavingsGoals(userID)
		if len(goals) == 0 {
			h.editText(bot, chatID, messageID, "No savings goals found. Add one first!")
			break
		}
		keyboard := utils.GoalSelectKeyboard(goals)
		editMsg := tgbotapi.NewEditMessageText(chatID, messageID, "Select goal to update:")
		editMsg.ReplyMarkup = &keyboard
		if _, err := bot.Send(editMsg); err != nil {
			log.Println("Failed to send goal selection:", err)
		}

	case strings.HasPrefix(data, "contribute_"):
		h.startContribution(bot, chatID, messageID, userID, strings.TrimPrefix(data, "contribute_"))

	case strings.HasPrefix(data, "summary_"):
		period := strings.TrimPrefix(data, "summary_")
		summary := h.tracker.Summary(userID, period)
		keyboard := utils.PeriodKeyboard()
		editMsg := tgbotapi.NewEditMessageText(chatID, messageID, format.SummaryText(summary))
		editMsg.ParseMode = "Markdown"
		editMsg.ReplyMarkup = &keyboard
		if _, err := bot.Send(editMsg); err != nil {
			log.Println("Failed to update summary message:", err)
		}
	}

	// Answer the callback to remove loading state
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	bot.Request(callbackConfig)
}

// startContribution begins the contribute-amount prompt for a chosen goal
func (h *EventHandler) startContribution(bot *tgbotapi.BotAPI, chatID int64, messageID int, userID, goalIDText string) {
	goalID, err := strconv.Atoi(goalIDText)
	if err != nil {
		return
	}

	var name string
	for _, goal := range h.tracker.SavingsGoals(userID) {
		if goal.ID == goalID {
			name = goal.Name
			break
		}
	}
	if name == "" {
		h.editText(bot, chatID, messageID, "That goal no longer exists.")
		return
	}

	h.sessions.Set(userID, session.State{Action: session.ActionGoalContribution, GoalID: goalID})
	h.editText(bot, chatID, messageID,
		fmt.Sprintf("📈 Updating '%s'\n\nEnter the amount to add:", name))
}

// handleText routes free-text input through the pending dialogue state.
// Messages with no pending state are ignored.
func (h *EventHandler) handleText(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	userID := strconv.FormatInt(message.From.ID, 10)
	chatID := message.Chat.ID

	state, ok := h.sessions.Get(userID)
	if !ok {
		return
	}

	ctx := context.Background()
	text := strings.TrimSpace(message.Text)

	switch state.Action {
	case session.ActionIncomeAmount:
		h.recordTransaction(ctx, bot, chatID, userID, text, state.Category, models.TypeIncome)

	case session.ActionExpenseAmount:
		h.recordTransaction(ctx, bot, chatID, userID, text, state.Category, models.TypeExpense)

	case session.ActionBudgetAmount:
		amount, err := utils.ValidateAmount(text)
		if err != nil {
			h.reply(bot, chatID, "❌ Please enter a valid number!")
			return
		}
		entry, err := h.tracker.SetBudget(ctx, userID, state.Category, amount)
		if err != nil {
			log.Println("Failed to set budget:", err)
			h.reply(bot, chatID, "❌ Failed to save the budget. Please try again.")
			return
		}
		h.sessions.Clear(userID)
		h.reply(bot, chatID, format.BudgetSet(state.Category, entry))

	case session.ActionGoalName:
		state.GoalName = text
		state.Action = session.ActionGoalAmount
		h.sessions.Set(userID, state)
		h.reply(bot, chatID, "Great! Now enter the target amount:")

	case session.ActionGoalAmount:
		amount, err := utils.ValidateAmount(text)
		if err != nil {
			h.reply(bot, chatID, "❌ Please enter a valid number!")
			return
		}
		state.GoalTarget = amount
		state.Action = session.ActionGoalDate
		h.sessions.Set(userID, state)
		h.reply(bot, chatID, "Perfect! Now enter the target date (YYYY-MM-DD):")

	case session.ActionGoalDate:
		targetDate, err := utils.ValidateDate(text)
		if err != nil {
			h.reply(bot, chatID, "❌ Please enter a valid date (YYYY-MM-DD)!")
			return
		}
		goal, err := h.tracker.AddSavingsGoal(ctx, userID, state.GoalName, state.GoalTarget, targetDate)
		if err != nil {
			log.Println("Failed to add savings goal:", err)
			h.reply(bot, chatID, "❌ Failed to save the goal. Please try again.")
			return
		}
		h.sessions.Clear(userID)
		h.reply(bot, chatID, format.GoalAdded(goal))

	case session.ActionGoalContribution:
		amount, err := utils.ValidateAmount(text)
		if err != nil {
			h.reply(bot, chatID, "❌ Please enter a valid number!")
			return
		}
		goal, err := h.tracker.ContributeToGoal(ctx, userID, state.GoalID, amount)
		if err == tracker.ErrGoalNotFound {
			h.sessions.Clear(userID)
			h.reply(bot, chatID, "That goal no longer exists.")
			return
		}
		if err != nil {
			log.Println("Failed to update goal:", err)
			h.reply(bot, chatID, "❌ Failed to save the contribution. Please try again.")
			return
		}
		h.sessions.Clear(userID)
		h.reply(bot, chatID, format.GoalContribution(goal, amount))
	}
}

// recordTransaction parses "amount [note...]" and records the transaction.
// Invalid amounts re-prompt without touching the tracker.
func (h *EventHandler) recordTransaction(ctx context.Context, bot *tgbotapi.BotAPI, chatID int64, userID, text, category, txType string) {
	parts := strings.SplitN(text, " ", 2)
	amount, err := utils.ValidateAmount(parts[0])
	if err != nil {
		h.reply(bot, chatID, "❌ Please enter a valid number!")
		return
	}
	description := ""
	if len(parts) == 2 {
		description = strings.TrimSpace(parts[1])
	}

	tx, err := h.tracker.AddTransaction(ctx, userID, amount, category, txType, description)
	if err != nil {
		log.Println("Failed to add transaction:", err)
		h.reply(bot, chatID, "❌ Failed to save your transaction. Please try again.")
		return
	}
	h.sessions.Clear(userID)
	h.reply(bot, chatID, format.TransactionAdded(tx))
}

func (h *EventHandler) reply(bot *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := bot.Send(msg); err != nil {
		log.Println("Failed to send message:", err)
	}
}

func (h *EventHandler) editText(bot *tgbotapi.BotAPI, chatID int64, messageID int, text string) {
	editMsg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := bot.Send(editMsg); err != nil {
		log.Println("Failed to edit message:", err)
	}
}
