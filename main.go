package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"telegram-budget-bot/internal/config"
	"telegram-budget-bot/internal/handlers"
	"telegram-budget-bot/internal/session"
	"telegram-budget-bot/internal/storage"
	"telegram-budget-bot/internal/tracker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize storage backend
	ctx := context.Background()
	var store storage.Store
	switch cfg.StorageBackend {
	case config.BackendMongo:
		mongoStore, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB, "ledger")
		if err != nil {
			log.Fatal("Failed to initialize MongoDB:", err)
		}
		defer mongoStore.Close(ctx)
		store = mongoStore
	default:
		store = storage.NewFileStore(cfg.LedgerFile)
	}

	// Load the ledger
	tr, err := tracker.New(ctx, store)
	if err != nil {
		log.Fatal("Failed to initialize tracker:", err)
	}

	// Create Telegram bot
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal("Failed to create Telegram bot:", err)
	}

	bot.Debug = false
	log.Printf("Bot started: %s", bot.Self.UserName)

	// Set up handlers
	sessions := session.NewManager(cfg.SessionTimeout)
	eventHandler := handlers.NewEventHandler(tr, cfg, sessions)
	commandHandler := handlers.NewCommandHandler(tr, cfg)

	// Set up cron job for the monthly report
	c := cron.New()
	_, err = c.AddFunc("0 9 1 * *", func() {
		log.Println("Sending monthly reports...")
		commandHandler.MonthlyReport(bot)
	})
	if err != nil {
		log.Fatal("Failed to add cron job:", err)
	}
	c.Start()

	fmt.Println("Bot is running...")

	// Start listening for updates
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)

	// Handle updates
	go func() {
		for update := range updates {
			if update.Message != nil {
				eventHandler.HandleMessage(bot, update.Message)
			} else if update.CallbackQuery != nil {
				eventHandler.HandleCallbackQuery(bot, update.CallbackQuery)
			}
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop

	fmt.Println("Shutting down bot...")
}
