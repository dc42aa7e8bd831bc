// Package bot is the chat front-end. It mirrors the read queries of
// the presentation layer (tool search, active issues, overdue list,
// statistics, Excel export) and performs no mutations.
package bot

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/inpredservice11-beep/instruments/internal/metrics"
	"github.com/inpredservice11-beep/instruments/internal/repository"
	"gopkg.in/telebot.v4"
)

// Bot contains the bot API instance and the read-only views of the store.
type Bot struct {
	bot          *telebot.Bot
	log          *slog.Logger
	catalog      repository.CatalogManager
	issues       repository.IssuanceManager
	stats        repository.StatsReader
	metrics      *metrics.Metrics
	stateManager *StateManager
}

// NewBot creates a new bot with the given token.
func NewBot(
	log *slog.Logger,
	catalog repository.CatalogManager,
	issues repository.IssuanceManager,
	stats repository.StatsReader,
	appMetrics *metrics.Metrics,
	token string,
	poller time.Duration,
) (*Bot, error) {
	tgBot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", tgBot.Me.Username)

	botInstance := &Bot{
		bot:          tgBot,
		log:          log,
		catalog:      catalog,
		issues:       issues,
		stats:        stats,
		metrics:      appMetrics,
		stateManager: NewStateManager(),
	}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Telebot exposes the underlying client so the notifier can reuse the
// same connection for its secondary channel.
func (b *Bot) Telebot() *telebot.Bot {
	return b.bot
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// registerRoutes configures all routes (commands and menu buttons).
func (b *Bot) registerRoutes() {
	b.bot.Handle("/start", b.startHandler)

	b.bot.Handle(&btnSearch, b.searchHandler)
	b.bot.Handle(&btnActive, b.activeIssuesHandler)
	b.bot.Handle(&btnOverdue, b.overdueHandler)
	b.bot.Handle(&btnStats, b.statisticsHandler)
	b.bot.Handle(&btnReport, b.reportHandler)

	b.bot.Handle(telebot.OnText, b.textHandler)
}
