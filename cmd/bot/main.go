package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/castellan/castellan/internal/automod"
	"github.com/castellan/castellan/internal/bot"
	"github.com/castellan/castellan/internal/discord"
	"github.com/castellan/castellan/internal/redis"
	"github.com/castellan/castellan/internal/setup"
)

const (
	// BotLogDir specifies where bot log files are stored.
	BotLogDir = "logs/bot_logs"

	defaultRuleCacheTTL   = 30 * time.Second
	defaultMessageWorkers = 32
)

func main() {
	ctx := context.Background()

	// Initialize application with required dependencies
	app, err := setup.InitializeApp(ctx, BotLogDir)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup(ctx)

	// Rule cache sits between the evaluator and the database
	cacheClient, err := app.RedisManager.GetClient(redis.CacheDBIndex)
	if err != nil {
		log.Printf("Failed to create cache client: %v", err)
		return
	}

	ttl := defaultRuleCacheTTL
	if app.Config.AutoMod.RuleCacheTTL > 0 {
		ttl = time.Duration(app.Config.AutoMod.RuleCacheTTL) * time.Second
	}

	ruleSource := automod.NewCachedRuleSource(app.DB.Model().Rule(), cacheClient, ttl, app.Logger)
	app.DB.Service().Rule().SetInvalidator(ruleSource)

	// Create bot instance
	workers := app.Config.AutoMod.MessageWorkers
	if workers <= 0 {
		workers = defaultMessageWorkers
	}

	discordBot, err := bot.New(app.Config.Discord.Token, app.DB, workers, app.Logger)
	if err != nil {
		log.Printf("Failed to create bot: %v", err)
		return
	}

	// The notifier needs the gateway client, so the engine is wired after
	// the bot exists.
	notifier := discord.NewNotifier(discordBot.Client(), app.Logger)
	evaluator := automod.NewEvaluator(ruleSource, app.Logger)
	dispatcher := automod.NewDispatcher(app.DB.Model().Flag(), app.DB.Model().Audit(), notifier, app.Logger)
	engine := automod.NewEngine(app.DB.Model().Guild(), evaluator, dispatcher, app.Logger)
	discordBot.SetEngine(engine)

	// Start the bot and connect to Discord
	if err := discordBot.Start(ctx); err != nil {
		log.Printf("Failed to start bot: %v", err)
		return
	}

	log.Println("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

	// Wait for interrupt signal to gracefully shutdown the bot
	// This ensures all pending events are processed before closing
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session
	discordBot.Close(ctx)
}
