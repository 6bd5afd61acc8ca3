package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"go-response-tracker/internal/config"
	"go-response-tracker/internal/ingest"
	"go-response-tracker/internal/parser"
	"go-response-tracker/internal/storage"
	"go-response-tracker/internal/telegram"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. DB: %s", cfg.DBPath)

	//open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("❌ Failed to open storage: %v", err)
	}

	//build the parse pipeline
	pipeline := ingest.NewPipeline(parser.NewSegmenter(cfg.NoiseLines))

	//init telegram bot
	bot, err := telegram.NewBot(cfg.TelegramToken, store, pipeline, cfg.StatsTopCompanies)
	if err != nil {
		log.Fatalf("❌ Failed to init Telegram Bot: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Println("🚀 Starting response tracker bot...")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("❌ Bot stopped: %v", err)
	}
	log.Println("👋 Shutting down.")
}
