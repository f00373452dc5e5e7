package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/radbot/internal/bot"
	"github.com/example/radbot/internal/progress"
	"github.com/example/radbot/internal/reminder"
	"github.com/example/radbot/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environments set the variables directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blobs, err := storage.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to storage: %v", err)
	}
	defer blobs.Close()

	store := progress.New(blobs)

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	b, err := bot.New(token, store)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	var rem *reminder.Reminder
	if os.Getenv("ENABLE_REMINDERS") != "false" {
		rem = reminder.New(store, b)
		rem.Start()
		defer rem.Stop()
	}

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Printf("Bot error: %v", err)
	}
	log.Println("Bot stopped")
}
