package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"skintone/pkg/telegram"
)

const (
	EnvTelegramBotToken = "TELEGRAM_BOT_TOKEN"
	EnvKeepPercent      = "KEEP_PERCENT"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	ctx, done := signal.NotifyContext(context.Background(), os.Interrupt)
	defer done()

	keep := 0
	if v := os.Getenv(EnvKeepPercent); v != "" {
		if k, err := strconv.Atoi(v); err == nil {
			keep = k
		}
	}

	b, err := telegram.New(telegram.Config{
		Token:       os.Getenv(EnvTelegramBotToken),
		Output:      os.Stdout,
		KeepPercent: keep,
		Context:     ctx,
	})
	if err != nil {
		log.Fatalf("error creating bot: %v", err)
	}

	if err := b.Commands(); err != nil {
		log.Fatalf("error registering commands: %v", err)
	}
	b.Handlers()

	if err := b.Start(); err != nil {
		log.Fatalf("error starting bot: %v", err)
	}

	if err := b.Stop(); err != nil {
		log.Fatalf("error shutting down bot: %v", err)
	}
}
