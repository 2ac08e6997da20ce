package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tolo-telegram/bot"
	"tolo-telegram/config"
	"tolo-telegram/db"
	"tolo-telegram/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.Telegram.Token == "" {
		fmt.Fprintln(os.Stderr, "TOKEN not set")
		os.Exit(1)
	}

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	services.ConfigureSMS(cfg.SMS.Token, cfg.SMS.SenderID)
	services.ConfigureGeocode(cfg.Geocode.BaseURL)

	b, err := bot.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bot:", err)
		os.Exit(1)
	}

	fmt.Println("Bot started.")
	b.Start()
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
