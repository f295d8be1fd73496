package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend selectors for the persistence layer.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config keeps runtime settings for the server.
type Config struct {
	Addr            string
	Backend         string
	DataDir         string
	DatabaseURL     string
	SimulateLatency bool
	TelegramToken   string
	TelegramChatID  int64
	DigestTime      string
	RefreshInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:            strings.TrimSpace(os.Getenv("FLOWLIST_ADDR")),
		Backend:         strings.TrimSpace(os.Getenv("FLOWLIST_BACKEND")),
		DataDir:         strings.TrimSpace(os.Getenv("FLOWLIST_DATA_DIR")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SimulateLatency: strings.TrimSpace(os.Getenv("FLOWLIST_LATENCY")) != "off",
		TelegramToken:   strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DigestTime:      strings.TrimSpace(os.Getenv("DIGEST_TIME")),
		RefreshInterval: parseMinutes(strings.TrimSpace(os.Getenv("COUNT_REFRESH_MINUTES"))),
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if cfg.Backend != BackendFile && cfg.Backend != BackendSQLite {
		return cfg, fmt.Errorf("FLOWLIST_BACKEND must be %q or %q", BackendFile, BackendSQLite)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "flowlist_data"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "flowlist.db"
	}
	if cfg.DigestTime == "" {
		cfg.DigestTime = "09:00"
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = 15 * time.Minute
	}

	if cfg.TelegramToken != "" {
		raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID"))
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
		}
		cfg.TelegramChatID = chatID
	}

	return cfg, nil
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}
