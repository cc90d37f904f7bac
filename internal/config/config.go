package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	BotToken string // Telegram bot token (required)
	ChatID   string // Telegram chat to alert and accept commands from (required)

	CheckInterval time.Duration // poll cycle interval
	RetryInterval time.Duration // backoff after a failed bot poll
	ProbeTimeout  time.Duration // per-probe deadline
	Concurrency   int           // max probes in flight per cycle

	TargetsFile  string // YAML target registry
	LogDir       string // logs directory
	Addr         string // status API bind address
	SlackWebhook string // optional secondary notifier
	RunOnce      bool   // single pass then exit (CI mode)
}

func FromEnv() Config {
	cfg := Config{
		BotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID:        os.Getenv("TELEGRAM_CHAT_ID"),
		CheckInterval: secondsEnv("CHECK_INTERVAL", 30*time.Second),
		RetryInterval: secondsEnv("RETRY_INTERVAL", 10*time.Second),
		ProbeTimeout:  secondsEnv("TIMEOUT", 10*time.Second),
		Concurrency:   intEnv("PROBE_CONCURRENCY", 8),
		TargetsFile:   os.Getenv("TARGETS_FILE"),
		LogDir:        os.Getenv("LOG_DIR"),
		Addr:          os.Getenv("API_ADDR"),
		SlackWebhook:  os.Getenv("SLACK_WEBHOOK"),
		RunOnce:       os.Getenv("RUN_ONCE") == "true",
	}
	if cfg.TargetsFile == "" {
		cfg.TargetsFile = "targets.yaml"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	return cfg
}

// Validate covers the fatal-at-startup conditions: without credentials the
// process must not reach the poll loop.
func (c Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	if c.ChatID == "" {
		return errors.New("TELEGRAM_CHAT_ID is required")
	}
	return nil
}

func secondsEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
