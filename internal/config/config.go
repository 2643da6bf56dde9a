package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/naveenspark/hackboard/pkg/status"
)

const (
	defaultAPIURL = "https://team13-aajv.onrender.com/api/students"
	defaultWebURL = "https://team13-aajv.onrender.com"
)

// Config holds everything read from the environment at startup.
type Config struct {
	APIURL        string
	WebURL        string
	Home          string // state directory: session file + debug log
	TokenOverride string
	SessionTTL    time.Duration
	ResultsPolicy status.ResultsPolicy
	Debug         bool
	Timeout       time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on environment variables")
	}

	days, err := strconv.Atoi(getEnv("HACKBOARD_SESSION_DAYS", "7"))
	if err != nil || days <= 0 {
		days = 7
	}
	timeout, err := time.ParseDuration(getEnv("HACKBOARD_TIMEOUT", "30s"))
	if err != nil {
		timeout = 30 * time.Second
	}
	debug, _ := strconv.ParseBool(getEnv("HACKBOARD_DEBUG", "false")) //nolint:errcheck // false on parse failure is desired

	return Config{
		APIURL:        getEnv("HACKBOARD_API_URL", defaultAPIURL),
		WebURL:        getEnv("HACKBOARD_WEB_URL", defaultWebURL),
		Home:          getEnv("HACKBOARD_HOME", defaultHome()),
		TokenOverride: os.Getenv("HACKBOARD_TOKEN"),
		SessionTTL:    time.Duration(days) * 24 * time.Hour,
		ResultsPolicy: status.ParsePolicy(getEnv("HACKBOARD_RESULTS_POLICY", "window")),
		Debug:         debug,
		Timeout:       timeout,
	}
}

// SessionPath is where the session record is persisted.
func (c Config) SessionPath() string {
	return filepath.Join(c.Home, "session.json")
}

// LogPath is where debug logs are written.
func (c Config) LogPath() string {
	return filepath.Join(c.Home, "hackboard.log")
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hackboard"
	}
	return filepath.Join(home, ".hackboard")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
