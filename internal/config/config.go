package config

import (
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultSecretKey = "change-this-key"

type Config struct {
	RunAddress      string
	SpreadsheetID   string
	CredentialsFile string
	TokenFile       string
	RolesFile       string
	SecretKey       string
	BotToken        string
	WebAppURL       string
}

func New() *Config {
	// A local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "server address and port")
	flag.StringVar(&cfg.SpreadsheetID, "sheet", "", "Google Sheets document ID")
	flag.StringVar(&cfg.CredentialsFile, "credentials", "credentials.json", "OAuth client secrets file")
	flag.StringVar(&cfg.TokenFile, "token", "token.json", "cached OAuth token file")
	flag.StringVar(&cfg.RolesFile, "roles", "roles.json", "identity to role assignments file")
	flag.Parse()

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.SpreadsheetID = getEnv("GOOGLE_SHEETS_ID", cfg.SpreadsheetID)
	cfg.CredentialsFile = getEnv("GOOGLE_CREDENTIALS_FILE", cfg.CredentialsFile)
	cfg.TokenFile = getEnv("GOOGLE_TOKEN_FILE", cfg.TokenFile)
	cfg.RolesFile = getEnv("ROLES_FILE", cfg.RolesFile)
	cfg.SecretKey = getEnv("SECRET_KEY", defaultSecretKey)
	cfg.BotToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	cfg.WebAppURL = getEnv("WEBAPP_URL", "http://localhost:8080")

	return cfg
}

// SecureCookies reports whether cookies should carry the Secure
// attribute. Derived from the public base URL: behind plain HTTP a
// Secure cookie is never sent back by the browser, which would make
// every form submission fail CSRF validation.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.WebAppURL, "https://")
}

// InsecureSecretKey reports whether the secret key was left at the
// built-in default.
func (c *Config) InsecureSecretKey() bool {
	return c.SecretKey == defaultSecretKey
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
