package database

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/sijms/go-ora/v2"
)

// dsn builds a properly encoded connection string for Oracle Autonomous
// Database.
func dsn(username, password, host, port, service, walletLocation string) string {
	if walletLocation != "" {
		// Wallet-based mTLS connection.
		return fmt.Sprintf(
			"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
			username, password, host, port, service, url.PathEscape(walletLocation))
	}

	return (&url.URL{
		Scheme:   "oracle",
		User:     url.UserPassword(username, password), // escapes automatically
		Host:     host + ":" + port,
		Path:     "/" + service, // keep full service name
		RawQuery: "ssl=true",    // ADB requires TCPS
	}).String()
}

// loadEnvFile reads key=value pairs from a .env file into the environment.
// Variables already set in the environment win.
func loadEnvFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err // no .env is fine
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}

// DBConfig holds database connection configuration. Credentials come from
// the environment (with a .env fallback), never from the TOML config.
type DBConfig struct {
	Host           string
	Port           string
	Service        string
	Username       string
	Password       string
	WalletLocation string
}

// LoadConfig assembles connection settings from the environment, reading a
// local .env file first for anything not already set.
func LoadConfig() DBConfig {
	loadEnvFile(".env")

	return DBConfig{
		Host:           envOr("DB_HOST", "localhost"),
		Port:           envOr("DB_PORT", "1521"),
		Service:        envOr("DB_SERVICE", "XE"),
		Username:       envOr("DB_USERNAME", ""),
		Password:       envOr("DB_PASSWORD", ""),
		WalletLocation: envOr("DB_WALLET_LOCATION", ""),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Database wraps the Oracle connection used by the permit sink.
type Database struct {
	db     *sql.DB
	config DBConfig
}

// New opens a connection and verifies it with a bounded ping.
func New(config DBConfig) (*Database, error) {
	connStr := dsn(config.Username, config.Password, config.Host, config.Port, config.Service, config.WalletLocation)

	log.Info().Str("host", config.Host).Str("service", config.Service).Msg("connecting to Oracle")

	db, err := sql.Open("oracle", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{db: db, config: config}, nil
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	return d.db.Close()
}
