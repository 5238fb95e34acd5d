package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ordering/internal/pkg/errs"
)

const (
	defaultHTTPPort        = "8080"
	defaultDBSslMode       = "disable"
	defaultOrderPendingTTL = 30 * time.Minute
)

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	OrderHashSecret     string
	OrderPendingTTL     time.Duration
	OrderExpirySchedule string
	LogLevel            slog.Level
}

// LoadConfig reads the configuration through getenv, typically os.Getenv
// after godotenv has loaded .env. Database host, user and name are required.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:            valueOr(getenv("HTTP_PORT"), defaultHTTPPort),
		DBHost:              getenv("DB_HOST"),
		DBPort:              valueOr(getenv("DB_PORT"), "5432"),
		DBUser:              getenv("DB_USER"),
		DBPassword:          getenv("DB_PASSWORD"),
		DBName:              getenv("DB_NAME"),
		DBSslMode:           valueOr(getenv("DB_SSLMODE"), defaultDBSslMode),
		OrderHashSecret:     getenv("ORDER_HASH_SECRET"),
		OrderPendingTTL:     defaultOrderPendingTTL,
		OrderExpirySchedule: getenv("ORDER_EXPIRY_SCHEDULE"),
	}

	var errList []error
	for name, value := range map[string]string{
		"DB_HOST": cfg.DBHost,
		"DB_USER": cfg.DBUser,
		"DB_NAME": cfg.DBName,
	} {
		if value == "" {
			errList = append(errList, errs.NewValueIsRequiredError(name))
		}
	}

	if raw := getenv("ORDER_PENDING_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		switch {
		case err != nil:
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("ORDER_PENDING_TTL", err))
		case ttl <= 0:
			errList = append(errList, errs.NewValueIsOutOfRangeError("ORDER_PENDING_TTL", ttl, "1ns", "unbounded"))
		default:
			cfg.OrderPendingTTL = ttl
		}
	}

	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
		}
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
