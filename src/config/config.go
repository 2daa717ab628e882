package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	PayPalClientID     string `env:"PAYPAL_CLIENT_ID"`
	PayPalClientSecret string `env:"PAYPAL_CLIENT_SECRET"`
	PayPalMode         string `env:"PAYPAL_MODE" envDefault:"sandbox"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`
	MailFromName string `env:"MAIL_FROM_NAME" envDefault:"Sri Venkateshwara Tempel Stuttgart"`

	JWTSecret   string `env:"JWT_SECRET"`
	AdminSecret string `env:"ADMIN_SECRET"`

	RedisHost string `env:"REDIS_HOST"`
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

func Get() *Config {
	cfgOnce.Do(func() {
		c := &Config{}
		if err := env.Parse(c); err != nil {
			log.WithError(err).Fatal("Could not parse environment configuration")
		}
		cfg = c
	})
	return cfg
}

// NewConfig Replace the parsed configuration with a custom instance
func NewConfig(c *Config) *Config {
	cfgOnce.Do(func() {})
	cfg = c
	return cfg
}

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const (
	// Donations of 300 EUR or more qualify for a Spendenbescheinigung
	TAX_RECEIPT_MIN_AMOUNT float64 = 300

	// Gotram becomes a required donor field for tiers starting at 201 EUR
	GOTRAM_REQUIRED_TIER_MIN float64 = 201

	CURRENCY = "EUR"
)
