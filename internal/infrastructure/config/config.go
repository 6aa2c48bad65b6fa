package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// DemoAuth switches credential verification to the fixed demo account
	// table instead of stored user accounts.
	DemoAuth bool `env:"DEMO_AUTH, default=false"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Billing BillingConfig

	// WebhookWorkers is the number of sharded billing webhook workers.
	WebhookWorkers int `env:"WEBHOOK_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=meditrack"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type BillingConfig struct {
	APIURL        string `env:"BILLING_API_URL,        default=https://api.billing.example"`
	APIKey        string `env:"BILLING_API_KEY"`
	CheckoutURL   string `env:"BILLING_CHECKOUT_URL,   default=https://checkout.stripe.com/c/pay"`
	WebhookSecret string `env:"BILLING_WEBHOOK_SECRET"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
