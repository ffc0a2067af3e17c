package configs

import (
	"fmt"
	"log"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

const (
	StoreMySQL  = "mysql"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type ENV struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	StoreDriver  string `env:"STORE_DRIVER" envDefault:"mysql"`
	DBHost       string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort       string `env:"DB_PORT" envDefault:"3306"`
	DBUser       string `env:"DB_USER" envDefault:"root"`
	DBPassword   string `env:"DB_PASSWORD"`
	DBName       string `env:"DB_NAME" envDefault:"seller"`
	DBMaxRetries int    `env:"DB_MAX_RETRIES" envDefault:"10"`

	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://127.0.0.1:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"seller"`

	JWTSecret string `env:"JWT_SECRET,required"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	KafkaBrokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaDiscountTopic string   `env:"KAFKA_DISCOUNT_TOPIC" envDefault:"admin.discounts"`
	KafkaGroupID       string   `env:"KAFKA_GROUP_ID" envDefault:"seller-service"`

	BundleAlwaysReprice bool   `env:"BUNDLE_ALWAYS_REPRICE" envDefault:"false"`
	PriceCurrencySymbol string `env:"PRICE_CURRENCY_SYMBOL" envDefault:"₹"`
}

func (e ENV) Production() bool {
	return e.AppEnv == "production"
}

// LoadEnv reads .env when present and parses the process environment.
func LoadEnv() (ENV, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg := ENV{}
	if err := env.Parse(&cfg); err != nil {
		return ENV{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.JWTSecret == "" {
		return ENV{}, fmt.Errorf("JWT_SECRET must not be empty")
	}
	switch cfg.StoreDriver {
	case StoreMySQL, StoreMongo, StoreMemory:
	default:
		return ENV{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}
