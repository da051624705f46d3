package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage. STORE_DRIVER is "mongo" or "memory".
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	SeedDemoData bool   `mapstructure:"SEED_DEMO_DATA"`

	// Auth.
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	AdminTokenHash string `mapstructure:"ADMIN_TOKEN_HASH"`

	CORSAllowOrigins []string `mapstructure:"CORS_ALLOW_ORIGINS"`

	// Redis configuration. An empty address disables the unread cache and the task queue.
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB   int           `mapstructure:"REDIS_QUEUE_DB"`
	UnreadCacheTTL time.Duration `mapstructure:"UNREAD_CACHE_TTL"`

	// Push and payments.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	StripeKey               string `mapstructure:"STRIPE_KEY"`
	PaymentCurrency         string `mapstructure:"PAYMENT_CURRENCY"`

	// Booking lifecycle policy.
	BookingTimezone            string        `mapstructure:"BOOKING_TIMEZONE"`
	BookingAllowCancelAccepted bool          `mapstructure:"BOOKING_ALLOW_CANCEL_ACCEPTED"`
	ReminderLead               time.Duration `mapstructure:"REMINDER_LEAD"`
	NotificationPollInterval   time.Duration `mapstructure:"NOTIFICATION_POLL_INTERVAL"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env file is optional; real environment variables win over it.
	_ = godotenv.Load()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("DATABASE_NAME", "smarthub")
	v.SetDefault("SEED_DEMO_DATA", false)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_TOKEN_HASH", "")
	v.SetDefault("CORS_ALLOW_ORIGINS", []string{"*"})

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("UNREAD_CACHE_TTL", 15*time.Second)

	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("STRIPE_KEY", "")
	v.SetDefault("PAYMENT_CURRENCY", "inr")

	v.SetDefault("BOOKING_TIMEZONE", "UTC")
	v.SetDefault("BOOKING_ALLOW_CANCEL_ACCEPTED", false)
	v.SetDefault("REMINDER_LEAD", time.Hour)
	v.SetDefault("NOTIFICATION_POLL_INTERVAL", 15*time.Second)
}

// Validate rejects settings the service cannot run with. The memory store shows
// uncommitted writes to readers and loses everything on restart, so production
// must use mongo.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case "mongo":
	case "memory":
		if c.Env == "production" {
			return fmt.Errorf("STORE_DRIVER=memory is not allowed when ENV=production")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want mongo or memory)", c.StoreDriver)
	}
	return nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// RedisEnabled reports whether a Redis address was configured.
func RedisEnabled() bool {
	return AppConfig.RedisAddr != ""
}

// BookingLocation resolves BOOKING_TIMEZONE, falling back to UTC.
func BookingLocation() *time.Location {
	if AppConfig.BookingTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.BookingTimezone)
	if err != nil {
		log.Printf("Unknown BOOKING_TIMEZONE %q, using UTC", AppConfig.BookingTimezone)
		return time.UTC
	}
	return loc
}
