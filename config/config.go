package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB      int    `mapstructure:"REDIS_QUEUE_DB"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Payments.
	StripeKey          string `mapstructure:"STRIPE_KEY"`
	Currency           string `mapstructure:"CURRENCY"`
	CurrencyMinorUnits int64  `mapstructure:"CURRENCY_MINOR_UNITS"`
	BalanceDueDays     int    `mapstructure:"BALANCE_DUE_DAYS"`

	// Engine tunables.
	LeadDays               int    `mapstructure:"LEAD_DAYS"`
	SeverityLow            int    `mapstructure:"SEVERITY_LOW"`
	SeverityMedium         int    `mapstructure:"SEVERITY_MEDIUM"`
	SeverityHigh           int    `mapstructure:"SEVERITY_HIGH"`
	TimelineDayStart       string `mapstructure:"TIMELINE_DAY_START"`
	TimelineStepMinutes    int    `mapstructure:"TIMELINE_STEP_MINUTES"`
	TimelineDefaultMinutes int    `mapstructure:"TIMELINE_DEFAULT_MINUTES"`
	TimelineGapMinutes     int    `mapstructure:"TIMELINE_GAP_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "eventbook")
	viper.SetDefault("JWT_SECRET", "")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("SESSION_TTL_MINUTES", 60)

	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("CURRENCY", "php")
	viper.SetDefault("CURRENCY_MINOR_UNITS", 100)
	viper.SetDefault("BALANCE_DUE_DAYS", 14)

	viper.SetDefault("LEAD_DAYS", 7)
	viper.SetDefault("SEVERITY_LOW", 1)
	viper.SetDefault("SEVERITY_MEDIUM", 2)
	viper.SetDefault("SEVERITY_HIGH", 3)
	viper.SetDefault("TIMELINE_DAY_START", "08:00")
	viper.SetDefault("TIMELINE_STEP_MINUTES", 120)
	viper.SetDefault("TIMELINE_DEFAULT_MINUTES", 60)
	viper.SetDefault("TIMELINE_GAP_MINUTES", 15)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
