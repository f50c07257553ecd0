// Package config loads runtime configuration from the environment.
package config

import (
	"encoding/json"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Bot      BotConfig
	Payment  PaymentConfig
	Currency CurrencyConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"
}

type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

type BotConfig struct {
	Token   string
	AdminID int64
}

type PaymentConfig struct {
	CallbackBaseURL string
	IntentTTL       time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
	InitDataMaxAge  time.Duration
	CryptoBot       CryptoBotConfig
	YooKassa        YooKassaConfig
	Stars           StarsConfig
}

type CryptoBotConfig struct {
	APIToken string
	Asset    string
}

type YooKassaConfig struct {
	ShopID    string
	SecretKey string
}

type StarsConfig struct {
	KopeksPerStar int64
}

type CurrencyConfig struct {
	// Canonical is the currency whose minor unit all bounds use.
	Canonical string
	// Rates maps currency codes to canonical minor units per unit,
	// as decimal strings.
	Rates map[string]string
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PAYMENT_INTENT_TTL", "1h")
	viper.SetDefault("PAYMENT_RATE_LIMIT_MAX", 3)
	viper.SetDefault("PAYMENT_RATE_LIMIT_WINDOW", "30s")
	viper.SetDefault("INIT_DATA_MAX_AGE", "24h")
	viper.SetDefault("CRYPTOBOT_ASSET", "USDT")
	viper.SetDefault("STARS_KOPEKS_PER_STAR", 100)
	viper.SetDefault("CURRENCY_CANONICAL", "RUB")
	viper.SetDefault("CURRENCY_RATES", `{"RUB":"100"}`)

	rates := map[string]string{}
	if raw := viper.GetString("CURRENCY_RATES"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &rates); err != nil {
			log.Println("WARNING: CURRENCY_RATES is not valid JSON, using defaults")
			rates = map[string]string{"RUB": "100"}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Host:    viper.GetString("DB_HOST"),
			Port:    viper.GetString("DB_PORT"),
			Name:    viper.GetString("DB_NAME"),
			User:    viper.GetString("DB_USER"),
			Pass:    viper.GetString("DB_PASS"),
			Charset: viper.GetString("DB_CHARSET"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		Bot: BotConfig{
			Token:   viper.GetString("BOT_TOKEN"),
			AdminID: viper.GetInt64("BOT_ADMIN_ID"),
		},
		Payment: PaymentConfig{
			CallbackBaseURL: viper.GetString("PAYMENT_CALLBACK_BASE_URL"),
			IntentTTL:       viper.GetDuration("PAYMENT_INTENT_TTL"),
			RateLimitMax:    viper.GetInt("PAYMENT_RATE_LIMIT_MAX"),
			RateLimitWindow: viper.GetDuration("PAYMENT_RATE_LIMIT_WINDOW"),
			InitDataMaxAge:  viper.GetDuration("INIT_DATA_MAX_AGE"),
			CryptoBot: CryptoBotConfig{
				APIToken: viper.GetString("CRYPTOBOT_API_TOKEN"),
				Asset:    viper.GetString("CRYPTOBOT_ASSET"),
			},
			YooKassa: YooKassaConfig{
				ShopID:    viper.GetString("YOOKASSA_SHOP_ID"),
				SecretKey: viper.GetString("YOOKASSA_SECRET_KEY"),
			},
			Stars: StarsConfig{
				KopeksPerStar: viper.GetInt64("STARS_KOPEKS_PER_STAR"),
			},
		},
		Currency: CurrencyConfig{
			Canonical: viper.GetString("CURRENCY_CANONICAL"),
			Rates:     rates,
		},
	}

	if cfg.Database.Name == "" {
		log.Println("WARNING: DB_NAME is not set")
	}
	if cfg.Bot.Token == "" {
		log.Println("WARNING: BOT_TOKEN is not set")
	}

	return cfg, nil
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return d.User + ":" + d.Pass + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=" + d.Charset + "&parseTime=True&loc=Local"
}
