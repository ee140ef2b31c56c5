package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv          string `mapstructure:"APP_ENV"`
	Port            string `mapstructure:"PORT"`
	BaseURL         string `mapstructure:"BASE_URL"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	MigrationsPath  string `mapstructure:"MIGRATIONS_PATH"`
	RedisURL        string `mapstructure:"REDIS_URL"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	SessionSecret   string `mapstructure:"SESSION_SECRET"`
	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`
	CodeLength      int    `mapstructure:"CODE_LENGTH"`
	CodeAttempts    int    `mapstructure:"CODE_ATTEMPTS"`
	PageSize        int    `mapstructure:"PAGE_SIZE"`
	CacheTTLMinutes int    `mapstructure:"CACHE_TTL_MINUTES"`
	RateLimitRPS    int    `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int    `mapstructure:"RATE_LIMIT_BURST"`
	GeoIPDBPath     string `mapstructure:"GEOIP_DB_PATH"`
	MaskClickIPs    bool   `mapstructure:"MASK_CLICK_IPS"`
}

// LoadConfig reads settings from the environment, after merging in a local
// .env file when one exists. Real environment variables always win.
func LoadConfig() (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("PORT", "8080")
	v.SetDefault("BASE_URL", "")
	v.SetDefault("DATABASE_URL", "sqlite://urls.db")
	v.SetDefault("MIGRATIONS_PATH", "file://migration")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("SESSION_SECRET", "change-me-in-production-please-32b")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("CODE_LENGTH", 6)
	v.SetDefault("CODE_ATTEMPTS", 5)
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("CACHE_TTL_MINUTES", 10)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("GEOIP_DB_PATH", "")
	v.SetDefault("MASK_CLICK_IPS", false)

	v.AutomaticEnv()

	err = v.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
