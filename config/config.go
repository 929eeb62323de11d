package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Storage    StorageConfig
	SuperAdmin SuperAdminConfig
	Activity   ActivityConfig
	Cleanup    CleanupConfig
}

type AppConfig struct {
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins []string
}

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type StorageConfig struct {
	Root string
}

// SuperAdminConfig holds the credentials of the configured super administrator.
// The account has no users row; logging in with it yields a SuperAdmin principal.
type SuperAdminConfig struct {
	Username     string
	PasswordHash string
}

func (c SuperAdminConfig) Enabled() bool {
	return c.Username != "" && c.PasswordHash != ""
}

type ActivityConfig struct {
	FeedSize    int
	DedupWindow time.Duration
}

type CleanupConfig struct {
	RetentionDays int
	Schedule      string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional; the environment alone is enough.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:        viper.GetString("APP_PORT"),
			Env:         viper.GetString("APP_ENV"),
			LogLevel:    viper.GetString("LOG_LEVEL"),
			CORSOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetString("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			TimeZone:        viper.GetString("DB_TIMEZONE"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: parseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"), time.Hour),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			PoolSize: viper.GetInt("REDIS_POOL_SIZE"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  parseDuration(viper.GetString("JWT_ACCESS_EXPIRY"), 15*time.Minute),
			RefreshExpiry: parseDuration(viper.GetString("JWT_REFRESH_EXPIRY"), 7*24*time.Hour),
		},
		Storage: StorageConfig{
			Root: viper.GetString("STORAGE_ROOT"),
		},
		SuperAdmin: SuperAdminConfig{
			Username:     viper.GetString("SUPERADMIN_USERNAME"),
			PasswordHash: viper.GetString("SUPERADMIN_PASSWORD_HASH"),
		},
		Activity: ActivityConfig{
			FeedSize:    viper.GetInt("ACTIVITY_FEED_SIZE"),
			DedupWindow: parseDuration(viper.GetString("ACTIVITY_DEDUP_WINDOW"), 2*time.Second),
		},
		Cleanup: CleanupConfig{
			RetentionDays: viper.GetInt("NOTIFICATION_RETENTION_DAYS"),
			Schedule:      viper.GetString("NOTIFICATION_CLEANUP_CRON"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("STORAGE_ROOT", "./media")
	viper.SetDefault("ACTIVITY_FEED_SIZE", 200)
	viper.SetDefault("NOTIFICATION_RETENTION_DAYS", 15)
	viper.SetDefault("NOTIFICATION_CLEANUP_CRON", "@daily")
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// splitList parses a comma separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
