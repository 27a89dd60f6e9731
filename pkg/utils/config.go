package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Cron     CronConfig
	Throttle ThrottleConfig
}

type AppConfig struct {
	Name       string
	Env        string
	Port       string
	Debug      bool
	LogPath    string
	PublicURL  string
	HashRounds int
}

// IsProd reports whether the app runs with ENV=prod.
func (c AppConfig) IsProd() bool {
	return c.Env == "prod"
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Driver          string
	PublicDir       string
	AccessKey       string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string
}

type CronConfig struct {
	Enabled     bool
	OrphanFiles string
	LikeCounts  string
}

type ThrottleConfig struct {
	MovieListPerMinute int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-catalog")
	viper.SetDefault("ENV", "dev")
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("PUBLIC_URL", "http://localhost:3000")
	viper.SetDefault("HASH_ROUNDS", 10)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("ACCESS_TOKEN_TTL", "1h")
	viper.SetDefault("REFRESH_TOKEN_TTL", "24h")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("PUBLIC_DIR", "public")
	viper.SetDefault("CRON_ENABLED", true)
	viper.SetDefault("CRON_ORPHAN_FILES", "0 0 * * *")
	viper.SetDefault("CRON_LIKE_COUNTS", "* * * * *")
	viper.SetDefault("THROTTLE_MOVIE_LIST", 5)

	// a missing .env is fine, the environment alone can carry the config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Env:        viper.GetString("ENV"),
			Port:       viper.GetString("PORT"),
			Debug:      viper.GetBool("DEBUG"),
			LogPath:    viper.GetString("LOG_PATH"),
			PublicURL:  viper.GetString("PUBLIC_URL"),
			HashRounds: viper.GetInt("HASH_ROUNDS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		JWT: JWTConfig{
			AccessSecret:  viper.GetString("ACCESS_TOKEN_SECRET"),
			RefreshSecret: viper.GetString("REFRESH_TOKEN_SECRET"),
			AccessTTL:     viper.GetDuration("ACCESS_TOKEN_TTL"),
			RefreshTTL:    viper.GetDuration("REFRESH_TOKEN_TTL"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Storage: StorageConfig{
			Driver:          viper.GetString("STORAGE_DRIVER"),
			PublicDir:       viper.GetString("PUBLIC_DIR"),
			AccessKey:       viper.GetString("AWS_ACCESS_KEY"),
			SecretAccessKey: viper.GetString("AWS_SECRET_ACCESS_KEY"),
			Region:          viper.GetString("AWS_REGION"),
			Bucket:          viper.GetString("BUCKET_NAME"),
			Endpoint:        viper.GetString("S3_ENDPOINT"),
		},
		Cron: CronConfig{
			Enabled:     viper.GetBool("CRON_ENABLED"),
			OrphanFiles: viper.GetString("CRON_ORPHAN_FILES"),
			LikeCounts:  viper.GetString("CRON_LIKE_COUNTS"),
		},
		Throttle: ThrottleConfig{
			MovieListPerMinute: viper.GetInt("THROTTLE_MOVIE_LIST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	switch c.App.Env {
	case "dev", "test", "prod":
	default:
		return fmt.Errorf("invalid ENV %q: must be one of dev, test, prod", c.App.Env)
	}

	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if c.JWT.RefreshSecret == "" {
		return fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" || c.Storage.Region == "" {
			return fmt.Errorf("BUCKET_NAME and AWS_REGION are required for s3 storage")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: must be local or s3", c.Storage.Driver)
	}

	return nil
}
