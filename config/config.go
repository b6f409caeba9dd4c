package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/yourusername/invoicer/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port              string
	DatabaseDriver    string
	DatabaseURL       string
	JWTSecret         string
	JWTRefreshSecret  string
	APIKey            string
	LogLevel          string
	AppEnv            string
	SnowflakeNode     int64
	ExportConcurrency int
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	node, err := strconv.ParseInt(getEnvOrDefault("SNOWFLAKE_NODE", "1"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SNOWFLAKE_NODE: %w", err)
	}
	concurrency, err := strconv.Atoi(getEnvOrDefault("EXPORT_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_CONCURRENCY: %w", err)
	}

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		DatabaseDriver:    getEnvOrDefault("DATABASE_DRIVER", DriverPostgres),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTRefreshSecret:  os.Getenv("JWT_REFRESH_SECRET"),
		APIKey:            os.Getenv("API_KEY"),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		AppEnv:            getEnvOrDefault("APP_ENV", "production"),
		SnowflakeNode:     node,
		ExportConcurrency: concurrency,
	}
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = cfg.JWTSecret
	}
	return cfg, nil
}

// AuthEnabled reports whether API routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.DatabaseURL)
	case DriverSQLite:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = "invoicer.db"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DatabaseDriver == DriverSQLite {
		// One connection: sqlite has a single writer and every ":memory:"
		// connection would otherwise see its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&models.Client{}, &models.Contract{}, &models.Invoice{}, &models.Settings{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
