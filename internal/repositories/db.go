// Package repositories provides the data access layer. All wallet balance
// and ledger mutation goes through the conditional-update operations defined
// here; read-modify-write of balances in application memory is not offered.
package repositories

import (
	"log"
	"time"

	"swiftsub/internal/config"
	"swiftsub/internal/models"
	"swiftsub/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService is the shared redis-backed cache.
var CacheService *cache.Service

// DBConfig holds database connection pool configuration
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// InitDB initializes the database and cache connections and runs the schema
// migration. Migration happens here, once, at boot; the repositories assume
// the schema exists.
func InitDB() error {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "swiftsub") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	// TranslateError turns unique index violations into gorm.ErrDuplicatedKey,
	// which the ledger repository maps to ErrDuplicateReference.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger(),
	})
	if err != nil {
		return err
	}
	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	cfg := DBConfig{
		MaxIdleConns:    config.GetIntEnv("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    config.GetIntEnv("DB_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	CacheService = cache.NewService(redisClient, 24*time.Hour)

	if err := db.AutoMigrate(
		&models.User{},
		&models.LedgerEntry{},
		&models.TopupRequest{},
		&models.Order{},
		&models.AgentValidationRequest{},
	); err != nil {
		return err
	}

	log.Println("postgres connected, schema migrated")
	return nil
}

func gormLogger() logger.Interface {
	level := logger.Warn
	if !config.IsProduction() {
		level = logger.Info
	}
	return logger.Default.LogMode(level)
}
