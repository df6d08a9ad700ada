package database

import (
	"fmt"
	"log"
	"regexp"
	"time"

	"instala_control/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	kvPassword  = regexp.MustCompile(`(password=)(\S+)`)
	urlPassword = regexp.MustCompile(`(://[^:/@\s]+:)([^@\s]+)(@)`)
)

// OpenGorm connects to the relational store selected by the storage driver.
// Postgres is retried while the server comes up.
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		dialector = sqlite.Open(cfg.SQLDSN)
	case config.StoragePostgres:
		dialector = postgres.Open(cfg.SQLDSN)
	default:
		return nil, fmt.Errorf("storage driver %q is not relational", cfg.StorageDriver)
	}

	var (
		db  *gorm.DB
		err error
	)
	for attempt := 1; attempt <= 10; attempt++ {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil || cfg.StorageDriver == config.StorageSQLite {
			break
		}
		log.Printf("[database][gorm] connect retry attempt=%d err=%v", attempt, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	log.Printf("[database][gorm] connected driver=%s dsn=%s", cfg.StorageDriver, MaskDSN(cfg.SQLDSN))
	return db, nil
}

// MaskDSN hides the password of a key=value or URL style DSN.
func MaskDSN(dsn string) string {
	dsn = kvPassword.ReplaceAllString(dsn, "${1}***")
	return urlPassword.ReplaceAllString(dsn, "${1}***${3}")
}
