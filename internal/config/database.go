package config

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection pool sizing. Intake traffic is bursty (submissions arrive
// in waves after the form is shared around) while the review surface is
// a handful of admins, so the pool stays small.
const (
	maxIdleConns    = 5
	maxOpenConns    = 50
	connMaxLifetime = 30 * time.Minute
)

// DB is the global database instance
var DB *gorm.DB

// ConnectDatabase opens the MySQL connection and verifies it with a
// ping before the server starts accepting applications.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	// SQL statement logging only in dev; errors always.
	gormLogger := logger.Default.LogMode(logger.Error)
	if cfg.IsDev() {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(mysql.Open(buildDSN(cfg.Database)), &gorm.Config{
		Logger: gormLogger,
		// Writes are single-row or wrapped in explicit transactions
		// by the repository, so the implicit per-statement one is off.
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db

	log.Printf("✅ Connected to MySQL [%s:%s/%s]",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	return db, nil
}

// buildDSN returns the application store connection string. parseTime
// is required for the created/updated timestamp columns; utf8mb4 so
// descriptions survive emoji and non-Latin scripts intact.
func buildDSN(d DatabaseConfig) string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&collation=utf8mb4_unicode_ci&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.DBName,
	)
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// HealthCheck reports whether the application store is reachable
func HealthCheck() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}
