package database

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"modernc.org/sqlite"

	"shareit/internal/domain"
)

// Connect opens PostgreSQL for postgres:// URLs and SQLite (pure-Go driver) for
// anything else, such as a file path or "file:name?mode=memory&cache=shared".
func Connect(dsn string, log zerolog.Logger, level logger.LogLevel) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info().Msg("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	if err := registerSQLiteFunctions(); err != nil {
		return nil, err
	}
	log.Info().Str("dsn", dsn).Msg("using SQLite for local development")
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// ParseLogLevel maps silent/error/warn/info onto GORM's logger levels.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "info":
		return logger.Info
	case "warn", "warning":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

// Migrate creates or updates the ShareIt tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Request{},
		&domain.Item{},
		&domain.Booking{},
		&domain.Comment{},
	)
}

// UnicodeLower is a SQLite function lowering text with Go's Unicode case rules.
// The built-in LOWER only folds ASCII.
const UnicodeLower = "unicode_lower"

var (
	registerOnce sync.Once
	registerErr  error
)

// registerSQLiteFunctions must run before the first SQLite connection opens.
func registerSQLiteFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction(UnicodeLower, 1,
			func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				switch v := args[0].(type) {
				case nil:
					return nil, nil
				case string:
					return strings.ToLower(v), nil
				case []byte:
					return strings.ToLower(string(v)), nil
				default:
					return strings.ToLower(fmt.Sprint(v)), nil
				}
			})
	})
	return registerErr
}

// LowerExpr lowercases column in SQL with the same Unicode rules as strings.ToLower.
func LowerExpr(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "sqlite" {
		return UnicodeLower + "(" + column + ")"
	}
	return "LOWER(" + column + ")"
}
