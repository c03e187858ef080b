package initializers

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func dialector(cfg *AppConfig) gorm.Dialector {
	switch cfg.DBDriver {
	case "postgres":
		return postgres.Open(cfg.DSN())
	case "sqlite":
		return sqlite.Open(cfg.DSN())
	default:
		return mysql.Open(cfg.DSN())
	}
}

// OpenDB opens a GORM handle with duplicate-key errors translated to gorm.ErrDuplicatedKey.
func OpenDB(d gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(Logger),
	})
}

func ConnectToDB(cfg *AppConfig) error {
	db, err := OpenDB(dialector(cfg))
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", cfg.DBDriver, err)
	}

	DB = db
	Logger.Info("Database connected", zap.String("driver", cfg.DBDriver))
	return nil
}
