package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arachchispices/spicestore/internal/common/config"
)

// NewSQLite opens a file-backed SQLite store.
func NewSQLite(cfg *config.DatabaseConfig) (Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}
