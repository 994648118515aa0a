package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arachchispices/spicestore/internal/common/config"
)

// NewPostgres opens a PostgreSQL-backed store.
func NewPostgres(cfg *config.DatabaseConfig) (Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}
