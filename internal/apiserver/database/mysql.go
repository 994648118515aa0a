package database

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arachchispices/spicestore/internal/common/config"
)

// NewMySQL opens a MySQL-backed store.
func NewMySQL(cfg *config.DatabaseConfig) (Store, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &SQL{db: db}, nil
}
