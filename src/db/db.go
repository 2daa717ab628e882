package db

import (
	"spenden/src/config"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	_db, err := gorm.Open(postgres.Open(config.GetDSN()))
	if err != nil {
		log.WithError(err).Panic("Error connecting to database")
	}
	sqlDB, err := _db.DB()
	if err != nil {
		log.WithError(err).Fatal("Error establishing connection to database")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	db = _db
	return _db
}

// NewDB Replace database instance with custom client implementation
func NewDB(newdb *gorm.DB) *gorm.DB {
	db = newdb
	return db
}
