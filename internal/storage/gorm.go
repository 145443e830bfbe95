package storage

import (
	"errors"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// stateRecord is the single key/value row holding the state blob.
type stateRecord struct {
	StateKey string `gorm:"primaryKey;size:64;column:state_key"`
	Value    []byte
}

func (stateRecord) TableName() string { return "app_state" }

// GormStorage keeps the blob in a database, sqlite or postgres
// depending on the DSN.
type GormStorage struct {
	db *gorm.DB
}

// OpenGorm connects and ensures the key/value table exists. A
// postgres:// or postgresql:// DSN selects the postgres driver; any
// other DSN is treated as a sqlite path.
func OpenGorm(dsn string) (*GormStorage, error) {
	var dial gorm.Dialector
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		dial = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&stateRecord{}); err != nil {
		return nil, err
	}
	return &GormStorage{db: db}, nil
}

func (g *GormStorage) Save(data []byte) error {
	rec := stateRecord{StateKey: StateKey, Value: data}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
}

func (g *GormStorage) Load() ([]byte, bool, error) {
	var rec stateRecord
	err := g.db.First(&rec, "state_key = ?", StateKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Value, true, nil
}
