// persistence/gorm_postgresql.go
package persistence

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/wfunc/bingoserver/models"
)

// GormPostgres stores the snapshot one row per room, for deployments
// where the state file on local disk is not enough.
type GormPostgres struct {
	db *gorm.DB
}

// RoomStateModel is the persisted form of one room.
type RoomStateModel struct {
	ID        uint   `gorm:"primaryKey"`
	RoomID    string `gorm:"uniqueIndex;not null"`
	State     string `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewGormPostgres(host string, port int, user, password, dbname string) (*GormPostgres, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&RoomStateModel{}); err != nil {
		return nil, err
	}

	return &GormPostgres{db: db}, nil
}

func (p *GormPostgres) Save(rooms map[string]models.RoomState) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		for name, state := range rooms {
			data, err := json.Marshal(state)
			if err != nil {
				return fmt.Errorf("marshal room %q: %w", name, err)
			}
			row := RoomStateModel{RoomID: name, State: string(data)}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "room_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *GormPostgres) Load() (map[string]models.RoomState, error) {
	var rows []RoomStateModel
	if err := p.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	rooms := make(map[string]models.RoomState, len(rows))
	for _, row := range rows {
		var state models.RoomState
		if err := json.Unmarshal([]byte(row.State), &state); err != nil {
			return nil, fmt.Errorf("parse room %q: %w", row.RoomID, err)
		}
		rooms[row.RoomID] = state
	}
	return rooms, nil
}

func (p *GormPostgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
