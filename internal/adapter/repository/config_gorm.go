package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/internal/repository"
)

// gameConfigRowID pins the single active config row.
const gameConfigRowID = 1

// GameConfigRecord stores the admin-edited rule set as one JSON document.
type GameConfigRecord struct {
	ID        int            `gorm:"primaryKey;column:id"`
	Doc       datatypes.JSON `gorm:"column:doc"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

// TableName sets the table for GameConfigRecord.
func (GameConfigRecord) TableName() string { return "game_configs" }

type gameConfigRepository struct {
	db *gorm.DB
}

// NewGameConfigRepository builds the gorm-backed config store.
func NewGameConfigRepository(db *gorm.DB) repository.GameConfigRepository {
	return &gameConfigRepository{db: db}
}

func (r *gameConfigRepository) Load(ctx context.Context) (*entity.GameConfig, error) {
	var record GameConfigRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", gameConfigRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultGameConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load game config: %w", err)
	}

	var cfg entity.GameConfig
	if err := json.Unmarshal(record.Doc, &cfg); err != nil {
		return nil, fmt.Errorf("decode game config: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

func (r *gameConfigRepository) Save(ctx context.Context, cfg *entity.GameConfig) error {
	if cfg == nil {
		return fmt.Errorf("save game config: nil config")
	}
	cfg.Normalize()
	doc, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode game config: %w", err)
	}

	record := GameConfigRecord{
		ID:        gameConfigRowID,
		Doc:       datatypes.JSON(doc),
		UpdatedAt: time.Now(),
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("save game config: %w", err)
	}
	return nil
}
