// Package repository implements the persistence interfaces on gorm. The
// Brain is stored as one JSON document per user with last-write-wins upsert
// semantics, so redundant saves are always safe.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eslsoft/parlato/internal/entity"
	"github.com/eslsoft/parlato/internal/repository"
)

// BrainRecord is the storage row for one user's Brain document.
type BrainRecord struct {
	UserID    string         `gorm:"primaryKey;column:user_id"`
	Doc       datatypes.JSON `gorm:"column:doc"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

// TableName sets the table for BrainRecord.
func (BrainRecord) TableName() string { return "user_brains" }

type brainRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewBrainRepository builds the gorm-backed Brain store.
func NewBrainRepository(db *gorm.DB, log *logrus.Logger) repository.BrainRepository {
	return &brainRepository{db: db, log: log}
}

func (r *brainRepository) Load(ctx context.Context, userID string) (*entity.UserBrain, error) {
	var record BrainRecord
	err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load brain %s: %w", userID, err)
	}

	var brain entity.UserBrain
	if err := json.Unmarshal(record.Doc, &brain); err != nil {
		return nil, fmt.Errorf("decode brain %s: %w", userID, err)
	}
	brain.UserID = userID
	return &brain, nil
}

func (r *brainRepository) Save(ctx context.Context, brain *entity.UserBrain) error {
	if brain == nil || brain.UserID == "" {
		return fmt.Errorf("save brain: missing user id")
	}
	doc, err := json.Marshal(brain)
	if err != nil {
		return fmt.Errorf("encode brain %s: %w", brain.UserID, err)
	}

	record := BrainRecord{
		UserID:    brain.UserID,
		Doc:       datatypes.JSON(doc),
		UpdatedAt: brain.UpdatedAt,
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("save brain %s: %w", brain.UserID, err)
	}
	return nil
}
