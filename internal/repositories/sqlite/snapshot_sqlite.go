package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ci-research/learninghub-service/internal/models"
	"github.com/ci-research/learninghub-service/internal/repositories"
)

// SlotKey is the fixed storage key for the snapshot document.
const SlotKey = "ld_hub_data"

// SnapshotSlot is the single-row table holding the serialized snapshot.
type SnapshotSlot struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Document  datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (SnapshotSlot) TableName() string {
	return "snapshot_slots"
}

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository builds the SQLite-backed snapshot store and
// migrates its table.
func NewSnapshotRepository(db *gorm.DB) (repositories.SnapshotRepository, error) {
	if err := db.AutoMigrate(&SnapshotSlot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot slot: %w", err)
	}
	return &snapshotRepository{db: db}, nil
}

func (r *snapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	var slot SnapshotSlot
	err := r.db.WithContext(ctx).First(&slot, "key = ?", SlotKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot slot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(slot.Document, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot document: %w", err)
	}

	return &snapshot, nil
}

func (r *snapshotRepository) Save(ctx context.Context, snapshot models.Snapshot) error {
	document, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	slot := SnapshotSlot{
		Key:       SlotKey,
		Document:  document,
		UpdatedAt: time.Now(),
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
		}).
		Create(&slot).Error
	if err != nil {
		return fmt.Errorf("save snapshot slot: %w", err)
	}

	return nil
}
