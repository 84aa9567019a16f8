package repository

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"exchangenorm/src/database"
	"exchangenorm/src/model"
	"exchangenorm/src/native"
)

var ErrSnapshotNotFound = errors.New("listing snapshot not found")

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository() *SnapshotRepository {
	return NewSnapshotRepositoryWithDB(database.MainDB)
}

func NewSnapshotRepositoryWithDB(db *gorm.DB) *SnapshotRepository {
	logger.WithField("component", "SnapshotRepository").
		Debug("Creating SnapshotRepository")
	return &SnapshotRepository{db: db}
}

// Save stores the native rows of one listing download.
func (r *SnapshotRepository) Save(ctx context.Context, exchange string, kind model.SnapshotKind, rows []native.Object) (*model.ListingSnapshot, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("refusing to store an empty %s snapshot", kind)
	}
	payload, err := native.Encode(rows)
	if err != nil {
		return nil, fmt.Errorf("encode %s snapshot: %w", kind, err)
	}
	s := &model.ListingSnapshot{
		Exchange: exchange,
		Kind:     kind,
		Rows:     len(rows),
		Payload:  string(payload),
	}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, fmt.Errorf("save %s snapshot: %w", kind, err)
	}
	logger.WithFields(map[string]interface{}{
		"exchange": exchange,
		"kind":     kind,
		"rows":     s.Rows,
		"id":       s.ID,
	}).Info("Listing snapshot saved")
	return s, nil
}

// Latest returns the newest snapshot of kind together with its decoded rows.
func (r *SnapshotRepository) Latest(ctx context.Context, exchange string, kind model.SnapshotKind) (*model.ListingSnapshot, []native.Object, error) {
	var s model.ListingSnapshot
	err := r.db.WithContext(ctx).
		Where("exchange = ? AND kind = ?", exchange, kind).
		Order("created_at DESC, id DESC").
		Limit(1).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load %s snapshot: %w", kind, err)
	}
	data, err := native.Decode([]byte(s.Payload))
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s snapshot %d: %w", kind, s.ID, err)
	}
	return &s, native.Objects(data), nil
}

// Prune deletes all but the newest keep snapshots of kind.
func (r *SnapshotRepository) Prune(ctx context.Context, exchange string, kind model.SnapshotKind, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	db := r.db.WithContext(ctx)
	var ids []uint
	err := db.Model(&model.ListingSnapshot{}).
		Where("exchange = ? AND kind = ?", exchange, kind).
		Order("created_at DESC, id DESC").
		Limit(keep).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("list %s snapshots: %w", kind, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.Where("exchange = ? AND kind = ?", exchange, kind).
		Where("id NOT IN ?", ids).
		Delete(&model.ListingSnapshot{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune %s snapshots: %w", kind, res.Error)
	}
	if res.RowsAffected > 0 {
		logger.WithFields(map[string]interface{}{
			"exchange": exchange,
			"kind":     kind,
			"deleted":  res.RowsAffected,
		}).Info("Old listing snapshots pruned")
	}
	return res.RowsAffected, nil
}
