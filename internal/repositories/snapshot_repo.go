package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/loadrush/loadrush-backend/internal/models"
)

type SnapshotRepo interface {
	Upsert(snap *models.KPISnapshot) error
	LatestOnOrBefore(day time.Time) (*models.KPISnapshot, error)
}

type snapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return &snapshotRepo{db: db}
}

// Upsert writes the rollup for snap.Day, replacing an existing row for the
// same day so re-running the rollup is safe.
func (r *snapshotRepo) Upsert(snap *models.KPISnapshot) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"driver_count", "shipper_count", "active_loads", "updated_at"}),
	}).Create(snap).Error
}

func (r *snapshotRepo) LatestOnOrBefore(day time.Time) (*models.KPISnapshot, error) {
	var snap models.KPISnapshot
	err := r.db.Where("day <= ?", day).Order("day DESC").First(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
