package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loadrush/loadrush-backend/internal/models"
)

type UploadJobRepo interface {
	Create(job *models.UploadJob) error
	GetByID(id string) (*models.UploadJob, error)
}

type uploadJobRepo struct {
	db *gorm.DB
}

func NewUploadJobRepo(db *gorm.DB) UploadJobRepo {
	return &uploadJobRepo{db: db}
}

func (r *uploadJobRepo) Create(job *models.UploadJob) error {
	return r.db.Create(job).Error
}

func (r *uploadJobRepo) GetByID(id string) (*models.UploadJob, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid upload job ID: %w", err)
	}

	var job models.UploadJob
	if err := r.db.First(&job, "id = ?", uid).Error; err != nil {
		return nil, err
	}
	return &job, nil
}
