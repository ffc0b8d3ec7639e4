package repository

import (
	"context"

	"gorm.io/gorm"

	"secaware/internal/model"
)

// ReportFilter restricts admin listings. Empty fields impose no constraint.
type ReportFilter struct {
	Status model.ReportStatus
	Type   model.ReportType
}

// ReportRepository defines persistence operations for vulnerability reports.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	FindByID(ctx context.Context, id uint) (*model.Report, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Report, error)
	List(ctx context.Context, filter ReportFilter) ([]model.Report, error)
	UpdateStatus(ctx context.Context, id uint, status model.ReportStatus) error
	Count(ctx context.Context, status model.ReportStatus) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository builds a GORM-backed repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uint) (*model.Report, error) {
	var report model.Report
	if err := r.db.WithContext(ctx).Preload("User").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByUser(ctx context.Context, userID uint) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]model.Report, error) {
	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("report_type = ?", filter.Type)
	}

	var reports []model.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uint, status model.ReportStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Report{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *reportRepository) Count(ctx context.Context, status model.ReportStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
