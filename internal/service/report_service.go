package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"secaware/internal/auth"
	apperrors "secaware/internal/errors"
	"secaware/internal/model"
	"secaware/internal/repository"
	"secaware/internal/storage"
)

// Extensions accepted for report attachments. Anything else is dropped
// silently and the report is still created without an attachment.
var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// Upload is an optional report attachment.
type Upload struct {
	Filename string
	Content  io.Reader
}

// SubmitReportInput carries the fields of a new report.
type SubmitReportInput struct {
	Type        string
	Title       string
	Description string
	File        *Upload
}

// ReportService owns report creation, ownership checks, and triage status moves.
type ReportService interface {
	Submit(ctx context.Context, identity auth.Identity, in SubmitReportInput) (*model.Report, error)
	ListOwned(ctx context.Context, userID uint) ([]model.Report, error)
	Get(ctx context.Context, identity auth.Identity, id uint) (*model.Report, error)
	ListAll(ctx context.Context, filter repository.ReportFilter) ([]model.Report, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*model.Report, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	uploads    storage.UploadStore
}

// NewReportService creates a new report service.
func NewReportService(reportRepo repository.ReportRepository, uploads storage.UploadStore) ReportService {
	return &reportService{reportRepo: reportRepo, uploads: uploads}
}

// Submit creates a report with status "new" for the calling user.
func (s *reportService) Submit(ctx context.Context, identity auth.Identity, in SubmitReportInput) (*model.Report, error) {
	reportType := model.ReportType(in.Type)
	if !reportType.Valid() {
		return nil, apperrors.ErrInvalidReportType
	}

	var filePath *string
	if in.File != nil && allowedUpload(in.File.Filename) {
		ref, err := s.uploads.Save(in.File.Filename, in.File.Content)
		if err != nil {
			return nil, fmt.Errorf("store attachment: %w", err)
		}
		filePath = &ref
	}

	report := &model.Report{
		UserID:      identity.UserID,
		ReportType:  reportType,
		Title:       in.Title,
		Description: in.Description,
		FilePath:    filePath,
		Status:      model.ReportStatusNew,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

// ListOwned returns the caller's own reports, newest first.
func (s *reportService) ListOwned(ctx context.Context, userID uint) ([]model.Report, error) {
	return s.reportRepo.ListByUser(ctx, userID)
}

// Get returns the report when the caller owns it or holds the admin role.
// The role check uses the session snapshot, matching the view-path gate.
func (s *reportService) Get(ctx context.Context, identity auth.Identity, id uint) (*model.Report, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}

	if report.UserID != identity.UserID && !identity.IsAdmin() {
		return nil, apperrors.ErrAccessDenied
	}
	return report, nil
}

// ListAll returns reports matching the filters, newest first. Admin gating
// happens at the route layer.
func (s *reportService) ListAll(ctx context.Context, filter repository.ReportFilter) ([]model.Report, error) {
	return s.reportRepo.List(ctx, filter)
}

// UpdateStatus moves a report to one of the three defined statuses. Any other
// value is rejected without touching stored state. Ordering among the three is
// deliberately not enforced.
func (s *reportService) UpdateStatus(ctx context.Context, id uint, status string) (*model.Report, error) {
	newStatus := model.ReportStatus(status)
	if !newStatus.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if _, err := s.reportRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}

	if err := s.reportRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("update report status: %w", err)
	}

	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload report: %w", err)
	}
	return report, nil
}

func allowedUpload(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return allowedUploadExts[ext]
}
