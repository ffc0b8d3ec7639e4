package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"secaware/internal/cache"
	"secaware/internal/model"
	"secaware/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// DashboardStats are the counters shown on the admin landing view.
type DashboardStats struct {
	TotalReports  int64 `json:"total_reports"`
	NewReports    int64 `json:"new_reports"`
	TotalUsers    int64 `json:"total_users"` // non-admin users
	TotalArticles int64 `json:"total_articles"`
	TotalQuizzes  int64 `json:"total_quizzes"`
}

// DashboardService aggregates counts for the admin dashboard.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	reportRepo  repository.ReportRepository
	userRepo    repository.UserRepository
	contentRepo repository.ContentRepository
	quizRepo    repository.QuizRepository
	cache       *cache.Client
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	reportRepo repository.ReportRepository,
	userRepo repository.UserRepository,
	contentRepo repository.ContentRepository,
	quizRepo repository.QuizRepository,
	cache *cache.Client,
) DashboardService {
	return &dashboardService{
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		contentRepo: contentRepo,
		quizRepo:    quizRepo,
		cache:       cache,
	}
}

// Stats returns the dashboard counters, served from cache when fresh.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{}
	var err error

	if stats.TotalReports, err = s.reportRepo.Count(ctx, ""); err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}
	if stats.NewReports, err = s.reportRepo.Count(ctx, model.ReportStatusNew); err != nil {
		return nil, fmt.Errorf("count new reports: %w", err)
	}
	if stats.TotalUsers, err = s.userRepo.CountByRole(ctx, model.RoleUser); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalArticles, err = s.contentRepo.CountArticles(ctx); err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	if stats.TotalQuizzes, err = s.quizRepo.CountQuizzes(ctx); err != nil {
		return nil, fmt.Errorf("count quizzes: %w", err)
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}
