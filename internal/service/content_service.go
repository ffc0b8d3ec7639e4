package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "secaware/internal/errors"
	"secaware/internal/model"
	"secaware/internal/repository"
)

// ArticleInput carries article authoring fields.
type ArticleInput struct {
	TitleAr     string
	TitleEn     string
	ContentAr   string
	ContentEn   string
	IsPublished bool
}

// TipAlertInput carries tip/alert authoring fields.
type TipAlertInput struct {
	Type      string
	ContentAr string
	ContentEn string
}

// ContentService owns article and tip/alert content. Plain CRUD; the only
// behavior beyond writes is the published filter and the view counter.
type ContentService interface {
	ListArticles(ctx context.Context, includeUnpublished bool) ([]model.Article, error)
	GetArticle(ctx context.Context, id uint, countView bool) (*model.Article, error)
	CreateArticle(ctx context.Context, in ArticleInput) (*model.Article, error)
	UpdateArticle(ctx context.Context, id uint, in ArticleInput) (*model.Article, error)
	DeleteArticle(ctx context.Context, id uint) error

	ListTipAlerts(ctx context.Context, itemType string) ([]model.TipAlert, error)
	CreateTipAlert(ctx context.Context, in TipAlertInput) (*model.TipAlert, error)
	UpdateTipAlert(ctx context.Context, id uint, in TipAlertInput) (*model.TipAlert, error)
	DeleteTipAlert(ctx context.Context, id uint) error
}

type contentService struct {
	contentRepo repository.ContentRepository
}

// NewContentService creates a new content service.
func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func (s *contentService) ListArticles(ctx context.Context, includeUnpublished bool) ([]model.Article, error) {
	return s.contentRepo.ListArticles(ctx, !includeUnpublished)
}

// GetArticle returns an article, bumping the view counter on public reads.
func (s *contentService) GetArticle(ctx context.Context, id uint, countView bool) (*model.Article, error) {
	article, err := s.contentRepo.FindArticleByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}

	if countView {
		if err := s.contentRepo.IncrementArticleViews(ctx, id); err != nil {
			return nil, fmt.Errorf("increment views: %w", err)
		}
		article.Views++
	}
	return article, nil
}

func (s *contentService) CreateArticle(ctx context.Context, in ArticleInput) (*model.Article, error) {
	article := &model.Article{
		TitleAr:     in.TitleAr,
		TitleEn:     in.TitleEn,
		ContentAr:   in.ContentAr,
		ContentEn:   in.ContentEn,
		IsPublished: in.IsPublished,
	}
	if err := s.contentRepo.CreateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return article, nil
}

func (s *contentService) UpdateArticle(ctx context.Context, id uint, in ArticleInput) (*model.Article, error) {
	article, err := s.contentRepo.FindArticleByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}

	article.TitleAr = in.TitleAr
	article.TitleEn = in.TitleEn
	article.ContentAr = in.ContentAr
	article.ContentEn = in.ContentEn
	article.IsPublished = in.IsPublished
	if err := s.contentRepo.UpdateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return article, nil
}

func (s *contentService) DeleteArticle(ctx context.Context, id uint) error {
	if _, err := s.contentRepo.FindArticleByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrArticleNotFound
		}
		return fmt.Errorf("find article: %w", err)
	}
	return s.contentRepo.DeleteArticle(ctx, id)
}

func (s *contentService) ListTipAlerts(ctx context.Context, itemType string) ([]model.TipAlert, error) {
	return s.contentRepo.ListTipAlerts(ctx, itemType)
}

func (s *contentService) CreateTipAlert(ctx context.Context, in TipAlertInput) (*model.TipAlert, error) {
	item := &model.TipAlert{
		Type:      in.Type,
		ContentAr: in.ContentAr,
		ContentEn: in.ContentEn,
	}
	if err := s.contentRepo.CreateTipAlert(ctx, item); err != nil {
		return nil, fmt.Errorf("create tip/alert: %w", err)
	}
	return item, nil
}

func (s *contentService) UpdateTipAlert(ctx context.Context, id uint, in TipAlertInput) (*model.TipAlert, error) {
	item, err := s.contentRepo.FindTipAlertByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTipAlertNotFound
		}
		return nil, fmt.Errorf("find tip/alert: %w", err)
	}

	item.Type = in.Type
	item.ContentAr = in.ContentAr
	item.ContentEn = in.ContentEn
	if err := s.contentRepo.UpdateTipAlert(ctx, item); err != nil {
		return nil, fmt.Errorf("update tip/alert: %w", err)
	}
	return item, nil
}

func (s *contentService) DeleteTipAlert(ctx context.Context, id uint) error {
	if _, err := s.contentRepo.FindTipAlertByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTipAlertNotFound
		}
		return fmt.Errorf("find tip/alert: %w", err)
	}
	return s.contentRepo.DeleteTipAlert(ctx, id)
}
