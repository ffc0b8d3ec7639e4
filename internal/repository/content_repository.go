package repository

import (
	"context"

	"gorm.io/gorm"

	"secaware/internal/model"
)

// ContentRepository defines persistence operations for articles and tips/alerts.
type ContentRepository interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	UpdateArticle(ctx context.Context, article *model.Article) error
	DeleteArticle(ctx context.Context, id uint) error
	FindArticleByID(ctx context.Context, id uint) (*model.Article, error)
	ListArticles(ctx context.Context, publishedOnly bool) ([]model.Article, error)
	IncrementArticleViews(ctx context.Context, id uint) error
	CountArticles(ctx context.Context) (int64, error)

	CreateTipAlert(ctx context.Context, item *model.TipAlert) error
	UpdateTipAlert(ctx context.Context, item *model.TipAlert) error
	DeleteTipAlert(ctx context.Context, id uint) error
	FindTipAlertByID(ctx context.Context, id uint) (*model.TipAlert, error)
	ListTipAlerts(ctx context.Context, itemType string) ([]model.TipAlert, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository builds a GORM-backed repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) CreateArticle(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *contentRepository) UpdateArticle(ctx context.Context, article *model.Article) error {
	return r.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("id = ?", article.ID).
		Updates(map[string]interface{}{
			"title_ar":     article.TitleAr,
			"title_en":     article.TitleEn,
			"content_ar":   article.ContentAr,
			"content_en":   article.ContentEn,
			"is_published": article.IsPublished,
		}).Error
}

func (r *contentRepository) DeleteArticle(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Article{}, id).Error
}

func (r *contentRepository) FindArticleByID(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *contentRepository) ListArticles(ctx context.Context, publishedOnly bool) ([]model.Article, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var articles []model.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *contentRepository) IncrementArticleViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *contentRepository) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Article{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contentRepository) CreateTipAlert(ctx context.Context, item *model.TipAlert) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *contentRepository) UpdateTipAlert(ctx context.Context, item *model.TipAlert) error {
	return r.db.WithContext(ctx).
		Model(&model.TipAlert{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"type":       item.Type,
			"content_ar": item.ContentAr,
			"content_en": item.ContentEn,
		}).Error
}

func (r *contentRepository) DeleteTipAlert(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.TipAlert{}, id).Error
}

func (r *contentRepository) FindTipAlertByID(ctx context.Context, id uint) (*model.TipAlert, error) {
	var item model.TipAlert
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) ListTipAlerts(ctx context.Context, itemType string) ([]model.TipAlert, error) {
	query := r.db.WithContext(ctx).Order("publish_date DESC")
	if itemType != "" {
		query = query.Where("type = ?", itemType)
	}

	var items []model.TipAlert
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
