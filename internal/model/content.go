package model

import "time"

// Article is a bilingual awareness article.
type Article struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TitleAr     string    `json:"title_ar" gorm:"size:255;not null"`
	TitleEn     string    `json:"title_en" gorm:"size:255;not null"`
	ContentAr   string    `json:"content_ar" gorm:"type:text;not null"`
	ContentEn   string    `json:"content_en" gorm:"type:text;not null"`
	IsPublished bool      `json:"is_published" gorm:"not null;default:true"`
	Views       int       `json:"views" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TipAlert kinds.
const (
	TipAlertTypeTip   = "tip"
	TipAlertTypeAlert = "alert"
)

// TipAlert is a short bilingual tip or alert entry.
type TipAlert struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:20;not null;index"`
	ContentAr   string    `json:"content_ar" gorm:"type:text;not null"`
	ContentEn   string    `json:"content_en" gorm:"type:text;not null"`
	PublishDate time.Time `json:"publish_date" gorm:"autoCreateTime"`
}

// TableName keeps the historical table name.
func (TipAlert) TableName() string {
	return "tips_alerts"
}
