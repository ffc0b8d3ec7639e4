package model

import "time"

// ReportType classifies a vulnerability report.
type ReportType string

const (
	ReportTypeXSS   ReportType = "XSS"
	ReportTypeSQLi  ReportType = "SQLi"
	ReportTypeCSRF  ReportType = "CSRF"
	ReportTypeAuth  ReportType = "Auth"
	ReportTypeOther ReportType = "Other"
)

// Valid reports whether t is one of the defined report types.
func (t ReportType) Valid() bool {
	switch t {
	case ReportTypeXSS, ReportTypeSQLi, ReportTypeCSRF, ReportTypeAuth, ReportTypeOther:
		return true
	}
	return false
}

// ReportStatus represents the triage status of a report.
type ReportStatus string

const (
	ReportStatusNew      ReportStatus = "new"
	ReportStatusInReview ReportStatus = "in_review"
	ReportStatusClosed   ReportStatus = "closed"
)

// Valid reports whether s is one of the three defined statuses.
// Any move among the three values is accepted; ordering is not enforced.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusNew, ReportStatusInReview, ReportStatusClosed:
		return true
	}
	return false
}

// Report represents a submitted vulnerability report. The owner is immutable.
type Report struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	UserID      uint         `json:"user_id" gorm:"not null;index"`
	ReportType  ReportType   `json:"report_type" gorm:"type:varchar(20);not null;index"`
	Title       string       `json:"title" gorm:"size:200;not null"`
	Description string       `json:"description" gorm:"type:text;not null"`
	FilePath    *string      `json:"file_path,omitempty" gorm:"size:255"`
	Status      ReportStatus `json:"status" gorm:"type:varchar(20);not null;default:'new';index"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
