package model

import "time"

// Option arity per question. Options 3..5 are optional in authoring forms,
// so a question may carry as few as two options.
const (
	MinQuestionOptions = 2
	MaxQuestionOptions = 5
)

// Quiz is an awareness quiz with a percentage pass threshold.
type Quiz struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TitleAr   string    `json:"title_ar" gorm:"size:255;not null"`
	TitleEn   string    `json:"title_en" gorm:"size:255;not null"`
	PassScore int       `json:"pass_score" gorm:"not null"` // percentage 0-100
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Questions []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

// QuizQuestion is a bilingual multiple-choice question.
// CorrectOption is a zero-based index into the question's option set.
type QuizQuestion struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	QuizID        uint   `json:"quiz_id" gorm:"not null;index"`
	QuestionAr    string `json:"question_ar" gorm:"type:text;not null"`
	QuestionEn    string `json:"question_en" gorm:"type:text;not null"`
	CorrectOption int    `json:"-" gorm:"not null"` // hidden from attempt payloads

	// Relations
	Options []QuizOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

// QuizOption is one answer choice of a question.
type QuizOption struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	OptionAr   string `json:"option_ar" gorm:"size:500;not null"`
	OptionEn   string `json:"option_en" gorm:"size:500;not null"`
}

// QuizResult is one recorded attempt score. History is append-only; the best
// score for a user/quiz pair is derived as MAX(score) on read, never stored.
type QuizResult struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	QuizID    uint      `json:"quiz_id" gorm:"not null;index"`
	Score     int       `json:"score" gorm:"not null"` // percentage 0-100
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the historical table name.
func (QuizResult) TableName() string {
	return "user_quiz_results"
}
