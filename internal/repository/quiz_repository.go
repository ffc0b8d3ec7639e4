package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"secaware/internal/model"
)

// QuizRepository defines persistence operations for quizzes, their questions
// and options, and recorded results.
type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *model.Quiz) error
	UpdateQuiz(ctx context.Context, quiz *model.Quiz) error
	// DeleteQuiz removes options, then questions, then the quiz row, in one
	// transaction so no orphan rows survive.
	DeleteQuiz(ctx context.Context, id uint) error
	FindQuizByID(ctx context.Context, id uint) (*model.Quiz, error)
	FindQuizWithQuestions(ctx context.Context, id uint) (*model.Quiz, error)
	ListQuizzes(ctx context.Context) ([]model.Quiz, error)
	CountQuizzes(ctx context.Context) (int64, error)

	// CreateQuestion persists a question together with its options in one
	// transaction; partial persistence is not acceptable.
	CreateQuestion(ctx context.Context, question *model.QuizQuestion, options []model.QuizOption) error
	// ReplaceQuestion updates the question and full-replaces its option set:
	// all prior options are deleted before the new set is inserted.
	ReplaceQuestion(ctx context.Context, question *model.QuizQuestion, options []model.QuizOption) error
	DeleteQuestion(ctx context.Context, id uint) error
	FindQuestionByID(ctx context.Context, id uint) (*model.QuizQuestion, error)
	ListQuestions(ctx context.Context, quizID uint) ([]model.QuizQuestion, error)

	CreateResult(ctx context.Context, result *model.QuizResult) error
	// BestScore returns MAX(score) for the user/quiz pair; ok is false when no
	// result has been recorded yet.
	BestScore(ctx context.Context, userID, quizID uint) (score int, ok bool, err error)
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository builds a GORM-backed repository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) CreateQuiz(ctx context.Context, quiz *model.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

func (r *quizRepository) UpdateQuiz(ctx context.Context, quiz *model.Quiz) error {
	return r.db.WithContext(ctx).
		Model(&model.Quiz{}).
		Where("id = ?", quiz.ID).
		Updates(map[string]interface{}{
			"title_ar":   quiz.TitleAr,
			"title_en":   quiz.TitleEn,
			"pass_score": quiz.PassScore,
		}).Error
}

func (r *quizRepository) DeleteQuiz(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&model.QuizQuestion{}).Select("id").Where("quiz_id = ?", id)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&model.QuizOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, id).Error
	})
}

func (r *quizRepository) FindQuizByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindQuizWithQuestions(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions.Options").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.db.WithContext(ctx).Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) CountQuizzes(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Quiz{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *quizRepository) CreateQuestion(ctx context.Context, question *model.QuizQuestion, options []model.QuizOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].QuestionID = question.ID
		}
		return tx.Create(&options).Error
	})
}

func (r *quizRepository) ReplaceQuestion(ctx context.Context, question *model.QuizQuestion, options []model.QuizOption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.QuizQuestion{}).
			Where("id = ?", question.ID).
			Updates(map[string]interface{}{
				"question_ar":    question.QuestionAr,
				"question_en":    question.QuestionEn,
				"correct_option": question.CorrectOption,
			}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&model.QuizOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].ID = 0
			options[i].QuestionID = question.ID
		}
		return tx.Create(&options).Error
	})
}

func (r *quizRepository) DeleteQuestion(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuizOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.QuizQuestion{}, id).Error
	})
}

func (r *quizRepository) FindQuestionByID(ctx context.Context, id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	if err := r.db.WithContext(ctx).Preload("Options").First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *quizRepository) ListQuestions(ctx context.Context, quizID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.db.WithContext(ctx).
		Preload("Options").
		Where("quiz_id = ?", quizID).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) CreateResult(ctx context.Context, result *model.QuizResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *quizRepository) BestScore(ctx context.Context, userID, quizID uint) (int, bool, error) {
	var best sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&model.QuizResult{}).
		Select("MAX(score)").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Scan(&best).Error
	if err != nil {
		return 0, false, err
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}
