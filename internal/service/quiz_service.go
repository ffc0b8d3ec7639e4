package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "secaware/internal/errors"
	"secaware/internal/model"
	"secaware/internal/repository"
)

// QuizSummary pairs a quiz with the caller's best recorded score, when any.
type QuizSummary struct {
	Quiz      model.Quiz `json:"quiz"`
	BestScore *int       `json:"best_score,omitempty"`
}

// SubmissionResult is the outcome of scoring one submission.
type SubmissionResult struct {
	Score  int  `json:"score"` // percentage 0-100
	Passed bool `json:"passed"`
}

// QuizInput carries quiz authoring fields.
type QuizInput struct {
	TitleAr   string
	TitleEn   string
	PassScore int
}

// OptionInput is one bilingual option in authoring order.
type OptionInput struct {
	OptionAr string
	OptionEn string
}

// QuestionInput carries question authoring fields. CorrectOption is a
// zero-based index into Options.
type QuestionInput struct {
	QuestionAr    string
	QuestionEn    string
	CorrectOption int
	Options       []OptionInput
}

// QuizService owns quiz modeling, submission scoring, pass/fail computation,
// and best-score history, plus admin authoring.
type QuizService interface {
	List(ctx context.Context, userID uint) ([]QuizSummary, error)
	LoadForAttempt(ctx context.Context, quizID uint) (*model.Quiz, error)
	SubmitAnswers(ctx context.Context, userID, quizID uint, answers map[uint]int) (*SubmissionResult, error)
	Result(ctx context.Context, quizID uint, score int) (*model.Quiz, bool, error)

	CreateQuiz(ctx context.Context, in QuizInput) (*model.Quiz, error)
	UpdateQuiz(ctx context.Context, id uint, in QuizInput) (*model.Quiz, error)
	DeleteQuiz(ctx context.Context, id uint) error
	CreateQuestion(ctx context.Context, quizID uint, in QuestionInput) (*model.QuizQuestion, error)
	UpdateQuestion(ctx context.Context, questionID uint, in QuestionInput) (*model.QuizQuestion, error)
	DeleteQuestion(ctx context.Context, questionID uint) error
	ListQuestions(ctx context.Context, quizID uint) ([]model.QuizQuestion, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
}

// NewQuizService creates a new quiz service.
func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

// List returns all quizzes. For an authenticated caller (userID > 0) each
// summary carries the best recorded score, present only when history exists.
func (s *quizService) List(ctx context.Context, userID uint) ([]QuizSummary, error) {
	quizzes, err := s.quizRepo.ListQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summary := QuizSummary{Quiz: quiz}
		if userID > 0 {
			best, ok, err := s.quizRepo.BestScore(ctx, userID, quiz.ID)
			if err != nil {
				return nil, fmt.Errorf("best score for quiz %d: %w", quiz.ID, err)
			}
			if ok {
				summary.BestScore = &best
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// LoadForAttempt assembles the full quiz payload: questions with their options.
// Correct answers stay server-side (hidden by the model's JSON shape).
func (s *quizService) LoadForAttempt(ctx context.Context, quizID uint) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindQuizWithQuestions(ctx, quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	return quiz, nil
}

// SubmitAnswers scores a submission against the persisted questions.
// Unanswered questions count as incorrect. The percentage truncates toward
// zero; a quiz with no questions scores 0. A result row is always appended.
func (s *quizService) SubmitAnswers(ctx context.Context, userID, quizID uint, answers map[uint]int) (*SubmissionResult, error) {
	quiz, err := s.quizRepo.FindQuizByID(ctx, quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("find quiz: %w", err)
	}

	questions, err := s.quizRepo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	correct := 0
	for _, q := range questions {
		if chosen, ok := answers[q.ID]; ok && chosen == q.CorrectOption {
			correct++
		}
	}

	percentage := 0
	if len(questions) > 0 {
		percentage = correct * 100 / len(questions)
	}

	result := &model.QuizResult{
		UserID: userID,
		QuizID: quizID,
		Score:  percentage,
	}
	if err := s.quizRepo.CreateResult(ctx, result); err != nil {
		return nil, fmt.Errorf("save quiz result: %w", err)
	}

	return &SubmissionResult{
		Score:  percentage,
		Passed: percentage >= quiz.PassScore,
	}, nil
}

// Result re-compares an already computed score against the quiz threshold.
// It never re-scores; the caller bounds the score to [0,100] at the boundary.
func (s *quizService) Result(ctx context.Context, quizID uint, score int) (*model.Quiz, bool, error) {
	quiz, err := s.quizRepo.FindQuizByID(ctx, quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, apperrors.ErrQuizNotFound
		}
		return nil, false, fmt.Errorf("find quiz: %w", err)
	}
	return quiz, score >= quiz.PassScore, nil
}

// CreateQuiz creates a quiz shell with its pass threshold.
func (s *quizService) CreateQuiz(ctx context.Context, in QuizInput) (*model.Quiz, error) {
	quiz := &model.Quiz{
		TitleAr:   in.TitleAr,
		TitleEn:   in.TitleEn,
		PassScore: in.PassScore,
	}
	if err := s.quizRepo.CreateQuiz(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// UpdateQuiz updates the quiz titles and pass threshold.
func (s *quizService) UpdateQuiz(ctx context.Context, id uint, in QuizInput) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindQuizByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("find quiz: %w", err)
	}

	quiz.TitleAr = in.TitleAr
	quiz.TitleEn = in.TitleEn
	quiz.PassScore = in.PassScore
	if err := s.quizRepo.UpdateQuiz(ctx, quiz); err != nil {
		return nil, fmt.Errorf("update quiz: %w", err)
	}
	return quiz, nil
}

// DeleteQuiz cascades: options, then questions, then the quiz itself.
func (s *quizService) DeleteQuiz(ctx context.Context, id uint) error {
	if _, err := s.quizRepo.FindQuizByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrQuizNotFound
		}
		return fmt.Errorf("find quiz: %w", err)
	}
	if err := s.quizRepo.DeleteQuiz(ctx, id); err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

// CreateQuestion persists a question and its 2-5 options as one unit.
func (s *quizService) CreateQuestion(ctx context.Context, quizID uint, in QuestionInput) (*model.QuizQuestion, error) {
	if err := validateQuestionInput(in); err != nil {
		return nil, err
	}

	if _, err := s.quizRepo.FindQuizByID(ctx, quizID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("find quiz: %w", err)
	}

	question := &model.QuizQuestion{
		QuizID:        quizID,
		QuestionAr:    in.QuestionAr,
		QuestionEn:    in.QuestionEn,
		CorrectOption: in.CorrectOption,
	}
	if err := s.quizRepo.CreateQuestion(ctx, question, buildOptions(in.Options)); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

// UpdateQuestion updates the question and full-replaces its options: the prior
// set is deleted and the submitted set inserted, in one transaction.
func (s *quizService) UpdateQuestion(ctx context.Context, questionID uint, in QuestionInput) (*model.QuizQuestion, error) {
	if err := validateQuestionInput(in); err != nil {
		return nil, err
	}

	question, err := s.quizRepo.FindQuestionByID(ctx, questionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}

	question.QuestionAr = in.QuestionAr
	question.QuestionEn = in.QuestionEn
	question.CorrectOption = in.CorrectOption
	if err := s.quizRepo.ReplaceQuestion(ctx, question, buildOptions(in.Options)); err != nil {
		return nil, fmt.Errorf("replace question: %w", err)
	}

	return s.quizRepo.FindQuestionByID(ctx, questionID)
}

// DeleteQuestion removes a question and its options.
func (s *quizService) DeleteQuestion(ctx context.Context, questionID uint) error {
	if _, err := s.quizRepo.FindQuestionByID(ctx, questionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrQuestionNotFound
		}
		return fmt.Errorf("find question: %w", err)
	}
	if err := s.quizRepo.DeleteQuestion(ctx, questionID); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

// ListQuestions returns a quiz's questions with options, for admin editing.
func (s *quizService) ListQuestions(ctx context.Context, quizID uint) ([]model.QuizQuestion, error) {
	if _, err := s.quizRepo.FindQuizByID(ctx, quizID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	return s.quizRepo.ListQuestions(ctx, quizID)
}

func validateQuestionInput(in QuestionInput) error {
	if len(in.Options) < model.MinQuestionOptions || len(in.Options) > model.MaxQuestionOptions {
		return apperrors.ErrInvalidOptionCount
	}
	if in.CorrectOption < 0 || in.CorrectOption >= len(in.Options) {
		return apperrors.ErrInvalidCorrectOption
	}
	return nil
}

func buildOptions(inputs []OptionInput) []model.QuizOption {
	options := make([]model.QuizOption, 0, len(inputs))
	for _, in := range inputs {
		options = append(options, model.QuizOption{
			OptionAr: in.OptionAr,
			OptionEn: in.OptionEn,
		})
	}
	return options
}
