package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "secaware/internal/errors"
	"secaware/internal/model"
)

// MockQuizRepository is a mock implementation of QuizRepository.
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateQuiz(ctx context.Context, quiz *model.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) UpdateQuiz(ctx context.Context, quiz *model.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) DeleteQuiz(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizRepository) FindQuizByID(ctx context.Context, id uint) (*model.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quiz), args.Error(1)
}

func (m *MockQuizRepository) FindQuizWithQuestions(ctx context.Context, id uint) (*model.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quiz), args.Error(1)
}

func (m *MockQuizRepository) CountQuizzes(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuizRepository) CreateQuestion(ctx context.Context, question *model.QuizQuestion, options []model.QuizOption) error {
	args := m.Called(ctx, question, options)
	return args.Error(0)
}

func (m *MockQuizRepository) ReplaceQuestion(ctx context.Context, question *model.QuizQuestion, options []model.QuizOption) error {
	args := m.Called(ctx, question, options)
	return args.Error(0)
}

func (m *MockQuizRepository) DeleteQuestion(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizRepository) FindQuestionByID(ctx context.Context, id uint) (*model.QuizQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuizQuestion), args.Error(1)
}

func (m *MockQuizRepository) ListQuestions(ctx context.Context, quizID uint) ([]model.QuizQuestion, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuizQuestion), args.Error(1)
}

func (m *MockQuizRepository) CreateResult(ctx context.Context, result *model.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockQuizRepository) BestScore(ctx context.Context, userID, quizID uint) (int, bool, error) {
	args := m.Called(ctx, userID, quizID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func fiveQuestions() []model.QuizQuestion {
	return []model.QuizQuestion{
		{ID: 1, QuizID: 1, CorrectOption: 1},
		{ID: 2, QuizID: 1, CorrectOption: 2},
		{ID: 3, QuizID: 1, CorrectOption: 1},
		{ID: 4, QuizID: 1, CorrectOption: 2},
		{ID: 5, QuizID: 1, CorrectOption: 1},
	}
}

func TestQuizService_SubmitAnswers(t *testing.T) {
	quiz := &model.Quiz{ID: 1, PassScore: 70}

	tests := []struct {
		name          string
		questions     []model.QuizQuestion
		answers       map[uint]int
		expectedScore int
		expectedPass  bool
	}{
		{
			name:          "four of five correct passes at 70",
			questions:     fiveQuestions(),
			answers:       map[uint]int{1: 1, 2: 2, 3: 1, 4: 2, 5: 0},
			expectedScore: 80,
			expectedPass:  true,
		},
		{
			name:          "truncating division",
			questions:     fiveQuestions()[:3],
			answers:       map[uint]int{1: 1},
			expectedScore: 33,
			expectedPass:  false,
		},
		{
			name:          "empty submission scores zero and is still recorded",
			questions:     fiveQuestions(),
			answers:       map[uint]int{},
			expectedScore: 0,
			expectedPass:  false,
		},
		{
			name:          "unanswered questions count as incorrect",
			questions:     fiveQuestions(),
			answers:       map[uint]int{1: 1, 2: 2},
			expectedScore: 40,
			expectedPass:  false,
		},
		{
			name:          "quiz without questions scores zero",
			questions:     []model.QuizQuestion{},
			answers:       map[uint]int{1: 0},
			expectedScore: 0,
			expectedPass:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockQuizRepository)
			mockRepo.On("FindQuizByID", mock.Anything, uint(1)).Return(quiz, nil)
			mockRepo.On("ListQuestions", mock.Anything, uint(1)).Return(tt.questions, nil)
			mockRepo.On("CreateResult", mock.Anything, mock.MatchedBy(func(r *model.QuizResult) bool {
				return r.UserID == 5 && r.QuizID == 1 && r.Score == tt.expectedScore
			})).Return(nil)

			service := NewQuizService(mockRepo)
			result, err := service.SubmitAnswers(context.Background(), 5, 1, tt.answers)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedScore, result.Score)
			assert.Equal(t, tt.expectedPass, result.Passed)
			mockRepo.AssertExpectations(t)
		})
	}

	t.Run("missing quiz", func(t *testing.T) {
		mockRepo := new(MockQuizRepository)
		mockRepo.On("FindQuizByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewQuizService(mockRepo)
		result, err := service.SubmitAnswers(context.Background(), 5, 9, nil)

		assert.Equal(t, apperrors.ErrQuizNotFound, err)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "CreateResult", mock.Anything, mock.Anything)
	})
}

func TestQuizService_List(t *testing.T) {
	quizzes := []model.Quiz{{ID: 1, PassScore: 70}, {ID: 2, PassScore: 80}}

	t.Run("anonymous listing has no best scores", func(t *testing.T) {
		mockRepo := new(MockQuizRepository)
		mockRepo.On("ListQuizzes", mock.Anything).Return(quizzes, nil)

		service := NewQuizService(mockRepo)
		summaries, err := service.List(context.Background(), 0)

		assert.NoError(t, err)
		assert.Len(t, summaries, 2)
		assert.Nil(t, summaries[0].BestScore)
		assert.Nil(t, summaries[1].BestScore)
		mockRepo.AssertNotCalled(t, "BestScore", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("authenticated listing carries best scores when history exists", func(t *testing.T) {
		mockRepo := new(MockQuizRepository)
		mockRepo.On("ListQuizzes", mock.Anything).Return(quizzes, nil)
		mockRepo.On("BestScore", mock.Anything, uint(5), uint(1)).Return(80, true, nil)
		mockRepo.On("BestScore", mock.Anything, uint(5), uint(2)).Return(0, false, nil)

		service := NewQuizService(mockRepo)
		summaries, err := service.List(context.Background(), 5)

		assert.NoError(t, err)
		assert.NotNil(t, summaries[0].BestScore)
		assert.Equal(t, 80, *summaries[0].BestScore)
		assert.Nil(t, summaries[1].BestScore)
		mockRepo.AssertExpectations(t)
	})
}

func TestQuizService_Result(t *testing.T) {
	mockRepo := new(MockQuizRepository)
	mockRepo.On("FindQuizByID", mock.Anything, uint(1)).Return(&model.Quiz{ID: 1, PassScore: 75}, nil)

	service := NewQuizService(mockRepo)

	_, passed, err := service.Result(context.Background(), 1, 75)
	assert.NoError(t, err)
	assert.True(t, passed)

	_, passed, err = service.Result(context.Background(), 1, 74)
	assert.NoError(t, err)
	assert.False(t, passed)
}

func TestQuizService_CreateQuestion(t *testing.T) {
	twoOptions := []OptionInput{{OptionEn: "a"}, {OptionEn: "b"}}
	sixOptions := make([]OptionInput, 6)

	tests := []struct {
		name          string
		input         QuestionInput
		setupMock     func(*MockQuizRepository)
		expectedError error
	}{
		{
			name:  "two options is the minimum and is accepted",
			input: QuestionInput{QuestionEn: "q", CorrectOption: 1, Options: twoOptions},
			setupMock: func(m *MockQuizRepository) {
				m.On("FindQuizByID", mock.Anything, uint(1)).Return(&model.Quiz{ID: 1}, nil)
				m.On("CreateQuestion", mock.Anything, mock.AnythingOfType("*model.QuizQuestion"), mock.AnythingOfType("[]model.QuizOption")).Return(nil)
			},
		},
		{
			name:          "a single option is rejected",
			input:         QuestionInput{QuestionEn: "q", CorrectOption: 0, Options: twoOptions[:1]},
			setupMock:     func(m *MockQuizRepository) {},
			expectedError: apperrors.ErrInvalidOptionCount,
		},
		{
			name:          "six options is rejected",
			input:         QuestionInput{QuestionEn: "q", CorrectOption: 0, Options: sixOptions},
			setupMock:     func(m *MockQuizRepository) {},
			expectedError: apperrors.ErrInvalidOptionCount,
		},
		{
			name:          "correct index past the option set is rejected",
			input:         QuestionInput{QuestionEn: "q", CorrectOption: 2, Options: twoOptions},
			setupMock:     func(m *MockQuizRepository) {},
			expectedError: apperrors.ErrInvalidCorrectOption,
		},
		{
			name:          "negative correct index is rejected",
			input:         QuestionInput{QuestionEn: "q", CorrectOption: -1, Options: twoOptions},
			setupMock:     func(m *MockQuizRepository) {},
			expectedError: apperrors.ErrInvalidCorrectOption,
		},
		{
			name:  "missing quiz",
			input: QuestionInput{QuestionEn: "q", CorrectOption: 0, Options: twoOptions},
			setupMock: func(m *MockQuizRepository) {
				m.On("FindQuizByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrQuizNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockQuizRepository)
			tt.setupMock(mockRepo)

			service := NewQuizService(mockRepo)
			question, err := service.CreateQuestion(context.Background(), 1, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, question)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, question)
				assert.Equal(t, uint(1), question.QuizID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestQuizService_UpdateQuestion(t *testing.T) {
	t.Run("full-replaces the option set", func(t *testing.T) {
		stored := &model.QuizQuestion{ID: 3, QuizID: 1, CorrectOption: 0}

		mockRepo := new(MockQuizRepository)
		mockRepo.On("FindQuestionByID", mock.Anything, uint(3)).Return(stored, nil)
		mockRepo.On("ReplaceQuestion", mock.Anything, stored, mock.MatchedBy(func(options []model.QuizOption) bool {
			return len(options) == 2
		})).Return(nil)

		service := NewQuizService(mockRepo)
		question, err := service.UpdateQuestion(context.Background(), 3, QuestionInput{
			QuestionEn:    "updated",
			CorrectOption: 1,
			Options:       []OptionInput{{OptionEn: "a"}, {OptionEn: "b"}},
		})

		assert.NoError(t, err)
		assert.Equal(t, "updated", question.QuestionEn)
		assert.Equal(t, 1, question.CorrectOption)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing question", func(t *testing.T) {
		mockRepo := new(MockQuizRepository)
		mockRepo.On("FindQuestionByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)

		service := NewQuizService(mockRepo)
		_, err := service.UpdateQuestion(context.Background(), 3, QuestionInput{
			CorrectOption: 0,
			Options:       []OptionInput{{OptionEn: "a"}, {OptionEn: "b"}},
		})
		assert.Equal(t, apperrors.ErrQuestionNotFound, err)
	})
}

func TestQuizService_DeleteQuiz(t *testing.T) {
	t.Run("deletes an existing quiz", func(t *testing.T) {
		mockRepo := new(MockQuizRepository)
		mockRepo.On("FindQuizByID", mock.Anything, uint(1)).Return(&model.Quiz{ID: 1}, nil)
		mockRepo.On("DeleteQuiz", mock.Anything, uint(1)).Return(nil)

		service := NewQuizService(mockRepo)
		assert.NoError(t, service.DeleteQuiz(context.Background(), 1))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing quiz", func(t *testing.T) {
		mockRepo := new(MockQuizRepository)
		mockRepo.On("FindQuizByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewQuizService(mockRepo)
		assert.Equal(t, apperrors.ErrQuizNotFound, service.DeleteQuiz(context.Background(), 9))
		mockRepo.AssertNotCalled(t, "DeleteQuiz", mock.Anything, mock.Anything)
	})
}
