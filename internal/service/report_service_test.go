package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"secaware/internal/auth"
	apperrors "secaware/internal/errors"
	"secaware/internal/model"
	"secaware/internal/repository"
)

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *model.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) FindByID(ctx context.Context, id uint) (*model.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *MockReportRepository) ListByUser(ctx context.Context, userID uint) ([]model.Report, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, filter repository.ReportFilter) ([]model.Report, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id uint, status model.ReportStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReportRepository) Count(ctx context.Context, status model.ReportStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// fakeUploadStore records saves without touching the filesystem.
type fakeUploadStore struct {
	saved []string
}

func (f *fakeUploadStore) Save(originalName string, _ io.Reader) (string, error) {
	f.saved = append(f.saved, originalName)
	return "uploads/stored-" + originalName, nil
}

func TestReportService_Submit(t *testing.T) {
	identity := auth.Identity{UserID: 5, Email: "test@example.com", Role: model.RoleUser}

	tests := []struct {
		name          string
		input         SubmitReportInput
		setupMock     func(*MockReportRepository)
		expectedError error
		wantFile      bool
	}{
		{
			name: "report without attachment",
			input: SubmitReportInput{
				Type:        "XSS",
				Title:       "Stored XSS in search",
				Description: "Unescaped query reflected into the results page",
			},
			setupMock: func(m *MockReportRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Report")).Return(nil)
			},
		},
		{
			name: "allowed attachment is stored",
			input: SubmitReportInput{
				Type:        "SQLi",
				Title:       "Injection in login form",
				Description: "Email field concatenated into the query",
				File:        &Upload{Filename: "evidence.png", Content: strings.NewReader("png-bytes")},
			},
			setupMock: func(m *MockReportRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Report")).Return(nil)
			},
			wantFile: true,
		},
		{
			name: "disallowed attachment is dropped silently",
			input: SubmitReportInput{
				Type:        "CSRF",
				Title:       "Missing token on password change",
				Description: "State-changing form accepts cross-site requests",
				File:        &Upload{Filename: "exploit.exe", Content: strings.NewReader("mz")},
			},
			setupMock: func(m *MockReportRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Report")).Return(nil)
			},
		},
		{
			name: "unknown report type is rejected",
			input: SubmitReportInput{
				Type:        "RCE",
				Title:       "Some title",
				Description: "Some description",
			},
			setupMock:     func(m *MockReportRepository) {},
			expectedError: apperrors.ErrInvalidReportType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReportRepository)
			tt.setupMock(mockRepo)
			uploads := &fakeUploadStore{}

			service := NewReportService(mockRepo, uploads)
			report, err := service.Submit(context.Background(), identity, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, report)
				assert.Empty(t, uploads.saved)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, report)
				assert.Equal(t, identity.UserID, report.UserID)
				assert.Equal(t, model.ReportStatusNew, report.Status)
				if tt.wantFile {
					assert.NotNil(t, report.FilePath)
					assert.Len(t, uploads.saved, 1)
				} else {
					assert.Nil(t, report.FilePath)
					assert.Empty(t, uploads.saved)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReportService_Get(t *testing.T) {
	stored := &model.Report{ID: 10, UserID: 5, Title: "Stored XSS"}

	tests := []struct {
		name          string
		identity      auth.Identity
		setupMock     func(*MockReportRepository)
		expectedError error
	}{
		{
			name:     "owner can view",
			identity: auth.Identity{UserID: 5, Role: model.RoleUser},
			setupMock: func(m *MockReportRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
			},
		},
		{
			name:     "admin snapshot can view another user's report",
			identity: auth.Identity{UserID: 99, Role: model.RoleAdmin},
			setupMock: func(m *MockReportRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
			},
		},
		{
			name:     "other user is denied",
			identity: auth.Identity{UserID: 6, Role: model.RoleUser},
			setupMock: func(m *MockReportRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
			},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:     "missing report",
			identity: auth.Identity{UserID: 5, Role: model.RoleUser},
			setupMock: func(m *MockReportRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrReportNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReportRepository)
			tt.setupMock(mockRepo)

			service := NewReportService(mockRepo, &fakeUploadStore{})
			report, err := service.Get(context.Background(), tt.identity, 10)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, report)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored, report)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReportService_UpdateStatus(t *testing.T) {
	t.Run("rejects unknown status without touching storage", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		service := NewReportService(mockRepo, &fakeUploadStore{})

		report, err := service.UpdateStatus(context.Background(), 10, "resolved")
		assert.Equal(t, apperrors.ErrInvalidStatus, err)
		assert.Nil(t, report)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("moves among the three statuses in any order", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Report{ID: 10, Status: model.ReportStatusClosed}, nil).Once()
		mockRepo.On("UpdateStatus", mock.Anything, uint(10), model.ReportStatusNew).Return(nil)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Report{ID: 10, Status: model.ReportStatusNew}, nil).Once()

		service := NewReportService(mockRepo, &fakeUploadStore{})
		report, err := service.UpdateStatus(context.Background(), 10, "new")

		assert.NoError(t, err)
		assert.Equal(t, model.ReportStatusNew, report.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing report", func(t *testing.T) {
		mockRepo := new(MockReportRepository)
		mockRepo.On("FindByID", mock.Anything, uint(44)).Return(nil, gorm.ErrRecordNotFound)

		service := NewReportService(mockRepo, &fakeUploadStore{})
		report, err := service.UpdateStatus(context.Background(), 44, "in_review")

		assert.Equal(t, apperrors.ErrReportNotFound, err)
		assert.Nil(t, report)
		mockRepo.AssertExpectations(t)
	})
}

func TestReportService_ListAll(t *testing.T) {
	filter := repository.ReportFilter{Status: model.ReportStatusNew, Type: model.ReportTypeXSS}

	mockRepo := new(MockReportRepository)
	mockRepo.On("List", mock.Anything, filter).Return([]model.Report{{ID: 1}, {ID: 2}}, nil)

	service := NewReportService(mockRepo, &fakeUploadStore{})
	reports, err := service.ListAll(context.Background(), filter)

	assert.NoError(t, err)
	assert.Len(t, reports, 2)
	mockRepo.AssertExpectations(t)
}
