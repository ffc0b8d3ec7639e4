package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"secaware/internal/errors"
	appmw "secaware/internal/middleware"
	"secaware/internal/service"
)

// QuizHandler handles quiz endpoints.
type QuizHandler struct {
	quizService service.QuizService
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// SubmitAnswersRequest maps question ids to the chosen option index.
// Missing questions count as incorrect, never as errors.
type SubmitAnswersRequest struct {
	Answers map[uint]int `json:"answers"`
}

// ResultQuery carries the score computed by the submission step. It is
// untrusted display input and must stay within [0,100].
type ResultQuery struct {
	Score int `query:"score" validate:"min=0,max=100"`
}

// ResultResponse re-derives pass/fail for display.
type ResultResponse struct {
	Quiz   interface{} `json:"quiz"`
	Score  int         `json:"score"`
	Passed bool        `json:"passed"`
}

// QuizRequest represents quiz authoring fields.
type QuizRequest struct {
	TitleAr   string `json:"title_ar" validate:"required"`
	TitleEn   string `json:"title_en" validate:"required"`
	PassScore int    `json:"pass_score" validate:"min=0,max=100"`
}

// OptionRequest is one bilingual option.
type OptionRequest struct {
	OptionAr string `json:"option_ar" validate:"required"`
	OptionEn string `json:"option_en" validate:"required"`
}

// QuestionRequest represents question authoring fields with 2-5 options.
type QuestionRequest struct {
	QuestionAr    string          `json:"question_ar" validate:"required"`
	QuestionEn    string          `json:"question_en" validate:"required"`
	CorrectOption int             `json:"correct_option" validate:"min=0"`
	Options       []OptionRequest `json:"options" validate:"required,min=2,max=5,dive"`
}

// List godoc
// @Summary List quizzes with the caller's best score when authenticated
// @Tags quizzes
// @Produce json
// @Success 200 {array} service.QuizSummary
// @Router /quizzes [get]
func (h *QuizHandler) List(c echo.Context) error {
	var userID uint
	if identity, ok := appmw.IdentityFrom(c); ok {
		userID = identity.UserID
	}

	summaries, err := h.quizService.List(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summaries)
}

// Load godoc
// @Summary Load a quiz with its questions and options for an attempt
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} model.Quiz
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) Load(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidQuizID()
	}

	quiz, err := h.quizService.LoadForAttempt(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, quiz)
}

// Submit godoc
// @Summary Submit quiz answers and record the scored result
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body SubmitAnswersRequest true "Chosen option index per question id"
// @Success 200 {object} service.SubmissionResult
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) Submit(c echo.Context) error {
	identity, ok := appmw.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidQuizID()
	}

	var req SubmitAnswersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.quizService.SubmitAnswers(c.Request().Context(), identity.UserID, id, req.Answers)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// Result godoc
// @Summary Re-derive pass/fail for a score against a quiz threshold
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param score query int true "Score percentage from the submission step"
// @Success 200 {object} ResultResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /quizzes/{id}/result [get]
func (h *QuizHandler) Result(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidQuizID()
	}

	var query ResultQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid score")
	}
	if err := c.Validate(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "score must be between 0 and 100",
			Code:  "VALIDATION_ERROR",
		})
	}

	quiz, passed, err := h.quizService.Result(c.Request().Context(), id, query.Score)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ResultResponse{
		Quiz:   quiz,
		Score:  query.Score,
		Passed: passed,
	})
}

// Create godoc
// @Summary Create a quiz (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body QuizRequest true "Quiz data"
// @Success 201 {object} model.Quiz
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/quizzes [post]
func (h *QuizHandler) Create(c echo.Context) error {
	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quiz, err := h.quizService.CreateQuiz(c.Request().Context(), service.QuizInput{
		TitleAr:   req.TitleAr,
		TitleEn:   req.TitleEn,
		PassScore: req.PassScore,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, quiz)
}

// Update godoc
// @Summary Update a quiz (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body QuizRequest true "Quiz data"
// @Success 200 {object} model.Quiz
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quizzes/{id} [put]
func (h *QuizHandler) Update(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidQuizID()
	}

	var req QuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	quiz, err := h.quizService.UpdateQuiz(c.Request().Context(), id, service.QuizInput{
		TitleAr:   req.TitleAr,
		TitleEn:   req.TitleEn,
		PassScore: req.PassScore,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, quiz)
}

// Delete godoc
// @Summary Delete a quiz with its questions and options (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quizzes/{id} [delete]
func (h *QuizHandler) Delete(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidQuizID()
	}

	if err := h.quizService.DeleteQuiz(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "quiz deleted"})
}

// ListQuestions godoc
// @Summary List a quiz's questions with options (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {array} model.QuizQuestion
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quizzes/{id}/questions [get]
func (h *QuizHandler) ListQuestions(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidQuizID()
	}

	questions, err := h.quizService.ListQuestions(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, questions)
}

// CreateQuestion godoc
// @Summary Create a question with its options in one unit (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param request body QuestionRequest true "Question data with 2-5 options"
// @Success 201 {object} model.QuizQuestion
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/quizzes/{id}/questions [post]
func (h *QuizHandler) CreateQuestion(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidQuizID()
	}

	req, err := bindQuestionRequest(c)
	if err != nil {
		return err
	}

	question, err := h.quizService.CreateQuestion(c.Request().Context(), id, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary Update a question, full-replacing its option set (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body QuestionRequest true "Question data with 2-5 options"
// @Success 200 {object} model.QuizQuestion
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/questions/{id} [put]
func (h *QuizHandler) UpdateQuestion(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid question id",
			Code:  "INVALID_ID",
		})
	}

	req, err := bindQuestionRequest(c)
	if err != nil {
		return err
	}

	question, err := h.quizService.UpdateQuestion(c.Request().Context(), id, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary Delete a question and its options (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (h *QuizHandler) DeleteQuestion(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid question id",
			Code:  "INVALID_ID",
		})
	}

	if err := h.quizService.DeleteQuestion(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "question deleted"})
}

func (r QuestionRequest) toInput() service.QuestionInput {
	options := make([]service.OptionInput, 0, len(r.Options))
	for _, o := range r.Options {
		options = append(options, service.OptionInput{OptionAr: o.OptionAr, OptionEn: o.OptionEn})
	}
	return service.QuestionInput{
		QuestionAr:    r.QuestionAr,
		QuestionEn:    r.QuestionEn,
		CorrectOption: r.CorrectOption,
		Options:       options,
	}
}

func bindQuestionRequest(c echo.Context) (*QuestionRequest, error) {
	var req QuestionRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}

func invalidQuizID() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid quiz id",
		Code:  "INVALID_ID",
	})
}
