package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"secaware/internal/errors"
	"secaware/internal/model"
	"secaware/internal/service"
)

// ContentHandler handles article and tip/alert endpoints.
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler creates a new content handler.
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ArticleRequest represents article authoring fields.
type ArticleRequest struct {
	TitleAr     string `json:"title_ar" validate:"required"`
	TitleEn     string `json:"title_en" validate:"required"`
	ContentAr   string `json:"content_ar" validate:"required"`
	ContentEn   string `json:"content_en" validate:"required"`
	IsPublished *bool  `json:"is_published"`
}

// TipAlertRequest represents tip/alert authoring fields.
type TipAlertRequest struct {
	Type      string `json:"type" validate:"required,oneof=tip alert"`
	ContentAr string `json:"content_ar" validate:"required"`
	ContentEn string `json:"content_en" validate:"required"`
}

// ListArticles godoc
// @Summary List published articles
// @Tags content
// @Produce json
// @Success 200 {array} model.Article
// @Router /articles [get]
func (h *ContentHandler) ListArticles(c echo.Context) error {
	articles, err := h.contentService.ListArticles(c.Request().Context(), false)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, articles)
}

// GetArticle godoc
// @Summary Get an article and count the view
// @Tags content
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} model.Article
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{id} [get]
func (h *ContentHandler) GetArticle(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidContentID("article")
	}

	article, err := h.contentService.GetArticle(c.Request().Context(), id, true)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, article)
}

// ListTips godoc
// @Summary List tips, newest first
// @Tags content
// @Produce json
// @Success 200 {array} model.TipAlert
// @Router /tips [get]
func (h *ContentHandler) ListTips(c echo.Context) error {
	return h.listTipAlerts(c, model.TipAlertTypeTip)
}

// ListAlerts godoc
// @Summary List alerts, newest first
// @Tags content
// @Produce json
// @Success 200 {array} model.TipAlert
// @Router /alerts [get]
func (h *ContentHandler) ListAlerts(c echo.Context) error {
	return h.listTipAlerts(c, model.TipAlertTypeAlert)
}

func (h *ContentHandler) listTipAlerts(c echo.Context, itemType string) error {
	items, err := h.contentService.ListTipAlerts(c.Request().Context(), itemType)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// ListAllArticles godoc
// @Summary List all articles including unpublished (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Article
// @Router /admin/articles [get]
func (h *ContentHandler) ListAllArticles(c echo.Context) error {
	articles, err := h.contentService.ListArticles(c.Request().Context(), true)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, articles)
}

// CreateArticle godoc
// @Summary Create an article (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ArticleRequest true "Article data"
// @Success 201 {object} model.Article
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/articles [post]
func (h *ContentHandler) CreateArticle(c echo.Context) error {
	req, err := bindArticleRequest(c)
	if err != nil {
		return err
	}

	article, err := h.contentService.CreateArticle(c.Request().Context(), req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, article)
}

// UpdateArticle godoc
// @Summary Update an article (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param request body ArticleRequest true "Article data"
// @Success 200 {object} model.Article
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/articles/{id} [put]
func (h *ContentHandler) UpdateArticle(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidContentID("article")
	}

	req, err := bindArticleRequest(c)
	if err != nil {
		return err
	}

	article, err := h.contentService.UpdateArticle(c.Request().Context(), id, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, article)
}

// DeleteArticle godoc
// @Summary Delete an article (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/articles/{id} [delete]
func (h *ContentHandler) DeleteArticle(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidContentID("article")
	}

	if err := h.contentService.DeleteArticle(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "article deleted"})
}

// ListAllTipAlerts godoc
// @Summary List all tips and alerts (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.TipAlert
// @Router /admin/tips-alerts [get]
func (h *ContentHandler) ListAllTipAlerts(c echo.Context) error {
	items, err := h.contentService.ListTipAlerts(c.Request().Context(), "")
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, items)
}

// CreateTipAlert godoc
// @Summary Create a tip or alert (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TipAlertRequest true "Tip/alert data"
// @Success 201 {object} model.TipAlert
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/tips-alerts [post]
func (h *ContentHandler) CreateTipAlert(c echo.Context) error {
	req, err := bindTipAlertRequest(c)
	if err != nil {
		return err
	}

	item, err := h.contentService.CreateTipAlert(c.Request().Context(), service.TipAlertInput{
		Type:      req.Type,
		ContentAr: req.ContentAr,
		ContentEn: req.ContentEn,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateTipAlert godoc
// @Summary Update a tip or alert (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tip/alert ID"
// @Param request body TipAlertRequest true "Tip/alert data"
// @Success 200 {object} model.TipAlert
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/tips-alerts/{id} [put]
func (h *ContentHandler) UpdateTipAlert(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidContentID("tip/alert")
	}

	req, err := bindTipAlertRequest(c)
	if err != nil {
		return err
	}

	item, err := h.contentService.UpdateTipAlert(c.Request().Context(), id, service.TipAlertInput{
		Type:      req.Type,
		ContentAr: req.ContentAr,
		ContentEn: req.ContentEn,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteTipAlert godoc
// @Summary Delete a tip or alert (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tip/alert ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/tips-alerts/{id} [delete]
func (h *ContentHandler) DeleteTipAlert(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return invalidContentID("tip/alert")
	}

	if err := h.contentService.DeleteTipAlert(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "tip/alert deleted"})
}

func (r ArticleRequest) toInput() service.ArticleInput {
	published := true
	if r.IsPublished != nil {
		published = *r.IsPublished
	}
	return service.ArticleInput{
		TitleAr:     r.TitleAr,
		TitleEn:     r.TitleEn,
		ContentAr:   r.ContentAr,
		ContentEn:   r.ContentEn,
		IsPublished: published,
	}
}

func bindArticleRequest(c echo.Context) (*ArticleRequest, error) {
	var req ArticleRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}

func bindTipAlertRequest(c echo.Context) (*TipAlertRequest, error) {
	var req TipAlertRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}

func invalidContentID(kind string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid " + kind + " id",
		Code:  "INVALID_ID",
	})
}
