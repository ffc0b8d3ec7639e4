package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"secaware/internal/errors"
	appmw "secaware/internal/middleware"
	"secaware/internal/model"
	"secaware/internal/repository"
	"secaware/internal/service"
)

// ReportHandler handles vulnerability report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// UpdateStatusRequest represents a triage status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Submit godoc
// @Summary Submit a vulnerability report
// @Description Multipart form with report_type, title, description, and an optional file attachment.
// @Tags reports
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.Report
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports [post]
func (h *ReportHandler) Submit(c echo.Context) error {
	identity, ok := appmw.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	in := service.SubmitReportInput{
		Type:        c.FormValue("report_type"),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}
	if in.Title == "" || in.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "title and description are required",
			Code:  "VALIDATION_ERROR",
		})
	}

	// Attachment is optional; an unreadable part is treated as absent.
	if fileHeader, err := c.FormFile("file_upload"); err == nil && fileHeader != nil {
		src, err := fileHeader.Open()
		if err == nil {
			defer src.Close()
			in.File = &service.Upload{Filename: fileHeader.Filename, Content: src}
		}
	}

	report, err := h.reportService.Submit(c.Request().Context(), identity, in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, report)
}

// ListMine godoc
// @Summary List the caller's own reports, newest first
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Report
// @Failure 401 {object} errors.ErrorResponse
// @Router /reports [get]
func (h *ReportHandler) ListMine(c echo.Context) error {
	identity, ok := appmw.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	reports, err := h.reportService.ListOwned(c.Request().Context(), identity.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reports)
}

// Get godoc
// @Summary Get a report by id (owner or admin only)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} model.Report
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	identity, ok := appmw.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid report id",
			Code:  "INVALID_ID",
		})
	}

	report, err := h.reportService.Get(c.Request().Context(), identity, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, report)
}

// ListAll godoc
// @Summary List all reports with optional status/type filters (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by report type"
// @Success 200 {array} model.Report
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/reports [get]
func (h *ReportHandler) ListAll(c echo.Context) error {
	filter := repository.ReportFilter{
		Status: model.ReportStatus(c.QueryParam("status")),
		Type:   model.ReportType(c.QueryParam("type")),
	}

	reports, err := h.reportService.ListAll(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reports)
}

// GetForAdmin godoc
// @Summary Get any report by id (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 200 {object} model.Report
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/reports/{id} [get]
func (h *ReportHandler) GetForAdmin(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid report id",
			Code:  "INVALID_ID",
		})
	}

	report, err := h.reportService.Get(c.Request().Context(), appmw.AdminIdentity(c), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, report)
}

// UpdateStatus godoc
// @Summary Update a report's triage status (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} model.Report
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/reports/{id}/status [put]
func (h *ReportHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid report id",
			Code:  "INVALID_ID",
		})
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.reportService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, report)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
