package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/app/services"
	"github.com/oyilmaz/deptportal/internal/middleware"
)

// NoticeController handles the notice board endpoints
type NoticeController struct {
	noticeService services.NoticeService
	logger        zerolog.Logger
}

// NewNoticeController creates a new NoticeController
func NewNoticeController(noticeService services.NoticeService, logger zerolog.Logger) *NoticeController {
	return &NoticeController{
		noticeService: noticeService,
		logger:        logger,
	}
}

// Create publishes a notice
// @Summary Publish a notice
// @Description Creates a notice and pushes a notification to all devices
// @Tags notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNoticeRequest true "Notice content"
// @Success 201 {object} dto.APIResponse{data=models.Notice} "Notice created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or category"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /notices [post]
func (c *NoticeController) Create(ctx *gin.Context) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateNoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	notice, err := c.noticeService.CreateNotice(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: notice})
}

// List returns the notice feed
// @Summary List notices
// @Description Retrieves notices newest first, optionally filtered by category
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category filter" Enums(GENERAL, EXAMS, EVENTS)
// @Success 200 {object} dto.APIResponse{data=[]models.Notice} "Notices"
// @Failure 400 {object} dto.ErrorResponse "Unknown category"
// @Router /notices [get]
func (c *NoticeController) List(ctx *gin.Context) {
	var category *models.NoticeCategory
	if raw := ctx.Query("category"); raw != "" {
		value := models.NoticeCategory(raw)
		category = &value
	}

	notices, err := c.noticeService.ListNotices(ctx.Request.Context(), category)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notices})
}

// Get returns one notice
// @Summary Get a notice
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.APIResponse{data=models.Notice} "Notice"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /notices/{id} [get]
func (c *NoticeController) Get(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id parameter")))
		return
	}

	notice, err := c.noticeService.GetNotice(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notice})
}

// Update edits a notice
// @Summary Update a notice
// @Description Applies a partial edit. Admins may only edit their own notices.
// @Tags notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Param request body dto.UpdateNoticeRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Notice} "Updated notice"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /notices/{id} [patch]
func (c *NoticeController) Update(ctx *gin.Context) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	id, err := parseIDParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id parameter")))
		return
	}

	var req dto.UpdateNoticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	notice, err := c.noticeService.UpdateNotice(ctx.Request.Context(), caller, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: notice})
}

// Delete removes a notice
// @Summary Delete a notice
// @Tags notices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notice ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notice deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Router /notices/{id} [delete]
func (c *NoticeController) Delete(ctx *gin.Context) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	id, err := parseIDParam(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id parameter")))
		return
	}

	if err := c.noticeService.DeleteNotice(ctx.Request.Context(), caller, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Notice deleted"}})
}
