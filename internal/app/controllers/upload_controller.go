package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/app/services"
	"github.com/oyilmaz/deptportal/internal/middleware"
)

// UploadController hands out presigned upload URLs
type UploadController struct {
	uploadService services.UploadService
	logger        zerolog.Logger
}

// NewUploadController creates a new UploadController
func NewUploadController(uploadService services.UploadService, logger zerolog.Logger) *UploadController {
	return &UploadController{
		uploadService: uploadService,
		logger:        logger,
	}
}

// Presign returns a direct-to-bucket upload URL
// @Summary Request an upload URL
// @Description Returns a presigned PUT URL so the client uploads directly to object storage
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PresignUploadRequest true "File name and content type"
// @Success 200 {object} dto.APIResponse{data=dto.PresignUploadResponse} "Presigned URL"
// @Failure 400 {object} dto.ErrorResponse "File type not allowed"
// @Failure 502 {object} dto.ErrorResponse "Storage provider failure"
// @Router /uploads/presign [post]
func (c *UploadController) Presign(ctx *gin.Context) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.PresignUploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	upload, err := c.uploadService.PresignUpload(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: upload})
}
