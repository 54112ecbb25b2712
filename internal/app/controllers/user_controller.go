package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/app/services"
	"github.com/oyilmaz/deptportal/internal/middleware"
)

// UserController handles faculty account management endpoints
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// List returns all faculty accounts
// @Summary List faculty accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Faculty accounts"
// @Failure 403 {object} dto.ErrorResponse "SUPER_ADMIN role required"
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	users, err := c.userService.ListUsers(ctx.Request.Context(), caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = dto.ToUserResponse(&users[i])
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: responses})
}

// Invite creates a faculty account
// @Summary Invite a faculty member
// @Description Creates an account with a temporary password delivered by email
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InviteUserRequest true "Account details"
// @Success 201 {object} dto.APIResponse{data=dto.InviteUserResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or role"
// @Failure 403 {object} dto.ErrorResponse "SUPER_ADMIN role required"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /users [post]
func (c *UserController) Invite(ctx *gin.Context) {
	caller, ok := middleware.CallerFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.InviteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.userService.InviteUser(ctx.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.InviteUserResponse{
		User:    dto.ToUserResponse(user),
		Message: "Invitation sent",
	}})
}

// Delete removes a faculty account
// @Summary Delete a user
// @Description Removes an account. Self-deletion is rejected.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "User deleted"
// @Failure 403 {object} dto.ErrorResponse "SUPER_ADMIN role required or self-deletion"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
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

	if err := c.userService.DeleteUser(ctx.Request.Context(), caller, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "User deleted"}})
}
