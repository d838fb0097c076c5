package controllers

import (
	"net/http"
	"strconv"

	"repaircafe_server/internal/http/middleware"
	"repaircafe_server/internal/services"

	"github.com/gin-gonic/gin"
)

// UserController handles account management HTTP requests (admin only)
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new user controller
func NewUserController() *UserController {
	return &UserController{
		userService: services.NewUserService(),
	}
}

// parseUserID reads the :id route parameter
func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid user ID",
			Message: "The user ID must be a number",
		})
		return 0, false
	}
	return uint(id), true
}

// GetUsers returns all accounts
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.userService.ListUsers(middleware.CurrentUser(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	safeUsers := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		safeUsers = append(safeUsers, users[i].ToSafeUser())
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Users retrieved successfully",
		Data:    safeUsers,
		Count:   len(safeUsers),
	})
}

// GetUser returns a single account by ID
func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := uc.userService.GetUser(middleware.CurrentUser(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "User retrieved successfully",
		Data:    user.ToSafeUser(),
	})
}

// CreateUser creates a new account
func (uc *UserController) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	user, err := uc.userService.CreateUser(&req, middleware.CurrentUser(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "User \"" + user.Username + "\" created successfully!",
		Data:    user.ToSafeUser(),
	})
}

// UpdateUser edits an existing account
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req services.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request format",
			Message: err.Error(),
		})
		return
	}

	user, err := uc.userService.EditUser(id, &req, middleware.CurrentUser(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "User \"" + user.Username + "\" updated successfully!",
		Data:    user.ToSafeUser(),
	})
}

// DeleteUser removes an account
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := uc.userService.DeleteUser(id, middleware.CurrentUser(c)); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}
