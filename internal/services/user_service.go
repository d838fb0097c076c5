package services

import (
	"strings"

	"repaircafe_server/internal/db"
	"repaircafe_server/internal/models"
	"repaircafe_server/pkg/colors"

	"gorm.io/gorm"
)

// UserService handles account management (admin only)
type UserService struct{}

// NewUserService creates a new user service
func NewUserService() *UserService {
	return &UserService{}
}

// ListUsers returns all accounts ordered by username
func (us *UserService) ListUsers(actor *models.User) ([]models.User, error) {
	if !CanManageUsers(actor) {
		return nil, ErrPermissionDenied
	}

	var users []models.User
	if err := db.GetDB().Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single account by id
func (us *UserService) GetUser(actor *models.User, userID uint) (*models.User, error) {
	if !CanManageUsers(actor) {
		return nil, ErrPermissionDenied
	}

	var user models.User
	if err := db.GetDB().First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUserRequest represents the admin user creation form
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	IsActive  *bool  `json:"is_active"`
}

// CreateUser creates a new account
func (us *UserService) CreateUser(req *CreateUserRequest, actor *models.User) (*models.User, error) {
	if !CanManageUsers(actor) {
		return nil, ErrPermissionDenied
	}

	ve := NewValidationError()
	username := strings.TrimSpace(req.Username)
	if username == "" {
		ve.Add("username", "Username is required")
	}
	if len(req.Password) < 6 {
		ve.Add("password", "Password must be at least 6 characters")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	var existing models.User
	if err := db.GetDB().Where("username = ?", username).First(&existing).Error; err == nil {
		ve.Add("username", "A user with this username already exists")
		return nil, ve
	}

	user := models.User{
		Username:  username,
		Password:  req.Password, // Hashed by the BeforeCreate hook
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   req.IsAdmin,
		IsActive:  true,
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := db.GetDB().Create(&user).Error; err != nil {
		return nil, err
	}

	colors.PrintSuccess("User %q created by %s", user.Username, actor.Username)
	return &user, nil
}

// EditUserRequest represents the admin user edit form. Nil pointers leave the
// current value untouched; an empty password keeps the existing one.
type EditUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  string  `json:"password"`
	IsAdmin   *bool   `json:"is_admin"`
	IsActive  *bool   `json:"is_active"`
}

// EditUser updates an account. Admins editing their own account cannot change
// their admin flag; the rest of the edit still applies.
func (us *UserService) EditUser(userID uint, req *EditUserRequest, actor *models.User) (*models.User, error) {
	user, err := us.GetUser(actor, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsAdmin != nil && CanEditAdminFlag(actor, user.ID) {
		user.IsAdmin = *req.IsAdmin
	}

	if req.Password != "" {
		if len(req.Password) < 6 {
			ve := NewValidationError()
			ve.Add("password", "Password must be at least 6 characters")
			return nil, ve
		}
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := db.GetDB().Save(user).Error; err != nil {
		return nil, err
	}

	colors.PrintInfo("User %q updated by %s", user.Username, actor.Username)
	return user, nil
}

// DeleteUser removes an account. Deleting your own account is always
// rejected, even for admins.
func (us *UserService) DeleteUser(userID uint, actor *models.User) error {
	if !CanManageUsers(actor) {
		return ErrPermissionDenied
	}
	if actor.ID == userID {
		return ErrSelfDeleteForbidden
	}

	var user models.User
	if err := db.GetDB().First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	if err := db.GetDB().Delete(&user).Error; err != nil {
		return err
	}

	colors.PrintInfo("User %q deleted by %s", user.Username, actor.Username)
	return nil
}
