package models

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a workshop account (front desk or repair volunteer)
type User struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	Username  string `json:"username" gorm:"size:150;uniqueIndex;not null" validate:"required,min=2,max=150"`
	Password  string `json:"-" gorm:"size:255;not null" validate:"required,min=6"`
	FirstName string `json:"first_name" gorm:"size:150"`
	LastName  string `json:"last_name" gorm:"size:150"`
	Email     string `json:"email" gorm:"size:254"`

	// Role flags. IsStaff mirrors IsAdmin for ordinary accounts; superusers
	// always carry both.
	IsAdmin     bool `json:"is_admin" gorm:"not null;default:false"`
	IsStaff     bool `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser bool `json:"is_superuser" gorm:"not null;default:false"`
	IsActive    bool `json:"is_active" gorm:"not null;default:true"`

	// Authentication token, NULL when logged out. The column carries a
	// unique index, so cleared tokens must be NULL rather than "" or every
	// logged-out account would collide on the same empty value.
	Token    *string    `json:"-" gorm:"size:255;uniqueIndex"`
	TokenExp *time.Time `json:"-" gorm:"index"` // Token expiration time

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to hash password before saving
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// BeforeUpdate hook to hash password before updating
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Password") && u.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// BeforeSave hook keeps the staff flag in line with the admin flag.
// Superusers always get both; everyone else mirrors is_admin.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.SyncRoleFlags()
	return nil
}

// SyncRoleFlags applies the staff/admin mirroring rule in place
func (u *User) SyncRoleFlags() {
	if u.IsSuperuser {
		u.IsStaff = true
		u.IsAdmin = true
		return
	}
	u.IsStaff = u.IsAdmin
}

// IsOperator reports whether the user is a regular (non-admin) account
func (u *User) IsOperator() bool {
	return !u.IsAdmin
}

// SetPassword hashes and stores a new password immediately. Use this on
// update paths that go through Save, where the BeforeUpdate hook cannot see
// changed fields.
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the user's password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// GenerateToken creates a new authentication token for the user
func (u *User) GenerateToken(lifetime time.Duration) error {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return err
	}

	token := hex.EncodeToString(tokenBytes)
	u.Token = &token
	expirationTime := time.Now().Add(lifetime)
	u.TokenExp = &expirationTime

	return nil
}

// IsTokenValid checks if the user's token is still valid
func (u *User) IsTokenValid() bool {
	if u.Token == nil || *u.Token == "" || u.TokenExp == nil {
		return false
	}
	return time.Now().Before(*u.TokenExp)
}

// ClearToken removes the authentication token
func (u *User) ClearToken() {
	u.Token = nil
	u.TokenExp = nil
}

// FullName returns the display name, falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// RoleString returns the string representation of the user role
func (u *User) RoleString() string {
	if u.IsAdmin {
		return "admin"
	}
	return "operator"
}

// ToSafeUser returns user data without sensitive information
func (u *User) ToSafeUser() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"full_name":  u.FullName(),
		"email":      u.Email,
		"is_admin":   u.IsAdmin,
		"is_active":  u.IsActive,
		"role_name":  u.RoleString(),
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
