package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mkarsten/waveline/models"
	"github.com/mkarsten/waveline/utils"
)

// AuthService creates accounts and verifies credentials.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an AuthService.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *AuthService) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" || password == "" {
		return nil, ValidationError("username, email and password are required")
	}

	var existing models.User
	if err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&existing).Error; err == nil {
		if existing.Username == username {
			return nil, ConflictError("username already exists")
		}
		return nil, ConflictError("email already registered")
	} else if err != gorm.ErrRecordNotFound {
		return nil, InternalError("failed to check existing user", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, InternalError("failed to hash password", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// A racer can slip past the existence check; the unique indexes
		// still hold the line.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ConflictError("username or email already registered")
		}
		return nil, InternalError("failed to create user", err)
	}
	return &user, nil
}

// Login verifies an email/password pair and returns the matching user.
// Unknown email and wrong password produce the same error to avoid
// leaking which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ValidationError("email and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, AuthenticationError("invalid email or password")
		}
		return nil, InternalError("failed to load user", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, AuthenticationError("invalid email or password")
	}
	return &user, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("user not found")
		}
		return nil, InternalError("failed to load user", err)
	}
	return &user, nil
}
