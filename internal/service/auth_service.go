package service

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/NetindoGit/netindo_api/internal/audit"
	"github.com/NetindoGit/netindo_api/internal/database"
	"github.com/NetindoGit/netindo_api/internal/models"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

type adminUserStore interface {
	GetByEmail(email string) (*models.AdminUser, error)
	Create(user *models.AdminUser) error
	TouchLastLogin(id int) error
}

// AuthService handles admin panel authentication.
type AuthService struct {
	store   adminUserStore
	auditor audit.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(store adminUserStore, auditor audit.Logger) *AuthService {
	return &AuthService{store: store, auditor: auditor}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the signed-in user.
type LoginResponse struct {
	Token string            `json:"token"`
	User  *models.AdminUser `json:"user"`
}

// Login checks credentials and issues a session token. Invalid email,
// wrong password, and deactivated accounts all map to the same error so
// callers cannot probe which accounts exist.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	user, err := s.store.GetByEmail(req.Email)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, utils.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}

	if !user.IsActive {
		return nil, utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.store.TouchLastLogin(user.ID); err != nil {
		log.Warn().Err(err).Int("user_id", user.ID).Msg("Last login update failed")
	}

	s.auditor.Record(models.AuditLogin, "AdminUser", strconv.Itoa(user.ID),
		fmt.Sprintf("Signed in as %s", user.Email), user.Email)

	return &LoginResponse{Token: token, User: user}, nil
}

// EnsureAdmin creates the bootstrap admin account when no user with that
// email exists yet. Called at boot so a fresh deployment has a working login.
func (s *AuthService) EnsureAdmin(email, password string) error {
	_, err := s.store.GetByEmail(email)
	if err == nil {
		return nil
	}
	if !database.IsNotFound(err) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	if _, err := s.Register(email, password, "Administrator", "admin"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	log.Info().Str("email", email).Msg("Bootstrap admin created")
	return nil
}

// Register creates an admin user with a bcrypt password hash.
func (s *AuthService) Register(email, password, name, role string) (*models.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		IsActive:     true,
	}
	if err := s.store.Create(user); err != nil {
		return nil, fmt.Errorf("create admin user: %w", err)
	}

	s.auditor.Record(models.AuditCreate, "AdminUser", strconv.Itoa(user.ID),
		fmt.Sprintf("Created admin user: %s", user.Email), "system")

	return user, nil
}
