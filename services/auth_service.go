package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/mutaremalcolm/calorie-counter-app-sub000/models"
	"github.com/mutaremalcolm/calorie-counter-app-sub000/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLength = 8

type AuthService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

func NewAuthService(db *gorm.DB, secret []byte, ttl time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{db: db, secret: secret, ttl: ttl, log: log}
}

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = normalizeEmail(email)
	ve := &utils.ValidationError{}
	if _, err := mail.ParseAddress(email); err != nil {
		ve.Add("email", "email must be a valid address")
	}
	if len(password) < minPasswordLength {
		ve.Add("password", "password must be at least %d characters", minPasswordLength)
	}
	if strings.TrimSpace(fullName) == "" {
		ve.Add("full_name", "full_name is required")
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	db := s.db.WithContext(ctx)
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		incAuthEvent("register", "conflict")
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{Email: email, Password: hashed, FullName: strings.TrimSpace(fullName)}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	incAuthEvent("register", "ok")
	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return &user, nil
}

// Login returns a signed session token for valid credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		incAuthEvent("login", "denied")
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		incAuthEvent("login", "denied")
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.secret, user.ID, user.Email, s.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	incAuthEvent("login", "ok")
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
