package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/lostperson-api/internal/notify"
	"gorm.io/gorm"
)

// RegistrationNotifier is told about new accounts. Implementations must
// return immediately; delivery happens in the background.
type RegistrationNotifier interface {
	NotifyRegistered(reg notify.Registration)
}

type AuthService struct {
	db       *gorm.DB
	tokens   *TokenIssuer
	notifier RegistrationNotifier
}

func NewAuthService(db *gorm.DB, tokens *TokenIssuer, notifier RegistrationNotifier) *AuthService {
	return &AuthService{
		db:       db,
		tokens:   tokens,
		notifier: notifier,
	}
}

func (s *AuthService) Register(req *dto.RegisterRequest) error {
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)

	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Mobile:   strings.TrimSpace(req.Mobile),
		Location: strings.TrimSpace(req.Location),
		Password: hash,
	}

	// Uniqueness is enforced by idx_users_email.
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || s.emailExists(email) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyRegistered(notify.Registration{
			UserID:       user.ID.String(),
			Email:        user.Email,
			Name:         user.Name,
			RegisteredAt: user.CreatedAt,
		})
	}

	slog.Info("user registered", "user_id", user.ID.String())
	return nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Spend the same KDF time as a real comparison.
			_, _ = VerifyPassword(dummyHash(), password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := VerifyPassword(user.Password, password)
	if err != nil {
		slog.Error("stored password hash unreadable", "user_id", user.ID.String(), "error", err)
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		UserID:  user.ID,
	}, nil
}

func (s *AuthService) emailExists(email string) bool {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

var (
	dummyOnce    sync.Once
	dummyEncoded string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		h, err := HashPassword(time.Now().String())
		if err != nil {
			h = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
		}
		dummyEncoded = h
	})
	return dummyEncoded
}
