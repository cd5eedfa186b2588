package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=mocks/mock_auth.go -package=mocks

var staffIDPattern = regexp.MustCompile(`^HOSP-\d{5}$`)

// UserRepository определяет контракт для работы с пользователями, персоналом и медпрофилями
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByStaffID(ctx context.Context, staffID string) (*models.User, error)
	GetStaffAssignment(ctx context.Context, userID uuid.UUID) (*models.StaffAssignment, error)
	GetMedicalProfile(ctx context.Context, userID uuid.UUID) (*models.MedicalProfile, error)
	UpsertMedicalProfile(ctx context.Context, profile *models.MedicalProfile) error
}

// TokenIssuer выпускает токен сессии
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// AuthService определяет контракт регистрации, входа и проверки статуса сотрудника
type AuthService interface {
	Register(ctx context.Context, input models.RegisterInput) (*models.AuthResult, error)
	Login(ctx context.Context, input models.LoginInput) (*models.AuthResult, error)
	VerifyStaff(ctx context.Context, actor models.Actor) (*models.StaffInfo, error)
}

type authService struct {
	users    UserRepository
	tokens   TokenIssuer
	logger   *logrus.Logger
	hashCost int
}

func NewAuthService(users UserRepository, tokens TokenIssuer, logger *logrus.Logger) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register создает пользователя с ролью USER
func (s *authService) Register(ctx context.Context, input models.RegisterInput) (*models.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Register",
		"email":   email,
	})
	log.Info("Attempting to register user")

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("service: could not hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, newError(ErrValidation, "Email already registered")
		}
		log.WithError(err).Error("Failed to create user in repository")
		return nil, fmt.Errorf("service: could not create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("service: could not issue token: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User registered successfully")
	return &models.AuthResult{User: user, Token: token}, nil
}

// Login - вход по email или по табельному номеру HOSP-XXXXX
func (s *authService) Login(ctx context.Context, input models.LoginInput) (*models.AuthResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "auth",
		"method":   "Login",
		"staff_id": input.StaffID,
	})

	var (
		user *models.User
		err  error
	)
	switch {
	case input.StaffID != "":
		staffID := strings.ToUpper(strings.TrimSpace(input.StaffID))
		if !staffIDPattern.MatchString(staffID) {
			return nil, newError(ErrValidation, "Invalid Staff ID format")
		}
		user, err = s.users.GetUserByStaffID(ctx, staffID)
	case input.Email != "":
		user, err = s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	default:
		return nil, newError(ErrValidation, "Email or Staff ID is required")
	}

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrUnauthorized, "Invalid credentials")
		}
		log.WithError(err).Error("Failed to load user")
		return nil, fmt.Errorf("service: could not load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		log.WithField("user_id", user.ID).Warn("Invalid password")
		return nil, newError(ErrUnauthorized, "Invalid credentials")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("service: could not issue token: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User logged in")
	return &models.AuthResult{User: user, Token: token}, nil
}

// VerifyStaff возвращает данные сотрудника или nil, если пользователь не сотрудник
func (s *authService) VerifyStaff(ctx context.Context, actor models.Actor) (*models.StaffInfo, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "VerifyStaff",
		"user_id": actor.UserID,
	})

	user, err := s.users.GetUserByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, "User not found")
		}
		log.WithError(err).Error("Failed to load user")
		return nil, fmt.Errorf("service: could not load user: %w", err)
	}
	if user.Role != models.RoleHospitalStaff {
		return nil, nil
	}

	assignment, err := s.users.GetStaffAssignment(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		log.WithError(err).Error("Failed to load staff assignment")
		return nil, fmt.Errorf("service: could not load staff assignment: %w", err)
	}

	return &models.StaffInfo{
		StaffID:      assignment.StaffID,
		Department:   assignment.Department,
		Position:     assignment.Position,
		FacilityName: assignment.FacilityName,
	}, nil
}
