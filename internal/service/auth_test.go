package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/shenikar/emergency_dispatch/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*authService, *mocks.MockUserRepository, *mocks.MockTokenIssuer) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	tokens := mocks.NewMockTokenIssuer(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	svc := NewAuthService(users, tokens, logger).(*authService)
	svc.hashCost = bcrypt.MinCost
	return svc, users, tokens
}

func hashed(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister_Success(t *testing.T) {
	// Подготовка
	service, users, tokens := newTestAuthService(t)
	ctx := context.Background()

	// Ожидания
	users.EXPECT().CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User) error {
			assert.Equal(t, "new@rivoo.com", user.Email)
			assert.Equal(t, models.RoleUser, user.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			user.ID = uuid.New()
			return nil
		})
	tokens.EXPECT().Issue(gomock.Any()).Return("token", nil)

	// Действие
	result, err := service.Register(ctx, models.RegisterInput{Email: " New@Rivoo.com ", Password: "password123", Name: "New User"})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "token", result.Token)
	assert.Equal(t, "New User", result.User.Name)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, users, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().CreateUser(ctx, gomock.Any()).Return(fmt.Errorf("duplicate: %w", ErrConflict))

	_, err := service.Register(ctx, models.RegisterInput{Email: "test@rivoo.com", Password: "password123", Name: "Test"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestLogin_ByEmail(t *testing.T) {
	service, users, tokens := newTestAuthService(t)
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: "test@rivoo.com", PasswordHash: hashed(t, "password123"), Role: models.RoleUser}

	users.EXPECT().GetUserByEmail(ctx, "test@rivoo.com").Return(user, nil)
	tokens.EXPECT().Issue(user).Return("token", nil)

	result, err := service.Login(ctx, models.LoginInput{Email: "TEST@rivoo.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, user, result.User)
}

func TestLogin_ByStaffID(t *testing.T) {
	service, users, tokens := newTestAuthService(t)
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), PasswordHash: hashed(t, "hospital123"), Role: models.RoleHospitalStaff}

	users.EXPECT().GetUserByStaffID(ctx, "HOSP-12345").Return(user, nil)
	tokens.EXPECT().Issue(user).Return("token", nil)

	_, err := service.Login(ctx, models.LoginInput{StaffID: "hosp-12345", Password: "hospital123"})

	require.NoError(t, err)
}

func TestLogin_InvalidStaffIDFormat(t *testing.T) {
	service, _, _ := newTestAuthService(t)

	_, err := service.Login(context.Background(), models.LoginInput{StaffID: "HOSP-123", Password: "x"})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Invalid Staff ID format", err.Error())
}

func TestLogin_WrongPassword(t *testing.T) {
	service, users, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().GetUserByEmail(ctx, "test@rivoo.com").
		Return(&models.User{ID: uuid.New(), PasswordHash: hashed(t, "password123")}, nil)

	_, err := service.Login(ctx, models.LoginInput{Email: "test@rivoo.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_UnknownUser(t *testing.T) {
	service, users, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().GetUserByEmail(ctx, "ghost@rivoo.com").Return(nil, fmt.Errorf("user: %w", ErrNotFound))

	_, err := service.Login(ctx, models.LoginInput{Email: "ghost@rivoo.com", Password: "x"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", err.Error())
}

func TestVerifyStaff(t *testing.T) {
	service, users, _ := newTestAuthService(t)
	ctx := context.Background()
	staff := &models.User{ID: uuid.New(), Role: models.RoleHospitalStaff}
	regular := &models.User{ID: uuid.New(), Role: models.RoleUser}

	users.EXPECT().GetUserByID(ctx, staff.ID).Return(staff, nil)
	users.EXPECT().GetStaffAssignment(ctx, staff.ID).Return(&models.StaffAssignment{
		StaffID:      "HOSP-12345",
		Department:   "Emergency",
		Position:     "ER Lead Physician",
		FacilityName: "Lekki Central Clinic",
	}, nil)
	users.EXPECT().GetUserByID(ctx, regular.ID).Return(regular, nil)

	info, err := service.VerifyStaff(ctx, models.Actor{UserID: staff.ID, Role: models.RoleHospitalStaff})
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "HOSP-12345", info.StaffID)
	assert.Equal(t, "Lekki Central Clinic", info.FacilityName)

	info, err = service.VerifyStaff(ctx, models.Actor{UserID: regular.ID, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestVerifyStaff_UserNotFound(t *testing.T) {
	service, users, _ := newTestAuthService(t)
	ctx := context.Background()
	id := uuid.New()

	users.EXPECT().GetUserByID(ctx, id).Return(nil, fmt.Errorf("user: %w", ErrNotFound))

	_, err := service.VerifyStaff(ctx, models.Actor{UserID: id})

	assert.True(t, errors.Is(err, ErrNotFound))
}
