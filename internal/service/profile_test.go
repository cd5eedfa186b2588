package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/shenikar/emergency_dispatch/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestProfileService(t *testing.T) (ProfileService, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewProfileService(users, logger), users
}

func TestUpsertMedicalProfile_DefaultsOptionalFields(t *testing.T) {
	service, users := newTestProfileService(t)
	ctx := context.Background()
	actor := userActor()

	users.EXPECT().UpsertMedicalProfile(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, profile *models.MedicalProfile) error {
			profile.ID = uuid.New()
			return nil
		})

	profile, err := service.UpsertMedicalProfile(ctx, actor, models.MedicalProfileInput{
		BloodType:             "O+",
		Allergies:             "Penicillin",
		EmergencyContactName:  "Jane Doe",
		EmergencyContactPhone: "+234-803-999-8888",
	})

	require.NoError(t, err)
	assert.Equal(t, actor.UserID, profile.UserID)
	assert.Equal(t, "Penicillin", profile.Allergies)
	assert.Equal(t, "None", profile.Conditions)
	assert.Equal(t, "None", profile.Medications)
}

func TestUpsertMedicalProfile_RequiredFields(t *testing.T) {
	service, _ := newTestProfileService(t)

	_, err := service.UpsertMedicalProfile(context.Background(), userActor(), models.MedicalProfileInput{
		BloodType:            "A-",
		EmergencyContactName: "Jane Doe",
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Blood type and emergency contact are required", err.Error())
}

func TestGetMedicalProfile_NotFound(t *testing.T) {
	service, users := newTestProfileService(t)
	ctx := context.Background()
	actor := userActor()

	users.EXPECT().GetMedicalProfile(ctx, actor.UserID).Return(nil, fmt.Errorf("profile: %w", ErrNotFound))

	_, err := service.GetMedicalProfile(ctx, actor)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Profile not found", err.Error())
}
