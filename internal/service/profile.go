package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=profile.go -destination=mocks/mock_profile.go -package=mocks

const profileFieldDefault = "None"

// ProfileService - медицинский профиль пользователя
type ProfileService interface {
	GetMedicalProfile(ctx context.Context, actor models.Actor) (*models.MedicalProfile, error)
	UpsertMedicalProfile(ctx context.Context, actor models.Actor, input models.MedicalProfileInput) (*models.MedicalProfile, error)
}

type profileService struct {
	users  UserRepository
	logger *logrus.Logger
}

func NewProfileService(users UserRepository, logger *logrus.Logger) ProfileService {
	return &profileService{
		users:  users,
		logger: logger,
	}
}

func (s *profileService) GetMedicalProfile(ctx context.Context, actor models.Actor) (*models.MedicalProfile, error) {
	profile, err := s.users.GetMedicalProfile(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, "Profile not found")
		}
		s.logger.WithFields(logrus.Fields{
			"service": "profile",
			"method":  "GetMedicalProfile",
			"user_id": actor.UserID,
		}).WithError(err).Error("Failed to load medical profile")
		return nil, fmt.Errorf("service: could not load medical profile: %w", err)
	}
	return profile, nil
}

// UpsertMedicalProfile создает или обновляет профиль; необязательные поля по умолчанию "None"
func (s *profileService) UpsertMedicalProfile(ctx context.Context, actor models.Actor, input models.MedicalProfileInput) (*models.MedicalProfile, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "profile",
		"method":  "UpsertMedicalProfile",
		"user_id": actor.UserID,
	})

	profile := &models.MedicalProfile{
		UserID:                actor.UserID,
		BloodType:             strings.TrimSpace(input.BloodType),
		Allergies:             orDefault(input.Allergies),
		Conditions:            orDefault(input.Conditions),
		Medications:           orDefault(input.Medications),
		EmergencyContactName:  strings.TrimSpace(input.EmergencyContactName),
		EmergencyContactPhone: strings.TrimSpace(input.EmergencyContactPhone),
	}
	if profile.BloodType == "" || profile.EmergencyContactName == "" || profile.EmergencyContactPhone == "" {
		return nil, newError(ErrValidation, "Blood type and emergency contact are required")
	}

	if err := s.users.UpsertMedicalProfile(ctx, profile); err != nil {
		log.WithError(err).Error("Failed to save medical profile")
		return nil, fmt.Errorf("service: could not save medical profile: %w", err)
	}

	log.WithField("profile_id", profile.ID).Info("Medical profile saved")
	return profile, nil
}

func orDefault(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return profileFieldDefault
	}
	return v
}
