package models

import (
	"time"

	"github.com/google/uuid"
)

// Role - одна из двух фиксированных ролей
type Role string

const (
	RoleUser          Role = "USER"
	RoleHospitalStaff Role = "HOSPITAL_STAFF"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// StaffAssignment связывает сотрудника ровно с одним учреждением (таблица facility_users).
// Incident.AssignedToID ссылается на эту запись, а не на пользователя.
type StaffAssignment struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	FacilityID   uuid.UUID `json:"facilityId"`
	FacilityName string    `json:"facilityName"`
	StaffID      string    `json:"staffId"`
	Role         string    `json:"role"`
	Department   string    `json:"department"`
	Position     string    `json:"position"`
}

type StaffSummary struct {
	ID         uuid.UUID        `json:"id"`
	StaffID    string           `json:"staffId"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	User       *UserSummary     `json:"user,omitempty"`
	Facility   *FacilitySummary `json:"facility,omitempty"`
}

type MedicalProfile struct {
	ID                    uuid.UUID `json:"id"`
	UserID                uuid.UUID `json:"userId"`
	BloodType             string    `json:"bloodType"`
	Allergies             string    `json:"allergies"`
	Conditions            string    `json:"conditions"`
	Medications           string    `json:"medications"`
	EmergencyContactName  string    `json:"emergencyContactName"`
	EmergencyContactPhone string    `json:"emergencyContactPhone"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// MedicalProfileSummary - проекция профиля, которую видит персонал в карточке инцидента
type MedicalProfileSummary struct {
	BloodType             string `json:"bloodType"`
	Allergies             string `json:"allergies"`
	Conditions            string `json:"conditions"`
	Medications           string `json:"medications"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
}
