package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportInput - данные отчета о симптомах
type ReportInput struct {
	Mode           string
	PersonName     *string
	Location       *string
	ContactNumber  *string
	Symptoms       string
	AdditionalInfo *string
	Analysis       *Analysis
	Latitude       *float64
	Longitude      *float64
}

// IncidentUpdate - частичное обновление инцидента (PATCH)
type IncidentUpdate struct {
	Status *Status
	Notes  *string
}

// IncidentCreated - результат создания инцидента (SOS или отчет)
type IncidentCreated struct {
	Incident   *IncidentView
	Facilities []FacilityMatch
	Message    string
}

// Transition описывает условное обновление статуса: запись меняется,
// только если текущий статус входит в From.
type Transition struct {
	From          []Status
	To            Status
	FacilityID    *uuid.UUID
	AssignedToID  *uuid.UUID
	SetAcceptedAt bool
	SetResolvedAt bool
	Notes         *string
	At            time.Time
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput - вход по email или по табельному номеру сотрудника
type LoginInput struct {
	Email    string
	StaffID  string
	Password string
}

type AuthResult struct {
	User  *User
	Token string
}

type StaffInfo struct {
	StaffID      string `json:"staffId"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	FacilityName string `json:"facilityName"`
}

type MedicalProfileInput struct {
	BloodType             string
	Allergies             string
	Conditions            string
	Medications           string
	EmergencyContactName  string
	EmergencyContactPhone string
}
