package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status - статус инцидента в жизненном цикле
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusCancelled  Status = "CANCELLED"
)

// Valid проверяет, что статус входит в перечисление
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusResolved, StatusCancelled:
		return true
	}
	return false
}

// Terminal возвращает true для RESOLVED и CANCELLED
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusCancelled
}

// Priority - приоритет инцидента
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Rank используется для сортировки очереди (чем больше, тем важнее)
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	}
	return 0
}

// PriorityFromSeverity переводит оценку тяжести из анализа в приоритет.
// Сравнение точное, с учетом регистра: любое другое значение дает MEDIUM.
func PriorityFromSeverity(severity string) Priority {
	switch p := Priority(severity); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return p
	}
	return PriorityMedium
}

// AlertSource - кто создал оповещение: сам пострадавший или очевидец
type AlertSource string

const (
	AlertSourceUser      AlertSource = "USER"
	AlertSourceSamaritan AlertSource = "SAMARITAN"
)

// Analysis - результат AI-триажа, прикладывается при создании и больше не пересчитывается
type Analysis struct {
	Severity              string    `json:"severity"`
	PossibleConditions    []string  `json:"possibleConditions"`
	RecommendedAction     string    `json:"recommendedAction"`
	EstimatedResponseTime string    `json:"estimatedResponseTime"`
	AnalyzedAt            time.Time `json:"analyzedAt"`
	Symptoms              string    `json:"symptoms,omitempty"`
	AdditionalInfo        *string   `json:"additionalInfo"`
}

type Incident struct {
	ID               uuid.UUID   `json:"id"`
	UserID           uuid.UUID   `json:"userId"`
	PersonName       *string     `json:"personName"`
	ContactNumber    *string     `json:"contactNumber"`
	Status           Status      `json:"status"`
	Priority         Priority    `json:"priority"`
	Latitude         float64     `json:"locationLat"`
	Longitude        float64     `json:"locationLng"`
	Address          *string     `json:"address"`
	Description      *string     `json:"description"`
	Notes            *string     `json:"notes"`
	Analysis         *Analysis   `json:"aiAnalysis"`
	MedicalProfileID *uuid.UUID  `json:"medicalProfileId"`
	FacilityID       *uuid.UUID  `json:"facilityId"`
	AssignedToID     *uuid.UUID  `json:"assignedToId"`
	AlertSource      AlertSource `json:"alertSource"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
	AcceptedAt       *time.Time  `json:"acceptedAt"`
	ResolvedAt       *time.Time  `json:"resolvedAt"`
}

// DisplayID - короткий идентификатор для показа пользователю (LAG-XXXXXXXX)
func (i *Incident) DisplayID() string {
	s := i.ID.String()
	return "LAG-" + strings.ToUpper(s[len(s)-8:])
}

// IncidentView - инцидент вместе со связанными сущностями для ответа клиенту
type IncidentView struct {
	Incident
	Reporter       *UserSummary           `json:"user,omitempty"`
	Facility       *FacilitySummary       `json:"facility"`
	AssignedTo     *StaffSummary          `json:"assignedTo"`
	MedicalProfile *MedicalProfileSummary `json:"medicalProfile,omitempty"`
}

// IncidentFilter - параметры выборки очереди инцидентов
type IncidentFilter struct {
	Status *Status
	UserID *uuid.UUID
}
