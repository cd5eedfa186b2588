package v1

import (
	"github.com/shenikar/emergency_dispatch/internal/models"
)

// SOSRequest DTO для экстренного вызова
// @Description DTO для экстренного вызова по координатам
type SOSRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// AnalysisDTO результат триажа, присланный клиентом
// @Description Результат анализа симптомов
type AnalysisDTO struct {
	Severity              string   `json:"severity"`
	PossibleConditions    []string `json:"possibleConditions"`
	RecommendedAction     string   `json:"recommendedAction"`
	EstimatedResponseTime string   `json:"estimatedResponseTime"`
}

// ReportRequest DTO для отчета о симптомах
// @Description DTO для отчета о симптомах (о себе или о другом человеке)
type ReportRequest struct {
	Mode           string       `json:"mode" validate:"omitempty,oneof=self other"`
	PersonName     *string      `json:"personName" validate:"omitempty,max=255"`
	Location       *string      `json:"location" validate:"omitempty,max=500"`
	ContactNumber  *string      `json:"contactNumber" validate:"omitempty,max=50"`
	Symptoms       string       `json:"symptoms" validate:"required"`
	AdditionalInfo *string      `json:"additionalInfo"`
	Analysis       *AnalysisDTO `json:"analysis"`
	Latitude       *float64     `json:"latitude"`
	Longitude      *float64     `json:"longitude"`
}

// AnalyzeRequest DTO для анализа симптомов без создания инцидента
// @Description DTO для анализа симптомов
type AnalyzeRequest struct {
	Symptoms       string  `json:"symptoms" validate:"required"`
	AdditionalInfo *string `json:"additionalInfo"`
}

// UpdateIncidentRequest DTO для частичного обновления инцидента
// @Description DTO для обновления статуса и заметок инцидента
type UpdateIncidentRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=PENDING ASSIGNED IN_PROGRESS RESOLVED CANCELLED"`
	Notes  *string `json:"notes" validate:"omitempty,max=5000"`
}

// RegisterRequest DTO для регистрации
// @Description DTO для регистрации пользователя
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
}

// LoginRequest DTO для входа по email или табельному номеру
// @Description DTO для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required_without=StaffID"`
	StaffID  string `json:"staffId" validate:"required_without=Email"`
	Password string `json:"password" validate:"required"`
}

// MedicalProfileRequest DTO медицинского профиля
// @Description DTO медицинского профиля
type MedicalProfileRequest struct {
	BloodType             string `json:"bloodType"`
	Allergies             string `json:"allergies"`
	Conditions            string `json:"conditions"`
	Medications           string `json:"medication"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
}

// IncidentResponse DTO инцидента со связанными сущностями
// @Description DTO инцидента
type IncidentResponse struct {
	*models.IncidentView
	DisplayID string `json:"displayId"`
}

// FacilityMatchResponse учреждение с расстоянием до места вызова
// @Description Учреждение с расстоянием в метрах
type FacilityMatchResponse struct {
	*models.Facility
	Distance float64 `json:"distance"`
}

// IncidentCreatedResponse ответ на создание инцидента
// @Description Ответ на SOS или отчет
type IncidentCreatedResponse struct {
	Success    bool                     `json:"success"`
	Incident   *IncidentResponse        `json:"incident"`
	Facilities []*FacilityMatchResponse `json:"facilities"`
	Message    string                   `json:"message"`
}

// IncidentEnvelope ответ с одним инцидентом
// @Description Ответ с одним инцидентом
type IncidentEnvelope struct {
	Success  bool              `json:"success,omitempty"`
	Incident *IncidentResponse `json:"incident"`
}

// IncidentListResponse ответ со списком инцидентов
// @Description Список инцидентов
type IncidentListResponse struct {
	Incidents []*IncidentResponse `json:"incidents"`
	Count     int                 `json:"count"`
}

// AnalysisResponse ответ с результатом триажа
// @Description Результат анализа симптомов
type AnalysisResponse struct {
	Analysis *models.Analysis `json:"analysis"`
}

// AuthResponse ответ на регистрацию и вход
// @Description Пользователь и токен сессии
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// VerifyStaffResponse ответ проверки роли сотрудника
// @Description Признак сотрудника и данные прикрепления
type VerifyStaffResponse struct {
	IsStaff   bool              `json:"isStaff"`
	StaffInfo *models.StaffInfo `json:"staffInfo,omitempty"`
}

// MedicalProfileResponse ответ с медицинским профилем
// @Description Медицинский профиль
type MedicalProfileResponse struct {
	Success bool                   `json:"success,omitempty"`
	Profile *models.MedicalProfile `json:"profile"`
}

// StatsResponse DTO для ответа со статистикой
// @Description Количество инцидентов по статусам за окно статистики
type StatsResponse struct {
	WindowMinutes int            `json:"window_minutes"`
	ByStatus      map[string]int `json:"by_status"`
	Total         int            `json:"total"`
}

// RefreshResponse ответ на перезагрузку справочника
// @Description Количество учреждений после перезагрузки
type RefreshResponse struct {
	Facilities int `json:"facilities"`
}

// ErrorResponse DTO ошибки
// @Description Ошибка
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
