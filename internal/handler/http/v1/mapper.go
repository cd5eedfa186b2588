package v1

import (
	"github.com/shenikar/emergency_dispatch/internal/models"
)

// DTOToReportInput преобразует DTO отчета во входные данные сервиса
func DTOToReportInput(dto ReportRequest) models.ReportInput {
	input := models.ReportInput{
		Mode:           dto.Mode,
		PersonName:     dto.PersonName,
		Location:       dto.Location,
		ContactNumber:  dto.ContactNumber,
		Symptoms:       dto.Symptoms,
		AdditionalInfo: dto.AdditionalInfo,
		Latitude:       dto.Latitude,
		Longitude:      dto.Longitude,
	}
	if dto.Analysis != nil {
		conditions := dto.Analysis.PossibleConditions
		if conditions == nil {
			conditions = []string{}
		}
		input.Analysis = &models.Analysis{
			Severity:              dto.Analysis.Severity,
			PossibleConditions:    conditions,
			RecommendedAction:     dto.Analysis.RecommendedAction,
			EstimatedResponseTime: dto.Analysis.EstimatedResponseTime,
		}
	}
	return input
}

// DTOToIncidentUpdate преобразует DTO обновления. Статус уже проверен валидатором.
func DTOToIncidentUpdate(dto UpdateIncidentRequest) models.IncidentUpdate {
	update := models.IncidentUpdate{Notes: dto.Notes}
	if dto.Status != nil {
		status := models.Status(*dto.Status)
		update.Status = &status
	}
	return update
}

func DTOToMedicalProfileInput(dto MedicalProfileRequest) models.MedicalProfileInput {
	return models.MedicalProfileInput{
		BloodType:             dto.BloodType,
		Allergies:             dto.Allergies,
		Conditions:            dto.Conditions,
		Medications:           dto.Medications,
		EmergencyContactName:  dto.EmergencyContactName,
		EmergencyContactPhone: dto.EmergencyContactPhone,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(view *models.IncidentView) *IncidentResponse {
	if view == nil {
		return nil
	}
	return &IncidentResponse{
		IncidentView: view,
		DisplayID:    view.DisplayID(),
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(views []*models.IncidentView) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(views))
	for i, view := range views {
		responses[i] = ModelToIncidentResponse(view)
	}
	return responses
}

func ModelsToFacilityMatchResponses(matches []models.FacilityMatch) []*FacilityMatchResponse {
	responses := make([]*FacilityMatchResponse, len(matches))
	for i, m := range matches {
		responses[i] = &FacilityMatchResponse{
			Facility: m.Facility,
			Distance: m.DistanceMeters,
		}
	}
	return responses
}

func ModelToIncidentCreatedResponse(created *models.IncidentCreated) *IncidentCreatedResponse {
	return &IncidentCreatedResponse{
		Success:    true,
		Incident:   ModelToIncidentResponse(created.Incident),
		Facilities: ModelsToFacilityMatchResponses(created.Facilities),
		Message:    created.Message,
	}
}

// ModelToStatsResponse сворачивает счетчики по статусам; отсутствующие статусы дают 0
func ModelToStatsResponse(counts map[models.Status]int, windowMinutes int) *StatsResponse {
	resp := &StatsResponse{
		WindowMinutes: windowMinutes,
		ByStatus:      make(map[string]int, 5),
	}
	for _, status := range []models.Status{
		models.StatusPending,
		models.StatusAssigned,
		models.StatusInProgress,
		models.StatusResolved,
		models.StatusCancelled,
	} {
		resp.ByStatus[string(status)] = counts[status]
		resp.Total += counts[status]
	}
	return resp
}
