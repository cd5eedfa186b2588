package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch/internal/config"
	"github.com/shenikar/emergency_dispatch/internal/events"
	"github.com/shenikar/emergency_dispatch/internal/geo"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/shenikar/emergency_dispatch/internal/service"
	"github.com/sirupsen/logrus"
)

// DirectoryRefresher - справочник учреждений, который можно перечитать по запросу оператора
type DirectoryRefresher interface {
	Refresh(ctx context.Context) error
	Len() int
}

// Services - зависимости обработчиков
type Services struct {
	Incidents service.IncidentService
	Auth      service.AuthService
	Profiles  service.ProfileService
	Directory DirectoryRefresher
}

type Handler struct {
	services   Services
	tokens     TokenParser
	subscriber events.Subscriber
	logger     *logrus.Logger
	validate   *validator.Validate
	cfg        *config.Config

	// streams отменяется при остановке сервера и закрывает все websocket-потоки
	streams     context.Context
	stopStreams context.CancelFunc
}

func NewHandler(services Services, tokens TokenParser, subscriber events.Subscriber, logger *logrus.Logger, cfg *config.Config) *Handler {
	streams, stopStreams := context.WithCancel(context.Background())
	return &Handler{
		services:    services,
		tokens:      tokens,
		subscriber:  subscriber,
		logger:      logger,
		validate:    validator.New(),
		cfg:         cfg,
		streams:     streams,
		stopStreams: stopStreams,
	}
}

// CloseStreams закрывает открытые websocket-потоки. http.Server.Shutdown не ждет
// hijacked-соединения, поэтому вызывается через RegisterOnShutdown.
func (h *Handler) CloseStreams() {
	h.stopStreams()
}

// bind разбирает тело запроса и проверяет его валидатором. При ошибке ответ уже отправлен.
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		badRequest(c, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		badRequest(c, err.Error())
		return false
	}
	return true
}

func parseIncidentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid incident ID")
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Send SOS alert
// @Description Create a CRITICAL incident at the caller's coordinates and notify the nearest facility.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SOSRequest true "Caller coordinates"
// @Success 201 {object} IncidentCreatedResponse
// @Failure 400 {object} ErrorResponse "Missing location data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/sos [post]
func (h *Handler) createSOS(c *gin.Context) {
	var input SOSRequest
	log := h.logger.WithField("method", "createSOS")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		badRequest(c, "invalid request body")
		return
	}
	if input.Latitude == nil || input.Longitude == nil {
		badRequest(c, "Missing location data")
		return
	}

	point := geo.Point{Latitude: *input.Latitude, Longitude: *input.Longitude}
	created, err := h.services.Incidents.CreateSOS(c.Request.Context(), currentActor(c), point)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentCreatedResponse(created))
}

// @Summary Submit emergency report
// @Description Report symptoms for yourself or another person. Priority is derived from the triage severity.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ReportRequest true "Emergency report"
// @Success 201 {object} IncidentCreatedResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/report [post]
func (h *Handler) createReport(c *gin.Context) {
	var input ReportRequest
	log := h.logger.WithField("method", "createReport")

	if !h.bind(c, log, &input) {
		return
	}

	created, err := h.services.Incidents.ReportEmergency(c.Request.Context(), currentActor(c), DTOToReportInput(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentCreatedResponse(created))
}

// @Summary Analyze symptoms
// @Description Run symptom triage without creating an incident. Falls back to a default assessment on failure.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AnalyzeRequest true "Symptoms"
// @Success 200 {object} AnalysisResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /incidents/analyze [post]
func (h *Handler) analyzeSymptoms(c *gin.Context) {
	var input AnalyzeRequest
	log := h.logger.WithField("method", "analyzeSymptoms")

	if !h.bind(c, log, &input) {
		return
	}

	analysis := h.services.Incidents.AnalyzeSymptoms(c.Request.Context(), input.Symptoms, input.AdditionalInfo)
	c.JSON(http.StatusOK, AnalysisResponse{Analysis: analysis})
}

// @Summary Get incident queue
// @Description Staff-only list of incidents ordered by priority, newest first within a priority.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(PENDING, ASSIGNED, IN_PROGRESS, RESOLVED, CANCELLED)
// @Success 200 {object} IncidentListResponse
// @Failure 400 {object} ErrorResponse "Invalid status filter"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	var status *models.Status
	if raw := c.Query("status"); raw != "" {
		s := models.Status(raw)
		if !s.Valid() {
			badRequest(c, "Invalid status filter")
			return
		}
		status = &s
	}

	incidents, err := h.services.Incidents.ListIncidents(c.Request.Context(), currentActor(c), status)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, IncidentListResponse{
		Incidents: ModelsToIncidentResponses(incidents),
		Count:     len(incidents),
	})
}

// @Summary Get incident by ID
// @Description Get a single incident with reporter, facility, assignment and medical profile. Owner or staff only.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentEnvelope
// @Failure 400 {object} ErrorResponse "Invalid incident ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.services.Incidents.GetIncident(c.Request.Context(), currentActor(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, IncidentEnvelope{Incident: ModelToIncidentResponse(incident)})
}

// @Summary Update incident
// @Description Change incident status through the lifecycle rules and/or update notes.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param request body UpdateIncidentRequest true "Status and notes"
// @Success 200 {object} IncidentEnvelope
// @Failure 400 {object} ErrorResponse "Invalid request or transition not allowed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id} [patch]
func (h *Handler) updateIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateIncident").WithField("id", id)

	var input UpdateIncidentRequest
	if !h.bind(c, log, &input) {
		return
	}

	incident, err := h.services.Incidents.UpdateIncident(c.Request.Context(), currentActor(c), id, DTOToIncidentUpdate(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, IncidentEnvelope{Success: true, Incident: ModelToIncidentResponse(incident)})
}

// @Summary Accept incident
// @Description Staff accepts a PENDING incident on behalf of their facility.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentEnvelope
// @Failure 400 {object} ErrorResponse "Incident is not pending"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id}/accept [post]
func (h *Handler) acceptIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "acceptIncident").WithField("id", id)

	incident, err := h.services.Incidents.AcceptIncident(c.Request.Context(), currentActor(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, IncidentEnvelope{Success: true, Incident: ModelToIncidentResponse(incident)})
}

// @Summary Dispatch ambulance
// @Description Staff moves an ASSIGNED incident to IN_PROGRESS.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentEnvelope
// @Failure 400 {object} ErrorResponse "Incident must be accepted first"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /incidents/{id}/accept [patch]
func (h *Handler) dispatchIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "dispatchIncident").WithField("id", id)

	incident, err := h.services.Incidents.DispatchIncident(c.Request.Context(), currentActor(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, IncidentEnvelope{Success: true, Incident: ModelToIncidentResponse(incident)})
}
