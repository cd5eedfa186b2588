package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch/internal/config"
	"github.com/shenikar/emergency_dispatch/internal/events"
	"github.com/shenikar/emergency_dispatch/internal/geo"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/shenikar/emergency_dispatch/internal/triage"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

const (
	sosFacilityLimit    = 5
	reportFacilityLimit = 3

	sosDescription  = "Emergency SOS Alert"
	fallbackAddress = "Location not provided"
)

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	GetView(ctx context.Context, id uuid.UUID) (*models.IncidentView, error)
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.IncidentView, error)
	Transition(ctx context.Context, id uuid.UUID, t models.Transition) (*models.Incident, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (*models.Incident, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Incident, error)
	CountByStatusSince(ctx context.Context, since time.Time) (map[models.Status]int, error)

	// GetIncidentFromCache возвращает карточку (nil при промахе) и текущее поколение кеша инцидента
	GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.IncidentView, int64, error)
	// SetIncidentCache пишет карточку, только если поколение не изменилось после чтения.
	// false означает, что инцидент успели изменить и запись пропущена.
	SetIncidentCache(ctx context.Context, incident *models.IncidentView, generation int64) (bool, error)
	// InvalidateIncidentCache удаляет карточку и увеличивает поколение
	InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error
}

// SymptomAnalyzer - AI-триаж симптомов
type SymptomAnalyzer interface {
	Analyze(ctx context.Context, symptoms string, additionalInfo *string) (*models.Analysis, error)
}

// AddressResolver - обратное геокодирование координат в адрес
type AddressResolver interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// IncidentService определяет контракт для бизнес-логики управления инцидентами
type IncidentService interface {
	CreateSOS(ctx context.Context, actor models.Actor, point geo.Point) (*models.IncidentCreated, error)
	ReportEmergency(ctx context.Context, actor models.Actor, input models.ReportInput) (*models.IncidentCreated, error)
	AnalyzeSymptoms(ctx context.Context, symptoms string, additionalInfo *string) *models.Analysis
	ListIncidents(ctx context.Context, actor models.Actor, status *models.Status) ([]*models.IncidentView, error)
	ListUserIncidents(ctx context.Context, actor models.Actor) ([]*models.IncidentView, error)
	GetIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IncidentView, error)
	UpdateIncident(ctx context.Context, actor models.Actor, id uuid.UUID, update models.IncidentUpdate) (*models.IncidentView, error)
	AcceptIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IncidentView, error)
	DispatchIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IncidentView, error)
	GetStats(ctx context.Context) (map[models.Status]int, error)
	NotifyStalePending(ctx context.Context) (int, error)
}

type incidentService struct {
	repo      IncidentRepository
	users     UserRepository
	directory *FacilityDirectory
	analyzer  SymptomAnalyzer
	resolver  AddressResolver
	publisher events.Publisher
	logger    *logrus.Logger
	cfg       *config.Config
	now       func() time.Time
}

func NewIncidentService(
	repo IncidentRepository,
	users UserRepository,
	directory *FacilityDirectory,
	analyzer SymptomAnalyzer,
	resolver AddressResolver,
	publisher events.Publisher,
	logger *logrus.Logger,
	cfg *config.Config,
) IncidentService {
	return &incidentService{
		repo:      repo,
		users:     users,
		directory: directory,
		analyzer:  analyzer,
		resolver:  resolver,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// CreateSOS создает CRITICAL инцидент по координатам и привязывает его к ближайшему учреждению
func (s *incidentService) CreateSOS(ctx context.Context, actor models.Actor, point geo.Point) (*models.IncidentCreated, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateSOS",
		"user_id": actor.UserID,
	})
	log.Info("Attempting to create SOS incident")

	if !actor.Authenticated() {
		return nil, newError(ErrUnauthorized, "Unauthorized")
	}
	if !point.Valid() {
		return nil, newError(ErrValidation, "Invalid location data")
	}

	matches := geo.Rank(point, s.directory.All())
	description := sosDescription
	incident := &models.Incident{
		UserID:      actor.UserID,
		Status:      models.StatusPending,
		Priority:    models.PriorityCritical,
		Latitude:    point.Latitude,
		Longitude:   point.Longitude,
		Description: &description,
		AlertSource: models.AlertSourceUser,
	}
	nearest, found := geo.Nearest(matches)
	if found {
		incident.FacilityID = &nearest.Facility.ID
	}

	view, err := s.create(ctx, log, incident)
	if err != nil {
		return nil, err
	}

	message := "SOS alert sent. No medical facility is currently available nearby; staff will be alerted as soon as one is."
	if found {
		message = fmt.Sprintf("SOS alert sent. %s has been notified.", nearest.Facility.Name)
	}

	return &models.IncidentCreated{
		Incident:   view,
		Facilities: geo.Top(matches, sosFacilityLimit),
		Message:    message,
	}, nil
}

// ReportEmergency создает инцидент по описанию симптомов, приоритет берется из анализа
func (s *incidentService) ReportEmergency(ctx context.Context, actor models.Actor, input models.ReportInput) (*models.IncidentCreated, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ReportEmergency",
		"user_id": actor.UserID,
		"mode":    input.Mode,
	})
	log.Info("Attempting to create emergency report")

	if !actor.Authenticated() {
		return nil, newError(ErrUnauthorized, "Unauthorized")
	}
	symptoms := strings.TrimSpace(input.Symptoms)
	if symptoms == "" {
		return nil, newError(ErrValidation, "Symptoms are required")
	}

	point := geo.Point{Latitude: s.cfg.DefaultLatitude, Longitude: s.cfg.DefaultLongitude}
	hasCoordinates := input.Latitude != nil && input.Longitude != nil
	if hasCoordinates {
		point = geo.Point{Latitude: *input.Latitude, Longitude: *input.Longitude}
		if !point.Valid() {
			return nil, newError(ErrValidation, "Invalid location data")
		}
	}

	analysis := input.Analysis
	if analysis == nil {
		analysis = s.AnalyzeSymptoms(ctx, symptoms, input.AdditionalInfo)
	}
	analysis.AnalyzedAt = s.now().UTC()
	analysis.Symptoms = symptoms
	analysis.AdditionalInfo = input.AdditionalInfo

	address := s.resolveAddress(ctx, log, input.Location, point, hasCoordinates)

	incident := &models.Incident{
		UserID:        actor.UserID,
		ContactNumber: nonEmpty(input.ContactNumber),
		Status:        models.StatusPending,
		Priority:      models.PriorityFromSeverity(analysis.Severity),
		Latitude:      point.Latitude,
		Longitude:     point.Longitude,
		Address:       &address,
		Description:   &symptoms,
		Notes:         nonEmpty(input.AdditionalInfo),
		Analysis:      analysis,
		AlertSource:   models.AlertSourceUser,
	}
	if input.Mode == "other" {
		incident.PersonName = nonEmpty(input.PersonName)
		incident.AlertSource = models.AlertSourceSamaritan
	}

	profile, err := s.users.GetMedicalProfile(ctx, actor.UserID)
	switch {
	case err == nil:
		incident.MedicalProfileID = &profile.ID
	case errors.Is(err, ErrNotFound):
	default:
		log.WithError(err).Error("Failed to load medical profile")
		return nil, fmt.Errorf("service: could not load medical profile: %w", err)
	}

	matches := geo.Rank(point, s.directory.All())
	nearest, found := geo.Nearest(matches)
	if found {
		incident.FacilityID = &nearest.Facility.ID
	}

	view, err := s.create(ctx, log, incident)
	if err != nil {
		return nil, err
	}

	message := "Emergency report submitted. No medical facility is currently available nearby."
	if found {
		message = fmt.Sprintf("Emergency report submitted. %s has been notified.", nearest.Facility.Name)
	}

	return &models.IncidentCreated{
		Incident:   view,
		Facilities: geo.Top(matches, reportFacilityLimit),
		Message:    message,
	}, nil
}

// AnalyzeSymptoms запускает AI-триаж; при любой ошибке возвращается резервный анализ
func (s *incidentService) AnalyzeSymptoms(ctx context.Context, symptoms string, additionalInfo *string) *models.Analysis {
	analysis, err := s.analyzer.Analyze(ctx, symptoms, additionalInfo)
	if err != nil || analysis == nil {
		s.logger.WithFields(logrus.Fields{
			"service": "incident",
			"method":  "AnalyzeSymptoms",
		}).WithError(err).Warn("Symptom analysis failed, using fallback analysis")
		return triage.FallbackAnalysis()
	}
	return analysis
}

// ListIncidents возвращает очередь инцидентов для персонала
func (s *incidentService) ListIncidents(ctx context.Context, actor models.Actor, status *models.Status) ([]*models.IncidentView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"user_id": actor.UserID,
	})
	log.Info("Listing incidents")

	if !actor.IsStaff() {
		return nil, newError(ErrForbidden, "Only hospital staff can view the incident queue")
	}
	if status != nil && !status.Valid() {
		return nil, newError(ErrValidation, "Invalid status %q", *status)
	}

	incidents, err := s.repo.List(ctx, models.IncidentFilter{Status: status})
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

// ListUserIncidents возвращает инциденты, созданные текущим пользователем
func (s *incidentService) ListUserIncidents(ctx context.Context, actor models.Actor) ([]*models.IncidentView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListUserIncidents",
		"user_id": actor.UserID,
	})

	if !actor.Authenticated() {
		return nil, newError(ErrUnauthorized, "Unauthorized")
	}

	userID := actor.UserID
	incidents, err := s.repo.List(ctx, models.IncidentFilter{UserID: &userID})
	if err != nil {
		log.WithError(err).Error("Failed to list user incidents from repository")
		return nil, fmt.Errorf("service: could not list user incidents: %w", err)
	}
	return incidents, nil
}

// GetIncident получает инцидент по ID (сначала из кеша)
func (s *incidentService) GetIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IncidentView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})
	log.Info("Fetching incident by ID")

	view, err := s.loadView(ctx, log, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && view.UserID != actor.UserID {
		return nil, newError(ErrForbidden, "You do not have access to this incident")
	}
	return view, nil
}

// UpdateIncident меняет статус и/или заметки. Смена статуса проходит через жизненный цикл.
func (s *incidentService) UpdateIncident(ctx context.Context, actor models.Actor, id uuid.UUID, update models.IncidentUpdate) (*models.IncidentView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncident",
		"incident_id": id,
	})
	log.Info("Attempting to update incident")

	if update.Status == nil && update.Notes == nil {
		return nil, newError(ErrValidation, "Nothing to update")
	}

	if update.Status != nil {
		action, err := ActionForStatus(*update.Status)
		if err != nil {
			return nil, err
		}
		return s.apply(ctx, actor, id, action, update.Notes)
	}

	incident, err := s.getIncident(ctx, log, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && incident.UserID != actor.UserID {
		return nil, newError(ErrForbidden, "You do not have access to this incident")
	}

	if _, err := s.repo.UpdateNotes(ctx, id, update.Notes); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, "Incident not found")
		}
		log.WithError(err).Error("Failed to update incident notes in repository")
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}
	s.invalidate(ctx, log, id)

	log.Info("Incident notes updated successfully")
	return s.freshView(ctx, log, id)
}

// AcceptIncident - PENDING -> ASSIGNED, инцидент закрепляется за учреждением сотрудника
func (s *incidentService) AcceptIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IncidentView, error) {
	return s.apply(ctx, actor, id, ActionAccept, nil)
}

// DispatchIncident - ASSIGNED -> IN_PROGRESS (скорая выехала)
func (s *incidentService) DispatchIncident(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.IncidentView, error) {
	return s.apply(ctx, actor, id, ActionDispatch, nil)
}

// GetStats - количество инцидентов по статусам, созданных за окно STATS_TIME_WINDOW_MINUTES
func (s *incidentService) GetStats(ctx context.Context) (map[models.Status]int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "GetStats",
		"window":  s.cfg.StatsTimeWindowMinutes,
	})

	since := s.now().Add(-time.Duration(s.cfg.StatsTimeWindowMinutes) * time.Minute)
	counts, err := s.repo.CountByStatusSince(ctx, since)
	if err != nil {
		log.WithError(err).Error("Failed to count incidents")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}
	return counts, nil
}

// NotifyStalePending повторно оповещает о PENDING инцидентах, которые никто не принял
func (s *incidentService) NotifyStalePending(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "NotifyStalePending",
	})

	now := s.now()
	stale, err := s.repo.ListPendingOlderThan(ctx, now.Add(-s.cfg.StalePendingAfter))
	if err != nil {
		log.WithError(err).Error("Failed to list stale incidents")
		return 0, fmt.Errorf("service: could not list stale incidents: %w", err)
	}

	for _, incident := range stale {
		s.publish(ctx, log, events.NewIncidentEvent(events.EventIncidentStale, incident, now))
	}
	if len(stale) > 0 {
		log.WithField("count", len(stale)).Warn("Stale pending incidents re-announced")
	}
	return len(stale), nil
}

// apply выполняет действие жизненного цикла. Итоговую проверку статуса делает
// условное обновление в хранилище, поэтому из двух одновременных запросов проходит один.
func (s *incidentService) apply(ctx context.Context, actor models.Actor, id uuid.UUID, action Action, notes *string) (*models.IncidentView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "apply",
		"action":      action,
		"incident_id": id,
		"user_id":     actor.UserID,
	})
	log.Info("Attempting incident transition")

	assignment, err := s.authorize(ctx, log, actor, action)
	if err != nil {
		return nil, err
	}

	incident, err := s.getIncident(ctx, log, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil && incident.UserID != actor.UserID {
		return nil, newError(ErrForbidden, "Only the reporter or hospital staff can cancel incidents")
	}

	next, err := NextStatus(action, incident.Status)
	if err != nil {
		log.WithField("status", incident.Status).Info("Transition rejected")
		return nil, err
	}

	t := models.Transition{
		From:  AllowedFrom(action),
		To:    next,
		Notes: notes,
		At:    s.now().UTC(),
	}
	switch action {
	case ActionAccept:
		t.FacilityID = &assignment.FacilityID
		t.AssignedToID = &assignment.ID
		t.SetAcceptedAt = true
	case ActionResolve:
		t.SetResolvedAt = true
	}

	updated, err := s.repo.Transition(ctx, id, t)
	if err != nil {
		var mismatch *StatusMismatchError
		switch {
		case errors.As(err, &mismatch):
			log.WithField("status", mismatch.Current).Info("Transition lost to a concurrent update")
			return nil, rejectTransition(action, mismatch.Current)
		case errors.Is(err, ErrNotFound):
			return nil, newError(ErrNotFound, "Incident not found")
		}
		log.WithError(err).Error("Failed to update incident status in repository")
		return nil, fmt.Errorf("service: could not update incident status: %w", err)
	}

	s.invalidate(ctx, log, id)
	s.publish(ctx, log, events.NewIncidentEvent(events.EventStatusChanged, updated, t.At))

	log.WithField("status", updated.Status).Info("Incident transition applied")
	return s.freshView(ctx, log, id)
}

// authorize проверяет право на действие. Для персонала возвращает запись о прикреплении
// к учреждению; для отмены владельцем возвращает nil без ошибки.
func (s *incidentService) authorize(ctx context.Context, log *logrus.Entry, actor models.Actor, action Action) (*models.StaffAssignment, error) {
	if !actor.Authenticated() {
		return nil, newError(ErrUnauthorized, "Unauthorized")
	}

	if !actor.IsStaff() {
		switch action {
		case ActionCancel:
			return nil, nil
		case ActionAccept:
			return nil, newError(ErrForbidden, "Only hospital staff can accept incidents")
		case ActionDispatch:
			return nil, newError(ErrForbidden, "Only hospital staff can dispatch ambulances")
		default:
			return nil, newError(ErrForbidden, "Only hospital staff can resolve incidents")
		}
	}

	assignment, err := s.users.GetStaffAssignment(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrForbidden, "Staff member not associated with any facility")
		}
		log.WithError(err).Error("Failed to load staff assignment")
		return nil, fmt.Errorf("service: could not load staff assignment: %w", err)
	}
	return assignment, nil
}

func (s *incidentService) create(ctx context.Context, log *logrus.Entry, incident *models.Incident) (*models.IncidentView, error) {
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w", err)
	}

	log = log.WithFields(logrus.Fields{
		"incident_id": incident.ID,
		"priority":    incident.Priority,
		"facility_id": incident.FacilityID,
	})
	log.Info("Incident created successfully")

	s.publish(ctx, log, events.NewIncidentEvent(events.EventIncidentCreated, incident, incident.CreatedAt))
	return s.freshView(ctx, log, incident.ID)
}

func (s *incidentService) getIncident(ctx context.Context, log *logrus.Entry, id uuid.UUID) (*models.Incident, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, "Incident not found")
		}
		log.WithError(err).Error("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// loadView читает карточку инцидента через кеш
func (s *incidentService) loadView(ctx context.Context, log *logrus.Entry, id uuid.UUID) (*models.IncidentView, error) {
	cached, generation, err := s.repo.GetIncidentFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read incident from cache")
		return s.freshView(ctx, log, id)
	}
	if cached != nil {
		log.Debug("Incident served from cache")
		return cached, nil
	}

	view, err := s.freshView(ctx, log, id)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.SetIncidentCache(ctx, view, generation)
	if err != nil {
		log.WithError(err).Warn("Failed to cache incident")
	} else if !stored {
		log.Debug("Incident changed while loading, cache write skipped")
	}
	return view, nil
}

func (s *incidentService) freshView(ctx context.Context, log *logrus.Entry, id uuid.UUID) (*models.IncidentView, error) {
	view, err := s.repo.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, "Incident not found")
		}
		log.WithError(err).Error("Failed to get incident view in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return view, nil
}

func (s *incidentService) invalidate(ctx context.Context, log *logrus.Entry, id uuid.UUID) {
	if err := s.repo.InvalidateIncidentCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate incident cache")
	}
}

// publish не влияет на результат операции: изменение уже зафиксировано
func (s *incidentService) publish(ctx context.Context, log *logrus.Entry, event events.IncidentEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("event_type", event.Type).Warn("Failed to publish incident event")
	}
}

func (s *incidentService) resolveAddress(ctx context.Context, log *logrus.Entry, location *string, point geo.Point, hasCoordinates bool) string {
	if location != nil && strings.TrimSpace(*location) != "" {
		return strings.TrimSpace(*location)
	}
	if !hasCoordinates {
		return fallbackAddress
	}

	address, err := s.resolver.ReverseGeocode(ctx, point.Latitude, point.Longitude)
	if err != nil {
		log.WithError(err).Warn("Reverse geocoding failed")
		return fallbackAddress
	}
	if address == "" {
		return fallbackAddress
	}
	return address
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
