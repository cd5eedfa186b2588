package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/shenikar/emergency_dispatch/internal/service"
)

const (
	incidentCacheTTL = 5 * time.Minute
	// Поколение переживает карточку: запоздалая запись не должна пройти после истечения ключа
	incidentGenerationTTL = 24 * time.Hour
)

// KEYS[1] - карточка, KEYS[2] - поколение; ARGV: ожидаемое поколение, значение, TTL в мс
var setIfGenerationScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if current == false then
	current = '0'
end
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

const incidentColumns = `
	i.id,
	i.user_id,
	i.person_name,
	i.contact_number,
	i.status,
	i.priority,
	i.location_lat,
	i.location_lng,
	i.address,
	i.description,
	i.notes,
	i.ai_analysis,
	i.medical_profile_id,
	i.facility_id,
	i.assigned_to_id,
	i.alert_source,
	i.created_at,
	i.updated_at,
	i.accepted_at,
	i.resolved_at`

// Карточка инцидента: автор, учреждение, назначенный сотрудник и проекция медпрофиля
const incidentViewQuery = `
	SELECT` + incidentColumns + `,
		u.id, u.name, u.email,
		f.id, f.name, f.address, f.city, f.phone, f.latitude, f.longitude,
		fu.id, fu.staff_id, fu.department, fu.position,
		su.id, su.name, su.email,
		mp.blood_type, mp.allergies, mp.conditions, mp.medications,
		mp.emergency_contact_name, mp.emergency_contact_phone
	FROM incidents i
	JOIN users u ON u.id = i.user_id
	LEFT JOIN facilities f ON f.id = i.facility_id
	LEFT JOIN facility_users fu ON fu.id = i.assigned_to_id
	LEFT JOIN users su ON su.id = fu.user_id
	LEFT JOIN medical_profiles mp ON mp.id = i.medical_profile_id`

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	analysis, err := marshalAnalysis(incident.Analysis)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO incidents (
			user_id, person_name, contact_number, status, priority,
			location_lat, location_lng, address, description, notes,
			ai_analysis, medical_profile_id, facility_id, alert_source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		incident.UserID,
		incident.PersonName,
		incident.ContactNumber,
		incident.Status,
		incident.Priority,
		incident.Latitude,
		incident.Longitude,
		incident.Address,
		incident.Description,
		incident.Notes,
		analysis,
		incident.MedicalProfileID,
		incident.FacilityID,
		incident.AlertSource,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT` + incidentColumns + ` FROM incidents i WHERE i.id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s not found: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}
	return incident, nil
}

// GetView возвращает инцидент вместе со связанными сущностями
func (r *IncidentRepository) GetView(ctx context.Context, id uuid.UUID) (*models.IncidentView, error) {
	view, err := scanIncidentView(r.db.QueryRow(ctx, incidentViewQuery+` WHERE i.id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s not found: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident view: %w", err)
	}
	return view, nil
}

// List возвращает очередь инцидентов. Очередь персонала упорядочена по приоритету,
// список пользователя - по времени создания.
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.IncidentView, error) {
	var status *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}

	order := `
		ORDER BY
			CASE i.priority
				WHEN 'CRITICAL' THEN 3
				WHEN 'HIGH' THEN 2
				WHEN 'MEDIUM' THEN 1
				ELSE 0
			END DESC,
			i.created_at DESC`
	if filter.UserID != nil {
		order = ` ORDER BY i.created_at DESC`
	}

	query := incidentViewQuery + `
		WHERE ($1::text IS NULL OR i.status = $1)
			AND ($2::uuid IS NULL OR i.user_id = $2)` + order + `;`

	rows, err := r.db.Query(ctx, query, status, filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.IncidentView, 0)
	for rows.Next() {
		view, err := scanIncidentView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// Transition меняет статус одним условным UPDATE. Если запись уже не в одном из
// статусов t.From, возвращается StatusMismatchError с текущим статусом.
// accepted_at и resolved_at пишутся один раз: повторная установка сохраняет прежнее значение.
func (r *IncidentRepository) Transition(ctx context.Context, id uuid.UUID, t models.Transition) (*models.Incident, error) {
	from := make([]string, len(t.From))
	for i, s := range t.From {
		from[i] = string(s)
	}

	query := `
		UPDATE incidents i SET
			status = $2,
			facility_id = COALESCE($3, i.facility_id),
			assigned_to_id = COALESCE($4, i.assigned_to_id),
			accepted_at = CASE WHEN $5::boolean THEN COALESCE(i.accepted_at, $7) ELSE i.accepted_at END,
			resolved_at = CASE WHEN $6::boolean THEN COALESCE(i.resolved_at, $7) ELSE i.resolved_at END,
			notes = COALESCE($8, i.notes),
			updated_at = $7
		WHERE i.id = $1 AND i.status = ANY($9::text[])
		RETURNING` + incidentColumns + `;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query,
		id,
		t.To,
		t.FacilityID,
		t.AssignedToID,
		t.SetAcceptedAt,
		t.SetResolvedAt,
		t.At,
		t.Notes,
		from,
	))
	if err == nil {
		return incident, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update incident status: %w", err)
	}

	// Ни одна строка не обновлена: инцидента нет или статус уже другой
	var current models.Status
	err = r.db.QueryRow(ctx, `SELECT status FROM incidents WHERE id = $1;`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s not found for update: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read incident status: %w", err)
	}
	return nil, &service.StatusMismatchError{Current: current}
}

// UpdateNotes обновляет только заметки, статус не трогает
func (r *IncidentRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) (*models.Incident, error) {
	query := `
		UPDATE incidents i SET
			notes = $2,
			updated_at = NOW()
		WHERE i.id = $1
		RETURNING` + incidentColumns + `;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id, notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s not found for update: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update incident notes: %w", err)
	}
	return incident, nil
}

// ListPendingOlderThan возвращает PENDING инциденты, созданные раньше cutoff
func (r *IncidentRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Incident, error) {
	query := `
		SELECT` + incidentColumns + `
		FROM incidents i
		WHERE i.status = 'PENDING' AND i.created_at < $1
		ORDER BY i.created_at;
	`
	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stale incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in ListPendingOlderThan: %w", err)
	}
	return incidents, nil
}

// CountByStatusSince возвращает количество инцидентов по статусам, созданных начиная с since
func (r *IncidentRepository) CountByStatusSince(ctx context.Context, since time.Time) (map[models.Status]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM incidents
		WHERE created_at >= $1
		GROUP BY status;
	`
	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Status]int)
	for rows.Next() {
		var (
			status models.Status
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan incident count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error count iteration: %w", err)
	}
	return counts, nil
}

// GetIncidentFromCache пытается получить инцидент из Redis вместе с поколением кеша
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.IncidentView, int64, error) {
	vals, err := r.redisClient.MGet(ctx, incidentCacheKey(id), incidentGenerationKey(id)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	var generation int64
	if raw, ok := vals[1].(string); ok {
		generation, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse incident cache generation: %w", err)
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, generation, nil
	}
	incident := &models.IncidentView{}
	if err := json.Unmarshal([]byte(raw), incident); err != nil {
		return nil, generation, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, generation, nil
}

// SetIncidentCache сохраняет инцидент в Redis, если с момента чтения поколение не менялось
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.IncidentView, generation int64) (bool, error) {
	val, err := json.Marshal(incident)
	if err != nil {
		return false, fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	keys := []string{incidentCacheKey(incident.ID), incidentGenerationKey(incident.ID)}
	stored, err := setIfGenerationScript.Run(ctx, r.redisClient, keys,
		generation, val, incidentCacheTTL.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return stored == 1, nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша и сдвигает поколение
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	_, err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, incidentGenerationKey(id))
		pipe.Expire(ctx, incidentGenerationKey(id), incidentGenerationTTL)
		pipe.Del(ctx, incidentCacheKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}

func incidentCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s", id.String())
}

func incidentGenerationKey(id uuid.UUID) string {
	return fmt.Sprintf("incident:%s:gen", id.String())
}

func incidentDest(incident *models.Incident, analysis *[]byte) []any {
	return []any{
		&incident.ID,
		&incident.UserID,
		&incident.PersonName,
		&incident.ContactNumber,
		&incident.Status,
		&incident.Priority,
		&incident.Latitude,
		&incident.Longitude,
		&incident.Address,
		&incident.Description,
		&incident.Notes,
		analysis,
		&incident.MedicalProfileID,
		&incident.FacilityID,
		&incident.AssignedToID,
		&incident.AlertSource,
		&incident.CreatedAt,
		&incident.UpdatedAt,
		&incident.AcceptedAt,
		&incident.ResolvedAt,
	}
}

func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var analysis []byte
	if err := row.Scan(incidentDest(incident, &analysis)...); err != nil {
		return nil, err
	}
	if err := unmarshalAnalysis(analysis, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

func scanIncidentView(row pgx.Row) (*models.IncidentView, error) {
	view := &models.IncidentView{}
	var (
		analysis []byte

		reporter models.UserSummary

		facilityID                          *uuid.UUID
		facilityName, facilityAddress       *string
		facilityCity, facilityPhone         *string
		facilityLatitude, facilityLongitude *float64

		staffRecordID                           *uuid.UUID
		staffID, staffDepartment, staffPosition *string
		staffUserID                             *uuid.UUID
		staffUserName, staffUserEmail           *string

		bloodType, allergies, conditions, medications *string
		contactName, contactPhone                     *string
	)

	dest := incidentDest(&view.Incident, &analysis)
	dest = append(dest,
		&reporter.ID, &reporter.Name, &reporter.Email,
		&facilityID, &facilityName, &facilityAddress, &facilityCity, &facilityPhone, &facilityLatitude, &facilityLongitude,
		&staffRecordID, &staffID, &staffDepartment, &staffPosition,
		&staffUserID, &staffUserName, &staffUserEmail,
		&bloodType, &allergies, &conditions, &medications,
		&contactName, &contactPhone,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := unmarshalAnalysis(analysis, &view.Incident); err != nil {
		return nil, err
	}

	view.Reporter = &reporter

	var facility *models.FacilitySummary
	if facilityID != nil {
		facility = &models.FacilitySummary{
			ID:        *facilityID,
			Name:      deref(facilityName),
			Address:   deref(facilityAddress),
			City:      deref(facilityCity),
			Phone:     deref(facilityPhone),
			Latitude:  facilityLatitude,
			Longitude: facilityLongitude,
		}
	}
	view.Facility = facility

	if staffRecordID != nil {
		staff := &models.StaffSummary{
			ID:         *staffRecordID,
			StaffID:    deref(staffID),
			Department: deref(staffDepartment),
			Position:   deref(staffPosition),
			Facility:   facility,
		}
		if staffUserID != nil {
			staff.User = &models.UserSummary{ID: *staffUserID, Name: deref(staffUserName), Email: deref(staffUserEmail)}
		}
		view.AssignedTo = staff
	}

	if bloodType != nil {
		view.MedicalProfile = &models.MedicalProfileSummary{
			BloodType:             deref(bloodType),
			Allergies:             deref(allergies),
			Conditions:            deref(conditions),
			Medications:           deref(medications),
			EmergencyContactName:  deref(contactName),
			EmergencyContactPhone: deref(contactPhone),
		}
	}
	return view, nil
}

func marshalAnalysis(analysis *models.Analysis) ([]byte, error) {
	if analysis == nil {
		return nil, nil
	}
	data, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	return data, nil
}

func unmarshalAnalysis(data []byte, incident *models.Incident) error {
	if len(data) == 0 {
		return nil
	}
	analysis := &models.Analysis{}
	if err := json.Unmarshal(data, analysis); err != nil {
		return fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	incident.Analysis = analysis
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
