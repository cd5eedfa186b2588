package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch/internal/config"
	event_mocks "github.com/shenikar/emergency_dispatch/internal/events/mocks"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/shenikar/emergency_dispatch/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// memoryIncidentRepository повторяет семантику repository.IncidentRepository:
//   - Transition: UPDATE ... WHERE status = ANY(from), при промахе StatusMismatchError
//     с текущим статусом; accepted_at и resolved_at через COALESCE, то есть пишутся один раз;
//   - кеш: карточка пишется только при неизменном поколении, инвалидация сдвигает поколение.
type memoryIncidentRepository struct {
	mu          sync.Mutex
	incidents   map[uuid.UUID]models.Incident
	cache       map[uuid.UUID]models.IncidentView
	generations map[uuid.UUID]int64

	// afterGetView вызывается после чтения карточки из хранилища, до записи в кеш
	afterGetView func()
}

func newMemoryIncidentRepository(incidents ...models.Incident) *memoryIncidentRepository {
	r := &memoryIncidentRepository{
		incidents:   make(map[uuid.UUID]models.Incident),
		cache:       make(map[uuid.UUID]models.IncidentView),
		generations: make(map[uuid.UUID]int64),
	}
	for _, incident := range incidents {
		r.incidents[incident.ID] = incident
	}
	return r
}

func (r *memoryIncidentRepository) Create(_ context.Context, incident *models.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	incident.ID = uuid.New()
	r.incidents[incident.ID] = *incident
	return nil
}

func (r *memoryIncidentRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	incident, ok := r.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident with id %s: %w", id, ErrNotFound)
	}
	return &incident, nil
}

func (r *memoryIncidentRepository) GetView(ctx context.Context, id uuid.UUID) (*models.IncidentView, error) {
	incident, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.afterGetView != nil {
		hook := r.afterGetView
		r.afterGetView = nil
		hook()
	}
	return &models.IncidentView{Incident: *incident}, nil
}

func (r *memoryIncidentRepository) List(context.Context, models.IncidentFilter) ([]*models.IncidentView, error) {
	return nil, errors.New("not implemented")
}

func (r *memoryIncidentRepository) Transition(_ context.Context, id uuid.UUID, t models.Transition) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	incident, ok := r.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident with id %s: %w", id, ErrNotFound)
	}
	if !slices.Contains(t.From, incident.Status) {
		return nil, &StatusMismatchError{Current: incident.Status}
	}

	incident.Status = t.To
	if t.FacilityID != nil {
		incident.FacilityID = t.FacilityID
	}
	if t.AssignedToID != nil {
		incident.AssignedToID = t.AssignedToID
	}
	if t.SetAcceptedAt && incident.AcceptedAt == nil {
		at := t.At
		incident.AcceptedAt = &at
	}
	if t.SetResolvedAt && incident.ResolvedAt == nil {
		at := t.At
		incident.ResolvedAt = &at
	}
	r.incidents[id] = incident
	return &incident, nil
}

func (r *memoryIncidentRepository) UpdateNotes(context.Context, uuid.UUID, *string) (*models.Incident, error) {
	return nil, errors.New("not implemented")
}

func (r *memoryIncidentRepository) ListPendingOlderThan(context.Context, time.Time) ([]*models.Incident, error) {
	return nil, nil
}

func (r *memoryIncidentRepository) CountByStatusSince(context.Context, time.Time) (map[models.Status]int, error) {
	return nil, nil
}

func (r *memoryIncidentRepository) GetIncidentFromCache(_ context.Context, id uuid.UUID) (*models.IncidentView, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.cache[id]
	if !ok {
		return nil, r.generations[id], nil
	}
	return &view, r.generations[id], nil
}

func (r *memoryIncidentRepository) SetIncidentCache(_ context.Context, view *models.IncidentView, generation int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generations[view.ID] != generation {
		return false, nil
	}
	r.cache[view.ID] = *view
	return true, nil
}

func (r *memoryIncidentRepository) InvalidateIncidentCache(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generations[id]++
	delete(r.cache, id)
	return nil
}

func TestAcceptIncident_ConcurrentAcceptsOnlyOneWins(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	publisher := event_mocks.NewMockPublisher(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	incident := models.Incident{ID: uuid.New(), Status: models.StatusPending, Priority: models.PriorityCritical}
	repo := newMemoryIncidentRepository(incident)

	const staffCount = 8
	actors := make([]models.Actor, staffCount)
	for i := range actors {
		actors[i] = staffActor()
		users.EXPECT().GetStaffAssignment(gomock.Any(), actors[i].UserID).
			Return(&models.StaffAssignment{ID: uuid.New(), UserID: actors[i].UserID, FacilityID: uuid.New()}, nil)
	}
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc := NewIncidentService(repo, users, NewFacilityDirectory(mocks.NewMockFacilityRepository(ctrl), logger),
		mocks.NewMockSymptomAnalyzer(ctrl), mocks.NewMockAddressResolver(ctrl), publisher, logger, &config.Config{})

	// Действие
	var wg sync.WaitGroup
	results := make([]error, staffCount)
	start := make(chan struct{})
	for i := range actors {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, results[i] = svc.AcceptIncident(context.Background(), actors[i], incident.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	// Проверки
	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrConflict):
			conflicts++
			assert.Equal(t, "Incident already assigned", err.Error())
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, staffCount-1, conflicts)

	stored, err := repo.GetByID(context.Background(), incident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, stored.Status)
	require.NotNil(t, stored.AcceptedAt)
	require.NotNil(t, stored.AssignedToID)
}

func TestLifecycle_TimestampsAreSetOnce(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	publisher := event_mocks.NewMockPublisher(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	owner := userActor()
	staff := staffActor()
	incident := models.Incident{ID: uuid.New(), UserID: owner.UserID, Status: models.StatusPending}
	repo := newMemoryIncidentRepository(incident)

	users.EXPECT().GetStaffAssignment(gomock.Any(), staff.UserID).
		Return(&models.StaffAssignment{ID: uuid.New(), FacilityID: uuid.New()}, nil).AnyTimes()
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := NewIncidentService(repo, users, NewFacilityDirectory(mocks.NewMockFacilityRepository(ctrl), logger),
		mocks.NewMockSymptomAnalyzer(ctrl), mocks.NewMockAddressResolver(ctrl), publisher, logger, &config.Config{})
	clock := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	svc.(*incidentService).now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	ctx := context.Background()
	resolved := models.StatusResolved

	// Действие и проверки
	view, err := svc.GetIncident(ctx, owner, incident.ID)
	require.NoError(t, err)
	assert.Nil(t, view.AcceptedAt)
	assert.Nil(t, view.ResolvedAt)

	view, err = svc.AcceptIncident(ctx, staff, incident.ID)
	require.NoError(t, err)
	require.NotNil(t, view.AcceptedAt)
	acceptedAt := *view.AcceptedAt
	assert.Nil(t, view.ResolvedAt)

	view, err = svc.DispatchIncident(ctx, staff, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, acceptedAt, *view.AcceptedAt)

	view, err = svc.UpdateIncident(ctx, staff, incident.ID, models.IncidentUpdate{Status: &resolved})
	require.NoError(t, err)
	require.NotNil(t, view.ResolvedAt)
	assert.Equal(t, acceptedAt, *view.AcceptedAt)

	_, err = svc.UpdateIncident(ctx, staff, incident.ID, models.IncidentUpdate{Status: &resolved})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Incident already resolved", err.Error())
}

func TestGetIncident_DoesNotCacheViewChangedDuringRead(t *testing.T) {
	// Подготовка
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	publisher := event_mocks.NewMockPublisher(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	owner := userActor()
	staff := staffActor()
	incident := models.Incident{ID: uuid.New(), UserID: owner.UserID, Status: models.StatusPending}
	repo := newMemoryIncidentRepository(incident)

	users.EXPECT().GetStaffAssignment(gomock.Any(), staff.UserID).
		Return(&models.StaffAssignment{ID: uuid.New(), FacilityID: uuid.New()}, nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	svc := NewIncidentService(repo, users, NewFacilityDirectory(mocks.NewMockFacilityRepository(ctrl), logger),
		mocks.NewMockSymptomAnalyzer(ctrl), mocks.NewMockAddressResolver(ctrl), publisher, logger, &config.Config{})
	ctx := context.Background()

	// Ожидания
	// Сотрудник принимает вызов между чтением карточки из хранилища и записью в кеш
	repo.afterGetView = func() {
		_, err := svc.AcceptIncident(ctx, staff, incident.ID)
		require.NoError(t, err)
	}

	// Действие
	first, err := svc.GetIncident(ctx, owner, incident.ID)
	require.NoError(t, err)
	second, err := svc.GetIncident(ctx, owner, incident.ID)
	require.NoError(t, err)

	// Проверки
	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, models.StatusAssigned, second.Status)

	cached, _, err := repo.GetIncidentFromCache(ctx, incident.ID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, models.StatusAssigned, cached.Status)
}
