package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/emergency_dispatch/internal/auth"
	"github.com/shenikar/emergency_dispatch/internal/config"
	"github.com/shenikar/emergency_dispatch/internal/events"
	eventmocks "github.com/shenikar/emergency_dispatch/internal/events/mocks"
	"github.com/shenikar/emergency_dispatch/internal/geo"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/shenikar/emergency_dispatch/internal/service"
	"github.com/shenikar/emergency_dispatch/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeDirectory struct {
	err   error
	count int
}

func (d *fakeDirectory) Refresh(ctx context.Context) error { return d.err }
func (d *fakeDirectory) Len() int                          { return d.count }

type testEnv struct {
	router     *gin.Engine
	handler    *Handler
	logs       *bytes.Buffer
	incidents  *mocks.MockIncidentService
	auth       *mocks.MockAuthService
	profiles   *mocks.MockProfileService
	subscriber *eventmocks.MockSubscriber
	directory  *fakeDirectory
	tokens     *auth.TokenManager
	cfg        *config.Config
}

// newTestHandler создает Handler с мокированными сервисами и настоящими токенами
func newTestHandler(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)

	logs := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(logs) // Логи пишутся в буфер, а не в stdout

	env := &testEnv{
		logs:       logs,
		incidents:  mocks.NewMockIncidentService(ctrl),
		auth:       mocks.NewMockAuthService(ctrl),
		profiles:   mocks.NewMockProfileService(ctrl),
		subscriber: eventmocks.NewMockSubscriber(ctrl),
		directory:  &fakeDirectory{count: 4},
		tokens:     auth.NewTokenManager("test-secret", time.Hour),
		cfg: &config.Config{
			APIKeys:                []string{"test-api-key"},
			StatsTimeWindowMinutes: 60,
			AppEnv:                 "production",
		},
	}

	handler := NewHandler(Services{
		Incidents: env.incidents,
		Auth:      env.auth,
		Profiles:  env.profiles,
		Directory: env.directory,
	}, env.tokens, env.subscriber, logger, env.cfg)

	env.handler = handler

	gin.SetMode(gin.TestMode)
	env.router = gin.New()
	env.router.Use(AccessLogMiddleware(logger))
	api := env.router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return env
}

// session выпускает токен и возвращает заголовки запроса вместе с пользователем
func (e *testEnv) session(t *testing.T, role models.Role) (map[string]string, models.Actor) {
	user := &models.User{ID: uuid.New(), Email: "someone@example.com", Role: role}
	token, err := e.tokens.Issue(user)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}, models.Actor{UserID: user.ID, Role: role}
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newView(status models.Status) *models.IncidentView {
	return &models.IncidentView{Incident: models.Incident{
		ID:        uuid.MustParse("3f2b8c1e-0000-4000-8000-00000abcdef1"),
		Status:    status,
		Priority:  models.PriorityCritical,
		Latitude:  6.4541,
		Longitude: 3.3947,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}}
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestCreateSOS_Success(t *testing.T) {
	env := newTestHandler(t)
	headers, actor := env.session(t, models.RoleUser)
	lat, lon := 6.4385, 3.4735
	facility := &models.Facility{ID: uuid.New(), Name: "Lekki Central Clinic", Latitude: &lat, Longitude: &lon}
	created := &models.IncidentCreated{
		Incident:   newView(models.StatusPending),
		Facilities: []models.FacilityMatch{{Facility: facility, DistanceMeters: 8770.5}},
		Message:    "SOS alert sent. Lekki Central Clinic has been notified.",
	}

	env.incidents.EXPECT().
		CreateSOS(gomock.Any(), actor, geo.Point{Latitude: 6.4541, Longitude: 3.3947}).
		Return(created, nil).Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/incidents/sos",
		jsonBody(t, SOSRequest{Latitude: floatPtr(6.4541), Longitude: floatPtr(3.3947)}), headers)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success  bool `json:"success"`
		Incident struct {
			ID        uuid.UUID `json:"id"`
			DisplayID string    `json:"displayId"`
			Status    string    `json:"status"`
			Priority  string    `json:"priority"`
		} `json:"incident"`
		Facilities []struct {
			ID       uuid.UUID `json:"id"`
			Name     string    `json:"name"`
			Distance float64   `json:"distance"`
		} `json:"facilities"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, created.Incident.ID, resp.Incident.ID)
	assert.Equal(t, "LAG-0ABCDEF1", resp.Incident.DisplayID)
	assert.Equal(t, "PENDING", resp.Incident.Status)
	assert.Equal(t, "CRITICAL", resp.Incident.Priority)
	require.Len(t, resp.Facilities, 1)
	assert.Equal(t, facility.ID, resp.Facilities[0].ID)
	assert.InDelta(t, 8770.5, resp.Facilities[0].Distance, 1e-9)
	assert.Equal(t, created.Message, resp.Message)
}

func TestCreateSOS_MissingLocation(t *testing.T) {
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleUser)

	env.incidents.EXPECT().CreateSOS(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(env.router, http.MethodPost, "/api/v1/incidents/sos",
		bytes.NewBufferString(`{"latitude": 6.45}`), headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing location data", decodeError(t, w).Error)
}

func TestCreateSOS_Unauthorized(t *testing.T) {
	env := newTestHandler(t)

	env.incidents.EXPECT().CreateSOS(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/incidents/sos",
		jsonBody(t, SOSRequest{Latitude: floatPtr(1), Longitude: floatPtr(2)}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(env.router, http.MethodPost, "/api/v1/incidents/sos",
		jsonBody(t, SOSRequest{Latitude: floatPtr(1), Longitude: floatPtr(2)}),
		map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReport_MapsRequest(t *testing.T) {
	env := newTestHandler(t)
	headers, actor := env.session(t, models.RoleUser)
	reqBody := ReportRequest{
		Mode:       "other",
		PersonName: strPtr("Ada"),
		Symptoms:   "Unconscious, not breathing",
		Analysis: &AnalysisDTO{
			Severity:          "CRITICAL",
			RecommendedAction: "Start CPR",
		},
		Latitude:  floatPtr(6.44),
		Longitude: floatPtr(3.47),
	}

	env.incidents.EXPECT().
		ReportEmergency(gomock.Any(), actor, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Actor, input models.ReportInput) (*models.IncidentCreated, error) {
			assert.Equal(t, "other", input.Mode)
			assert.Equal(t, "Ada", *input.PersonName)
			require.NotNil(t, input.Analysis)
			assert.Equal(t, "CRITICAL", input.Analysis.Severity)
			assert.NotNil(t, input.Analysis.PossibleConditions)
			assert.InDelta(t, 6.44, *input.Latitude, 1e-9)
			return &models.IncidentCreated{Incident: newView(models.StatusPending), Message: "ok"}, nil
		}).Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/incidents/report", jsonBody(t, reqBody), headers)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestCreateReport_ValidationError(t *testing.T) {
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleUser)

	env.incidents.EXPECT().ReportEmergency(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/incidents/report",
		jsonBody(t, ReportRequest{Mode: "neighbour", Symptoms: "x"}), headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = makeRequest(env.router, http.MethodPost, "/api/v1/incidents/report",
		jsonBody(t, ReportRequest{Mode: "self"}), headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeSymptoms(t *testing.T) {
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleUser)
	analysis := &models.Analysis{Severity: "HIGH", PossibleConditions: []string{"Fracture"}}

	env.incidents.EXPECT().AnalyzeSymptoms(gomock.Any(), "leg pain", (*string)(nil)).Return(analysis).Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/incidents/analyze",
		jsonBody(t, AnalyzeRequest{Symptoms: "leg pain"}), headers)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "HIGH", resp.Analysis.Severity)
}

func TestListIncidents(t *testing.T) {
	env := newTestHandler(t)
	headers, actor := env.session(t, models.RoleHospitalStaff)
	pending := models.StatusPending

	env.incidents.EXPECT().
		ListIncidents(gomock.Any(), actor, &pending).
		Return([]*models.IncidentView{newView(models.StatusPending), newView(models.StatusPending)}, nil).Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/incidents?status=PENDING", nil, headers)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Incidents []json.RawMessage `json:"incidents"`
		Count     int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Incidents, 2)
}

func TestListIncidents_InvalidStatus(t *testing.T) {
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleHospitalStaff)

	env.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/incidents?status=DONE", nil, headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIncidents_Forbidden(t *testing.T) {
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleUser)

	env.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil, &service.Error{Kind: service.ErrForbidden, Message: "Only hospital staff can view incidents"}).Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/incidents", nil, headers)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only hospital staff can view incidents", decodeError(t, w).Error)
}

func TestGetIncident(t *testing.T) {
	env := newTestHandler(t)
	headers, actor := env.session(t, models.RoleUser)
	view := newView(models.StatusAssigned)

	env.incidents.EXPECT().GetIncident(gomock.Any(), actor, view.ID).Return(view, nil).Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/incidents/"+view.ID.String(), nil, headers)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ASSIGNED"`)
}

func TestGetIncident_Errors(t *testing.T) {
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleUser)
	id := uuid.New()

	w := makeRequest(env.router, http.MethodGet, "/api/v1/incidents/not-a-uuid", nil, headers)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid incident ID", decodeError(t, w).Error)

	env.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any(), id).
		Return(nil, &service.Error{Kind: service.ErrNotFound, Message: "Incident not found"}).Times(1)

	w = makeRequest(env.router, http.MethodGet, "/api/v1/incidents/"+id.String(), nil, headers)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Incident not found", decodeError(t, w).Error)
}

func TestTransitionEndpoints(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name       string
		method     string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "accept succeeds",
			method:     http.MethodPost,
			wantStatus: http.StatusOK,
		},
		{
			name:       "accept conflict",
			method:     http.MethodPost,
			err:        &service.Error{Kind: service.ErrConflict, Message: "Incident already assigned"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Incident already assigned",
		},
		{
			name:       "accept forbidden",
			method:     http.MethodPost,
			err:        &service.Error{Kind: service.ErrForbidden, Message: "Only hospital staff can accept incidents"},
			wantStatus: http.StatusForbidden,
			wantError:  "Only hospital staff can accept incidents",
		},
		{
			name:       "dispatch before accept",
			method:     http.MethodPatch,
			err:        &service.Error{Kind: service.ErrConflict, Message: "Incident must be accepted first"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Incident must be accepted first",
		},
		{
			name:       "dispatch succeeds",
			method:     http.MethodPatch,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Подготовка
			env := newTestHandler(t)
			headers, actor := env.session(t, models.RoleHospitalStaff)
			var view *models.IncidentView
			if tt.err == nil {
				view = newView(models.StatusAssigned)
			}

			// Ожидания
			if tt.method == http.MethodPost {
				env.incidents.EXPECT().AcceptIncident(gomock.Any(), actor, id).Return(view, tt.err).Times(1)
			} else {
				env.incidents.EXPECT().DispatchIncident(gomock.Any(), actor, id).Return(view, tt.err).Times(1)
			}

			// Действие
			w := makeRequest(env.router, tt.method, fmt.Sprintf("/api/v1/incidents/%s/accept", id), nil, headers)

			// Проверки
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, w).Error)
			} else {
				assert.Contains(t, w.Body.String(), `"success":true`)
			}
		})
	}
}

func TestUpdateIncident(t *testing.T) {
	env := newTestHandler(t)
	headers, actor := env.session(t, models.RoleHospitalStaff)
	id := uuid.New()
	resolved := models.StatusResolved
	notes := "Patient stabilized"

	env.incidents.EXPECT().
		UpdateIncident(gomock.Any(), actor, id, models.IncidentUpdate{Status: &resolved, Notes: &notes}).
		Return(newView(models.StatusResolved), nil).Times(1)

	w := makeRequest(env.router, http.MethodPatch, "/api/v1/incidents/"+id.String(),
		jsonBody(t, UpdateIncidentRequest{Status: strPtr("RESOLVED"), Notes: &notes}), headers)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"RESOLVED"`)
}

func TestUpdateIncident_InvalidStatus(t *testing.T) {
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleHospitalStaff)

	env.incidents.EXPECT().UpdateIncident(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodPatch, "/api/v1/incidents/"+uuid.NewString(),
		jsonBody(t, UpdateIncidentRequest{Status: strPtr("DONE")}), headers)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInternalError_Details(t *testing.T) {
	for _, tt := range []struct {
		env         string
		wantDetails string
	}{
		{env: "production", wantDetails: "An error occurred"},
		{env: "development", wantDetails: "db is down"},
	} {
		t.Run(tt.env, func(t *testing.T) {
			env := newTestHandler(t)
			env.cfg.AppEnv = tt.env
			headers, _ := env.session(t, models.RoleUser)

			env.incidents.EXPECT().ListUserIncidents(gomock.Any(), gomock.Any()).
				Return(nil, errors.New("db is down")).Times(1)

			w := makeRequest(env.router, http.MethodGet, "/api/v1/user/incidents", nil, headers)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, "Internal Server Error", resp.Error)
			assert.Equal(t, tt.wantDetails, resp.Details)
		})
	}
}

func TestRegister(t *testing.T) {
	env := newTestHandler(t)
	user := &models.User{ID: uuid.New(), Email: "new@example.com", Name: "New User", Role: models.RoleUser}

	env.auth.EXPECT().
		Register(gomock.Any(), models.RegisterInput{Email: "new@example.com", Password: "secret1", Name: "New User"}).
		Return(&models.AuthResult{User: user, Token: "token"}, nil).Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/auth/register",
		jsonBody(t, RegisterRequest{Email: "new@example.com", Password: "secret1", Name: "New User"}))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token", resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestHandler(t)

	env.auth.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(nil, &service.Error{Kind: service.ErrValidation, Message: "Email already registered"}).Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/auth/register",
		jsonBody(t, RegisterRequest{Email: "test@rivoo.com", Password: "secret1", Name: "Test"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", decodeError(t, w).Error)
}

func TestLogin(t *testing.T) {
	env := newTestHandler(t)

	env.auth.EXPECT().
		Login(gomock.Any(), models.LoginInput{StaffID: "HOSP-12345", Password: "hospital123"}).
		Return(nil, &service.Error{Kind: service.ErrUnauthorized, Message: "Invalid credentials"}).Times(1)

	w := makeRequest(env.router, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, LoginRequest{StaffID: "HOSP-12345", Password: "hospital123"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeError(t, w).Error)

	// Ни email, ни staffId
	w = makeRequest(env.router, http.MethodPost, "/api/v1/auth/login",
		jsonBody(t, LoginRequest{Password: "x"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyStaff(t *testing.T) {
	env := newTestHandler(t)
	staffHeaders, staff := env.session(t, models.RoleHospitalStaff)
	userHeaders, user := env.session(t, models.RoleUser)
	info := &models.StaffInfo{StaffID: "HOSP-12345", Department: "Emergency", Position: "ER Lead Physician", FacilityName: "Lekki Central Clinic"}

	env.auth.EXPECT().VerifyStaff(gomock.Any(), staff).Return(info, nil).Times(1)
	env.auth.EXPECT().VerifyStaff(gomock.Any(), user).Return(nil, nil).Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/auth/verify-staff", nil, staffHeaders)
	require.Equal(t, http.StatusOK, w.Code)
	var resp VerifyStaffResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsStaff)
	assert.Equal(t, "HOSP-12345", resp.StaffInfo.StaffID)

	w = makeRequest(env.router, http.MethodGet, "/api/v1/auth/verify-staff", nil, userHeaders)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isStaff":false}`, w.Body.String())
}

func TestMedicalProfile(t *testing.T) {
	env := newTestHandler(t)
	headers, actor := env.session(t, models.RoleUser)

	env.profiles.EXPECT().GetMedicalProfile(gomock.Any(), actor).
		Return(nil, &service.Error{Kind: service.ErrNotFound, Message: "Profile not found"}).Times(1)
	env.profiles.EXPECT().
		UpsertMedicalProfile(gomock.Any(), actor, models.MedicalProfileInput{
			BloodType:             "O+",
			Medications:           "Insulin",
			EmergencyContactName:  "Jane Doe",
			EmergencyContactPhone: "+234-803-999-8888",
		}).
		Return(&models.MedicalProfile{UserID: actor.UserID, BloodType: "O+"}, nil).Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/user/medical-profile", nil, headers)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Profile not found", decodeError(t, w).Error)

	w = makeRequest(env.router, http.MethodPost, "/api/v1/user/medical-profile",
		bytes.NewBufferString(`{"bloodType":"O+","medication":"Insulin","emergencyContactName":"Jane Doe","emergencyContactPhone":"+234-803-999-8888"}`),
		headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bloodType":"O+"`)
}

func TestAdminStats(t *testing.T) {
	env := newTestHandler(t)

	env.incidents.EXPECT().GetStats(gomock.Any()).
		Return(map[models.Status]int{models.StatusPending: 3, models.StatusResolved: 1}, nil).Times(1)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/admin/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(env.router, http.MethodGet, "/api/v1/admin/stats", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(env.router, http.MethodGet, "/api/v1/admin/stats", nil, map[string]string{"X-API-Key": "test-api-key"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 60, resp.WindowMinutes)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 3, resp.ByStatus["PENDING"])
	assert.Equal(t, 0, resp.ByStatus["IN_PROGRESS"])
}

func TestAdminRefreshFacilities(t *testing.T) {
	env := newTestHandler(t)
	apiKey := map[string]string{"X-API-Key": "test-api-key"}

	w := makeRequest(env.router, http.MethodPost, "/api/v1/admin/facilities/refresh", nil, apiKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"facilities":4}`, w.Body.String())

	env.directory.err = errors.New("connection refused")
	w = makeRequest(env.router, http.MethodPost, "/api/v1/admin/facilities/refresh", nil, apiKey)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthCheck(t *testing.T) {
	env := newTestHandler(t)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStreamIncident(t *testing.T) {
	// Подготовка
	env := newTestHandler(t)
	user := &models.User{ID: uuid.New(), Role: models.RoleUser}
	token, err := env.tokens.Issue(user)
	require.NoError(t, err)
	actor := models.Actor{UserID: user.ID, Role: models.RoleUser}
	view := newView(models.StatusPending)
	updates := make(chan events.IncidentEvent, 1)
	closed := make(chan struct{})

	// Ожидания
	env.incidents.EXPECT().GetIncident(gomock.Any(), actor, view.ID).Return(view, nil).Times(1)
	env.subscriber.EXPECT().Subscribe(gomock.Any(), view.ID).
		DoAndReturn(func(_ context.Context, _ uuid.UUID) (<-chan events.IncidentEvent, func() error, error) {
			return updates, func() error { close(closed); return nil }, nil
		}).Times(1)

	server := httptest.NewServer(env.router)
	defer server.Close()

	// Действие
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/incidents/" + view.ID.String() + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	// Проверки
	var snapshot struct {
		Type     string `json:"type"`
		Incident struct {
			ID uuid.UUID `json:"id"`
		} `json:"incident"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, "incident.snapshot", snapshot.Type)
	assert.Equal(t, view.ID, snapshot.Incident.ID)

	updates <- events.IncidentEvent{Type: events.EventStatusChanged, IncidentID: view.ID, Status: models.StatusAssigned}

	var event events.IncidentEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, events.EventStatusChanged, event.Type)
	assert.Equal(t, models.StatusAssigned, event.Status)

	require.NoError(t, conn.Close())
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("subscription was not closed after client disconnect")
	}
}

func TestStreamIncident_Forbidden(t *testing.T) {
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleUser)
	id := uuid.New()

	env.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any(), id).
		Return(nil, &service.Error{Kind: service.ErrForbidden, Message: "Forbidden"}).Times(1)
	env.subscriber.EXPECT().Subscribe(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(env.router, http.MethodGet, "/api/v1/incidents/"+id.String()+"/ws", nil, headers)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStreamIncident_ClosedOnServerShutdown(t *testing.T) {
	// Подготовка
	env := newTestHandler(t)
	headers, actor := env.session(t, models.RoleHospitalStaff)
	view := newView(models.StatusAssigned)
	closed := make(chan struct{})

	// Ожидания
	env.incidents.EXPECT().GetIncident(gomock.Any(), actor, view.ID).Return(view, nil).Times(1)
	env.subscriber.EXPECT().Subscribe(gomock.Any(), view.ID).
		DoAndReturn(func(_ context.Context, _ uuid.UUID) (<-chan events.IncidentEvent, func() error, error) {
			return make(chan events.IncidentEvent), func() error { close(closed); return nil }, nil
		}).Times(1)

	server := httptest.NewServer(env.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/incidents/" + view.ID.String() + "/ws"
	requestHeader := http.Header{}
	requestHeader.Set("Authorization", headers["Authorization"])
	conn, _, err := websocket.DefaultDialer.Dial(url, requestHeader)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)

	// Действие
	env.handler.CloseStreams()

	// Проверки
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("subscription was not closed on shutdown")
	}
}

func TestSessionMiddleware_QueryTokenRejectedOutsideStream(t *testing.T) {
	// Подготовка
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleHospitalStaff)
	token := strings.TrimPrefix(headers["Authorization"], "Bearer ")

	// Ожидания
	env.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	env.incidents.EXPECT().ListIncidents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	getResp := makeRequest(env.router, http.MethodGet, "/api/v1/incidents/"+uuid.New().String()+"?token="+token, nil)
	listResp := makeRequest(env.router, http.MethodGet, "/api/v1/incidents?token="+token, nil)

	// Проверки
	assert.Equal(t, http.StatusUnauthorized, getResp.Code)
	assert.Equal(t, http.StatusUnauthorized, listResp.Code)
}

func TestAccessLog_OmitsStreamToken(t *testing.T) {
	// Подготовка
	env := newTestHandler(t)
	headers, _ := env.session(t, models.RoleUser)
	token := strings.TrimPrefix(headers["Authorization"], "Bearer ")
	id := uuid.New()

	// Ожидания
	env.incidents.EXPECT().GetIncident(gomock.Any(), gomock.Any(), id).
		Return(nil, &service.Error{Kind: service.ErrForbidden, Message: "Forbidden"}).Times(1)

	// Действие
	w := makeRequest(env.router, http.MethodGet, "/api/v1/incidents/"+id.String()+"/ws?token="+token, nil)

	// Проверки
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, env.logs.String(), "/api/v1/incidents/"+id.String()+"/ws")
	assert.NotContains(t, env.logs.String(), token)
}
