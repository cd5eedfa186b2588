package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_dispatch/internal/models"
)

// @Summary Register
// @Description Create a USER account and open a session.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or email already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	log := h.logger.WithField("method", "register")

	if !h.bind(c, log, &input) {
		return
	}

	result, err := h.services.Auth.Register(c.Request.Context(), models.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{User: result.User, Token: result.Token})
}

// @Summary Login
// @Description Open a session by email or by staff ID (HOSP-XXXXX).
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or staff ID format"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if !h.bind(c, log, &input) {
		return
	}

	result, err := h.services.Auth.Login(c.Request.Context(), models.LoginInput{
		Email:    input.Email,
		StaffID:  input.StaffID,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{User: result.User, Token: result.Token})
}

// @Summary Verify staff
// @Description Report whether the session belongs to hospital staff and return the facility assignment.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} VerifyStaffResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/verify-staff [get]
func (h *Handler) verifyStaff(c *gin.Context) {
	log := h.logger.WithField("method", "verifyStaff")

	info, err := h.services.Auth.VerifyStaff(c.Request.Context(), currentActor(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, VerifyStaffResponse{IsStaff: info != nil, StaffInfo: info})
}

// @Summary Get medical profile
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MedicalProfileResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /user/medical-profile [get]
func (h *Handler) getMedicalProfile(c *gin.Context) {
	log := h.logger.WithField("method", "getMedicalProfile")

	profile, err := h.services.Profiles.GetMedicalProfile(c.Request.Context(), currentActor(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, MedicalProfileResponse{Profile: profile})
}

// @Summary Save medical profile
// @Description Create or replace the caller's medical profile. Blood type and emergency contact are required.
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MedicalProfileRequest true "Medical profile"
// @Success 200 {object} MedicalProfileResponse
// @Failure 400 {object} ErrorResponse "Blood type and emergency contact are required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /user/medical-profile [post]
func (h *Handler) saveMedicalProfile(c *gin.Context) {
	var input MedicalProfileRequest
	log := h.logger.WithField("method", "saveMedicalProfile")

	if !h.bind(c, log, &input) {
		return
	}

	profile, err := h.services.Profiles.UpsertMedicalProfile(c.Request.Context(), currentActor(c), DTOToMedicalProfileInput(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, MedicalProfileResponse{Success: true, Profile: profile})
}

// @Summary My incidents
// @Description Incidents reported by the caller, newest first.
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} IncidentListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /user/incidents [get]
func (h *Handler) listUserIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listUserIncidents")

	incidents, err := h.services.Incidents.ListUserIncidents(c.Request.Context(), currentActor(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, IncidentListResponse{
		Incidents: ModelsToIncidentResponses(incidents),
		Count:     len(incidents),
	})
}
