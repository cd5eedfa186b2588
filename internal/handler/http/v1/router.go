package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	session := SessionMiddleware(h.tokens, h.logger)

	// Открытые маршруты аутентификации
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.GET("/verify-staff", session, h.verifyStaff)
	}

	// Инциденты: создание, очередь и жизненный цикл
	incidents := api.Group("/incidents", session)
	{
		incidents.POST("/sos", h.createSOS)
		incidents.POST("/report", h.createReport)
		incidents.POST("/analyze", h.analyzeSymptoms)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.PATCH("/:id", h.updateIncident)
		incidents.POST("/:id/accept", h.acceptIncident)
		incidents.PATCH("/:id/accept", h.dispatchIncident)
	}
	api.GET("/incidents/:id/ws", StreamSessionMiddleware(h.tokens, h.logger), h.streamIncident)

	user := api.Group("/user", session)
	{
		user.GET("/medical-profile", h.getMedicalProfile)
		user.POST("/medical-profile", h.saveMedicalProfile)
		user.GET("/incidents", h.listUserIncidents)
	}

	// Административные маршруты по API-ключу
	admin := api.Group("/admin", APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		admin.GET("/stats", h.getStats)
		admin.POST("/facilities/refresh", h.refreshFacilities)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
