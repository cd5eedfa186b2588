package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_dispatch/internal/config"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

const actorKey = "actor"

// TokenParser разбирает токен сессии в пользователя
type TokenParser interface {
	Parse(token string) (models.Actor, error)
}

// APIKeyAuthMiddleware - middleware для аутентификации по API-ключу (административные маршруты)
func APIKeyAuthMiddleware(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-Key")
		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "API key required"})
			return
		}

		isValid := false
		for _, key := range cfg.APIKeys {
			if key == apiKey {
				isValid = true
				break
			}
		}

		if !isValid {
			log.Warn("Invalid API key provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid API key"})
			return
		}

		c.Next()
	}
}

// SessionMiddleware проверяет токен сессии из заголовка Authorization и кладет пользователя в контекст запроса
func SessionMiddleware(tokens TokenParser, log *logrus.Logger) gin.HandlerFunc {
	return sessionMiddleware(tokens, log, false)
}

// StreamSessionMiddleware дополнительно принимает токен из ?token=: браузерный WebSocket
// не умеет передавать заголовки. Используется только на маршруте потока.
func StreamSessionMiddleware(tokens TokenParser, log *logrus.Logger) gin.HandlerFunc {
	return sessionMiddleware(tokens, log, true)
}

func sessionMiddleware(tokens TokenParser, log *logrus.Logger, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if token == "" && allowQuery {
			token = c.Query("token")
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}

		actor, err := tokens.Parse(token)
		if err != nil {
			log.WithError(err).Warn("Invalid session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// currentActor возвращает пользователя сессии; без сессии - нулевой Actor
func currentActor(c *gin.Context) models.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(models.Actor); ok {
			return actor
		}
	}
	return models.Actor{}
}
