package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_dispatch/internal/service"
	"github.com/sirupsen/logrus"
)

// respondError сопоставляет категорию ошибки сервиса с кодом ответа.
// Конфликт перехода отдается как 400.
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	}

	if status != http.StatusInternalServerError {
		log.WithError(err).Warn("Request rejected")
		c.AbortWithStatusJSON(status, ErrorResponse{Error: publicMessage(err)})
		return
	}

	log.WithError(err).Error("Internal error")
	details := "An error occurred"
	if h.cfg.IsDevelopment() {
		details = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: "Internal Server Error", Details: details})
}

// publicMessage возвращает сообщение *service.Error, иначе текст ошибки
func publicMessage(err error) string {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return err.Error()
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message})
}
