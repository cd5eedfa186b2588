package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPingPeriod = 30 * time.Second
	streamPongWait   = 2 * streamPingPeriod
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamSnapshot - первое сообщение потока: текущее состояние инцидента
type StreamSnapshot struct {
	Type     string            `json:"type"`
	Incident *IncidentResponse `json:"incident"`
}

// @Summary Incident event stream
// @Description WebSocket: sends the current incident, then every lifecycle event until disconnect. The session token may be passed as ?token= on this route only.
// @Tags Incidents
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param token query string false "Session token"
// @Success 101 {object} StreamSnapshot
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Incident not found"
// @Router /incidents/{id}/ws [get]
func (h *Handler) streamIncident(c *gin.Context) {
	id, ok := parseIncidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "streamIncident").WithField("id", id)

	// Доступ проверяется так же, как для GET /incidents/{id}
	incident, err := h.services.Incidents.GetIncident(c.Request.Context(), currentActor(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	stopOnShutdown := context.AfterFunc(h.streams, cancel)
	defer stopOnShutdown()

	updates, closeSub, err := h.subscriber.Subscribe(ctx, id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	defer func() {
		if err := closeSub(); err != nil {
			log.WithError(err).Warn("Failed to close subscription")
		}
	}()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Чтение нужно только для pong и обнаружения закрытия соединения
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	snapshot := StreamSnapshot{Type: "incident.snapshot", Incident: ModelToIncidentResponse(incident)}
	if err := writeJSON(conn, snapshot); err != nil {
		log.WithError(err).Warn("Failed to send snapshot")
		return
	}
	log.Info("Incident stream opened")

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(streamWriteWait))
			log.Info("Incident stream closed")
			return
		case event, ok := <-updates:
			if !ok {
				return
			}
			if err := writeJSON(conn, event); err != nil {
				log.WithError(err).Warn("Failed to forward incident event")
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
