package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_dispatch/internal/models"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const (
	webhookQueueKey = "webhook_events"
	channelPrefix   = "incident_events:"
)

// EventType - тип события инцидента
type EventType string

const (
	EventIncidentCreated EventType = "incident.created"
	EventStatusChanged   EventType = "incident.status_changed"
	EventIncidentStale   EventType = "incident.stale"
)

// IncidentEvent - событие, уходящее во внешний вебхук и в поток инцидента
type IncidentEvent struct {
	Type         EventType       `json:"type"`
	IncidentID   uuid.UUID       `json:"incidentId"`
	DisplayID    string          `json:"displayId"`
	Status       models.Status   `json:"status"`
	Priority     models.Priority `json:"priority"`
	FacilityID   *uuid.UUID      `json:"facilityId,omitempty"`
	AssignedToID *uuid.UUID      `json:"assignedToId,omitempty"`
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	Timestamp    time.Time       `json:"timestamp"`
}

// NewIncidentEvent собирает событие из состояния инцидента
func NewIncidentEvent(eventType EventType, incident *models.Incident, at time.Time) IncidentEvent {
	return IncidentEvent{
		Type:         eventType,
		IncidentID:   incident.ID,
		DisplayID:    incident.DisplayID(),
		Status:       incident.Status,
		Priority:     incident.Priority,
		FacilityID:   incident.FacilityID,
		AssignedToID: incident.AssignedToID,
		Latitude:     incident.Latitude,
		Longitude:    incident.Longitude,
		Timestamp:    at.UTC(),
	}
}

// ChannelName - канал Redis Pub/Sub для событий одного инцидента
func ChannelName(incidentID uuid.UUID) string {
	return channelPrefix + incidentID.String()
}

// Publisher - интерфейс для публикации событий инцидентов
type Publisher interface {
	Publish(ctx context.Context, event IncidentEvent) error
}

// RedisPublisher кладет событие в очередь вебхуков и рассылает подписчикам потока
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis и в канал инцидента
func (p *RedisPublisher) Publish(ctx context.Context, event IncidentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal incident event: %w", err)
	}

	pipe := p.redisClient.TxPipeline()
	// LPUSH + BRPOP в воркере дают FIFO очередь
	pipe.LPush(ctx, webhookQueueKey, payload)
	pipe.Publish(ctx, ChannelName(event.IncidentID), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish incident event to Redis: %w", err)
	}
	return nil
}
