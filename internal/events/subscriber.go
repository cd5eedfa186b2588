package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=subscriber.go -destination=mocks/mock_subscriber.go -package=mocks

// Subscriber - подписка на события одного инцидента
type Subscriber interface {
	Subscribe(ctx context.Context, incidentID uuid.UUID) (<-chan IncidentEvent, func() error, error)
}

// RedisSubscriber читает события из канала Redis Pub/Sub
type RedisSubscriber struct {
	redisClient *redis.Client
	logger      *logrus.Logger
}

func NewRedisSubscriber(client *redis.Client, logger *logrus.Logger) *RedisSubscriber {
	return &RedisSubscriber{
		redisClient: client,
		logger:      logger,
	}
}

// Subscribe возвращает канал событий и функцию закрытия подписки.
// Канал закрывается после закрытия подписки или отмены контекста.
func (s *RedisSubscriber) Subscribe(ctx context.Context, incidentID uuid.UUID) (<-chan IncidentEvent, func() error, error) {
	channel := ChannelName(incidentID)
	pubsub := s.redisClient.Subscribe(ctx, channel)

	// Дожидаемся подтверждения подписки, иначе первые события могут потеряться
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	log := s.logger.WithField("channel", channel)
	out := make(chan IncidentEvent)
	go func() {
		defer close(out)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event IncidentEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.WithError(err).Warn("Failed to unmarshal incident event")
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, pubsub.Close, nil
}
