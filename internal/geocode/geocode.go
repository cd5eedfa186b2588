// Package geocode переводит координаты в человекочитаемый адрес через Google Maps.
package geocode

import (
	"context"
	"fmt"

	"github.com/shenikar/emergency_dispatch/internal/config"
	"github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"
)

// Resolver - обратное геокодирование
type Resolver interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// MapsResolver - реализация Resolver на Google Maps Geocoding API
type MapsResolver struct {
	client *maps.Client
}

func NewMapsResolver(client *maps.Client) *MapsResolver {
	return &MapsResolver{client: client}
}

// ReverseGeocode возвращает отформатированный адрес первого результата
func (r *MapsResolver) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	req := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lon},
	}

	results, err := r.client.ReverseGeocode(ctx, req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode failed: %w", err)
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].FormattedAddress, nil
}

// NoopResolver используется, когда ключ Maps не задан
type NoopResolver struct{}

func (NoopResolver) ReverseGeocode(context.Context, float64, float64) (string, error) {
	return "", nil
}

// NewResolver собирает резолвер по конфигурации
func NewResolver(cfg *config.Config, logger *logrus.Logger) (Resolver, error) {
	if cfg.MapsAPIKey == "" {
		logger.Warn("MAPS_API_KEY is not set, reverse geocoding is disabled")
		return NoopResolver{}, nil
	}

	client, err := maps.NewClient(maps.WithAPIKey(cfg.MapsAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return NewMapsResolver(client), nil
}
