package models

import (
	"time"

	"github.com/google/uuid"
)

// Facility - медицинское учреждение. Справочные данные, ядро их не изменяет.
type Facility struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postalCode"`
	Phone      string    `json:"phone"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HasLocation сообщает, заданы ли обе координаты
func (f *Facility) HasLocation() bool {
	return f.Latitude != nil && f.Longitude != nil
}

type FacilitySummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// FacilityMatch - учреждение и расстояние до него от точки вызова
type FacilityMatch struct {
	Facility       *Facility
	DistanceMeters float64
}
