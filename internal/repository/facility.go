package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/shenikar/emergency_dispatch/internal/service"
)

type FacilityRepository struct {
	db *pgxpool.Pool
}

func NewFacilityRepository(db *pgxpool.Pool) service.FacilityRepository {
	return &FacilityRepository{db: db}
}

// ListFacilities возвращает весь справочник учреждений
func (r *FacilityRepository) ListFacilities(ctx context.Context) ([]*models.Facility, error) {
	query := `
		SELECT id, name, address, city, state, postal_code, phone, latitude, longitude, created_at
		FROM facilities
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer rows.Close()

	facilities := make([]*models.Facility, 0)
	for rows.Next() {
		f := &models.Facility{}
		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Address,
			&f.City,
			&f.State,
			&f.PostalCode,
			&f.Phone,
			&f.Latitude,
			&f.Longitude,
			&f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan facility row: %w", err)
		}
		facilities = append(facilities, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error facility iteration: %w", err)
	}
	return facilities, nil
}
