package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type seedFacility struct {
	Name       string
	Address    string
	PostalCode string
	Phone      string
	Latitude   float64
	Longitude  float64
}

// Справочник учреждений Лагоса для демонстрационного окружения
var seedFacilities = []seedFacility{
	{"Lekki Central Clinic", "15 Admiralty Way, Lekki Phase 1", "101245", "+234-803-123-4567", 6.4385, 3.4735},
	{"Mother and Child Hospital", "20 Bourdillon Road, Ikoyi", "101233", "+234-803-123-4547", 6.4544, 3.4316},
	{"Ikoyi Specialist Hospital", "32 Kingsway Road, Ikoyi", "101233", "+234-803-234-5678", 6.4533, 3.4402},
	{"Ajah Trauma Center", "45 Lekki-Epe Expressway, Ajah", "101283", "+234-803-345-6789", 6.4300, 3.5850},
}

type seedIncident struct {
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
	Priority    models.Priority
	Status      models.Status
}

var seedIncidents = []seedIncident{
	{"Chest pain and difficulty breathing", 6.4400, 3.4750, "12 Admiralty Way, Lekki", models.PriorityCritical, models.StatusPending},
	{"Severe abdominal pain", 6.4500, 3.4450, "45 Kingsway Road, Ikoyi", models.PriorityHigh, models.StatusPending},
	{"Minor injury - ankle sprain", 6.4350, 3.5200, "78 Lekki-Epe Expressway", models.PriorityMedium, models.StatusPending},
	{"Headache and fever", 6.4420, 3.4680, "34 Victoria Island", models.PriorityLow, models.StatusPending},
	{"Patient in transit - car accident", 6.4385, 3.4735, "15 Admiralty Way", models.PriorityHigh, models.StatusAssigned},
}

const (
	seedUserEmail     = "test@rivoo.com"
	seedUserPassword  = "password123"
	seedStaffEmail    = "staff@rivoo.com"
	seedStaffPassword = "hospital123"
	seedStaffID       = "HOSP-12345"
)

// Seeder заполняет базу демонстрационными данными
type Seeder struct {
	db     *pgxpool.Pool
	logger *logrus.Logger
}

func NewSeeder(db *pgxpool.Pool, logger *logrus.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Seed выполняется в одной транзакции. При reset таблицы предварительно очищаются.
func (s *Seeder) Seed(ctx context.Context, reset bool) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "Seeder",
		"method":  "Seed",
		"reset":   reset,
	})

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if reset {
			_, err := tx.Exec(ctx, `TRUNCATE incidents, facility_users, medical_profiles, facilities, users CASCADE;`)
			if err != nil {
				return fmt.Errorf("could not truncate tables: %w", err)
			}
			log.Info("Tables truncated")
		}

		facilityIDs := make([]uuid.UUID, 0, len(seedFacilities))
		for _, f := range seedFacilities {
			var id uuid.UUID
			err := tx.QueryRow(ctx, `
				INSERT INTO facilities (name, address, city, state, postal_code, phone, latitude, longitude)
				VALUES ($1, $2, 'Lagos', 'Lagos', $3, $4, $5, $6)
				RETURNING id;
			`, f.Name, f.Address, f.PostalCode, f.Phone, f.Latitude, f.Longitude).Scan(&id)
			if err != nil {
				return fmt.Errorf("could not insert facility %s: %w", f.Name, err)
			}
			facilityIDs = append(facilityIDs, id)
		}

		userID, err := insertSeedUser(ctx, tx, seedUserEmail, seedUserPassword, "Test User", models.RoleUser)
		if err != nil {
			return err
		}

		var profileID uuid.UUID
		err = tx.QueryRow(ctx, `
			INSERT INTO medical_profiles (user_id, blood_type, allergies, conditions, medications,
				emergency_contact_name, emergency_contact_phone)
			VALUES ($1, 'O+', 'None', 'None', 'None', 'Jane Doe', '+234-803-999-8888')
			RETURNING id;
		`, userID).Scan(&profileID)
		if err != nil {
			return fmt.Errorf("could not insert medical profile: %w", err)
		}

		staffUserID, err := insertSeedUser(ctx, tx, seedStaffEmail, seedStaffPassword, "Dr. John Doe", models.RoleHospitalStaff)
		if err != nil {
			return err
		}

		var assignmentID uuid.UUID
		err = tx.QueryRow(ctx, `
			INSERT INTO facility_users (facility_id, user_id, staff_id, role, department, position)
			VALUES ($1, $2, $3, 'DOCTOR', 'Emergency', 'ER Lead Physician')
			RETURNING id;
		`, facilityIDs[0], staffUserID, seedStaffID).Scan(&assignmentID)
		if err != nil {
			return fmt.Errorf("could not insert staff assignment: %w", err)
		}

		for _, inc := range seedIncidents {
			var facilityID, assignedToID *uuid.UUID
			if inc.Status == models.StatusAssigned {
				facilityID = &facilityIDs[0]
				assignedToID = &assignmentID
			}

			analysis, err := json.Marshal(models.Analysis{
				Severity:           string(inc.Priority),
				PossibleConditions: []string{},
				RecommendedAction:  "Seek medical attention",
				Symptoms:           inc.Description,
			})
			if err != nil {
				return fmt.Errorf("could not marshal analysis: %w", err)
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO incidents (user_id, status, priority, location_lat, location_lng, address,
					description, ai_analysis, medical_profile_id, facility_id, assigned_to_id, alert_source, accepted_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'USER',
					CASE WHEN $11::uuid IS NULL THEN NULL ELSE NOW() END);
			`, userID, inc.Status, inc.Priority, inc.Latitude, inc.Longitude, inc.Address,
				inc.Description, analysis, profileID, facilityID, assignedToID)
			if err != nil {
				return fmt.Errorf("could not insert incident %q: %w", inc.Description, err)
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Seeding failed")
		return fmt.Errorf("seeder: %w", err)
	}

	log.WithFields(logrus.Fields{
		"facilities": len(seedFacilities),
		"incidents":  len(seedIncidents),
	}).Info("Database seeded")
	return nil
}

func insertSeedUser(ctx context.Context, tx pgx.Tx, email, password, name string, role models.Role) (uuid.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("could not hash password for %s: %w", email, err)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`, email, name, string(hash), role).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("could not insert user %s: %w", email, err)
	}
	return id, nil
}
