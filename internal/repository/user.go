package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/shenikar/emergency_dispatch/internal/service"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) service.UserRepository {
	return &UserRepository{db: db}
}

// CreateUser создает пользователя; занятый email возвращает service.ErrConflict
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query, user.Email, user.Name, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, service.ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getUser(ctx, `WHERE u.id = $1`, id)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `WHERE u.email = $1`, email)
}

// GetUserByStaffID ищет сотрудника по табельному номеру (facility_users.staff_id)
func (r *UserRepository) GetUserByStaffID(ctx context.Context, staffID string) (*models.User, error) {
	return r.getUser(ctx, `JOIN facility_users fu ON fu.user_id = u.id WHERE fu.staff_id = $1`, staffID)
}

func (r *UserRepository) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.password_hash, u.role, u.created_at
		FROM users u ` + where + `;`

	user := &models.User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %v not found: %w", arg, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetStaffAssignment возвращает прикрепление сотрудника к учреждению
func (r *UserRepository) GetStaffAssignment(ctx context.Context, userID uuid.UUID) (*models.StaffAssignment, error) {
	query := `
		SELECT fu.id, fu.user_id, fu.facility_id, f.name, fu.staff_id, fu.role, fu.department, fu.position
		FROM facility_users fu
		JOIN facilities f ON f.id = fu.facility_id
		WHERE fu.user_id = $1;
	`
	a := &models.StaffAssignment{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.FacilityID,
		&a.FacilityName,
		&a.StaffID,
		&a.Role,
		&a.Department,
		&a.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("staff assignment for user %s not found: %w", userID, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get staff assignment: %w", err)
	}
	return a, nil
}

func (r *UserRepository) GetMedicalProfile(ctx context.Context, userID uuid.UUID) (*models.MedicalProfile, error) {
	query := `
		SELECT id, user_id, blood_type, allergies, conditions, medications,
			emergency_contact_name, emergency_contact_phone, updated_at
		FROM medical_profiles
		WHERE user_id = $1;
	`
	p := &models.MedicalProfile{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.BloodType,
		&p.Allergies,
		&p.Conditions,
		&p.Medications,
		&p.EmergencyContactName,
		&p.EmergencyContactPhone,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("medical profile for user %s not found: %w", userID, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get medical profile: %w", err)
	}
	return p, nil
}

// UpsertMedicalProfile создает профиль или обновляет существующий (один профиль на пользователя)
func (r *UserRepository) UpsertMedicalProfile(ctx context.Context, profile *models.MedicalProfile) error {
	query := `
		INSERT INTO medical_profiles (
			user_id, blood_type, allergies, conditions, medications,
			emergency_contact_name, emergency_contact_phone
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			blood_type = EXCLUDED.blood_type,
			allergies = EXCLUDED.allergies,
			conditions = EXCLUDED.conditions,
			medications = EXCLUDED.medications,
			emergency_contact_name = EXCLUDED.emergency_contact_name,
			emergency_contact_phone = EXCLUDED.emergency_contact_phone,
			updated_at = NOW()
		RETURNING id, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.BloodType,
		profile.Allergies,
		profile.Conditions,
		profile.Medications,
		profile.EmergencyContactName,
		profile.EmergencyContactPhone,
	).Scan(&profile.ID, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert medical profile: %w", err)
	}
	return nil
}
