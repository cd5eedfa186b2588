package models

import "github.com/google/uuid"

// Actor - пользователь текущей сессии
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsStaff() bool {
	return a.Role == RoleHospitalStaff
}

func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}
