package service

import (
	"errors"
	"fmt"

	"github.com/shenikar/emergency_dispatch/internal/models"
)

// Категории ошибок бизнес-логики. Обработчики HTTP сопоставляют их с кодами ответа.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
)

// Error - ошибка с категорией и сообщением, которое можно показать клиенту
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// StatusMismatchError возвращает хранилище, когда условное обновление не нашло
// запись в одном из ожидаемых статусов (запись при этом существует).
type StatusMismatchError struct {
	Current models.Status
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("incident status is %s", e.Current)
}

func (e *StatusMismatchError) Unwrap() error {
	return ErrConflict
}
