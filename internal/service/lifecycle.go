package service

import (
	"slices"
	"strings"

	"github.com/shenikar/emergency_dispatch/internal/models"
)

// Action - действие над инцидентом, меняющее его статус
type Action string

const (
	ActionAccept   Action = "accept"
	ActionDispatch Action = "dispatch"
	ActionResolve  Action = "resolve"
	ActionCancel   Action = "cancel"
)

type rule struct {
	from []models.Status
	to   models.Status
}

var lifecycle = map[Action]rule{
	ActionAccept: {
		from: []models.Status{models.StatusPending},
		to:   models.StatusAssigned,
	},
	ActionDispatch: {
		from: []models.Status{models.StatusAssigned},
		to:   models.StatusInProgress,
	},
	ActionResolve: {
		from: []models.Status{models.StatusAssigned, models.StatusInProgress},
		to:   models.StatusResolved,
	},
	ActionCancel: {
		from: []models.Status{models.StatusPending, models.StatusAssigned, models.StatusInProgress},
		to:   models.StatusCancelled,
	},
}

// NextStatus возвращает статус, в который переводит действие, или ошибку конфликта,
// если из текущего статуса действие недопустимо.
func NextStatus(action Action, current models.Status) (models.Status, error) {
	r, ok := lifecycle[action]
	if !ok {
		return "", newError(ErrValidation, "unknown action %q", action)
	}
	if !slices.Contains(r.from, current) {
		return "", rejectTransition(action, current)
	}
	return r.to, nil
}

// AllowedFrom - статусы, из которых действие допустимо
func AllowedFrom(action Action) []models.Status {
	return slices.Clone(lifecycle[action].from)
}

// ActionForStatus сопоставляет целевой статус из PATCH с действием жизненного цикла
func ActionForStatus(target models.Status) (Action, error) {
	switch target {
	case models.StatusAssigned:
		return ActionAccept, nil
	case models.StatusInProgress:
		return ActionDispatch, nil
	case models.StatusResolved:
		return ActionResolve, nil
	case models.StatusCancelled:
		return ActionCancel, nil
	case models.StatusPending:
		return "", newError(ErrConflict, "Incident cannot be returned to pending")
	}
	return "", newError(ErrValidation, "Invalid status %q", target)
}

func rejectTransition(action Action, current models.Status) *Error {
	if current == models.StatusPending && (action == ActionDispatch || action == ActionResolve) {
		return newError(ErrConflict, "Incident must be accepted first")
	}
	return newError(ErrConflict, "Incident already %s", strings.ToLower(string(current)))
}
