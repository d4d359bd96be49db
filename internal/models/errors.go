package models

import "errors"

// Ошибки предметной области. Репозитории и сервисы возвращают их (обычно обернутыми),
// а HTTP-слой сопоставляет их со статусами через errors.Is.
var (
	ErrInvalidGeometry     = errors.New("invalid geometry")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrNotFound            = errors.New("not found")
	ErrDuplicateSuppressed = errors.New("duplicate suppressed")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrInvalidArgument     = errors.New("invalid argument")
	// ErrConflict возвращается хранилищем при нарушении уникальности активного алерта
	ErrConflict = errors.New("conflict")
)
