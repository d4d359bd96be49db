package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/models"
)

// LocationStore определяет контракт хранилища отчетов о местоположении
type LocationStore interface {
	Append(ctx context.Context, report *models.LocationReport) error
	// RecentFor возвращает отчеты субъекта с Timestamp >= since, упорядоченные по времени
	RecentFor(ctx context.Context, subjectID string, since time.Time) ([]models.LocationReport, error)
	// SubjectsSince возвращает субъектов, присылавших отчеты начиная с since
	SubjectsSince(ctx context.Context, since time.Time) ([]string, error)
}

// AlertStore определяет контракт хранилища алертов.
// Create возвращает models.ErrConflict, если для дедуплицируемой причины уже есть активный алерт
// с тем же (subject, cause, causeKey). Transition - сравнение-и-замена по статусу from.
type AlertStore interface {
	FindActive(ctx context.Context, subjectID string, cause models.AlertCause, causeKey string) (*models.Alert, error)
	LatestResolved(ctx context.Context, subjectID string, cause models.AlertCause, causeKey string) (*models.Alert, error)
	Create(ctx context.Context, alert *models.Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Alert, error)
	Transition(ctx context.Context, id uuid.UUID, from, to models.AlertStatus, at time.Time, by string) error
	ListForSubject(ctx context.Context, subjectID string, filter models.AlertFilter) ([]models.Alert, error)
}

// EmergencyStore определяет контракт хранилища ЧС
type EmergencyStore interface {
	Create(ctx context.Context, emergency *models.Emergency) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Emergency, error)
	Transition(ctx context.Context, id uuid.UUID, from, to models.EmergencyStatus, at time.Time) error
	SetEFIR(ctx context.Context, id uuid.UUID, number string) error
}

// ZoneStore - постоянное хранилище геозон, источник для индекса
type ZoneStore interface {
	Upsert(ctx context.Context, zone *models.Zone) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	List(ctx context.Context) ([]models.Zone, error)
}

// DeviceStore - реестр IoT-устройств
type DeviceStore interface {
	Register(ctx context.Context, device *models.Device) error
	GetByDeviceID(ctx context.Context, deviceID string) (*models.Device, error)
	Heartbeat(ctx context.Context, deviceID string, at time.Time, battery *int, point *models.Point, health *models.HealthMetrics) error
	MarkSOS(ctx context.Context, deviceID string, point models.Point, health *models.HealthMetrics, at time.Time) error
}

// ResponderLocator находит ближайшее подразделение реагирования в радиусе maxKm.
// Возвращает nil, nil, если подходящих нет.
type ResponderLocator interface {
	Nearest(ctx context.Context, p models.Point, maxKm float64) (*models.Responder, error)
}

// ScoreStore хранит историю оценок безопасности
type ScoreStore interface {
	AppendHistory(ctx context.Context, subjectID string, point models.ScorePoint) error
	// History возвращает последние limit точек в хронологическом порядке
	History(ctx context.Context, subjectID string, limit int) ([]models.ScorePoint, error)
}

// ScoreCache - кэш рассчитанных оценок. Get возвращает nil, nil при промахе.
type ScoreCache interface {
	Get(ctx context.Context, subjectID string) (*models.SafetyScore, error)
	Set(ctx context.Context, score *models.SafetyScore) error
	Invalidate(ctx context.Context, subjectID string) error
}

// Transactor выполняет fn в одной транзакции. Вложенный вызов присоединяется к внешней транзакции.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repositories собирает внешние хранилища, с которыми работает ядро
type Repositories struct {
	Locations   LocationStore
	Alerts      AlertStore
	Emergencies EmergencyStore
	Zones       ZoneStore
	Devices     DeviceStore
	Responders  ResponderLocator
	Scores      ScoreStore
	// ScoreCache необязателен
	ScoreCache ScoreCache
	Tx         Transactor
}
