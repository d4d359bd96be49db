// Package memory - хранилище в памяти процесса. Используется в режиме STORAGE_DRIVER=memory и в тестах.
//
// Транзакции реализованы журналом отмены: изменения видны сразу, при ошибке fn журнал
// откатывается в обратном порядке. Изоляции между транзакциями нет.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/geo"
	"github.com/shenikar/tourist_safety/internal/models"
)

type journalKey struct{}

type journal struct {
	undo []func()
}

// Store - общее состояние всех репозиториев в памяти
type Store struct {
	mu sync.Mutex

	nextLocationID int64
	locations      map[string][]models.LocationReport
	alerts         map[uuid.UUID]*models.Alert
	emergencies    map[uuid.UUID]*models.Emergency
	zones          map[uuid.UUID]models.Zone
	devices        map[string]*models.Device
	responders     []models.Responder
	scores         map[string][]models.ScorePoint

	failures map[string]error
}

func New() *Store {
	return &Store{
		locations:   make(map[string][]models.LocationReport),
		alerts:      make(map[uuid.UUID]*models.Alert),
		emergencies: make(map[uuid.UUID]*models.Emergency),
		zones:       make(map[uuid.UUID]models.Zone),
		devices:     make(map[string]*models.Device),
		scores:      make(map[string][]models.ScorePoint),
		failures:    make(map[string]error),
	}
}

// WithinTx выполняет fn в транзакции. Вложенный вызов присоединяется к внешней.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}

	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		s.mu.Lock()
		for i := len(j.undo) - 1; i >= 0; i-- {
			j.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// FailOn заставляет операцию op (например, "alerts.create") возвращать err. nil снимает сбой.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// AddResponder добавляет подразделение реагирования
func (s *Store) AddResponder(r models.Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responders = append(s.responders, r)
}

func (s *Store) Locations() *LocationRepository { return &LocationRepository{s: s} }
func (s *Store) Alerts() *AlertRepository { return &AlertRepository{s: s} }
func (s *Store) Emergencies() *EmergencyRepository { return &EmergencyRepository{s: s} }
func (s *Store) Zones() *ZoneRepository { return &ZoneRepository{s: s} }
func (s *Store) Devices() *DeviceRepository { return &DeviceRepository{s: s} }
func (s *Store) Responders() *ResponderRepository { return &ResponderRepository{s: s} }
func (s *Store) Scores() *ScoreRepository { return &ScoreRepository{s: s} }

// begin захватывает мьютекс и проверяет внедренный сбой. Вызывающий обязан вызвать s.mu.Unlock.
func (s *Store) begin(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if err := s.failures[op]; err != nil {
		s.mu.Unlock()
		return fmt.Errorf("memory: %s: %w", op, err)
	}
	return nil
}

// record сохраняет действие отмены в журнале транзакции. Вызывается под s.mu.
func record(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}

type LocationRepository struct{ s *Store }

func (r *LocationRepository) Append(ctx context.Context, report *models.LocationReport) error {
	s := r.s
	if err := s.begin(ctx, "locations.append"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.nextLocationID++
	report.ID = s.nextLocationID
	list := s.locations[report.SubjectID]
	idx := sort.Search(len(list), func(i int) bool { return list[i].Timestamp.After(report.Timestamp) })
	list = append(list, models.LocationReport{})
	copy(list[idx+1:], list[idx:])
	list[idx] = *report
	s.locations[report.SubjectID] = list

	id, subjectID := report.ID, report.SubjectID
	record(ctx, func() {
		list := s.locations[subjectID]
		for i := range list {
			if list[i].ID == id {
				s.locations[subjectID] = append(list[:i], list[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r *LocationRepository) RecentFor(ctx context.Context, subjectID string, since time.Time) ([]models.LocationReport, error) {
	s := r.s
	if err := s.begin(ctx, "locations.recent"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	var out []models.LocationReport
	for _, rep := range s.locations[subjectID] {
		if !rep.Timestamp.Before(since) {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (r *LocationRepository) SubjectsSince(ctx context.Context, since time.Time) ([]string, error) {
	s := r.s
	if err := s.begin(ctx, "locations.subjects"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	var out []string
	for subjectID, list := range s.locations {
		if len(list) > 0 && !list[len(list)-1].Timestamp.Before(since) {
			out = append(out, subjectID)
		}
	}
	sort.Strings(out)
	return out, nil
}

type AlertRepository struct{ s *Store }

func (r *AlertRepository) FindActive(ctx context.Context, subjectID string, cause models.AlertCause, causeKey string) (*models.Alert, error) {
	s := r.s
	if err := s.begin(ctx, "alerts.find_active"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if a := s.activeLocked(subjectID, cause, causeKey); a != nil {
		return copyAlert(a), nil
	}
	return nil, nil
}

func (r *AlertRepository) LatestResolved(ctx context.Context, subjectID string, cause models.AlertCause, causeKey string) (*models.Alert, error) {
	s := r.s
	if err := s.begin(ctx, "alerts.latest_resolved"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	var latest *models.Alert
	for _, a := range s.alerts {
		if a.SubjectID != subjectID || a.Cause != cause || a.CauseKey != causeKey || a.ResolvedAt == nil {
			continue
		}
		if latest == nil || a.ResolvedAt.After(*latest.ResolvedAt) {
			latest = a
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyAlert(latest), nil
}

// Create сохраняет алерт. Для дедуплицируемых причин второй активный алерт - models.ErrConflict.
func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	s := r.s
	if err := s.begin(ctx, "alerts.create"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if alert.Cause.Deduplicated() && s.activeLocked(alert.SubjectID, alert.Cause, alert.CauseKey) != nil {
		return models.ErrConflict
	}
	if _, exists := s.alerts[alert.ID]; exists {
		return models.ErrConflict
	}
	s.alerts[alert.ID] = copyAlert(alert)

	id := alert.ID
	record(ctx, func() { delete(s.alerts, id) })
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	s := r.s
	if err := s.begin(ctx, "alerts.get"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyAlert(a), nil
}

func (r *AlertRepository) Transition(ctx context.Context, id uuid.UUID, from, to models.AlertStatus, at time.Time, by string) error {
	s := r.s
	if err := s.begin(ctx, "alerts.transition"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return models.ErrNotFound
	}
	if a.Status != from {
		return models.ErrInvalidTransition
	}

	prev := *a
	a.Status = to
	switch to {
	case models.AlertAcknowledged:
		a.AcknowledgedAt = &at
		a.AcknowledgedBy = by
	case models.AlertResolved:
		a.ResolvedAt = &at
	}
	record(ctx, func() { *s.alerts[id] = prev })
	return nil
}

func (r *AlertRepository) ListForSubject(ctx context.Context, subjectID string, filter models.AlertFilter) ([]models.Alert, error) {
	s := r.s
	if err := s.begin(ctx, "alerts.list"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	var out []models.Alert
	for _, a := range s.alerts {
		if a.SubjectID != subjectID || a.CreatedAt.Before(filter.Since) {
			continue
		}
		if filter.Cause != "" && a.Cause != filter.Cause {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *copyAlert(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *Store) activeLocked(subjectID string, cause models.AlertCause, causeKey string) *models.Alert {
	for _, a := range s.alerts {
		if a.SubjectID == subjectID && a.Cause == cause && a.CauseKey == causeKey && a.Status == models.AlertActive {
			return a
		}
	}
	return nil
}

type EmergencyRepository struct{ s *Store }

func (r *EmergencyRepository) Create(ctx context.Context, e *models.Emergency) error {
	s := r.s
	if err := s.begin(ctx, "emergencies.create"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if _, exists := s.emergencies[e.ID]; exists {
		return models.ErrConflict
	}
	cp := *e
	s.emergencies[e.ID] = &cp

	id := e.ID
	record(ctx, func() { delete(s.emergencies, id) })
	return nil
}

func (r *EmergencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Emergency, error) {
	s := r.s
	if err := s.begin(ctx, "emergencies.get"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	e, ok := s.emergencies[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *EmergencyRepository) Transition(ctx context.Context, id uuid.UUID, from, to models.EmergencyStatus, at time.Time) error {
	s := r.s
	if err := s.begin(ctx, "emergencies.transition"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	e, ok := s.emergencies[id]
	if !ok {
		return models.ErrNotFound
	}
	if e.Status != from {
		return models.ErrInvalidTransition
	}

	prev := *e
	e.Status = to
	switch to {
	case models.EmergencyDispatched:
		e.DispatchedAt = &at
	case models.EmergencyResolved:
		e.ResolvedAt = &at
	}
	record(ctx, func() { *s.emergencies[id] = prev })
	return nil
}

func (r *EmergencyRepository) SetEFIR(ctx context.Context, id uuid.UUID, number string) error {
	s := r.s
	if err := s.begin(ctx, "emergencies.set_efir"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	e, ok := s.emergencies[id]
	if !ok {
		return models.ErrNotFound
	}
	e.EFIRNumber = number
	return nil
}

type ZoneRepository struct{ s *Store }

func (r *ZoneRepository) Upsert(ctx context.Context, zone *models.Zone) error {
	s := r.s
	if err := s.begin(ctx, "zones.upsert"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	z := *zone
	z.Polygon = append([]models.Point(nil), zone.Polygon...)
	s.zones[zone.ID] = z
	return nil
}

func (r *ZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	s := r.s
	if err := s.begin(ctx, "zones.delete"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if _, ok := s.zones[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.zones, id)
	return nil
}

func (r *ZoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	s := r.s
	if err := s.begin(ctx, "zones.get"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	z, ok := s.zones[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &z, nil
}

func (r *ZoneRepository) List(ctx context.Context) ([]models.Zone, error) {
	s := r.s
	if err := s.begin(ctx, "zones.list"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	out := make([]models.Zone, 0, len(s.zones))
	for _, z := range s.zones {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type DeviceRepository struct{ s *Store }

func (r *DeviceRepository) Register(ctx context.Context, device *models.Device) error {
	s := r.s
	if err := s.begin(ctx, "devices.register"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if _, exists := s.devices[device.DeviceID]; exists {
		return models.ErrConflict
	}
	cp := *device
	s.devices[device.DeviceID] = &cp
	return nil
}

func (r *DeviceRepository) GetByDeviceID(ctx context.Context, deviceID string) (*models.Device, error) {
	s := r.s
	if err := s.begin(ctx, "devices.get"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	d, ok := s.devices[deviceID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *DeviceRepository) Heartbeat(ctx context.Context, deviceID string, at time.Time, battery *int, point *models.Point, health *models.HealthMetrics) error {
	s := r.s
	if err := s.begin(ctx, "devices.heartbeat"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	d, ok := s.devices[deviceID]
	if !ok {
		return models.ErrNotFound
	}
	d.LastHeartbeat = at
	if battery != nil {
		d.BatteryLevel = battery
	}
	if point != nil {
		d.Point = point
	}
	if health != nil {
		d.Health = health
	}
	if d.Status == models.DeviceInactive {
		d.Status = models.DeviceActive
	}
	return nil
}

func (r *DeviceRepository) MarkSOS(ctx context.Context, deviceID string, point models.Point, health *models.HealthMetrics, at time.Time) error {
	s := r.s
	if err := s.begin(ctx, "devices.mark_sos"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	d, ok := s.devices[deviceID]
	if !ok {
		return models.ErrNotFound
	}

	prev := *d
	d.Status = models.DeviceSOS
	d.Point = &point
	d.LastHeartbeat = at
	if health != nil {
		d.Health = health
	}
	record(ctx, func() { *s.devices[deviceID] = prev })
	return nil
}

type ResponderRepository struct{ s *Store }

// Nearest возвращает ближайшее активное подразделение в радиусе maxKm
func (r *ResponderRepository) Nearest(ctx context.Context, p models.Point, maxKm float64) (*models.Responder, error) {
	s := r.s
	if err := s.begin(ctx, "responders.nearest"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	var (
		best     *models.Responder
		bestDist = math.Inf(1)
	)
	for i := range s.responders {
		resp := s.responders[i]
		if !resp.Active {
			continue
		}
		d := geo.HaversineDistanceKm(p, resp.Point)
		if d <= maxKm && d < bestDist {
			best, bestDist = &resp, d
		}
	}
	return best, nil
}

type ScoreRepository struct{ s *Store }

func (r *ScoreRepository) AppendHistory(ctx context.Context, subjectID string, point models.ScorePoint) error {
	s := r.s
	if err := s.begin(ctx, "scores.append"); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.scores[subjectID] = append(s.scores[subjectID], point)
	return nil
}

func (r *ScoreRepository) History(ctx context.Context, subjectID string, limit int) ([]models.ScorePoint, error) {
	s := r.s
	if err := s.begin(ctx, "scores.history"); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	list := s.scores[subjectID]
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	return append([]models.ScorePoint(nil), list...), nil
}

func copyAlert(a *models.Alert) *models.Alert {
	cp := *a
	if a.Metadata != nil {
		cp.Metadata = make(map[string]string, len(a.Metadata))
		for k, v := range a.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}
