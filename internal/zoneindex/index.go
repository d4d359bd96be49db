// Package zoneindex хранит текущий набор геозон и отвечает на запрос
// "какие зоны содержат точку P в момент T".
//
// Индекс читается намного чаще, чем изменяется: читатели работают с неизменяемым снимком,
// писатели строят новый снимок и атомарно подменяют указатель.
package zoneindex

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/geo/s2"
	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/geo"
	"github.com/shenikar/tourist_safety/internal/models"
)

type entry struct {
	zone   models.Zone
	bounds s2.Rect
	// окно активности в минутах суток, hasHours=false - зона активна всегда
	hasHours   bool
	start, end int
	loc        *time.Location
}

type snapshot struct {
	entries map[uuid.UUID]*entry
}

// Index - потокобезопасный индекс зон
type Index struct {
	current atomic.Pointer[snapshot]
	writeMu sync.Mutex
	loc     *time.Location
}

// New создает пустой индекс. loc - часовой пояс по умолчанию для окон активности.
func New(loc *time.Location) *Index {
	if loc == nil {
		loc = time.UTC
	}
	idx := &Index{loc: loc}
	idx.current.Store(&snapshot{entries: map[uuid.UUID]*entry{}})
	return idx
}

// Load заменяет содержимое индекса целиком. Некорректная зона отклоняет всю загрузку.
func (i *Index) Load(zones []models.Zone) error {
	entries := make(map[uuid.UUID]*entry, len(zones))
	for _, z := range zones {
		e, err := i.compile(z)
		if err != nil {
			return fmt.Errorf("zone %s: %w", z.ID, err)
		}
		entries[z.ID] = e
	}

	i.writeMu.Lock()
	defer i.writeMu.Unlock()
	i.current.Store(&snapshot{entries: entries})
	return nil
}

// Upsert добавляет или заменяет зону. Геометрия проверяется до публикации снимка.
func (i *Index) Upsert(zone models.Zone) error {
	e, err := i.compile(zone)
	if err != nil {
		return err
	}

	i.writeMu.Lock()
	defer i.writeMu.Unlock()
	old := i.current.Load()
	next := make(map[uuid.UUID]*entry, len(old.entries)+1)
	for id, v := range old.entries {
		next[id] = v
	}
	next[zone.ID] = e
	i.current.Store(&snapshot{entries: next})
	return nil
}

// Remove удаляет зону из индекса
func (i *Index) Remove(id uuid.UUID) error {
	i.writeMu.Lock()
	defer i.writeMu.Unlock()
	old := i.current.Load()
	if _, ok := old.entries[id]; !ok {
		return fmt.Errorf("zone %s: %w", id, models.ErrNotFound)
	}
	next := make(map[uuid.UUID]*entry, len(old.entries))
	for k, v := range old.entries {
		if k != id {
			next[k] = v
		}
	}
	i.current.Store(&snapshot{entries: next})
	return nil
}

// ZonesContaining возвращает все активные в момент at зоны, содержащие точку.
// Результат упорядочен от самой опасной зоны к наименее опасной.
func (i *Index) ZonesContaining(p models.Point, at time.Time) []models.Zone {
	snap := i.current.Load()
	ll := geo.LatLng(p)

	var out []models.Zone
	for _, e := range snap.entries {
		if !e.bounds.ContainsLatLng(ll) {
			continue
		}
		if e.hasHours && !e.activeAt(at) {
			continue
		}
		if geo.Contains(e.zone.Polygon, p) {
			out = append(out, e.zone)
		}
	}
	sortBySeverity(out)
	return out
}

// Get возвращает зону по идентификатору
func (i *Index) Get(id uuid.UUID) (models.Zone, bool) {
	e, ok := i.current.Load().entries[id]
	if !ok {
		return models.Zone{}, false
	}
	return e.zone, true
}

// List возвращает все зоны индекса
func (i *Index) List() []models.Zone {
	snap := i.current.Load()
	out := make([]models.Zone, 0, len(snap.entries))
	for _, e := range snap.entries {
		out = append(out, e.zone)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// Validate проверяет зону по тем же правилам, что и Upsert, не изменяя индекс
func (i *Index) Validate(zone models.Zone) error {
	_, err := i.compile(zone)
	return err
}

func (i *Index) Len() int {
	return len(i.current.Load().entries)
}

func (i *Index) compile(z models.Zone) (*entry, error) {
	if z.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: zone id is required", models.ErrInvalidArgument)
	}
	if !z.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown zone kind %q", models.ErrInvalidArgument, z.Kind)
	}
	if err := z.ValidateRiskLevel(); err != nil {
		return nil, err
	}
	if err := geo.ValidateRing(z.Polygon); err != nil {
		return nil, err
	}

	polygon := make([]models.Point, len(z.Polygon))
	copy(polygon, z.Polygon)
	z.Polygon = polygon

	e := &entry{zone: z, bounds: geo.Bounds(polygon)}
	if z.ActiveHours != nil {
		start, end, err := z.ActiveHours.Window()
		if err != nil {
			return nil, err
		}
		loc, err := z.ActiveHours.Location(i.loc)
		if err != nil {
			return nil, err
		}
		hours := *z.ActiveHours
		e.zone.ActiveHours = &hours
		e.hasHours, e.start, e.end, e.loc = true, start, end, loc
	}
	return e, nil
}

func (e *entry) activeAt(at time.Time) bool {
	local := at.In(e.loc)
	minute := local.Hour()*60 + local.Minute()
	return e.zone.ActiveHours.Includes(minute, e.start, e.end)
}

func sortBySeverity(zones []models.Zone) {
	sort.SliceStable(zones, func(a, b int) bool {
		ra, rb := zones[a].Kind.Rank(), zones[b].Kind.Rank()
		if ra != rb {
			return ra > rb
		}
		if zones[a].RiskLevel != zones[b].RiskLevel {
			return zones[a].RiskLevel > zones[b].RiskLevel
		}
		return zones[a].ID.String() < zones[b].ID.String()
	})
}
