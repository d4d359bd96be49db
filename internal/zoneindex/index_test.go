package zoneindex

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(minLon, minLat, maxLon, maxLat float64) []models.Point {
	return []models.Point{
		{Longitude: minLon, Latitude: minLat},
		{Longitude: maxLon, Latitude: minLat},
		{Longitude: maxLon, Latitude: maxLat},
		{Longitude: minLon, Latitude: maxLat},
		{Longitude: minLon, Latitude: minLat},
	}
}

func newZone(name string, kind models.ZoneKind, ring []models.Point) models.Zone {
	return models.Zone{ID: uuid.New(), Name: name, Kind: kind, Polygon: ring, RiskLevel: 5}
}

var noon = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestZonesContaining_OverlappingZonesAllReturned(t *testing.T) {
	idx := New(time.UTC)
	outer := newZone("old town", models.ZoneHighRisk, rect(0, 0, 10, 10))
	inner := newZone("museum square", models.ZoneTouristArea, rect(4, 4, 6, 6))
	far := newZone("harbour", models.ZoneRestricted, rect(20, 20, 30, 30))
	require.NoError(t, idx.Load([]models.Zone{inner, outer, far}))

	zones := idx.ZonesContaining(models.Point{Longitude: 5, Latitude: 5}, noon)

	require.Len(t, zones, 2)
	assert.Equal(t, outer.ID, zones[0].ID, "most severe zone first")
	assert.Equal(t, inner.ID, zones[1].ID)
}

func TestZonesContaining_NoMatch(t *testing.T) {
	idx := New(time.UTC)
	require.NoError(t, idx.Upsert(newZone("a", models.ZoneRestricted, rect(0, 0, 10, 10))))

	assert.Empty(t, idx.ZonesContaining(models.Point{Longitude: 15, Latitude: 5}, noon))
}

func TestZonesContaining_BoundaryPoint(t *testing.T) {
	idx := New(time.UTC)
	z := newZone("a", models.ZoneRestricted, rect(0, 0, 10, 10))
	require.NoError(t, idx.Upsert(z))

	zones := idx.ZonesContaining(models.Point{Longitude: 0, Latitude: 5}, noon)
	require.Len(t, zones, 1)
	assert.Equal(t, z.ID, zones[0].ID)
}

func TestZonesContaining_FractionalMaxEdges(t *testing.T) {
	idx := New(time.UTC)
	z := newZone("pier", models.ZoneHighRisk, rect(-1, -1, 77.209, 77.209))
	require.NoError(t, idx.Upsert(z))

	edges := []models.Point{
		{Longitude: 77.209, Latitude: 0},
		{Longitude: 0, Latitude: 77.209},
		{Longitude: 77.209, Latitude: 77.209},
		{Longitude: 12.345, Latitude: -1},
	}
	for _, p := range edges {
		zones := idx.ZonesContaining(p, noon)
		require.Len(t, zones, 1, "point %+v", p)
		assert.Equal(t, z.ID, zones[0].ID)
	}
	assert.Empty(t, idx.ZonesContaining(models.Point{Longitude: 77.2091, Latitude: 0}, noon))
}

func TestZonesContaining_ActiveHours(t *testing.T) {
	idx := New(time.UTC)
	night := newZone("night market", models.ZoneHighRisk, rect(0, 0, 10, 10))
	night.ActiveHours = &models.ActiveHours{Start: "22:00", End: "04:30"}
	day := newZone("beach", models.ZoneRestricted, rect(0, 0, 10, 10))
	day.ActiveHours = &models.ActiveHours{Start: "09:00", End: "18:00"}
	require.NoError(t, idx.Load([]models.Zone{night, day}))
	p := models.Point{Longitude: 5, Latitude: 5}

	tests := []struct {
		name string
		at   time.Time
		want []uuid.UUID
	}{
		{name: "noon", at: noon, want: []uuid.UUID{day.ID}},
		{name: "before midnight", at: time.Date(2024, 5, 10, 23, 15, 0, 0, time.UTC), want: []uuid.UUID{night.ID}},
		{name: "after midnight", at: time.Date(2024, 5, 11, 3, 0, 0, 0, time.UTC), want: []uuid.UUID{night.ID}},
		{name: "window end inclusive", at: time.Date(2024, 5, 11, 4, 30, 59, 0, time.UTC), want: []uuid.UUID{night.ID}},
		{name: "gap", at: time.Date(2024, 5, 11, 7, 0, 0, 0, time.UTC), want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []uuid.UUID
			for _, z := range idx.ZonesContaining(p, tt.at) {
				got = append(got, z.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZonesContaining_ZoneTimezone(t *testing.T) {
	idx := New(time.UTC)
	z := newZone("tokyo night", models.ZoneRestricted, rect(0, 0, 10, 10))
	z.ActiveHours = &models.ActiveHours{Start: "20:00", End: "23:00", Timezone: "Asia/Tokyo"}
	require.NoError(t, idx.Upsert(z))

	// 12:00 UTC = 21:00 в Токио
	assert.Len(t, idx.ZonesContaining(models.Point{Longitude: 5, Latitude: 5}, noon), 1)
}

func TestUpsert_RejectsInvalidGeometry(t *testing.T) {
	idx := New(time.UTC)
	bad := newZone("bowtie", models.ZoneRestricted, []models.Point{
		{Longitude: 0, Latitude: 0}, {Longitude: 10, Latitude: 10}, {Longitude: 10, Latitude: 0}, {Longitude: 0, Latitude: 10}, {Longitude: 0, Latitude: 0},
	})

	err := idx.Upsert(bad)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidGeometry)
	assert.Zero(t, idx.Len())
}

func TestUpsert_RejectsBadActiveHours(t *testing.T) {
	idx := New(time.UTC)
	z := newZone("a", models.ZoneRestricted, rect(0, 0, 1, 1))
	z.ActiveHours = &models.ActiveHours{Start: "25:00", End: "02:00"}

	err := idx.Upsert(z)

	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestUpsert_RiskLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		want    int
		wantErr bool
	}{
		{name: "omitted defaults to lowest", level: 0, want: models.DefaultRiskLevel},
		{name: "lower bound", level: 1, want: 1},
		{name: "upper bound", level: 10, want: 10},
		{name: "negative", level: -3, wantErr: true},
		{name: "above range", level: 42, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := New(time.UTC)
			z := newZone("a", models.ZoneRestricted, rect(0, 0, 1, 1))
			z.RiskLevel = tt.level

			err := idx.Upsert(z)

			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidArgument)
				assert.Zero(t, idx.Len())
				return
			}
			require.NoError(t, err)
			got, ok := idx.Get(z.ID)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.RiskLevel)
		})
	}
}

func TestUpsert_ReplacesZone(t *testing.T) {
	idx := New(time.UTC)
	z := newZone("a", models.ZoneRestricted, rect(0, 0, 10, 10))
	require.NoError(t, idx.Upsert(z))

	z.Polygon = rect(20, 20, 30, 30)
	require.NoError(t, idx.Upsert(z))

	assert.Equal(t, 1, idx.Len())
	assert.Empty(t, idx.ZonesContaining(models.Point{Longitude: 5, Latitude: 5}, noon))
	assert.Len(t, idx.ZonesContaining(models.Point{Longitude: 25, Latitude: 25}, noon), 1)
}

func TestRemove(t *testing.T) {
	idx := New(time.UTC)
	z := newZone("a", models.ZoneRestricted, rect(0, 0, 10, 10))
	require.NoError(t, idx.Upsert(z))

	require.NoError(t, idx.Remove(z.ID))
	assert.Empty(t, idx.ZonesContaining(models.Point{Longitude: 5, Latitude: 5}, noon))
	assert.ErrorIs(t, idx.Remove(z.ID), models.ErrNotFound)
}

func TestIndex_ConcurrentReadersAndWriters(t *testing.T) {
	idx := New(time.UTC)
	stable := newZone("stable", models.ZoneRestricted, rect(0, 0, 10, 10))
	require.NoError(t, idx.Upsert(stable))
	p := models.Point{Longitude: 5, Latitude: 5}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				z := newZone("churn", models.ZoneSafe, rect(0, 0, 10, 10))
				_ = idx.Upsert(z)
				_ = idx.Remove(z.ID)
			}
		}()
	}
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				found := false
				for _, z := range idx.ZonesContaining(p, noon) {
					if z.ID == stable.ID {
						found = true
					}
				}
				assert.True(t, found)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, idx.Len())
}
