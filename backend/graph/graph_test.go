package graph

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

func defaultGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewDefault()
	require.NoError(t, err)
	return g
}

func TestDefaultSeed(t *testing.T) {
	g := defaultGraph(t)

	assert.Equal(t, 10, g.Len())
	assert.Equal(t, []string{
		"Andheri", "Bandra", "Borivali", "Dahisar", "Goregaon",
		"Juhu", "Kandivali", "Malad", "Mira Road", "Thane",
	}, g.Localities())
}

func TestDistance(t *testing.T) {
	g := defaultGraph(t)

	d, err := g.Distance("Andheri", "Bandra")
	require.NoError(t, err)
	assert.Equal(t, 8.0, d)

	d, err = g.Distance("Andheri", "Juhu")
	require.NoError(t, err)
	assert.Equal(t, 5.0, d)

	d, err = g.Distance("Mira Road", "Thane")
	require.NoError(t, err)
	assert.Equal(t, 10.0, d)
}

func TestDistanceSelfIsZero(t *testing.T) {
	g := defaultGraph(t)
	for _, name := range g.Localities() {
		d, err := g.Distance(name, name)
		require.NoError(t, err)
		assert.Zero(t, d, name)
	}
}

func TestDistanceSelfIsZeroWithoutSelfEntry(t *testing.T) {
	g, err := New([]model.Locality{
		{Name: "A", Distances: map[string]float64{"B": 3}},
		{Name: "B", Distances: map[string]float64{"A": 3}},
	})
	require.NoError(t, err)

	d, err := g.Distance("A", "A")
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestDistanceUnknownLocality(t *testing.T) {
	g := defaultGraph(t)

	_, err := g.Distance("Andheri", "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLocality))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "Atlantis", zErr.Metadata()["locality"])

	_, err = g.Distance("Atlantis", "Atlantis")
	assert.True(t, errors.Is(err, ErrUnknownLocality))
}

func TestDistanceFallsBackToReverseRow(t *testing.T) {
	g, err := New([]model.Locality{
		{Name: "A", Distances: map[string]float64{"A": 0, "B": 4}},
		{Name: "B", Distances: map[string]float64{"B": 0}},
		{Name: "C", Distances: map[string]float64{"C": 0}},
	})
	require.NoError(t, err)

	d, err := g.Distance("B", "A")
	require.NoError(t, err)
	assert.Equal(t, 4.0, d)

	_, err = g.Distance("A", "C")
	assert.True(t, errors.Is(err, ErrNoDistance))
}

func TestDistanceUsesRequesterRowWhenAsymmetric(t *testing.T) {
	g, err := New([]model.Locality{
		{Name: "A", Distances: map[string]float64{"B": 4}},
		{Name: "B", Distances: map[string]float64{"A": 6}},
	})
	require.NoError(t, err)

	ab, err := g.Distance("A", "B")
	require.NoError(t, err)
	ba, err := g.Distance("B", "A")
	require.NoError(t, err)
	assert.Equal(t, 4.0, ab)
	assert.Equal(t, 6.0, ba)
}

func TestNearestNeighbors(t *testing.T) {
	g := defaultGraph(t)

	got, err := g.NearestNeighbors("Andheri", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Juhu", "Goregaon", "Bandra"}, got)

	// Goregaon and Dahisar are both 8 km from Kandivali; the name breaks the tie.
	got, err = g.NearestNeighbors("Kandivali", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"Borivali", "Malad", "Dahisar", "Goregaon"}, got)

	got, err = g.NearestNeighbors("Andheri", 100)
	require.NoError(t, err)
	assert.Len(t, got, 9)
	assert.NotContains(t, got, "Andheri")

	got, err = g.NearestNeighbors("Andheri", 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = g.NearestNeighbors("Atlantis", 3)
	assert.True(t, errors.Is(err, ErrUnknownLocality))
}

func TestNearestNeighborsReturnsCopy(t *testing.T) {
	g := defaultGraph(t)

	first, err := g.NearestNeighbors("Juhu", 3)
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := g.NearestNeighbors("Juhu", 3)
	require.NoError(t, err)
	assert.Equal(t, "Andheri", second[0])
}

func TestNewIntegrityErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []model.Locality
	}{
		{
			name: "unknown distance target",
			records: []model.Locality{
				{Name: "A", Distances: map[string]float64{"A": 0, "Z": 1}},
			},
		},
		{
			name: "unknown nearest town",
			records: []model.Locality{
				{Name: "A", Distances: map[string]float64{"A": 0}, NearestTowns: []string{"Z"}},
			},
		},
		{
			name: "non-zero self distance",
			records: []model.Locality{
				{Name: "A", Distances: map[string]float64{"A": 2}},
			},
		},
		{
			name: "negative distance",
			records: []model.Locality{
				{Name: "A", Distances: map[string]float64{"B": -1}},
				{Name: "B", Distances: map[string]float64{"B": 0}},
			},
		},
		{
			name: "duplicate name",
			records: []model.Locality{
				{Name: "A", Distances: map[string]float64{"A": 0}},
				{Name: "A", Distances: map[string]float64{"A": 0}},
			},
		},
		{
			name: "empty name",
			records: []model.Locality{
				{Name: "", Distances: map[string]float64{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.records)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrGraphIntegrity), "got %v", err)
		})
	}
}

func TestLoadSeed(t *testing.T) {
	in := `
- name: A
  distances: {A: 0, B: 2}
  nearest_towns: [B]
- name: B
  distances: {A: 2, B: 0}
`
	records, err := LoadSeed(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Name)
	assert.Equal(t, []string{"B"}, records[0].NearestTowns)

	_, err = LoadSeed(strings.NewReader("- name: C\n"))
	assert.True(t, errors.Is(err, ErrGraphIntegrity))

	_, err = LoadSeed(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrGraphIntegrity))
}

// Self-distance must be zero for any valid graph, not just the seed.
func TestSelfDistanceZeroOnRandomGraphs(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := 2 + r.Intn(12)
		records := make([]model.Locality, n)
		for i := range records {
			records[i].Name = fmt.Sprintf("L%02d", i)
		}
		for i := range records {
			row := map[string]float64{}
			for j := range records {
				switch {
				case i == j:
					if r.Intn(2) == 0 {
						row[records[j].Name] = 0
					}
				case r.Intn(4) != 0:
					row[records[j].Name] = float64(r.Intn(40))
				}
			}
			records[i].Distances = row
		}

		g, err := New(records)
		require.NoError(t, err)
		for _, name := range g.Localities() {
			d, err := g.Distance(name, name)
			require.NoError(t, err)
			require.Zero(t, d)

			near, err := g.NearestNeighbors(name, n)
			require.NoError(t, err)
			require.NotContains(t, near, name)
			for k := 1; k < len(near); k++ {
				prev, _ := g.Distance(name, near[k-1])
				cur, _ := g.Distance(name, near[k])
				require.LessOrEqual(t, prev, cur)
			}
		}
	}
}
