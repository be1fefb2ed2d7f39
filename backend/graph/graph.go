// Package graph implements the locality distance graph used to rank matches
// by proximity.
//
// A Graph is built once from a seed table and is read-only afterwards, so a
// single instance can be shared by every request without locking.
package graph

import (
	"math"
	"slices"
	"sort"

	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/logging"
	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

// DefaultNearest is the number of nearest towns stored per locality in the seed data.
const DefaultNearest = 3

// Graph is an immutable weighted graph of named localities.
type Graph struct {
	distances map[string]map[string]float64
	nearest   map[string][]string // precomputed, full ascending order
	names     []string
}

// New builds a Graph from seed records and validates it.
//
// Every name referenced by a distance entry or a nearest-town list must be a
// record of the table, distances must be finite and non-negative and a
// self entry, when present, must be zero. Violations return ErrGraphIntegrity.
func New(records []model.Locality) (*Graph, error) {
	g := &Graph{
		distances: make(map[string]map[string]float64, len(records)),
		nearest:   make(map[string][]string, len(records)),
		names:     make([]string, 0, len(records)),
	}

	for _, rec := range records {
		if rec.Name == "" {
			return nil, integrityError("empty locality name", "")
		}
		if _, dup := g.distances[rec.Name]; dup {
			return nil, integrityError("duplicate locality", rec.Name)
		}
		row := make(map[string]float64, len(rec.Distances))
		for to, d := range rec.Distances {
			row[to] = d
		}
		g.distances[rec.Name] = row
		g.names = append(g.names, rec.Name)
	}
	sort.Strings(g.names)

	for _, rec := range records {
		for to, d := range rec.Distances {
			if _, ok := g.distances[to]; !ok {
				return nil, zerr.With(integrityError("distance to unknown locality", rec.Name), "target", to)
			}
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return nil, zerr.With(integrityError("invalid distance", rec.Name), "target", to)
			}
			if to == rec.Name && d != 0 {
				return nil, integrityError("non-zero self distance", rec.Name)
			}
		}
		for _, town := range rec.NearestTowns {
			if _, ok := g.distances[town]; !ok {
				return nil, zerr.With(integrityError("nearest town is unknown", rec.Name), "target", town)
			}
		}
	}

	for _, name := range g.names {
		g.nearest[name] = g.orderByDistance(name)
	}

	for _, rec := range records {
		computed := g.nearest[rec.Name]
		if len(computed) > len(rec.NearestTowns) {
			computed = computed[:len(rec.NearestTowns)]
		}
		if len(rec.NearestTowns) > 0 && !slices.Equal(computed, rec.NearestTowns) {
			logging.Warn().
				Str("locality", rec.Name).
				Strs("stored", rec.NearestTowns).
				Strs("computed", computed).
				Msg("stored nearest towns differ from distance table")
		}
	}

	return g, nil
}

// Distance returns the distance in km between a and b.
//
// The value comes from a's row; when a's row has no entry for b, b's row is
// used instead. Same-name lookups return 0 whatever the data says.
func (g *Graph) Distance(a, b string) (float64, error) {
	rowA, ok := g.distances[a]
	if !ok {
		return 0, unknownLocality(a)
	}
	rowB, ok := g.distances[b]
	if !ok {
		return 0, unknownLocality(b)
	}
	if a == b {
		return 0, nil
	}
	if d, ok := rowA[b]; ok {
		return d, nil
	}
	if d, ok := rowB[a]; ok {
		return d, nil
	}
	return 0, zerr.With(zerr.With(zerr.Wrap(ErrNoDistance, "locality lookup"), "from", a), "to", b)
}

// NearestNeighbors returns up to k localities closest to a, excluding a,
// ordered by ascending distance with ties broken by name.
func (g *Graph) NearestNeighbors(a string, k int) ([]string, error) {
	ordered, ok := g.nearest[a]
	if !ok {
		return nil, unknownLocality(a)
	}
	if k <= 0 {
		return []string{}, nil
	}
	if k > len(ordered) {
		k = len(ordered)
	}
	out := make([]string, k)
	copy(out, ordered[:k])
	return out, nil
}

// Localities returns every locality name in lexicographic order.
func (g *Graph) Localities() []string {
	return slices.Clone(g.names)
}

// Has reports whether name is part of the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.distances[name]
	return ok
}

// Len returns the number of localities.
func (g *Graph) Len() int {
	return len(g.names)
}

func (g *Graph) orderByDistance(from string) []string {
	type entry struct {
		name string
		d    float64
	}
	entries := make([]entry, 0, len(g.names))
	for _, to := range g.names {
		if to == from {
			continue
		}
		d, err := g.Distance(from, to)
		if err != nil {
			continue
		}
		entries = append(entries, entry{name: to, d: d})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].d != entries[j].d {
			return entries[i].d < entries[j].d
		}
		return entries[i].name < entries[j].name
	})
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}
