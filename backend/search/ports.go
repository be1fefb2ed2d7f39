package search

import (
	"context"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

// ProfileStore reads people for matching.
//
//go:generate mockgen -source=ports.go -destination=mocks/mock_store.go -package=mocks
type ProfileStore interface {
	// GetPerson loads a tenant or landlord by id.
	// Returns model.ErrNotFound if neither exists.
	GetPerson(ctx context.Context, id int) (model.Person, error)

	// QueryCandidates returns the people matching the hard filters of q.
	QueryCandidates(ctx context.Context, q model.CandidateQuery) ([]model.MatchCandidate, error)

	// PeopleByIDs loads display data for the given ids. Missing ids are
	// absent from the map.
	PeopleByIDs(ctx context.Context, ids []int) (map[int]model.Person, error)
}

// PropertyStore reads landlord listings.
type PropertyStore interface {
	QueryProperties(ctx context.Context, q model.PropertyQuery) ([]model.Property, error)
}

// LocalityGraph is the part of graph.Graph the services need.
type LocalityGraph interface {
	Distance(a, b string) (float64, error)
	NearestNeighbors(a string, k int) ([]string, error)
	Has(name string) bool
}
