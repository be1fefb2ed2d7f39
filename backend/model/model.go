// Package model holds the records shared by the matching core and the storage layer.
package model

import "go.trai.ch/zerr"

// Storage-boundary errors.
var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = zerr.New("record not found")
)

// Kind tags which collection a person was loaded from.
type Kind string

const (
	KindTenant   Kind = "tenant"
	KindLandlord Kind = "landlord"
)

// Locality is one row of the town seed table.
type Locality struct {
	Name         string             `yaml:"name" json:"name" validate:"required"`
	Distances    map[string]float64 `yaml:"distances" json:"distances" validate:"required,min=1"`
	NearestTowns []string           `yaml:"nearest_towns" json:"nearest_towns"`
}

// LifestyleProfile represents a tenant's lifestyle answers used for matching.
// Gender true means male.
type LifestyleProfile struct {
	Gender          bool
	Smoke           bool
	Veg             bool
	Pets            bool
	FlatmateSeeking bool
	Locality        string
	City            string
}

// Person is a tenant or landlord as read from storage.
// Only tenants carry a meaningful Profile.
type Person struct {
	ID      int
	Kind    Kind
	Name    string
	Image   string
	Profile LifestyleProfile
}

// IsTenant reports whether the person has lifestyle axes.
func (p Person) IsTenant() bool {
	return p.Kind == KindTenant
}

// MatchCandidate is a read-only snapshot of another tenant, fetched per query.
type MatchCandidate = Person

// ScoredMatch is one ranked flatmate result.
type ScoredMatch struct {
	CandidateID        int
	CompatibilityScore float64
	DistanceKm         float64
	Rank               int
}

// CandidateQuery carries the hard filters applied by the store.
type CandidateQuery struct {
	City      string
	Locality  string
	Kind      Kind
	ExcludeID int
}

// Property is a landlord's listing.
type Property struct {
	ID         int
	LandlordID int
	Name       string
	Address    string
	City       string
	Town       string
	Price      int
	Area       int
	BHK        int
	Available  bool
	Images     []string
}

// PropertyQuery carries the hard filters for a property lookup.
// Zero bounds are open.
type PropertyQuery struct {
	Towns         []string
	MinPrice      int
	MaxPrice      int
	MinArea       int
	MaxArea       int
	BHK           []int
	AvailableOnly bool
}

// PropertyMatch is one ranked property result.
type PropertyMatch struct {
	PropertyID     int
	Town           string
	DistanceKm     float64
	InSearchedTown bool
	Rank           int
}
