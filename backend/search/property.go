package search

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/logging"
	"gitea.kood.tech/petrkubec/roomble/backend/metrics"
	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

var filterValidator = validator.New(validator.WithRequiredStructEnabled())

// PropertyFilters describe a property search. Zero bounds are open.
type PropertyFilters struct {
	Town     string `validate:"required"`
	MinPrice int    `validate:"gte=0"`
	MaxPrice int    `validate:"omitempty,gtefield=MinPrice"`
	MinArea  int    `validate:"gte=0"`
	MaxArea  int    `validate:"omitempty,gtefield=MinArea"`
	BHK      []int  `validate:"dive,gt=0"`
}

// PropertyHit is one ranked listing.
type PropertyHit struct {
	Property model.Property
	Match    model.PropertyMatch
}

// PropertyResult is one page of ranked listings.
type PropertyResult struct {
	Hits  []PropertyHit
	Total int

	// Towns lists the searched town followed by the nearby towns included.
	Towns []string
}

// PropertyService finds available listings in a town and its nearest neighbours.
type PropertyService struct {
	store PropertyStore
	graph LocalityGraph
	cfg   Config
}

// NewPropertyService wires a PropertyService.
func NewPropertyService(store PropertyStore, graph LocalityGraph, cfg Config) *PropertyService {
	return &PropertyService{store: store, graph: graph, cfg: cfg}
}

// Search returns available listings in f.Town and its configured number of
// nearest towns, ordered by distance from f.Town, then price, then id.
func (s *PropertyService) Search(ctx context.Context, f PropertyFilters, page Page) (PropertyResult, error) {
	start := time.Now()

	if err := filterValidator.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return PropertyResult{}, zerr.With(invalidQuery("property filters"), "field", verrs[0].Field())
		}
		return PropertyResult{}, invalidQuery(err.Error())
	}
	page, err := s.cfg.normalize(page)
	if err != nil {
		return PropertyResult{}, err
	}

	nearby, err := s.graph.NearestNeighbors(f.Town, s.cfg.NearestTowns)
	if err != nil {
		return PropertyResult{}, err
	}
	towns := append([]string{f.Town}, nearby...)

	props, err := s.store.QueryProperties(ctx, model.PropertyQuery{
		Towns:         towns,
		MinPrice:      f.MinPrice,
		MaxPrice:      f.MaxPrice,
		MinArea:       f.MinArea,
		MaxArea:       f.MaxArea,
		BHK:           f.BHK,
		AvailableOnly: true,
	})
	if err != nil {
		return PropertyResult{}, storageError(err, "query_properties")
	}

	hits := make([]PropertyHit, 0, len(props))
	for _, p := range props {
		d, err := s.graph.Distance(f.Town, p.Town)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("property_id", p.ID).Str("town", p.Town).Msg("skipping property")
			continue
		}
		hits = append(hits, PropertyHit{
			Property: p,
			Match: model.PropertyMatch{
				PropertyID:     p.ID,
				Town:           p.Town,
				DistanceKm:     d,
				InSearchedTown: p.Town == f.Town,
			},
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Match.DistanceKm != b.Match.DistanceKm {
			return a.Match.DistanceKm < b.Match.DistanceKm
		}
		if a.Property.Price != b.Property.Price {
			return a.Property.Price < b.Property.Price
		}
		return a.Property.ID < b.Property.ID
	})
	for i := range hits {
		hits[i].Match.Rank = i + 1
	}

	from, to := window(page, len(hits))
	metrics.RecordSearch("properties", time.Since(start), len(hits))

	return PropertyResult{Hits: hits[from:to], Total: len(hits), Towns: towns}, nil
}
