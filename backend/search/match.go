// Package search answers flatmate and property queries on top of the
// ranking core and a storage port.
package search

import (
	"context"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"gitea.kood.tech/petrkubec/roomble/backend/logging"
	"gitea.kood.tech/petrkubec/roomble/backend/metrics"
	"gitea.kood.tech/petrkubec/roomble/backend/model"
	"gitea.kood.tech/petrkubec/roomble/backend/ranking"
)

// FlatmateFilters narrows a flatmate search. City and Locality restrict the
// candidate pool; the lifestyle fields replace the requester's own answers
// for scoring. Nil means unset.
type FlatmateFilters struct {
	City     *string
	Locality *string
	Gender   *bool
	Smoke    *bool
	Veg      *bool
	Pets     *bool
}

// Result is one page of ranked flatmates.
type Result struct {
	Matches []model.ScoredMatch

	// Total counts every ranked candidate before paging.
	Total int

	// Preferences is the requester profile the scores were computed against.
	Preferences model.LifestyleProfile

	// Page is the window actually applied.
	Page Page
}

// MatchService runs flatmate searches. It is read-only and safe for
// concurrent use.
type MatchService struct {
	store  ProfileStore
	ranker *ranking.Ranker
	cfg    Config
}

// NewMatchService wires a MatchService.
func NewMatchService(store ProfileStore, ranker *ranking.Ranker, cfg Config) *MatchService {
	return &MatchService{store: store, ranker: ranker, cfg: cfg}
}

// Search ranks the candidate pool for requesterID.
func (s *MatchService) Search(ctx context.Context, requesterID int, f FlatmateFilters, page Page) (Result, error) {
	start := time.Now()

	page, err := s.cfg.normalize(page)
	if err != nil {
		return Result{}, err
	}

	q := model.CandidateQuery{Kind: model.KindTenant, ExcludeID: requesterID}
	if f.City != nil {
		q.City = *f.City
	}
	if f.Locality != nil {
		q.Locality = *f.Locality
	}

	var (
		requester  model.Person
		candidates []model.MatchCandidate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.store.GetPerson(gctx, requesterID)
		if err != nil {
			return requesterError(err, requesterID)
		}
		requester = p
		return nil
	})
	g.Go(func() error {
		cs, err := s.store.QueryCandidates(gctx, q)
		if err != nil {
			return storageError(err, "query_candidates")
		}
		candidates = cs
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	if !requester.IsTenant() {
		return Result{}, zerr.With(zerr.Wrap(ErrRequesterNotTenant, "flatmate search"), "requester_id", requesterID)
	}
	requester.Profile = f.apply(requester.Profile)

	ranked, err := s.ranker.Rank(requester, candidates, ranking.Options{RequireFlatmateSeeking: s.cfg.RequireFlatmateSeeking})
	if err != nil {
		return Result{}, err
	}

	from, to := window(page, len(ranked))
	metrics.RecordSearch("flatmates", time.Since(start), len(ranked))
	logging.Ctx(ctx).Debug().
		Int("requester_id", requesterID).
		Int("pool", len(candidates)).
		Int("ranked", len(ranked)).
		Dur("took", time.Since(start)).
		Msg("flatmate search")

	return Result{
		Matches:     ranked[from:to],
		Total:       len(ranked),
		Preferences: requester.Profile,
		Page:        page,
	}, nil
}

// apply overrides profile axes with any set filter.
func (f FlatmateFilters) apply(p model.LifestyleProfile) model.LifestyleProfile {
	if f.Gender != nil {
		p.Gender = *f.Gender
	}
	if f.Smoke != nil {
		p.Smoke = *f.Smoke
	}
	if f.Veg != nil {
		p.Veg = *f.Veg
	}
	if f.Pets != nil {
		p.Pets = *f.Pets
	}
	return p
}
