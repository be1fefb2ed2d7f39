// Package ranking orders candidate flatmates for a requester by lifestyle
// compatibility and locality proximity.
package ranking

import (
	"errors"
	"sort"

	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/graph"
	"gitea.kood.tech/petrkubec/roomble/backend/logging"
	"gitea.kood.tech/petrkubec/roomble/backend/metrics"
	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

// Distancer resolves the travel distance between two localities.
type Distancer interface {
	Distance(a, b string) (float64, error)
}

// Scorer rates how well a candidate fits a requester's preferences.
type Scorer interface {
	Score(requester, candidate model.LifestyleProfile) float64
}

// Options controls which candidates are eligible.
type Options struct {
	// RequireFlatmateSeeking drops candidates that are not looking for a flatmate.
	RequireFlatmateSeeking bool
}

// Ranker is stateless and safe for concurrent use.
type Ranker struct {
	distances Distancer
	scorer    Scorer
}

// New returns a Ranker over the given graph and scorer.
func New(distances Distancer, scorer Scorer) *Ranker {
	return &Ranker{distances: distances, scorer: scorer}
}

// Rank scores every eligible candidate against requester and returns them
// ordered by score descending, then distance ascending, then id ascending.
// Ranks are 1-based. The result is never truncated.
//
// The requester itself, landlords and (optionally) candidates not seeking a
// flatmate are dropped. A candidate whose distance cannot be resolved is
// skipped and logged. A requester locality unknown to the graph fails the
// whole call with graph.ErrUnknownLocality.
func (r *Ranker) Rank(requester model.Person, candidates []model.MatchCandidate, opts Options) ([]model.ScoredMatch, error) {
	from := requester.Profile.Locality
	// Self distance fails only when the locality is unknown.
	if _, err := r.distances.Distance(from, from); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "requester locality"), "requester_id", requester.ID)
	}

	out := make([]model.ScoredMatch, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == requester.ID || !c.IsTenant() {
			continue
		}
		if opts.RequireFlatmateSeeking && !c.Profile.FlatmateSeeking {
			continue
		}
		d, err := r.distances.Distance(from, c.Profile.Locality)
		if err != nil {
			reason := skipReason(err)
			logging.Warn().
				Err(err).
				Int("requester_id", requester.ID).
				Int("candidate_id", c.ID).
				Str("locality", c.Profile.Locality).
				Str("reason", reason).
				Msg("skipping candidate")
			metrics.RecordCandidateSkipped(reason)
			continue
		}
		out = append(out, model.ScoredMatch{
			CandidateID:        c.ID,
			CompatibilityScore: r.scorer.Score(requester.Profile, c.Profile),
			DistanceKm:         d,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func less(a, b model.ScoredMatch) bool {
	if a.CompatibilityScore != b.CompatibilityScore {
		return a.CompatibilityScore > b.CompatibilityScore
	}
	if a.DistanceKm != b.DistanceKm {
		return a.DistanceKm < b.DistanceKm
	}
	return a.CandidateID < b.CandidateID
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, graph.ErrUnknownLocality):
		return "unknown_locality"
	case errors.Is(err, graph.ErrNoDistance):
		return "no_distance"
	default:
		return "other"
	}
}
