package compat

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

// allProfiles enumerates every combination of the four scored axes.
func allProfiles() []model.LifestyleProfile {
	out := make([]model.LifestyleProfile, 0, 16)
	for bits := 0; bits < 16; bits++ {
		out = append(out, model.LifestyleProfile{
			Smoke:    bits&1 != 0,
			Veg:      bits&2 != 0,
			Pets:     bits&4 != 0,
			Gender:   bits&8 != 0,
			Locality: "Andheri",
			City:     "Mumbai",
		})
	}
	return out
}

func TestScoreIdentity(t *testing.T) {
	s := DefaultScorer()
	for _, p := range allProfiles() {
		assert.Equal(t, 1.0, s.Score(p, p))
	}
}

func TestScoreOpposite(t *testing.T) {
	s := DefaultScorer()
	a := model.LifestyleProfile{Smoke: true, Veg: false, Pets: true, Gender: false}
	b := model.LifestyleProfile{Smoke: false, Veg: true, Pets: false, Gender: true}
	assert.Equal(t, 0.0, s.Score(a, b))
}

func TestScoreBoundedAndQuantized(t *testing.T) {
	s := DefaultScorer()
	for _, a := range allProfiles() {
		for _, b := range allProfiles() {
			score := s.Score(a, b)
			require.GreaterOrEqual(t, score, 0.0)
			require.LessOrEqual(t, score, 1.0)
			quarters := score * 4
			require.Equal(t, math.Round(quarters), quarters, "score %v is not a multiple of 0.25", score)
		}
	}
}

func TestScoreIgnoresNonAxisFields(t *testing.T) {
	s := DefaultScorer()
	a := model.LifestyleProfile{Smoke: true, Locality: "Andheri", City: "Mumbai", FlatmateSeeking: true}
	b := model.LifestyleProfile{Smoke: true, Locality: "Thane", City: "Pune"}
	assert.Equal(t, 1.0, s.Score(a, b))
}

// The requester's preferences are the reference frame. A search that layers
// filters onto the requester changes Score(requester, x) but not
// Score(x, requester) computed from the stored profile, so the two directions
// are not expected to agree.
func TestScoreAsymmetryIsIntended(t *testing.T) {
	s := DefaultScorer()

	stored := model.LifestyleProfile{Smoke: false, Veg: true, Pets: false, Gender: true}
	withFilters := stored
	withFilters.Pets = true // searched with pets=true

	candidate := model.LifestyleProfile{Smoke: false, Veg: true, Pets: true, Gender: false}

	assert.Equal(t, 0.75, s.Score(withFilters, candidate))
	assert.Equal(t, 0.5, s.Score(candidate, stored))
	assert.NotEqual(t, s.Score(withFilters, candidate), s.Score(candidate, stored))
}

func TestWeightedScore(t *testing.T) {
	s, err := NewScorer(Weights{Smoke: 3, Veg: 1, Pets: 0, Gender: 0})
	require.NoError(t, err)

	a := model.LifestyleProfile{Smoke: true, Veg: true}
	b := model.LifestyleProfile{Smoke: true, Veg: false, Pets: true, Gender: true}
	assert.Equal(t, 0.75, s.Score(a, b))
	assert.Equal(t, 1.0, s.Score(a, a))
}

func TestNewScorerRejectsBadWeights(t *testing.T) {
	for _, w := range []Weights{
		{},
		{Smoke: -1, Veg: 1, Pets: 1, Gender: 1},
		{Smoke: math.NaN(), Veg: 1},
		{Smoke: math.Inf(1)},
	} {
		_, err := NewScorer(w)
		assert.True(t, errors.Is(err, ErrInvalidWeights), "weights %+v", w)
	}
}

func TestMatchedAxes(t *testing.T) {
	s := DefaultScorer()
	a := model.LifestyleProfile{Smoke: true, Veg: true, Pets: false, Gender: true}
	b := model.LifestyleProfile{Smoke: true, Veg: false, Pets: false, Gender: false}

	assert.Equal(t, []Axis{AxisSmoke, AxisPets}, s.MatchedAxes(a, b))
	assert.Len(t, s.Breakdown(a, b), 4)
}
