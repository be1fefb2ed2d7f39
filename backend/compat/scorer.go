// Package compat scores how well a candidate's lifestyle fits a requester's
// stated preferences.
package compat

import (
	"math"

	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

// ErrInvalidWeights is returned by NewScorer for unusable axis weights.
var ErrInvalidWeights = zerr.New("invalid compatibility weights")

// Axis names one lifestyle dimension.
type Axis string

const (
	AxisSmoke  Axis = "smoke"
	AxisVeg    Axis = "veg"
	AxisPets   Axis = "pets"
	AxisGender Axis = "gender"
)

// Axes lists the scored axes in response order.
var Axes = []Axis{AxisSmoke, AxisVeg, AxisPets, AxisGender}

// Weights sets each axis' share of the score.
type Weights struct {
	Smoke  float64 `koanf:"smoke" validate:"gte=0"`
	Veg    float64 `koanf:"veg" validate:"gte=0"`
	Pets   float64 `koanf:"pets" validate:"gte=0"`
	Gender float64 `koanf:"gender" validate:"gte=0"`
}

// EqualWeights gives every axis a quarter of the score.
func EqualWeights() Weights {
	return Weights{Smoke: 1, Veg: 1, Pets: 1, Gender: 1}
}

func (w Weights) of(a Axis) float64 {
	switch a {
	case AxisSmoke:
		return w.Smoke
	case AxisVeg:
		return w.Veg
	case AxisPets:
		return w.Pets
	case AxisGender:
		return w.Gender
	}
	return 0
}

// Total returns the sum of all axis weights.
func (w Weights) Total() float64 {
	return w.Smoke + w.Veg + w.Pets + w.Gender
}

// Validate checks the weights are finite, non-negative and not all zero.
func (w Weights) Validate() error {
	for _, a := range Axes {
		v := w.of(a)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return zerr.With(zerr.Wrap(ErrInvalidWeights, "weight must be finite and non-negative"), "axis", string(a))
		}
	}
	if w.Total() <= 0 {
		return zerr.Wrap(ErrInvalidWeights, "weights sum to zero")
	}
	return nil
}

// AxisMatch reports whether one axis matched.
type AxisMatch struct {
	Axis    Axis
	Matched bool
	Weight  float64
}

// Scorer computes compatibility scores. It holds no mutable state.
type Scorer struct {
	weights Weights
	total   float64
}

// NewScorer returns a Scorer using w.
func NewScorer(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: w, total: w.Total()}, nil
}

// DefaultScorer returns a Scorer with equal weights.
func DefaultScorer() *Scorer {
	w := EqualWeights()
	return &Scorer{weights: w, total: w.Total()}
}

// Score returns the weighted share of axes on which the candidate matches
// the requester's preference, in [0, 1].
//
// The requester's profile is the reference frame: callers layer search
// filters onto the requester only, so Score(a, b) and Score(b, a) may differ.
func (s *Scorer) Score(requester, candidate model.LifestyleProfile) float64 {
	var matched float64
	for _, m := range s.Breakdown(requester, candidate) {
		if m.Matched {
			matched += m.Weight
		}
	}
	score := matched / s.total
	if score > 1 {
		return 1
	}
	return score
}

// Breakdown returns the per-axis result behind Score.
func (s *Scorer) Breakdown(requester, candidate model.LifestyleProfile) []AxisMatch {
	return []AxisMatch{
		{Axis: AxisSmoke, Matched: requester.Smoke == candidate.Smoke, Weight: s.weights.Smoke},
		{Axis: AxisVeg, Matched: requester.Veg == candidate.Veg, Weight: s.weights.Veg},
		{Axis: AxisPets, Matched: requester.Pets == candidate.Pets, Weight: s.weights.Pets},
		{Axis: AxisGender, Matched: requester.Gender == candidate.Gender, Weight: s.weights.Gender},
	}
}

// MatchedAxes lists the axes on which the candidate matched.
func (s *Scorer) MatchedAxes(requester, candidate model.LifestyleProfile) []Axis {
	out := make([]Axis, 0, len(Axes))
	for _, m := range s.Breakdown(requester, candidate) {
		if m.Matched {
			out = append(out, m.Axis)
		}
	}
	return out
}
