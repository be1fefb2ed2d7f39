package main

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/compat"
	"gitea.kood.tech/petrkubec/roomble/backend/search"
)

// FlatmateResult is one entry of GET /search/flatmates.
type FlatmateResult struct {
	ID                  int           `json:"id"`
	Name                string        `json:"name"`
	Image               string        `json:"image"`
	Locality            string        `json:"locality"`
	City                string        `json:"city"`
	CompatibilityScore  float64       `json:"compatibility_score"`
	RecommendationScore int           `json:"recommendation_score"` // percent
	DistanceKm          float64       `json:"distance_km"`
	Rank                int           `json:"rank"`
	MatchedAxes         []compat.Axis `json:"matched_axes"`
}

// PropertyResult is one entry of GET /search/properties.
type PropertyResult struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Town           string    `json:"town"`
	Price          int       `json:"price"`
	Area           int       `json:"area"`
	BHK            int       `json:"bhk"`
	Images         []string  `json:"images"`
	Landlord       *landlord `json:"landlord,omitempty"`
	DistanceKm     float64   `json:"distance_km"`
	InSearchedTown bool      `json:"in_searched_town"`
	Rank           int       `json:"rank"`
}

type landlord struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// GET /search/flatmates?city=&locality=&gender=&smoke=&veg=&pets=&limit=&offset=
func (s *server) searchFlatmatesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filters, page, err := parseFlatmateQuery(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := s.matches.Search(r.Context(), userID, filters, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ids := make([]int, len(res.Matches))
	for i, m := range res.Matches {
		ids[i] = m.CandidateID
	}
	people, err := loadPeople(r.Context(), s.people, ids)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %w", search.ErrStorageUnavailable, err))
		return
	}

	data := make([]FlatmateResult, 0, len(res.Matches))
	for _, m := range res.Matches {
		p := people[m.CandidateID]
		axes := s.scorer.MatchedAxes(res.Preferences, p.Profile)
		data = append(data, FlatmateResult{
			ID:                  m.CandidateID,
			Name:                p.Name,
			Image:               p.Image,
			Locality:            p.Profile.Locality,
			City:                p.Profile.City,
			CompatibilityScore:  m.CompatibilityScore,
			RecommendationScore: percent(m.CompatibilityScore),
			DistanceKm:          m.DistanceKm,
			Rank:                m.Rank,
			MatchedAxes:         axes,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
		"total":   res.Total,
		"limit":   res.Page.Limit,
		"offset":  res.Page.Offset,
	})
}

// GET /search/properties?town=&min_price=&max_price=&min_area=&max_area=&bhk=1,2&limit=&offset=
func (s *server) searchPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	filters, page, err := parsePropertyQuery(r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := s.properties.Search(r.Context(), filters, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ids := make([]int, 0, len(res.Hits))
	seen := make(map[int]struct{}, len(res.Hits))
	for _, h := range res.Hits {
		if _, dup := seen[h.Property.LandlordID]; !dup {
			seen[h.Property.LandlordID] = struct{}{}
			ids = append(ids, h.Property.LandlordID)
		}
	}
	owners, err := loadPeople(r.Context(), s.people, ids)
	if err != nil {
		writeServiceError(w, r, fmt.Errorf("%w: %w", search.ErrStorageUnavailable, err))
		return
	}

	data := make([]PropertyResult, 0, len(res.Hits))
	for _, h := range res.Hits {
		p := h.Property
		images := p.Images
		if images == nil {
			images = []string{}
		}
		out := PropertyResult{
			ID:             p.ID,
			Name:           p.Name,
			Address:        p.Address,
			City:           p.City,
			Town:           p.Town,
			Price:          p.Price,
			Area:           p.Area,
			BHK:            p.BHK,
			Images:         images,
			DistanceKm:     h.Match.DistanceKm,
			InSearchedTown: h.Match.InSearchedTown,
			Rank:           h.Match.Rank,
		}
		if o, ok := owners[p.LandlordID]; ok {
			out.Landlord = &landlord{ID: o.ID, Name: o.Name, Image: o.Image}
		}
		data = append(data, out)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
		"total":   res.Total,
		"towns":   res.Towns,
	})
}

// percent renders a score the way the web client shows it.
func percent(score float64) int {
	return int(math.Round(score * 100))
}

func parseFlatmateQuery(q url.Values) (search.FlatmateFilters, search.Page, error) {
	var f search.FlatmateFilters
	if v := strings.TrimSpace(q.Get("city")); v != "" {
		f.City = &v
	}
	if v := strings.TrimSpace(q.Get("locality")); v != "" {
		f.Locality = &v
	}

	for name, dst := range map[string]**bool{
		"gender": &f.Gender,
		"smoke":  &f.Smoke,
		"veg":    &f.Veg,
		"pets":   &f.Pets,
	} {
		b, err := optionalBool(q, name)
		if err != nil {
			return search.FlatmateFilters{}, search.Page{}, err
		}
		*dst = b
	}

	page, err := parsePage(q)
	return f, page, err
}

func parsePropertyQuery(q url.Values) (search.PropertyFilters, search.Page, error) {
	f := search.PropertyFilters{Town: strings.TrimSpace(q.Get("town"))}

	for name, dst := range map[string]*int{
		"min_price": &f.MinPrice,
		"max_price": &f.MaxPrice,
		"min_area":  &f.MinArea,
		"max_area":  &f.MaxArea,
	} {
		n, err := optionalInt(q, name)
		if err != nil {
			return search.PropertyFilters{}, search.Page{}, err
		}
		*dst = n
	}

	if raw := strings.TrimSpace(q.Get("bhk")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return search.PropertyFilters{}, search.Page{}, queryError("bhk", raw)
			}
			f.BHK = append(f.BHK, n)
		}
	}

	page, err := parsePage(q)
	return f, page, err
}

func parsePage(q url.Values) (search.Page, error) {
	limit, err := optionalInt(q, "limit")
	if err != nil {
		return search.Page{}, err
	}
	offset, err := optionalInt(q, "offset")
	if err != nil {
		return search.Page{}, err
	}
	return search.Page{Limit: limit, Offset: offset}, nil
}

// optionalBool parses a query flag. Empty and "any" mean unset.
func optionalBool(q url.Values, name string) (*bool, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" || strings.EqualFold(raw, "any") {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, queryError(name, raw)
	}
	return &b, nil
}

func optionalInt(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, queryError(name, raw)
	}
	return n, nil
}

func queryError(param, value string) error {
	return zerr.With(zerr.With(zerr.Wrap(search.ErrInvalidQuery, "malformed parameter"), "param", param), "value", value)
}
