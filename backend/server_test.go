package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/compat"
	"gitea.kood.tech/petrkubec/roomble/backend/config"
	"gitea.kood.tech/petrkubec/roomble/backend/graph"
	"gitea.kood.tech/petrkubec/roomble/backend/model"
	"gitea.kood.tech/petrkubec/roomble/backend/ranking"
	"gitea.kood.tech/petrkubec/roomble/backend/search"
)

// memStore is an in-memory ProfileStore and PropertyStore.
type memStore struct {
	people     map[int]model.Person
	properties []model.Property
	err        error
	pingErr    error
	batches    atomic.Int32
}

func (m *memStore) GetPerson(_ context.Context, id int) (model.Person, error) {
	if m.err != nil {
		return model.Person{}, m.err
	}
	p, ok := m.people[id]
	if !ok {
		return model.Person{}, zerr.With(zerr.Wrap(model.ErrNotFound, "person"), "id", id)
	}
	return p, nil
}

func (m *memStore) QueryCandidates(_ context.Context, q model.CandidateQuery) ([]model.MatchCandidate, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.MatchCandidate
	for _, p := range m.people {
		if p.Kind != q.Kind || p.ID == q.ExcludeID {
			continue
		}
		if q.City != "" && p.Profile.City != q.City {
			continue
		}
		if q.Locality != "" && p.Profile.Locality != q.Locality {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) PeopleByIDs(_ context.Context, ids []int) (map[int]model.Person, error) {
	m.batches.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[int]model.Person, len(ids))
	for _, id := range ids {
		if p, ok := m.people[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memStore) QueryProperties(_ context.Context, q model.PropertyQuery) ([]model.Property, error) {
	if m.err != nil {
		return nil, m.err
	}
	towns := make(map[string]bool, len(q.Towns))
	for _, t := range q.Towns {
		towns[t] = true
	}
	var out []model.Property
	for _, p := range m.properties {
		if !towns[p.Town] || (q.AvailableOnly && !p.Available) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) Ping(context.Context) error {
	return m.pingErr
}

func tenant(id int, name, locality string, gender, smoke, veg, pets, seeking bool) model.Person {
	return model.Person{
		ID:   id,
		Kind: model.KindTenant,
		Name: name,
		Profile: model.LifestyleProfile{
			Gender:          gender,
			Smoke:           smoke,
			Veg:             veg,
			Pets:            pets,
			FlatmateSeeking: seeking,
			Locality:        locality,
			City:            "Mumbai",
		},
	}
}

// fixture: requester 1 in Andheri, two perfect matches in Bandra and Juhu,
// an opposite profile in Juhu, a landlord and two non-seeking tenants.
func newMemStore() *memStore {
	people := []model.Person{
		tenant(1, "Asha", "Andheri", false, true, false, true, true),
		tenant(2, "Bilal", "Bandra", false, true, false, true, true),
		tenant(3, "Chitra", "Juhu", false, true, false, true, true),
		tenant(4, "Dev", "Juhu", true, false, true, false, true),
		{ID: 5, Kind: model.KindLandlord, Name: "Esha", Image: "esha.png"},
		tenant(6, "Farhan", "Thane", false, true, false, true, false),
		tenant(7, "Gita", "Atlantis", false, true, false, true, false),
	}
	m := &memStore{people: make(map[int]model.Person, len(people))}
	for _, p := range people {
		m.people[p.ID] = p
	}
	m.properties = []model.Property{
		{ID: 10, LandlordID: 5, Name: "Sea View", Town: "Andheri", City: "Mumbai", Price: 20000, BHK: 2, Available: true, Images: []string{"a.png"}},
		{ID: 11, LandlordID: 5, Name: "Palm Court", Town: "Juhu", City: "Mumbai", Price: 15000, BHK: 1, Available: true},
		{ID: 12, LandlordID: 5, Name: "Hill Road", Town: "Bandra", City: "Mumbai", Price: 18000, BHK: 3, Available: true},
		{ID: 13, LandlordID: 5, Name: "Lake Side", Town: "Thane", City: "Mumbai", Price: 9000, BHK: 2, Available: true},
		{ID: 14, LandlordID: 5, Name: "Let Out", Town: "Andheri", City: "Mumbai", Price: 1000, BHK: 2},
	}
	return m
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.RateLimit.Disabled = true
	return cfg
}

func newTestServer(t *testing.T, store *memStore) (*server, http.Handler) {
	t.Helper()
	cfg := testConfig()
	g, err := graph.NewDefault()
	require.NoError(t, err)
	scorer := compat.DefaultScorer()
	policy := search.DefaultConfig()

	s := &server{
		cfg:        cfg,
		graph:      g,
		scorer:     scorer,
		matches:    search.NewMatchService(store, ranking.New(g, scorer), policy),
		properties: search.NewPropertyService(store, g, policy),
		people:     store,
		auth:       newAuthenticator(cfg.Auth.JWTSecret),
		db:         store,
	}
	return s, s.routes()
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func tokenFor(t *testing.T, id int) string {
	return signToken(t, testConfig().Auth.JWTSecret, jwt.MapClaims{"user_id": id})
}

func do(t *testing.T, h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
