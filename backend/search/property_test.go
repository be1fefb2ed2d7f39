package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitea.kood.tech/petrkubec/roomble/backend/graph"
	"gitea.kood.tech/petrkubec/roomble/backend/model"
	"gitea.kood.tech/petrkubec/roomble/backend/search/mocks"
)

func newPropertyService(t *testing.T) (*PropertyService, *mocks.MockPropertyStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockPropertyStore(ctrl)
	g, err := graph.NewDefault()
	require.NoError(t, err)
	return NewPropertyService(store, g, DefaultConfig()), store
}

func TestPropertySearchIncludesNearestTowns(t *testing.T) {
	svc, store := newPropertyService(t)

	store.EXPECT().QueryProperties(gomock.Any(), model.PropertyQuery{
		Towns:         []string{"Andheri", "Juhu", "Goregaon", "Bandra"},
		MaxPrice:      40000,
		BHK:           []int{1, 2},
		AvailableOnly: true,
	}).Return([]model.Property{
		{ID: 10, Town: "Bandra", Price: 30000},
		{ID: 11, Town: "Andheri", Price: 35000},
		{ID: 12, Town: "Juhu", Price: 25000},
		{ID: 13, Town: "Andheri", Price: 20000},
		{ID: 14, Town: "Juhu", Price: 25000},
	}, nil)

	res, err := svc.Search(context.Background(), PropertyFilters{Town: "Andheri", MaxPrice: 40000, BHK: []int{1, 2}}, Page{})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, []string{"Andheri", "Juhu", "Goregaon", "Bandra"}, res.Towns)

	got := make([]int, len(res.Hits))
	for i, h := range res.Hits {
		got[i] = h.Property.ID
		assert.Equal(t, i+1, h.Match.Rank)
	}
	assert.Equal(t, []int{13, 11, 12, 14, 10}, got)

	assert.True(t, res.Hits[0].Match.InSearchedTown)
	assert.Equal(t, 0.0, res.Hits[0].Match.DistanceKm)
	assert.False(t, res.Hits[2].Match.InSearchedTown)
	assert.Equal(t, 5.0, res.Hits[2].Match.DistanceKm)
	assert.Equal(t, 8.0, res.Hits[4].Match.DistanceKm)
}

func TestPropertySearchValidation(t *testing.T) {
	svc, _ := newPropertyService(t)
	ctx := context.Background()

	for name, f := range map[string]PropertyFilters{
		"missing town":       {},
		"negative min price": {Town: "Juhu", MinPrice: -1},
		"max below min":      {Town: "Juhu", MinPrice: 500, MaxPrice: 100},
		"area max below min": {Town: "Juhu", MinArea: 900, MaxArea: 400},
		"zero bhk":           {Town: "Juhu", BHK: []int{0}},
	} {
		_, err := svc.Search(ctx, f, Page{})
		assert.True(t, errors.Is(err, ErrInvalidQuery), name)
	}
}

func TestPropertySearchOpenUpperBound(t *testing.T) {
	svc, store := newPropertyService(t)
	store.EXPECT().QueryProperties(gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := svc.Search(context.Background(), PropertyFilters{Town: "Juhu", MinPrice: 500}, Page{})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestPropertySearchUnknownTown(t *testing.T) {
	svc, _ := newPropertyService(t)
	_, err := svc.Search(context.Background(), PropertyFilters{Town: "Pune"}, Page{})
	assert.True(t, errors.Is(err, graph.ErrUnknownLocality))
}

func TestPropertySearchStorageFailure(t *testing.T) {
	svc, store := newPropertyService(t)
	store.EXPECT().QueryProperties(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := svc.Search(context.Background(), PropertyFilters{Town: "Juhu"}, Page{})
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
}
