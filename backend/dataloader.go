package main

import (
	"context"
	"errors"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
	"gitea.kood.tech/petrkubec/roomble/backend/search"
)

// DataLoaderContextKey is the key used to store dataloaders in context
type DataLoaderContextKey string

const dataLoaderKey DataLoaderContextKey = "dataloader"

const loaderWait = 2 * time.Millisecond

// DataLoaders batch display lookups made while rendering one response.
type DataLoaders struct {
	PersonLoader *dataloader.Loader[int, model.Person]
}

// NewDataLoaders creates per-request loaders backed by store.
func NewDataLoaders(store search.ProfileStore) *DataLoaders {
	return &DataLoaders{
		PersonLoader: dataloader.NewBatchedLoader(personBatchFn(store), dataloader.WithWait[int, model.Person](loaderWait)),
	}
}

// GetDataLoadersFromContext retrieves dataloaders from context
func GetDataLoadersFromContext(ctx context.Context) *DataLoaders {
	if dl, ok := ctx.Value(dataLoaderKey).(*DataLoaders); ok {
		return dl
	}
	return nil
}

// WithDataLoaders adds dataloaders to context
func WithDataLoaders(ctx context.Context, dl *DataLoaders) context.Context {
	return context.WithValue(ctx, dataLoaderKey, dl)
}

// personBatchFn resolves a batch of ids with one PeopleByIDs call.
func personBatchFn(store search.ProfileStore) dataloader.BatchFunc[int, model.Person] {
	return func(ctx context.Context, keys []int) []*dataloader.Result[model.Person] {
		results := make([]*dataloader.Result[model.Person], len(keys))
		if len(keys) == 0 {
			return results
		}

		people, err := store.PeopleByIDs(ctx, keys)
		for i, key := range keys {
			if err != nil {
				results[i] = &dataloader.Result[model.Person]{Error: err}
				continue
			}
			p, ok := people[key]
			if !ok {
				results[i] = &dataloader.Result[model.Person]{Error: zerr.With(zerr.Wrap(model.ErrNotFound, "person"), "id", key)}
				continue
			}
			results[i] = &dataloader.Result[model.Person]{Data: p}
		}
		return results
	}
}

// loadPeople resolves ids through the request's loader, or directly from
// store when no loader is installed. Missing people are absent from the map.
func loadPeople(ctx context.Context, store search.ProfileStore, ids []int) (map[int]model.Person, error) {
	if len(ids) == 0 {
		return map[int]model.Person{}, nil
	}
	dl := GetDataLoadersFromContext(ctx)
	if dl == nil {
		return store.PeopleByIDs(ctx, ids)
	}
	people, errs := dl.PersonLoader.LoadMany(ctx, ids)()
	out := make(map[int]model.Person, len(ids))
	for i, id := range ids {
		if i < len(errs) && errs[i] != nil {
			if errors.Is(errs[i], model.ErrNotFound) {
				continue
			}
			return nil, errs[i]
		}
		out[id] = people[i]
	}
	return out, nil
}
