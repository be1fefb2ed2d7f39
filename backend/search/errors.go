package search

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

var (
	// ErrRequesterNotFound is returned when the requesting id has no profile.
	ErrRequesterNotFound = zerr.New("requester not found")

	// ErrRequesterNotTenant is returned when a landlord asks for flatmates.
	ErrRequesterNotTenant = zerr.New("flatmate search is limited to tenants")

	// ErrStorageUnavailable wraps any storage failure other than not-found.
	ErrStorageUnavailable = zerr.New("storage unavailable")

	// ErrInvalidQuery is returned for malformed filters or paging.
	ErrInvalidQuery = zerr.New("invalid query")
)

func storageError(err error, op string) error {
	if errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	return zerr.With(fmt.Errorf("%w: %w", ErrStorageUnavailable, err), "op", op)
}

func requesterError(err error, id int) error {
	if errors.Is(err, model.ErrNotFound) {
		return zerr.With(zerr.Wrap(ErrRequesterNotFound, "load requester"), "requester_id", id)
	}
	return zerr.With(storageError(err, "get_person"), "requester_id", id)
}

func invalidQuery(reason string) error {
	return zerr.Wrap(ErrInvalidQuery, reason)
}
