package graph

import "go.trai.ch/zerr"

var (
	// ErrUnknownLocality is returned when a name is not part of the graph.
	ErrUnknownLocality = zerr.New("unknown locality")

	// ErrNoDistance is returned when neither locality records a distance to the other.
	ErrNoDistance = zerr.New("no distance recorded")

	// ErrGraphIntegrity is returned by New when the seed table is inconsistent.
	ErrGraphIntegrity = zerr.New("locality graph integrity violation")
)

func unknownLocality(name string) error {
	return zerr.With(zerr.Wrap(ErrUnknownLocality, "locality lookup"), "locality", name)
}

func integrityError(reason, locality string) error {
	return zerr.With(zerr.Wrap(ErrGraphIntegrity, reason), "locality", locality)
}
