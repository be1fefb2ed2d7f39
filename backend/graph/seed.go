package graph

import (
	"bytes"
	_ "embed"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

//go:embed towns.yaml
var defaultTowns []byte

var seedValidator = validator.New(validator.WithRequiredStructEnabled())

// DefaultSeed returns the built-in locality table.
func DefaultSeed() ([]model.Locality, error) {
	return LoadSeed(bytes.NewReader(defaultTowns))
}

// LoadSeed parses a YAML list of {name, distances, nearest_towns} records.
// Records are checked for shape only; cross-record consistency is checked by New.
func LoadSeed(r io.Reader) ([]model.Locality, error) {
	var records []model.Locality
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, zerr.Wrap(ErrGraphIntegrity, "empty locality seed")
		}
		return nil, zerr.Wrap(err, "failed to decode locality seed")
	}
	for i, rec := range records {
		if err := seedValidator.Struct(rec); err != nil {
			return nil, zerr.With(zerr.Wrap(ErrGraphIntegrity, err.Error()), "record", i)
		}
	}
	return records, nil
}

// NewDefault builds the graph from the built-in table.
func NewDefault() (*Graph, error) {
	records, err := DefaultSeed()
	if err != nil {
		return nil, err
	}
	return New(records)
}
