package store

import (
	"context"
	"database/sql"

	"github.com/goccy/go-json"
	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

// LoadLocalities reads the towns table as graph seed records.
func LoadLocalities(ctx context.Context, db *sql.DB) ([]model.Locality, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, distances, nearest_towns FROM towns ORDER BY name`)
	if err != nil {
		return nil, zerr.Wrap(err, "query towns")
	}
	defer rows.Close()

	var out []model.Locality
	for rows.Next() {
		var (
			loc                model.Locality
			distances, nearest []byte
		)
		if err := rows.Scan(&loc.Name, &distances, &nearest); err != nil {
			return nil, zerr.Wrap(err, "scan town")
		}
		if err := json.Unmarshal(distances, &loc.Distances); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "decode distances"), "town", loc.Name)
		}
		if len(nearest) > 0 {
			if err := json.Unmarshal(nearest, &loc.NearestTowns); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "decode nearest towns"), "town", loc.Name)
			}
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, "iterate towns")
	}
	return out, nil
}

// UpsertLocalities writes seed records into the towns table in one transaction.
func UpsertLocalities(ctx context.Context, db *sql.DB, locs []model.Locality) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zerr.Wrap(err, "begin")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO towns (name, distances, nearest_towns) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET distances = EXCLUDED.distances, nearest_towns = EXCLUDED.nearest_towns`)
	if err != nil {
		return zerr.Wrap(err, "prepare town upsert")
	}
	defer stmt.Close()

	for _, loc := range locs {
		distances, err := json.Marshal(loc.Distances)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "encode distances"), "town", loc.Name)
		}
		nearest := loc.NearestTowns
		if nearest == nil {
			nearest = []string{}
		}
		nearestJSON, err := json.Marshal(nearest)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "encode nearest towns"), "town", loc.Name)
		}
		if _, err := stmt.ExecContext(ctx, loc.Name, distances, nearestJSON); err != nil {
			return zerr.With(zerr.Wrap(err, "upsert town"), "town", loc.Name)
		}
	}
	return zerr.Wrap(tx.Commit(), "commit towns")
}
