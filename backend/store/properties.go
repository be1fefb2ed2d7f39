package store

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

// QueryProperties lists listings in q.Towns within the given bounds.
// Zero bounds and an empty BHK list are open.
func (p *Postgres) QueryProperties(ctx context.Context, q model.PropertyQuery) ([]model.Property, error) {
	bhk := make([]int64, len(q.BHK))
	for i, b := range q.BHK {
		bhk[i] = int64(b)
	}

	return run(p, "query_properties", func() ([]model.Property, error) {
		rows, err := p.db.QueryContext(ctx, `
			SELECT id, landlord_id, name, address, city, town, price, area, bhk, available, images
			FROM properties
			WHERE town = ANY($1)
			  AND ($2 = 0 OR price >= $2)
			  AND ($3 = 0 OR price <= $3)
			  AND ($4 = 0 OR area >= $4)
			  AND ($5 = 0 OR area <= $5)
			  AND (cardinality($6::int[]) = 0 OR bhk = ANY($6))
			  AND (NOT $7 OR available)
			ORDER BY id`,
			pq.Array(q.Towns), q.MinPrice, q.MaxPrice, q.MinArea, q.MaxArea, pq.Array(bhk), q.AvailableOnly)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []model.Property
		for rows.Next() {
			var (
				prop   model.Property
				images []byte
			)
			if err := rows.Scan(
				&prop.ID, &prop.LandlordID, &prop.Name, &prop.Address, &prop.City, &prop.Town,
				&prop.Price, &prop.Area, &prop.BHK, &prop.Available, &images,
			); err != nil {
				return nil, err
			}
			if len(images) > 0 {
				if err := json.Unmarshal(images, &prop.Images); err != nil {
					return nil, zerr.With(zerr.Wrap(err, "decode property images"), "property_id", prop.ID)
				}
			}
			out = append(out, prop)
		}
		return out, rows.Err()
	})
}
