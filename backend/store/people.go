package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/model"
)

const tenantColumns = `id, name, COALESCE(image, ''), city, locality, gender, smoke, veg, pets, flatmate`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (model.Person, error) {
	p := model.Person{Kind: model.KindTenant}
	err := row.Scan(
		&p.ID, &p.Name, &p.Image,
		&p.Profile.City, &p.Profile.Locality,
		&p.Profile.Gender, &p.Profile.Smoke, &p.Profile.Veg, &p.Profile.Pets, &p.Profile.FlatmateSeeking,
	)
	return p, err
}

func scanLandlord(row rowScanner) (model.Person, error) {
	p := model.Person{Kind: model.KindLandlord}
	err := row.Scan(&p.ID, &p.Name, &p.Image)
	return p, err
}

// GetPerson looks the id up among tenants, then landlords.
func (p *Postgres) GetPerson(ctx context.Context, id int) (model.Person, error) {
	return run(p, "get_person", func() (model.Person, error) {
		person, err := scanTenant(p.db.QueryRowContext(ctx,
			`SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
		if err == nil {
			return person, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return model.Person{}, err
		}

		person, err = scanLandlord(p.db.QueryRowContext(ctx,
			`SELECT id, name, COALESCE(image, '') FROM landlords WHERE id = $1`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return model.Person{}, zerr.With(zerr.Wrap(model.ErrNotFound, "person"), "id", id)
		}
		return person, err
	})
}

// QueryCandidates lists people of q.Kind in q.City and q.Locality, when set,
// excluding q.ExcludeID.
func (p *Postgres) QueryCandidates(ctx context.Context, q model.CandidateQuery) ([]model.MatchCandidate, error) {
	if q.Kind == model.KindLandlord {
		return run(p, "query_landlords", func() ([]model.MatchCandidate, error) {
			rows, err := p.db.QueryContext(ctx,
				`SELECT id, name, COALESCE(image, '') FROM landlords WHERE id <> $1 ORDER BY id`, q.ExcludeID)
			if err != nil {
				return nil, err
			}
			defer rows.Close()
			return collect(rows, scanLandlord)
		})
	}

	return run(p, "query_candidates", func() ([]model.MatchCandidate, error) {
		rows, err := p.db.QueryContext(ctx, `
			SELECT `+tenantColumns+`
			FROM tenants
			WHERE id <> $1
			  AND ($2 = '' OR city = $2)
			  AND ($3 = '' OR locality = $3)
			ORDER BY id`,
			q.ExcludeID, q.City, q.Locality)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return collect(rows, scanTenant)
	})
}

// PeopleByIDs loads tenants and landlords by id. Unknown ids are left out.
func (p *Postgres) PeopleByIDs(ctx context.Context, ids []int) (map[int]model.Person, error) {
	out := make(map[int]model.Person, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]int64, len(ids))
	for i, id := range ids {
		keys[i] = int64(id)
	}

	return run(p, "people_by_ids", func() (map[int]model.Person, error) {
		rows, err := p.db.QueryContext(ctx,
			`SELECT `+tenantColumns+` FROM tenants WHERE id = ANY($1)`, pq.Array(keys))
		if err != nil {
			return nil, err
		}
		tenants, err := collect(rows, scanTenant)
		rows.Close()
		if err != nil {
			return nil, err
		}
		for _, t := range tenants {
			out[t.ID] = t
		}
		if len(out) == len(ids) {
			return out, nil
		}

		rows, err = p.db.QueryContext(ctx,
			`SELECT id, name, COALESCE(image, '') FROM landlords WHERE id = ANY($1)`, pq.Array(keys))
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		landlords, err := collect(rows, scanLandlord)
		if err != nil {
			return nil, err
		}
		for _, l := range landlords {
			out[l.ID] = l
		}
		return out, nil
	})
}

func collect(rows *sql.Rows, scan func(rowScanner) (model.Person, error)) ([]model.Person, error) {
	var out []model.Person
	for rows.Next() {
		person, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, person)
	}
	return out, rows.Err()
}
