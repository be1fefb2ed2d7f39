package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"strings"

	"github.com/goccy/go-json"
	"go.trai.ch/zerr"
	"golang.org/x/crypto/bcrypt"
)

const seedCity = "Mumbai"

type seedConfig struct {
	Tenants               int
	Landlords             int
	PropertiesPerLandlord int
	Seed                  int64
	SeekingRate           float64 // proportion of tenants with the flatmate flag set
	AvailableRate         float64 // proportion of listings still on the market
	Password              string  // same password for everyone (easy login)
	Truncate              bool
}

func (c seedConfig) validate() error {
	switch {
	case c.Tenants < 2:
		return zerr.New("--tenants must be at least 2")
	case c.Landlords < 1:
		return zerr.New("--landlords must be at least 1")
	case c.PropertiesPerLandlord < 0:
		return zerr.New("--properties-per-landlord must not be negative")
	case c.SeekingRate < 0 || c.SeekingRate > 1 || c.AvailableRate < 0 || c.AvailableRate > 1:
		return zerr.New("rate flags must be in range 0..1")
	case c.Password == "":
		return zerr.New("--password must not be empty")
	}
	return nil
}

type seedTenant struct {
	Name     string
	Email    string
	Locality string
	Gender   bool
	Smoke    bool
	Veg      bool
	Pets     bool
	Seeking  bool
	Image    string
}

type seedLandlord struct {
	Name  string
	Email string
	Image string
}

type seedProperty struct {
	Landlord  int // index into dataset.Landlords
	Name      string
	Address   string
	Town      string
	Price     int
	Area      int
	BHK       int
	Available bool
	Images    []string
}

type dataset struct {
	PasswordHash string
	Tenants      []seedTenant
	Landlords    []seedLandlord
	Properties   []seedProperty
}

var (
	firstNames = []string{"aarav", "priya", "rohan", "ananya", "kabir", "isha", "vihaan", "meera", "arjun", "diya", "aditya", "sara", "reyansh", "tara", "neel"}
	lastNames  = []string{"sharma", "patel", "iyer", "desai", "khan", "mehta", "nair", "joshi", "rao", "kulkarni"}
	streets    = []string{"Link Road", "SV Road", "Hill Road", "Carter Road", "Station Road", "MG Road", "Linking Road", "LBS Marg"}
	buildings  = []string{"Sea Breeze", "Palm Court", "Sunrise Heights", "Green Acres", "Silver Oak", "Harbour View", "Lake Shore", "Coral Tower"}
)

// generate builds a deterministic dataset. The first tenant and landlord get
// fixed emails so there is always a known account to log in with.
func generate(c seedConfig, localities []string) (dataset, error) {
	if len(localities) == 0 {
		return dataset{}, zerr.New("no localities to place people in")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return dataset{}, zerr.Wrap(err, "bcrypt")
	}

	r := rand.New(rand.NewSource(c.Seed))
	used := make(map[string]struct{}, c.Tenants+c.Landlords)
	d := dataset{PasswordHash: string(hash)}

	for i := 0; i < c.Tenants; i++ {
		name, slug := randomName(r)
		email := uniqueEmail(r, slug, used)
		if i == 0 {
			email = "tenant1@test.local"
		}
		d.Tenants = append(d.Tenants, seedTenant{
			Name:     name,
			Email:    email,
			Locality: localities[r.Intn(len(localities))],
			Gender:   r.Intn(2) == 0,
			Smoke:    r.Float64() < 0.25,
			Veg:      r.Float64() < 0.45,
			Pets:     r.Float64() < 0.35,
			Seeking:  i == 0 || r.Float64() < c.SeekingRate,
			Image:    fmt.Sprintf("https://i.pravatar.cc/300?u=%s", slug),
		})
	}

	for i := 0; i < c.Landlords; i++ {
		name, slug := randomName(r)
		email := uniqueEmail(r, slug, used)
		if i == 0 {
			email = "landlord1@test.local"
		}
		d.Landlords = append(d.Landlords, seedLandlord{
			Name:  name,
			Email: email,
			Image: fmt.Sprintf("https://i.pravatar.cc/300?u=%s", slug),
		})

		for j := 0; j < c.PropertiesPerLandlord; j++ {
			bhk := 1 + r.Intn(4)
			area := 350*bhk + r.Intn(300)
			town := localities[r.Intn(len(localities))]
			d.Properties = append(d.Properties, seedProperty{
				Landlord:  i,
				Name:      buildings[r.Intn(len(buildings))],
				Address:   fmt.Sprintf("%d %s, %s", 1+r.Intn(200), streets[r.Intn(len(streets))], town),
				Town:      town,
				Price:     (8000 + bhk*9000 + r.Intn(12000)) / 500 * 500,
				Area:      area,
				BHK:       bhk,
				Available: r.Float64() < c.AvailableRate,
				Images:    []string{fmt.Sprintf("https://picsum.photos/seed/roomble-%d-%d/800/600", i, j)},
			})
		}
	}
	return d, nil
}

func randomName(r *rand.Rand) (display, slug string) {
	first := firstNames[r.Intn(len(firstNames))]
	last := lastNames[r.Intn(len(lastNames))]
	return capitalize(first) + " " + capitalize(last), first + "." + last
}

func capitalize(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}

func uniqueEmail(r *rand.Rand, slug string, used map[string]struct{}) string {
	for {
		domain := []string{"example.com", "mail.test", "dev.local"}[r.Intn(3)]
		email := fmt.Sprintf("%s+%d@%s", slug, r.Intn(1000000), domain)
		if _, ok := used[email]; !ok {
			used[email] = struct{}{}
			return email
		}
	}
}

// insertDataset writes d in one transaction.
func insertDataset(ctx context.Context, db *sql.DB, d dataset, truncate bool) (err error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return zerr.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if truncate {
		if _, err = tx.ExecContext(ctx, `TRUNCATE TABLE properties, tenants, landlords RESTART IDENTITY CASCADE`); err != nil {
			return zerr.Wrap(err, "truncate")
		}
		if _, err = tx.ExecContext(ctx, `ALTER SEQUENCE people_id_seq RESTART`); err != nil {
			return zerr.Wrap(err, "reset people ids")
		}
	}

	if err = insertTenants(ctx, tx, d); err != nil {
		return err
	}
	landlordIDs, err := insertLandlords(ctx, tx, d)
	if err != nil {
		return err
	}
	if err = insertProperties(ctx, tx, d.Properties, landlordIDs); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return zerr.Wrap(err, "commit")
	}
	return nil
}

func insertTenants(ctx context.Context, tx *sql.Tx, d dataset) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tenants (name, email, password_hash, city, locality, gender, smoke, veg, pets, flatmate, image)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			locality = EXCLUDED.locality,
			gender = EXCLUDED.gender,
			smoke = EXCLUDED.smoke,
			veg = EXCLUDED.veg,
			pets = EXCLUDED.pets,
			flatmate = EXCLUDED.flatmate`)
	if err != nil {
		return zerr.Wrap(err, "prepare tenants")
	}
	defer stmt.Close()

	for i, t := range d.Tenants {
		if _, err := stmt.ExecContext(ctx, t.Name, t.Email, d.PasswordHash, seedCity, t.Locality,
			t.Gender, t.Smoke, t.Veg, t.Pets, t.Seeking, t.Image); err != nil {
			return zerr.With(zerr.Wrap(err, "insert tenant"), "index", i)
		}
	}
	return nil
}

func insertLandlords(ctx context.Context, tx *sql.Tx, d dataset) ([]int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO landlords (name, email, password_hash, image)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id`)
	if err != nil {
		return nil, zerr.Wrap(err, "prepare landlords")
	}
	defer stmt.Close()

	ids := make([]int, 0, len(d.Landlords))
	for i, l := range d.Landlords {
		var id int
		if err := stmt.QueryRowContext(ctx, l.Name, l.Email, d.PasswordHash, l.Image).Scan(&id); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "insert landlord"), "index", i)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func insertProperties(ctx context.Context, tx *sql.Tx, props []seedProperty, landlordIDs []int) error {
	if len(props) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO properties (landlord_id, name, address, city, town, price, area, bhk, available, images)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`)
	if err != nil {
		return zerr.Wrap(err, "prepare properties")
	}
	defer stmt.Close()

	for i, p := range props {
		images, err := json.Marshal(p.Images)
		if err != nil {
			return zerr.Wrap(err, "encode images")
		}
		if _, err := stmt.ExecContext(ctx, landlordIDs[p.Landlord], p.Name, p.Address, seedCity, p.Town,
			p.Price, p.Area, p.BHK, p.Available, images); err != nil {
			return zerr.With(zerr.Wrap(err, "insert property"), "index", i)
		}
	}
	return nil
}
