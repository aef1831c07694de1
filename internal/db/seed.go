package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo launchpad projects into the database. Existing rows are
// left untouched. Intended for local development only.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	now := time.Now().UTC()

	demos := []struct {
		name   string
		symbol string
		status string
	}{
		{"Aurora Protocol", "AUR", "active"},
		{"Basalt Network", "BSLT", "active"},
		{"Cinder Finance", "CNDR", "pending"},
		{"Drift Labs Token", "DRFT", "ended"},
	}

	for i, d := range demos {
		id := uuid.NewString()
		owner := fmt.Sprintf("0x%040x", i+1)
		start := now.AddDate(0, 0, -7)
		end := now.AddDate(0, 1, 0)
		tag, err := db.Exec(ctx, `INSERT INTO projects
    (id, name, description, token_symbol, total_supply, initial_price,
     min_contribution, max_contribution, start_time, end_time, owner_address,
     status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
ON CONFLICT DO NOTHING`,
			id, d.name, fmt.Sprintf("Demo launchpad project for %s", d.symbol), d.symbol,
			int64(1_000_000), int64(100), int64(10), int64(10_000),
			start, end, owner, d.status)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 || d.status == "pending" {
			continue
		}
		// a few contributions against non-pending projects
		for j := 1; j <= 3; j++ {
			contributor := fmt.Sprintf("0x%040x", 100+j)
			amount := int64(10 * j * (i + 1))
			_, err = db.Exec(ctx, `INSERT INTO contributions
    (project_id, contributor_address, amount, created_at)
VALUES ($1,$2,$3,$4)`,
				id, contributor, amount, start.Add(time.Duration(j)*time.Hour))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
