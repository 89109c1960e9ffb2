package storage

import (
	"context"
	"fmt"
)

// GetOrCreateUser maps a tailnet login to its user row, inserting one on
// first sight. Repeat calls refresh last_seen and pick up display-name
// changes. User 1 is pre-seeded by the initial migration for deployments
// that never resolve an identity.
func (db *DB) GetOrCreateUser(ctx context.Context, login, displayName string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login, display_name)
		VALUES ($1, $2)
		ON CONFLICT (login) DO UPDATE
			SET last_seen = NOW(), display_name = COALESCE(NULLIF($2, ''), users.display_name)
		RETURNING id
	`, login, displayName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting user %s: %w", login, err)
	}
	return id, nil
}
