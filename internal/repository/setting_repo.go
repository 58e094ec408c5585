package repository

import (
	"context"
	"database/sql"

	"github.com/markdown-blog-api/internal/database"
	"github.com/markdown-blog-api/internal/models"
)

type settingRepo struct {
	db    *database.DB
	clock Clock
}

// NewSettingRepo creates a new settings repository
func NewSettingRepo(db *database.DB, clock Clock) SettingRepository {
	return &settingRepo{db: db, clock: clock}
}

// List returns every setting ordered by key
func (r *settingRepo) List(ctx context.Context) ([]*models.Setting, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT key, value, created_at, updated_at FROM settings ORDER BY key",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := []*models.Setting{}
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}

// Get returns a single setting, nil when absent
func (r *settingRepo) Get(ctx context.Context, key string) (*models.Setting, error) {
	var s models.Setting
	err := r.db.QueryRowContext(ctx,
		"SELECT key, value, created_at, updated_at FROM settings WHERE key = $1", key,
	).Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert creates the setting or replaces its value
func (r *settingRepo) Upsert(ctx context.Context, key, value string) error {
	now := r.clock()
	query := `
		INSERT INTO settings (key, value, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, key, value, now)
	return err
}
