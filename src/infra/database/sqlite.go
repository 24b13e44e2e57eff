package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"harmonia/src/features/registry"
)

// SqliteSettings persists per-provider enable/priority overrides so user
// reordering survives restarts.
type SqliteSettings struct {
	db *sql.DB
}

// NewSqliteSettings opens (and if needed creates) the settings database.
func NewSqliteSettings(path string) (*SqliteSettings, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS provider_settings (
		provider_id TEXT PRIMARY KEY,
		enabled INTEGER,
		priority INTEGER,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create settings schema: %w", err)
	}

	return &SqliteSettings{db: db}, nil
}

// Load returns every stored provider setting keyed by provider ID.
func (s *SqliteSettings) Load(ctx context.Context) (map[string]registry.Setting, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT provider_id, enabled, priority FROM provider_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]registry.Setting)
	for rows.Next() {
		var id string
		var enabled sql.NullBool
		var priority sql.NullInt64
		if err := rows.Scan(&id, &enabled, &priority); err != nil {
			return nil, fmt.Errorf("failed to scan provider setting: %w", err)
		}

		var setting registry.Setting
		if enabled.Valid {
			v := enabled.Bool
			setting.Enabled = &v
		}
		if priority.Valid {
			v := int(priority.Int64)
			setting.Priority = &v
		}
		settings[id] = setting
	}
	return settings, rows.Err()
}

// Save upserts the setting for one provider.
func (s *SqliteSettings) Save(ctx context.Context, providerID string, setting registry.Setting) error {
	var enabled sql.NullBool
	if setting.Enabled != nil {
		enabled = sql.NullBool{Bool: *setting.Enabled, Valid: true}
	}
	var priority sql.NullInt64
	if setting.Priority != nil {
		priority = sql.NullInt64{Int64: int64(*setting.Priority), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO provider_settings (provider_id, enabled, priority, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(provider_id) DO UPDATE SET
			enabled = excluded.enabled,
			priority = excluded.priority,
			updated_at = CURRENT_TIMESTAMP`,
		providerID, enabled, priority)
	if err != nil {
		return fmt.Errorf("failed to save provider setting: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SqliteSettings) Close() error {
	return s.db.Close()
}
