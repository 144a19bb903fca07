package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"violation-tracker/internal/model"
)

const systemConfigColumns = `id, config_key, config_value, data_type, description, category, is_public,
		is_encrypted, updated_by, created_at, updated_at`

type ConfigRepository struct {
	db DBTX
}

func NewConfigRepository(db DBTX) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) List(ctx context.Context) ([]model.SystemConfig, error) {
	rows, err := r.db.Query(ctx, `SELECT `+systemConfigColumns+` FROM system_configurations ORDER BY config_key`)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer rows.Close()

	items := make([]model.SystemConfig, 0)
	for rows.Next() {
		var c model.SystemConfig
		if err := rows.Scan(&c.ID, &c.ConfigKey, &c.ConfigValue, &c.DataType, &c.Description, &c.Category,
			&c.IsPublic, &c.IsEncrypted, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// GetValue returns the raw config_value for key. A NULL value reads as "".
func (r *ConfigRepository) GetValue(ctx context.Context, key string) (string, error) {
	var value *string
	err := r.db.QueryRow(ctx,
		`SELECT config_value FROM system_configurations WHERE config_key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", model.ErrConfigNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get config %s: %w", key, err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}
