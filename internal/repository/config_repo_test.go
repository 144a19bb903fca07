package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"violation-tracker/internal/model"
)

func TestConfigRepository_GetValue(t *testing.T) {
	tests := []struct {
		name    string
		rows    *pgxmock.Rows
		err     error
		want    string
		wantErr error
	}{
		{
			name: "value present",
			rows: pgxmock.NewRows([]string{"config_value"}).AddRow(ptr("25")),
			want: "25",
		},
		{
			name: "null value",
			rows: pgxmock.NewRows([]string{"config_value"}).AddRow((*string)(nil)),
			want: "",
		},
		{
			name:    "missing key",
			err:     pgx.ErrNoRows,
			wantErr: model.ErrConfigNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			repo := NewConfigRepository(mock)

			q := mock.ExpectQuery("SELECT config_value FROM system_configurations").WithArgs(model.ConfigViolationsPerPage)
			if tt.err != nil {
				q.WillReturnError(tt.err)
			} else {
				q.WillReturnRows(tt.rows)
			}

			got, err := repo.GetValue(context.Background(), model.ConfigViolationsPerPage)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestConfigRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	repo := NewConfigRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery("FROM system_configurations ORDER BY config_key").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "config_key", "config_value", "data_type", "description", "category", "is_public",
			"is_encrypted", "updated_by", "created_at", "updated_at",
		}).AddRow(int64(1), model.ConfigObservationsPerPage, ptr("10"), "integer", (*string)(nil), ptr("pagination"),
			true, false, (*int64)(nil), now, now))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.ConfigObservationsPerPage, items[0].ConfigKey)
	assert.Equal(t, "10", *items[0].ConfigValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func ptr[T any](v T) *T {
	return &v
}
