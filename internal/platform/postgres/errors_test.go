package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/cardops/card-api/internal/store"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "nil_stays_nil",
			err:     nil,
			wantErr: nil,
		},
		{
			name:    "no_rows_maps_to_card_not_found",
			err:     sql.ErrNoRows,
			wantErr: store.ErrCardNotFound,
		},
		{
			name:    "wrapped_no_rows_maps_to_card_not_found",
			err:     fmt.Errorf("scan failed: %w", sql.ErrNoRows),
			wantErr: store.ErrCardNotFound,
		},
		{
			name:    "unique_violation_maps_to_duplicate",
			err:     &pgconn.PgError{Code: "23505", ConstraintName: "credit_cards_pkey"},
			wantErr: store.ErrDuplicate,
		},
		{
			name:    "check_violation_maps_to_invalid_entity",
			err:     &pgconn.PgError{Code: "23514", ConstraintName: "credit_cards_active_status_check"},
			wantErr: store.ErrInvalidEntity,
		},
		{
			name:    "not_null_violation_maps_to_invalid_entity",
			err:     &pgconn.PgError{Code: "23502", ColumnName: "embossed_name"},
			wantErr: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.err)
			if tt.wantErr == nil {
				assert.NoError(t, mapped)
			} else {
				assert.ErrorIs(t, mapped, tt.wantErr)
			}
		})
	}

	t.Run("unknown_errors_pass_through", func(t *testing.T) {
		original := errors.New("connection refused")
		assert.Equal(t, original, MapError(original))
	})

	t.Run("not_found_mapping_satisfies_store_helper", func(t *testing.T) {
		assert.True(t, store.IsNotFoundError(MapError(sql.ErrNoRows)))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("save: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))
}

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}))
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}), store.ErrCardNotFound)
	assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("driver does not report rows")}))
	assert.Error(t, CheckRowsAffected(nil))
}
