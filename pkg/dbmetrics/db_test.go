package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	DBExecutor
}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

func TestOperationName(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{query: "SELECT id FROM slots", want: "select"},
		{query: "  insert INTO waitlist_entries (slot_id) VALUES ($1)", want: "insert"},
		{query: "UPDATE slots SET available = $1", want: "update"},
		{query: "DELETE FROM schedule_days", want: "delete"},
		{query: "WITH x AS (SELECT 1) SELECT * FROM x", want: "with"},
		{query: "LOCK TABLE slots", want: "other"},
		{query: "", want: "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, operationName(tt.query), tt.query)
	}
}

func TestGetExecutor(t *testing.T) {
	db := Wrap(&sql.DB{}, nil, "test")
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := stubTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}
