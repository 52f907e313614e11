package waitlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueQuery_ComputesNextPriorityInPlace(t *testing.T) {
	query, args, err := enqueueQuery(7, 42).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO waitlist_entries (slot_id,booker_id,priority) SELECT $1, $2, COALESCE(MAX(priority), 0) + 1")
	assert.Contains(t, query, "FROM waitlist_entries WHERE slot_id = $3")
	assert.Contains(t, query, "RETURNING priority")
	assert.NotContains(t, query, "?")
	assert.Equal(t, []interface{}{int64(7), int64(42), int64(7)}, args)
}
