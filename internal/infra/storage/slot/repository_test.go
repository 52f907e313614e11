package slot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

func TestResolveQuery(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		lock bool
	}{
		{name: "plain read", lock: false},
		{name: "locks slot row", lock: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := resolveQuery(1, date, types.MustTimeOfDay(9, 0), tt.lock).ToSql()
			require.NoError(t, err)

			assert.Contains(t, query, "FROM slots s JOIN schedule_days d ON d.id = s.schedule_id")
			assert.Equal(t, []interface{}{int64(1), "2024-01-10", 9, 0}, args)
			if tt.lock {
				assert.True(t, strings.HasSuffix(query, "FOR UPDATE OF s"), query)
			} else {
				assert.NotContains(t, query, "FOR UPDATE")
			}
		})
	}
}

func TestListBookedByQuery_NewestDateFirst(t *testing.T) {
	query, args, err := listBookedByQuery(2).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE s.booked_by = $1 AND d.owner_id <> $2")
	assert.Contains(t, query, "ORDER BY d.schedule_date DESC, s.hour ASC, s.minute ASC, d.owner_id ASC")
	assert.Equal(t, []interface{}{int64(2), int64(2)}, args)
}
