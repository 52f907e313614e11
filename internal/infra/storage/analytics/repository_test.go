package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

func TestRecordBookingQuery_Upserts(t *testing.T) {
	query, args, err := recordBookingQuery(1, 2, types.MustTimeOfDay(9, 30)).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO appointment_stats (owner_id,booker_id,hour,minute,booking_count) VALUES ($1,$2,$3,$4,$5)")
	assert.Contains(t, query, "ON CONFLICT (owner_id, booker_id, hour, minute) DO UPDATE SET booking_count = appointment_stats.booking_count + 1")
	assert.Equal(t, []interface{}{int64(1), int64(2), 9, 30, 1}, args)
}

func TestMostFrequentSlotQuery_PrefersEarlierTimeOnTie(t *testing.T) {
	query, args, err := mostFrequentSlotQuery(5).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE owner_id = $1")
	assert.Contains(t, query, "GROUP BY hour, minute")
	assert.Contains(t, query, "ORDER BY total DESC, hour ASC, minute ASC")
	assert.Contains(t, query, "LIMIT 1")
	assert.Equal(t, []interface{}{int64(5)}, args)
}
