package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func daysFromNow(d int) *time.Time {
	t := now.Add(time.Duration(d) * 24 * time.Hour)
	return &t
}

func TestInferTTLBucket(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt *time.Time
		want      int
	}{
		{"no expiry", nil, DefaultTTLDays},
		{"already expired", daysFromNow(-2), 7},
		{"exactly 7", daysFromNow(7), 7},
		{"31 days", daysFromNow(31), 30},
		{"33 days", daysFromNow(33), 30},
		{"34 days", daysFromNow(34), 60},
		{"far future", daysFromNow(400), DefaultTTLDays},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferTTLBucket(tt.expiresAt, now))
		})
	}
}

func TestInferTTLBucket_Tolerance(t *testing.T) {
	next := map[int]int{7: 14, 14: 30, 30: 60, 60: 90, 90: DefaultTTLDays}
	for _, b := range TTLBuckets[1:] {
		assert.Equal(t, b, InferTTLBucket(daysFromNow(b+2), now), "bucket %d + 2 days", b)
		assert.Equal(t, next[b], InferTTLBucket(daysFromNow(b+4), now), "bucket %d + 4 days", b)
	}
}

func TestInferTTLBucket_PartialDayRoundsUp(t *testing.T) {
	// 33 days and one hour rounds up to 34 remaining days.
	exp := now.Add(33*24*time.Hour + time.Hour)
	assert.Equal(t, 60, InferTTLBucket(&exp, now))
}

func TestExpiresAt(t *testing.T) {
	assert.Nil(t, ExpiresAt(0, now))
	got := ExpiresAt(14, now)
	if assert.NotNil(t, got) {
		assert.Equal(t, now.AddDate(0, 0, 14), *got)
	}
	assert.Equal(t, 14, InferTTLBucket(got, now))
}

func TestDurationOrDefault(t *testing.T) {
	v45, v12 := 45, 12
	assert.Equal(t, DefaultDurationSeconds, DurationOrDefault(nil))
	assert.Equal(t, 45, DurationOrDefault(&v45))
	assert.Equal(t, DefaultDurationSeconds, DurationOrDefault(&v12))
}

func TestPlaylistStatus(t *testing.T) {
	past, future := daysFromNow(-1), daysFromNow(5)

	assert.Equal(t, StatusRemoved, PlaylistStatus(future, past, now))
	assert.Equal(t, StatusRemoved, PlaylistStatus(past, past, now), "removal wins over expiry")
	assert.Equal(t, StatusExpired, PlaylistStatus(past, nil, now))
	assert.Equal(t, StatusActive, PlaylistStatus(future, nil, now))
	assert.Equal(t, StatusActive, PlaylistStatus(nil, nil, now))
}

func TestPlaylistStatus_ExpiryBoundary(t *testing.T) {
	at := now
	assert.Equal(t, StatusExpired, PlaylistStatus(&at, nil, now), "expiring exactly now is off the playlist")

	later := now.Add(time.Second)
	assert.Equal(t, StatusActive, PlaylistStatus(&later, nil, now))
}

func TestDaysLeft(t *testing.T) {
	assert.Equal(t, 0, DaysLeft(now.Add(5*time.Hour), now))
	assert.Equal(t, 3, DaysLeft(*daysFromNow(3), now))
	assert.Equal(t, 3, DaysLeft(now.Add(3*24*time.Hour+23*time.Hour), now))
	assert.Equal(t, 0, DaysLeft(*daysFromNow(-1), now))
}
