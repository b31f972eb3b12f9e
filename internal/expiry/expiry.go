// Package expiry holds the display timing rules for flashes: the TTL buckets a
// flash's display expiry is chosen from, the per-slide duration choices, and
// the playlist status derived from expiry and removal timestamps.
package expiry

import (
	"math"
	"slices"
	"time"
)

// TTLBuckets are the selectable display lifetimes in days. 0 means no expiry.
var TTLBuckets = []int{0, 7, 14, 30, 60, 90}

// DefaultTTLDays is used when no stored expiry matches a bucket.
const DefaultTTLDays = 30

// bucketTolerance is how many days past a bucket a stored expiry may land
// and still be matched to it.
const bucketTolerance = 3

// DurationChoices are the selectable per-slide display durations in seconds.
var DurationChoices = []int{10, 15, 20, 30, 45, 60}

// DefaultDurationSeconds is used when no duration is stored.
const DefaultDurationSeconds = 30

const day = 24 * time.Hour

// InferTTLBucket maps a stored display expiry back to the TTL bucket it was
// most likely created from. Days remaining are rounded up; the first bucket
// with daysRemaining <= bucket+3 wins. A nil expiry or one beyond every
// bucket falls back to DefaultTTLDays.
func InferTTLBucket(expiresAt *time.Time, now time.Time) int {
	if expiresAt == nil {
		return DefaultTTLDays
	}
	remaining := int(math.Ceil(expiresAt.Sub(now).Seconds() / day.Seconds()))
	for _, b := range TTLBuckets {
		if b == 0 {
			continue
		}
		if remaining <= b+bucketTolerance {
			return b
		}
	}
	return DefaultTTLDays
}

// ExpiresAt computes the display expiry for a TTL bucket chosen at from.
// Bucket 0 has no expiry.
func ExpiresAt(days int, from time.Time) *time.Time {
	if days <= 0 {
		return nil
	}
	t := from.Add(time.Duration(days) * day)
	return &t
}

// DurationOrDefault returns the stored slide duration when it is one of the
// selectable choices, and DefaultDurationSeconds otherwise.
func DurationOrDefault(stored *int) int {
	if stored == nil || !slices.Contains(DurationChoices, *stored) {
		return DefaultDurationSeconds
	}
	return *stored
}

// Status is the playlist state of a published flash.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRemoved Status = "removed"
)

// PlaylistStatus derives a flash's playlist state. Removal wins over expiry.
func PlaylistStatus(expiresAt, removedAt *time.Time, now time.Time) Status {
	switch {
	case removedAt != nil:
		return StatusRemoved
	case expiresAt != nil && !expiresAt.After(now):
		return StatusExpired
	default:
		return StatusActive
	}
}

// DaysLeft returns the number of whole days until expiresAt. A value of 0
// means the flash expires within the next 24 hours.
func DaysLeft(expiresAt, now time.Time) int {
	d := expiresAt.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / day)
}
