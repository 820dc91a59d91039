package report

import (
	"context"
	"time"

	"github.com/acamacho/jobtrail/tracking/application"
)

// TimeFrame selects the bucket size of a trend query.
type TimeFrame string

const (
	TimeFrameDay   TimeFrame = "day"
	TimeFrameWeek  TimeFrame = "week"
	TimeFrameMonth TimeFrame = "month"
	TimeFrameYear  TimeFrame = "year"
)

// ParseTimeFrame maps a raw query value to a TimeFrame. An empty value means
// month; anything unrecognized falls through to year.
func ParseTimeFrame(raw string) TimeFrame {
	switch raw {
	case "day":
		return TimeFrameDay
	case "week":
		return TimeFrameWeek
	case "month", "":
		return TimeFrameMonth
	default:
		return TimeFrameYear
	}
}

type Repository interface {
	// FindByDateRange retrieves applications applied within [from, to]
	// inclusive, enriched with their related entities, newest first
	FindByDateRange(ctx context.Context, from, to time.Time) ([]application.ApplicationDetailResponse, error)

	// StatusCounts groups the filtered applications by status label
	StatusCounts(ctx context.Context, f SafeFilter) ([]StatusCount, error)

	// PositionCounts groups the filtered applications by position title,
	// largest group first
	PositionCounts(ctx context.Context, f SafeFilter) ([]PositionCount, error)

	// AllPositionCounts groups every application by position title with no
	// filter, largest group first
	AllPositionCounts(ctx context.Context) ([]PositionCount, error)

	// TimelineApplications retrieves the filtered applications ordered by
	// application date ascending
	TimelineApplications(ctx context.Context, f SafeFilter) ([]application.ApplicationDetailResponse, error)

	// StatusSummary returns a per-status rollup with up to five example
	// applications each
	StatusSummary(ctx context.Context) ([]StatusSummaryEntry, error)

	// Trends counts applications per time period
	Trends(ctx context.Context, frame TimeFrame) ([]TrendPoint, error)
}

// Cache is a read-through cache for report results. A nil-safe no-op
// implementation is acceptable wherever caching is not configured.
type Cache interface {
	// Get loads a cached value into dest, reporting whether the key was
	// present
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores a value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
