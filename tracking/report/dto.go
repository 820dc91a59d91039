package report

import (
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/tracking/application"
)

// StatisticsResponse - total and per-status counts for a filtered set of
// applications. The sum of StatusCounts always equals Total.
type StatisticsResponse struct {
	Total        int            `json:"total"`
	StatusCounts map[string]int `json:"statusCounts"`
}

// PositionStat - one position with its share of the filtered total
type PositionStat struct {
	Position   string `json:"position"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// PositionStatisticsResponse - position breakdown with percentages
type PositionStatisticsResponse struct {
	Total             int            `json:"total"`
	PositionBreakdown []PositionStat `json:"positionBreakdown"`
}

// PositionCount - a position with its global count, no percentage
type PositionCount struct {
	Position string `json:"position" db:"position"`
	Count    int    `json:"count" db:"count"`
}

// TimelineEntry - the applications of one calendar month. The grouping key is
// the month name alone, so the same month from different years shares a bucket.
type TimelineEntry struct {
	Period       string                                  `json:"period"`
	Count        int                                     `json:"count"`
	Applications []application.ApplicationDetailResponse `json:"applications"`
}

// StatusCount - one status label with its count
type StatusCount struct {
	Status string `json:"status" db:"status"`
	Count  int    `json:"count" db:"count"`
}

// ApplicationExample - a compact application reference inside a summary
type ApplicationExample struct {
	ID       kernel.ApplicationID `json:"id" db:"id"`
	Position string               `json:"position" db:"position"`
	Date     time.Time            `json:"date" db:"date"`
}

// StatusSummaryEntry - a per-status rollup with up to five example
// applications
type StatusSummaryEntry struct {
	Status       string               `json:"status"`
	Count        int                  `json:"count"`
	Applications []ApplicationExample `json:"applications"`
}

// TrendPoint - application volume within one time period
type TrendPoint struct {
	TimePeriod string `json:"timePeriod" db:"time_period"`
	Count      int    `json:"count" db:"count"`
}
