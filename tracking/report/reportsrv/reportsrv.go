package reportsrv

import (
	"context"
	"math"
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/pkg/logx"
	"github.com/acamacho/jobtrail/tracking/application"
	"github.com/acamacho/jobtrail/tracking/report"
)

const (
	cacheKeySimplePositionCounts = "simple-position-counts"
	cacheKeyStatusSummary        = "status-summary"
)

// ReportService provides the analytical read operations over applications.
// Every operation validates its inputs before touching the store.
type ReportService struct {
	repo     report.Repository
	cache    report.Cache
	cacheTTL time.Duration
}

// NewReportService creates a new report service. The cache may be nil.
func NewReportService(repo report.Repository, cache report.Cache, cacheTTL time.Duration) *ReportService {
	return &ReportService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// GetApplicationsByDateRange returns applications applied within the
// inclusive range, enriched with related entities, newest first. Both bounds
// are required.
func (s *ReportService) GetApplicationsByDateRange(ctx context.Context, startDate, endDate string) ([]application.ApplicationDetailResponse, error) {
	from, to, err := report.SanitizeDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// GetApplicationStatistics groups the filtered applications by status label.
// The total always equals the sum of the per-status counts.
func (s *ReportService) GetApplicationStatistics(ctx context.Context, rawFilters map[string]string) (*report.StatisticsResponse, error) {
	filter, err := report.Sanitize(rawFilters)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.StatusCounts(ctx, filter)
	if err != nil {
		return nil, err
	}

	statistics := &report.StatisticsResponse{
		StatusCounts: make(map[string]int, len(counts)),
	}
	for _, c := range counts {
		statistics.StatusCounts[c.Status] = c.Count
		statistics.Total += c.Count
	}

	return statistics, nil
}

// GetPositionStatistics groups the filtered applications by position title
// and computes each position's rounded share of the total. With zero matching
// applications the breakdown is empty and no percentage is ever computed.
// Rounded percentages may not sum to exactly 100; that is left as-is.
func (s *ReportService) GetPositionStatistics(ctx context.Context, rawFilters map[string]string) (*report.PositionStatisticsResponse, error) {
	filter, err := report.Sanitize(rawFilters)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.PositionCounts(ctx, filter)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	response := &report.PositionStatisticsResponse{
		Total:             total,
		PositionBreakdown: []report.PositionStat{},
	}
	if total == 0 {
		return response, nil
	}

	for _, c := range counts {
		response.PositionBreakdown = append(response.PositionBreakdown, report.PositionStat{
			Position:   c.Position,
			Count:      c.Count,
			Percentage: int(math.Round(float64(c.Count) / float64(total) * 100)),
		})
	}

	return response, nil
}

// GetSimplePositionCounts returns the global per-position counts, largest
// first, with no percentages. The result is served from cache when available.
func (s *ReportService) GetSimplePositionCounts(ctx context.Context) ([]report.PositionCount, error) {
	if s.cache != nil {
		var cached []report.PositionCount
		if hit, err := s.cache.Get(ctx, cacheKeySimplePositionCounts, &cached); err == nil && hit {
			return cached, nil
		}
	}

	counts, err := s.repo.AllPositionCounts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeySimplePositionCounts, counts, s.cacheTTL); err != nil {
			logx.Warnf("Failed to cache position counts: %v", err)
		}
	}

	return counts, nil
}

// monthOrder is calendar order, which is what the timeline sorts by.
var monthOrder = []time.Month{
	time.January, time.February, time.March, time.April,
	time.May, time.June, time.July, time.August,
	time.September, time.October, time.November, time.December,
}

// GetApplicationTimeline groups applications by calendar month name,
// optionally restricted to one user. The grouping key deliberately drops the
// year, so the same month across different years lands in one bucket. Buckets
// come back in calendar order, January through December.
func (s *ReportService) GetApplicationTimeline(ctx context.Context, userID string) ([]report.TimelineEntry, error) {
	var filter report.SafeFilter
	if userID != "" {
		id, err := kernel.ParseID(userID)
		if err != nil {
			return nil, report.ErrInvalidIDFormat("userId").WithCause(err)
		}
		uid := kernel.UserID(id)
		filter.User = &uid
	}

	apps, err := s.repo.TimelineApplications(ctx, filter)
	if err != nil {
		return nil, err
	}

	buckets := make(map[time.Month]*report.TimelineEntry)
	for _, app := range apps {
		month := app.DateApplied.Month()
		entry, ok := buckets[month]
		if !ok {
			entry = &report.TimelineEntry{Period: month.String()}
			buckets[month] = entry
		}
		entry.Count++
		entry.Applications = append(entry.Applications, app)
	}

	timeline := make([]report.TimelineEntry, 0, len(buckets))
	for _, month := range monthOrder {
		if entry, ok := buckets[month]; ok {
			timeline = append(timeline, *entry)
		}
	}

	return timeline, nil
}

// GetStatusSummary returns the per-status rollup with example applications,
// served from cache when available.
func (s *ReportService) GetStatusSummary(ctx context.Context) ([]report.StatusSummaryEntry, error) {
	if s.cache != nil {
		var cached []report.StatusSummaryEntry
		if hit, err := s.cache.Get(ctx, cacheKeyStatusSummary, &cached); err == nil && hit {
			return cached, nil
		}
	}

	summary, err := s.repo.StatusSummary(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyStatusSummary, summary, s.cacheTTL); err != nil {
			logx.Warnf("Failed to cache status summary: %v", err)
		}
	}

	return summary, nil
}

// GetApplicationTrends counts applications per time period for the given
// bucket size (day, week, month or year).
func (s *ReportService) GetApplicationTrends(ctx context.Context, rawFrame string) ([]report.TrendPoint, error) {
	frame := report.ParseTimeFrame(rawFrame)

	points, err := s.repo.Trends(ctx, frame)
	if err != nil {
		return nil, err
	}

	return points, nil
}
