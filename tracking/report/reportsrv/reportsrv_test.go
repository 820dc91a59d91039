package reportsrv

import (
	"context"
	"testing"
	"time"

	"github.com/acamacho/jobtrail/pkg/errx"
	"github.com/acamacho/jobtrail/tracking/application"
	"github.com/acamacho/jobtrail/tracking/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReportRepository counts calls so tests can assert that invalid filters
// never reach the store.
type fakeReportRepository struct {
	calls int

	byDateRange   []application.ApplicationDetailResponse
	statusCounts  []report.StatusCount
	positions     []report.PositionCount
	timelineApps  []application.ApplicationDetailResponse
	statusSummary []report.StatusSummaryEntry
	trends        []report.TrendPoint
	err           error
}

func (f *fakeReportRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]application.ApplicationDetailResponse, error) {
	f.calls++
	return f.byDateRange, f.err
}

func (f *fakeReportRepository) StatusCounts(ctx context.Context, filter report.SafeFilter) ([]report.StatusCount, error) {
	f.calls++
	return f.statusCounts, f.err
}

func (f *fakeReportRepository) PositionCounts(ctx context.Context, filter report.SafeFilter) ([]report.PositionCount, error) {
	f.calls++
	return f.positions, f.err
}

func (f *fakeReportRepository) AllPositionCounts(ctx context.Context) ([]report.PositionCount, error) {
	f.calls++
	return f.positions, f.err
}

func (f *fakeReportRepository) TimelineApplications(ctx context.Context, filter report.SafeFilter) ([]application.ApplicationDetailResponse, error) {
	f.calls++
	return f.timelineApps, f.err
}

func (f *fakeReportRepository) StatusSummary(ctx context.Context) ([]report.StatusSummaryEntry, error) {
	f.calls++
	return f.statusSummary, f.err
}

func (f *fakeReportRepository) Trends(ctx context.Context, frame report.TimeFrame) ([]report.TrendPoint, error) {
	f.calls++
	return f.trends, f.err
}

func appliedOn(date time.Time) application.ApplicationDetailResponse {
	return application.ApplicationDetailResponse{DateApplied: date}
}

func TestGetApplicationStatisticsTotalEqualsSum(t *testing.T) {
	repo := &fakeReportRepository{
		statusCounts: []report.StatusCount{
			{Status: "Applied", Count: 2},
			{Status: "Offer", Count: 1},
		},
	}
	svc := NewReportService(repo, nil, time.Minute)

	stats, err := svc.GetApplicationStatistics(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, map[string]int{"Applied": 2, "Offer": 1}, stats.StatusCounts)
}

func TestGetApplicationStatisticsInvalidFilterSkipsStore(t *testing.T) {
	repo := &fakeReportRepository{}
	svc := NewReportService(repo, nil, time.Minute)

	_, err := svc.GetApplicationStatistics(context.Background(), map[string]string{"user": "nope"})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "REPORT_INVALID_ID_FORMAT", e.Code)
	assert.Zero(t, repo.calls)
}

func TestGetPositionStatisticsPercentages(t *testing.T) {
	repo := &fakeReportRepository{
		positions: []report.PositionCount{
			{Position: "SWE", Count: 2},
			{Position: "PM", Count: 1},
		},
	}
	svc := NewReportService(repo, nil, time.Minute)

	stats, err := svc.GetPositionStatistics(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	require.Len(t, stats.PositionBreakdown, 2)
	assert.Equal(t, report.PositionStat{Position: "SWE", Count: 2, Percentage: 67}, stats.PositionBreakdown[0])
	assert.Equal(t, report.PositionStat{Position: "PM", Count: 1, Percentage: 33}, stats.PositionBreakdown[1])
}

func TestGetPositionStatisticsZeroTotal(t *testing.T) {
	repo := &fakeReportRepository{}
	svc := NewReportService(repo, nil, time.Minute)

	stats, err := svc.GetPositionStatistics(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.PositionBreakdown)
}

func TestGetPositionStatisticsSingleGroupIsFullShare(t *testing.T) {
	repo := &fakeReportRepository{
		positions: []report.PositionCount{{Position: "SWE", Count: 4}},
	}
	svc := NewReportService(repo, nil, time.Minute)

	stats, err := svc.GetPositionStatistics(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, stats.PositionBreakdown, 1)
	assert.Equal(t, 100, stats.PositionBreakdown[0].Percentage)
}

func TestGetApplicationTimelineCollapsesYears(t *testing.T) {
	repo := &fakeReportRepository{
		timelineApps: []application.ApplicationDetailResponse{
			appliedOn(time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)),
			appliedOn(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
			appliedOn(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)),
		},
	}
	svc := NewReportService(repo, nil, time.Minute)

	timeline, err := svc.GetApplicationTimeline(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, timeline, 2)
	assert.Equal(t, "January", timeline[0].Period)
	assert.Equal(t, 1, timeline[0].Count)
	assert.Equal(t, "March", timeline[1].Period)
	assert.Equal(t, 2, timeline[1].Count)
	assert.Len(t, timeline[1].Applications, 2)
}

func TestGetApplicationTimelineInvalidUserSkipsStore(t *testing.T) {
	repo := &fakeReportRepository{}
	svc := NewReportService(repo, nil, time.Minute)

	_, err := svc.GetApplicationTimeline(context.Background(), "123")

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "REPORT_INVALID_ID_FORMAT", e.Code)
	assert.Zero(t, repo.calls)
}

func TestGetApplicationsByDateRangeMissingBoundSkipsStore(t *testing.T) {
	repo := &fakeReportRepository{}
	svc := NewReportService(repo, nil, time.Minute)

	_, err := svc.GetApplicationsByDateRange(context.Background(), "2024-01-01", "")

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "REPORT_MISSING_REQUIRED_FIELD", e.Code)
	assert.Zero(t, repo.calls)
}

// fakeCache is an in-memory report.Cache.
type fakeCache struct {
	store map[string]any
	hits  int
}

func (f *fakeCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	v, ok := f.store[key]
	if !ok {
		return false, nil
	}
	f.hits++
	if counts, ok := v.([]report.PositionCount); ok {
		*dest.(*[]report.PositionCount) = counts
	}
	return true, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.store[key] = value
	return nil
}

func TestGetSimplePositionCountsUsesCache(t *testing.T) {
	repo := &fakeReportRepository{
		positions: []report.PositionCount{{Position: "SWE", Count: 1}},
	}
	cache := &fakeCache{store: make(map[string]any)}
	svc := NewReportService(repo, cache, time.Minute)

	first, err := svc.GetSimplePositionCounts(context.Background())
	require.NoError(t, err)
	second, err := svc.GetSimplePositionCounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, cache.hits)
}
