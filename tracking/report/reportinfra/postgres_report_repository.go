package reportinfra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/pkg/logx"
	"github.com/acamacho/jobtrail/tracking/application"
	"github.com/acamacho/jobtrail/tracking/report"
	"github.com/jmoiron/sqlx"
)

// JoinStrategy selects how related entities are resolved onto application
// rows: a database-native join, or fetching the related tables whole and
// matching in memory.
type JoinStrategy string

const (
	JoinNative JoinStrategy = "native"
	JoinManual JoinStrategy = "manual"
)

// ParseJoinStrategy maps a raw config value to a JoinStrategy, defaulting to
// the native join.
func ParseJoinStrategy(raw string) JoinStrategy {
	switch strings.ToLower(raw) {
	case string(JoinManual):
		return JoinManual
	case string(JoinNative), "":
		return JoinNative
	default:
		logx.Warnf("Unknown join strategy %q, using native", raw)
		return JoinNative
	}
}

// PostgresReportRepository implements report.Repository using PostgreSQL.
// Every operation acquires its own connection and releases it before
// returning.
type PostgresReportRepository struct {
	db       *sqlx.DB
	strategy JoinStrategy
}

// NewPostgresReportRepository creates a new PostgreSQL report repository
func NewPostgresReportRepository(db *sqlx.DB, strategy JoinStrategy) *PostgresReportRepository {
	return &PostgresReportRepository{
		db:       db,
		strategy: strategy,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type applicationRow struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	CompanyID     string    `db:"company_id"`
	StatusID      string    `db:"status_id"`
	PositionTitle string    `db:"position_title"`
	DateApplied   time.Time `db:"date_applied"`
	Source        *string   `db:"source"`
	Notes         *string   `db:"notes"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type detailRow struct {
	applicationRow
	UserName        string  `db:"user_name"`
	UserEmail       string  `db:"user_email"`
	CompanyName     string  `db:"company_name"`
	CompanyIndustry *string `db:"company_industry"`
	CompanyLocation *string `db:"company_location"`
	StatusLabel     string  `db:"status_label"`
}

func (m *detailRow) toDetailResponse() application.ApplicationDetailResponse {
	return application.ApplicationDetailResponse{
		ID: kernel.ApplicationID(m.ID),
		User: application.UserSummary{
			ID:    kernel.UserID(m.UserID),
			Name:  m.UserName,
			Email: m.UserEmail,
		},
		Company: application.CompanySummary{
			ID:       kernel.CompanyID(m.CompanyID),
			Name:     m.CompanyName,
			Industry: m.CompanyIndustry,
			Location: m.CompanyLocation,
		},
		Status: application.StatusSummary{
			ID:    kernel.StatusID(m.StatusID),
			Label: m.StatusLabel,
		},
		PositionTitle: m.PositionTitle,
		DateApplied:   m.DateApplied,
		Source:        m.Source,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

const reportDetailSelect = `
	SELECT
		a.id, a.user_id, a.company_id, a.status_id,
		a.position_title, a.date_applied, a.source, a.notes,
		a.created_at, a.updated_at,
		u.name AS user_name, u.email AS user_email,
		c.name AS company_name,
		c.industry AS company_industry, c.location AS company_location,
		s.label AS status_label
	FROM applications a
	INNER JOIN users u ON a.user_id = u.id
	INNER JOIN companies c ON a.company_id = c.id
	INNER JOIN statuses s ON a.status_id = s.id
`

// buildFilterWhere turns a sanitized filter into a WHERE clause over the
// aliased applications table. The filter values are already validated, but
// they still travel as bind parameters, never as SQL text.
func buildFilterWhere(f report.SafeFilter) (string, []any) {
	var clauses []string
	var args []any

	add := func(expr string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(expr, len(args)))
	}

	if f.User != nil {
		add("a.user_id = $%d", f.User.String())
	}
	if f.Company != nil {
		add("a.company_id = $%d", f.Company.String())
	}
	if f.Status != nil {
		add("a.status_id = $%d", f.Status.String())
	}
	if f.PositionTitle != nil {
		add("a.position_title = $%d", *f.PositionTitle)
	}
	if f.DateFrom != nil {
		add("a.date_applied >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("a.date_applied <= $%d", *f.DateTo)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ============================================================================
// Repository Implementation
// ============================================================================

// FindByDateRange retrieves applications applied within [from, to] inclusive,
// enriched with their related entities, newest first
func (r *PostgresReportRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]application.ApplicationDetailResponse, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, report.ErrQueryExecution(err)
	}
	defer conn.Close()

	if r.strategy == JoinManual {
		return r.findByDateRangeManual(ctx, conn, from, to)
	}

	query := reportDetailSelect + `
		WHERE a.date_applied >= $1 AND a.date_applied <= $2
		ORDER BY a.date_applied DESC
	`

	var rows []detailRow
	if err := conn.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, report.ErrQueryExecution(err)
	}

	return toDetailResponses(rows), nil
}

// findByDateRangeManual resolves the related entities by loading the three
// reference tables whole and matching rows in memory.
func (r *PostgresReportRepository) findByDateRangeManual(ctx context.Context, conn *sqlx.Conn, from, to time.Time) ([]application.ApplicationDetailResponse, error) {
	var apps []applicationRow
	query := `
		SELECT id, user_id, company_id, status_id, position_title,
		       date_applied, source, notes, created_at, updated_at
		FROM applications
		WHERE date_applied >= $1 AND date_applied <= $2
		ORDER BY date_applied DESC
	`
	if err := conn.SelectContext(ctx, &apps, query, from, to); err != nil {
		return nil, report.ErrQueryExecution(err)
	}

	resolver, err := loadRelations(ctx, conn)
	if err != nil {
		return nil, err
	}

	results := make([]application.ApplicationDetailResponse, 0, len(apps))
	for _, app := range apps {
		results = append(results, resolver.resolve(app))
	}
	return results, nil
}

// StatusCounts groups the filtered applications by status label
func (r *PostgresReportRepository) StatusCounts(ctx context.Context, f report.SafeFilter) ([]report.StatusCount, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, report.ErrQueryExecution(err)
	}
	defer conn.Close()

	if r.strategy == JoinManual {
		return r.statusCountsManual(ctx, conn, f)
	}

	where, args := buildFilterWhere(f)
	query := `
		SELECT s.label AS status, COUNT(*) AS count
		FROM applications a
		INNER JOIN statuses s ON a.status_id = s.id
	` + where + `
		GROUP BY s.label
	`

	var counts []report.StatusCount
	if err := conn.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, report.ErrQueryExecution(err)
	}

	return counts, nil
}

// statusCountsManual fetches the matching status references and the statuses
// table, then counts label occurrences in memory.
func (r *PostgresReportRepository) statusCountsManual(ctx context.Context, conn *sqlx.Conn, f report.SafeFilter) ([]report.StatusCount, error) {
	where, args := buildFilterWhere(f)

	var statusIDs []string
	if err := conn.SelectContext(ctx, &statusIDs, `SELECT a.status_id FROM applications a`+where, args...); err != nil {
		return nil, report.ErrQueryExecution(err)
	}

	var statuses []struct {
		ID    string `db:"id"`
		Label string `db:"label"`
	}
	if err := conn.SelectContext(ctx, &statuses, `SELECT id, label FROM statuses`); err != nil {
		return nil, report.ErrQueryExecution(err)
	}

	labels := make(map[string]string, len(statuses))
	for _, s := range statuses {
		labels[s.ID] = s.Label
	}

	tally := make(map[string]int)
	var order []string
	for _, id := range statusIDs {
		label, ok := labels[id]
		if !ok {
			continue
		}
		if _, seen := tally[label]; !seen {
			order = append(order, label)
		}
		tally[label]++
	}

	counts := make([]report.StatusCount, 0, len(order))
	for _, label := range order {
		counts = append(counts, report.StatusCount{Status: label, Count: tally[label]})
	}
	return counts, nil
}

// PositionCounts groups the filtered applications by position title, largest
// group first
func (r *PostgresReportRepository) PositionCounts(ctx context.Context, f report.SafeFilter) ([]report.PositionCount, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, report.ErrQueryExecution(err)
	}
	defer conn.Close()

	where, args := buildFilterWhere(f)
	query := `
		SELECT a.position_title AS position, COUNT(*) AS count
		FROM applications a
	` + where + `
		GROUP BY a.position_title
		ORDER BY count DESC
	`

	var counts []report.PositionCount
	if err := conn.SelectContext(ctx, &counts, query, args...); err != nil {
		return nil, report.ErrQueryExecution(err)
	}

	return counts, nil
}

// AllPositionCounts groups every application by position title with no filter
func (r *PostgresReportRepository) AllPositionCounts(ctx context.Context) ([]report.PositionCount, error) {
	return r.PositionCounts(ctx, report.SafeFilter{})
}

// TimelineApplications retrieves the filtered applications ordered by
// application date ascending
func (r *PostgresReportRepository) TimelineApplications(ctx context.Context, f report.SafeFilter) ([]application.ApplicationDetailResponse, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, report.ErrQueryExecution(err)
	}
	defer conn.Close()

	where, args := buildFilterWhere(f)
	query := reportDetailSelect + where + `
		ORDER BY a.date_applied ASC
	`

	var rows []detailRow
	if err := conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, report.ErrQueryExecution(err)
	}

	return toDetailResponses(rows), nil
}

// StatusSummary returns a per-status rollup with up to five example
// applications each
func (r *PostgresReportRepository) StatusSummary(ctx context.Context) ([]report.StatusSummaryEntry, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, report.ErrQueryExecution(err)
	}
	defer conn.Close()

	var rows []struct {
		Status   string    `db:"status"`
		ID       string    `db:"id"`
		Position string    `db:"position"`
		Date     time.Time `db:"date"`
	}
	query := `
		SELECT s.label AS status, a.id, a.position_title AS position,
		       a.date_applied AS date
		FROM applications a
		INNER JOIN statuses s ON a.status_id = s.id
		ORDER BY s.label, a.date_applied
	`
	if err := conn.SelectContext(ctx, &rows, query); err != nil {
		return nil, report.ErrQueryExecution(err)
	}

	byStatus := make(map[string]*report.StatusSummaryEntry)
	var order []string
	for _, row := range rows {
		entry, ok := byStatus[row.Status]
		if !ok {
			entry = &report.StatusSummaryEntry{Status: row.Status}
			byStatus[row.Status] = entry
			order = append(order, row.Status)
		}
		entry.Count++
		if len(entry.Applications) < 5 {
			entry.Applications = append(entry.Applications, report.ApplicationExample{
				ID:       kernel.ApplicationID(row.ID),
				Position: row.Position,
				Date:     row.Date,
			})
		}
	}

	summaries := make([]report.StatusSummaryEntry, 0, len(order))
	for _, label := range order {
		summaries = append(summaries, *byStatus[label])
	}
	return summaries, nil
}

// Trends counts applications per time period
func (r *PostgresReportRepository) Trends(ctx context.Context, frame report.TimeFrame) ([]report.TrendPoint, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return nil, report.ErrQueryExecution(err)
	}
	defer conn.Close()

	var format string
	switch frame {
	case report.TimeFrameDay:
		format = "YYYY-MM-DD"
	case report.TimeFrameWeek:
		format = `IYYY-"W"IW`
	case report.TimeFrameMonth:
		format = "YYYY-MM"
	default:
		format = "YYYY"
	}

	query := `
		SELECT to_char(date_applied, $1) AS time_period, COUNT(*) AS count
		FROM applications
		GROUP BY time_period
		ORDER BY time_period
	`

	var points []report.TrendPoint
	if err := conn.SelectContext(ctx, &points, query, format); err != nil {
		return nil, report.ErrQueryExecution(err)
	}

	return points, nil
}

// ============================================================================
// Manual Join Support
// ============================================================================

type relationResolver struct {
	users     map[string]application.UserSummary
	companies map[string]application.CompanySummary
	statuses  map[string]application.StatusSummary
}

func loadRelations(ctx context.Context, conn *sqlx.Conn) (*relationResolver, error) {
	resolver := &relationResolver{
		users:     make(map[string]application.UserSummary),
		companies: make(map[string]application.CompanySummary),
		statuses:  make(map[string]application.StatusSummary),
	}

	var users []struct {
		ID    string `db:"id"`
		Name  string `db:"name"`
		Email string `db:"email"`
	}
	if err := conn.SelectContext(ctx, &users, `SELECT id, name, email FROM users`); err != nil {
		return nil, report.ErrQueryExecution(err)
	}
	for _, u := range users {
		resolver.users[u.ID] = application.UserSummary{
			ID:    kernel.UserID(u.ID),
			Name:  u.Name,
			Email: u.Email,
		}
	}

	var companies []struct {
		ID       string  `db:"id"`
		Name     string  `db:"name"`
		Industry *string `db:"industry"`
		Location *string `db:"location"`
	}
	if err := conn.SelectContext(ctx, &companies, `SELECT id, name, industry, location FROM companies`); err != nil {
		return nil, report.ErrQueryExecution(err)
	}
	for _, c := range companies {
		resolver.companies[c.ID] = application.CompanySummary{
			ID:       kernel.CompanyID(c.ID),
			Name:     c.Name,
			Industry: c.Industry,
			Location: c.Location,
		}
	}

	var statuses []struct {
		ID    string `db:"id"`
		Label string `db:"label"`
	}
	if err := conn.SelectContext(ctx, &statuses, `SELECT id, label FROM statuses`); err != nil {
		return nil, report.ErrQueryExecution(err)
	}
	for _, s := range statuses {
		resolver.statuses[s.ID] = application.StatusSummary{
			ID:    kernel.StatusID(s.ID),
			Label: s.Label,
		}
	}

	return resolver, nil
}

func (rr *relationResolver) resolve(app applicationRow) application.ApplicationDetailResponse {
	return application.ApplicationDetailResponse{
		ID:            kernel.ApplicationID(app.ID),
		User:          rr.users[app.UserID],
		Company:       rr.companies[app.CompanyID],
		Status:        rr.statuses[app.StatusID],
		PositionTitle: app.PositionTitle,
		DateApplied:   app.DateApplied,
		Source:        app.Source,
		Notes:         app.Notes,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}
}

func toDetailResponses(rows []detailRow) []application.ApplicationDetailResponse {
	results := make([]application.ApplicationDetailResponse, 0, len(rows))
	for i := range rows {
		results = append(results, rows[i].toDetailResponse())
	}
	return results
}
