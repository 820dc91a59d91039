package diagnosticssrv

import (
	"context"
	"fmt"
	"strings"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/pkg/logx"
	"github.com/acamacho/jobtrail/tracking/diagnostics"
	"github.com/jmoiron/sqlx"
	"github.com/tidwall/gjson"
)

// AnalyzerService runs predicates against the applications table with
// execution statistics enabled and reports how the planner executed them.
// It backs an operational tool: nothing here ever mutates data, and failures
// come back as data instead of errors.
type AnalyzerService struct {
	db *sqlx.DB
}

// NewAnalyzerService creates a new query analyzer service
func NewAnalyzerService(db *sqlx.DB) *AnalyzerService {
	return &AnalyzerService{
		db: db,
	}
}

// AnalyzeQuery executes the predicate with statistics collection and reports
// index usage and scan counters. A status value is normalized to canonical
// identifier form when possible; if it does not parse it is logged and sent
// through raw, and whatever the database says about it ends up in the result.
func (s *AnalyzerService) AnalyzeQuery(ctx context.Context, predicate diagnostics.Predicate) *diagnostics.AnalysisResult {
	if raw, ok := predicate["status"]; ok && raw != "" {
		if id, err := kernel.ParseID(raw); err == nil {
			predicate["status"] = id
		} else {
			logx.Warnf("Invalid status ID format in analyzed predicate: %q", raw)
		}
	}

	conn, err := s.db.Connx(ctx)
	if err != nil {
		return failure(err, predicate)
	}
	defer conn.Close()

	where, args := buildPredicateWhere(predicate)
	query := "EXPLAIN (ANALYZE, FORMAT JSON) SELECT * FROM applications" + where

	var planJSON string
	if err := conn.GetContext(ctx, &planJSON, query, args...); err != nil {
		return failure(err, predicate)
	}

	indexes, err := s.listIndexes(ctx, conn)
	if err != nil {
		return failure(err, predicate)
	}

	return buildResult(planJSON, predicate, indexes)
}

func failure(err error, predicate diagnostics.Predicate) *diagnostics.AnalysisResult {
	logx.Errorf("Query analysis failed: %v", err)
	return &diagnostics.AnalysisResult{
		Error:          err.Error(),
		QueryAttempted: predicate,
	}
}

// predicateColumns maps recognized predicate keys to the column expressions
// they constrain. Unrecognized keys are dropped.
var predicateColumns = []struct {
	key  string
	expr string
}{
	{"user", "user_id = $%d"},
	{"company", "company_id = $%d"},
	{"status", "status_id = $%d"},
	{"position_title", "position_title = $%d"},
	{"dateFrom", "date_applied >= $%d"},
	{"dateTo", "date_applied <= $%d"},
}

func buildPredicateWhere(predicate diagnostics.Predicate) (string, []any) {
	var clauses []string
	var args []any

	for _, col := range predicateColumns {
		v, ok := predicate[col.key]
		if !ok || v == "" {
			continue
		}
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(col.expr, len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (s *AnalyzerService) listIndexes(ctx context.Context, conn *sqlx.Conn) ([]string, error) {
	var indexes []string
	query := `SELECT indexname FROM pg_indexes WHERE tablename = 'applications' ORDER BY indexname`
	if err := conn.SelectContext(ctx, &indexes, query); err != nil {
		return nil, err
	}
	return indexes, nil
}

// buildResult extracts the interesting numbers from the JSON explain output.
func buildResult(planJSON string, predicate diagnostics.Predicate, indexes []string) *diagnostics.AnalysisResult {
	root := gjson.Parse(planJSON).Get("0")
	plan := root.Get("Plan")
	scan := findScanNode(plan)

	nodeType := scan.Get("Node Type").String()
	isIndexUsed := scan.Exists() && nodeType != "Seq Scan"

	indexName := indexNameFor(scan)
	if indexName == "" {
		indexName = "None (Sequential Scan)"
	}

	examined := scan.Get("Actual Rows").Int() + scan.Get("Rows Removed by Filter").Int()

	var keysExamined int64
	if isIndexUsed {
		keysExamined = scan.Get("Actual Rows").Int()
	}

	return &diagnostics.AnalysisResult{
		QueryDetails: &diagnostics.QueryDetails{
			Filter:           predicate,
			IndexesAvailable: indexes,
		},
		ExecutionStats: &diagnostics.ExecutionStats{
			ExecutionTimeMillis: root.Get("Execution Time").Float(),
			TotalDocsExamined:   examined,
			TotalKeysExamined:   keysExamined,
			TotalDocsReturned:   plan.Get("Actual Rows").Int(),
		},
		IndexUsage: &diagnostics.IndexUsage{
			IsIndexUsed:  isIndexUsed,
			IndexName:    indexName,
			IndexDetails: []byte(plan.Raw),
		},
	}
}

// indexNameFor returns the index the scan node used. A bitmap heap scan does
// not carry the name itself; it lives on the Bitmap Index Scan child that fed
// it, so the children are checked when the node has no name of its own.
func indexNameFor(scan gjson.Result) string {
	if name := scan.Get("Index Name").String(); name != "" {
		return name
	}

	var name string
	scan.Get("Plans").ForEach(func(_, child gjson.Result) bool {
		if child.Get("Node Type").String() == "Bitmap Index Scan" {
			name = child.Get("Index Name").String()
			return false
		}
		return true
	})
	return name
}

// findScanNode walks the plan tree depth-first for the node that actually
// touched the applications table.
func findScanNode(plan gjson.Result) gjson.Result {
	if strings.HasSuffix(plan.Get("Node Type").String(), "Scan") {
		return plan
	}

	var found gjson.Result
	plan.Get("Plans").ForEach(func(_, child gjson.Result) bool {
		node := findScanNode(child)
		if node.Exists() {
			found = node
			return false
		}
		return true
	})

	return found
}
