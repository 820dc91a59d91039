package diagnostics

import "encoding/json"

// Predicate is a raw application filter under analysis. Unlike report
// filters, values here are not required to be valid; the analyzer is a
// diagnostic tool and reports what the database did with them.
type Predicate map[string]string

// QueryDetails echoes the analyzed predicate and the indexes that were
// available to the planner
type QueryDetails struct {
	Filter           Predicate `json:"filter"`
	IndexesAvailable []string  `json:"indexesAvailable"`
}

// ExecutionStats carries the row counters collected while running the query
type ExecutionStats struct {
	ExecutionTimeMillis float64 `json:"executionTimeMillis"`
	TotalDocsExamined   int64   `json:"totalDocsExamined"`
	TotalKeysExamined   int64   `json:"totalKeysExamined"`
	TotalDocsReturned   int64   `json:"totalDocsReturned"`
}

// IndexUsage reports whether the planner chose an index over a full scan
type IndexUsage struct {
	IsIndexUsed  bool            `json:"isIndexUsed"`
	IndexName    string          `json:"indexName"`
	IndexDetails json.RawMessage `json:"indexDetails,omitempty"`
}

// AnalysisResult is the outcome of analyzing one predicate. On success the
// three detail sections are populated; on failure only Error and
// QueryAttempted are set. Failures are data here, never raised.
type AnalysisResult struct {
	QueryDetails   *QueryDetails   `json:"queryDetails,omitempty"`
	ExecutionStats *ExecutionStats `json:"executionStats,omitempty"`
	IndexUsage     *IndexUsage     `json:"indexUsage,omitempty"`
	Error          string          `json:"error,omitempty"`
	QueryAttempted Predicate       `json:"queryAttempted,omitempty"`
}
