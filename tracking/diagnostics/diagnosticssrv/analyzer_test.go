package diagnosticssrv

import (
	"testing"

	"github.com/acamacho/jobtrail/tracking/diagnostics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seqScanPlan = `[
  {
    "Plan": {
      "Node Type": "Seq Scan",
      "Relation Name": "applications",
      "Actual Rows": 3,
      "Rows Removed by Filter": 97
    },
    "Planning Time": 0.120,
    "Execution Time": 1.543
  }
]`

const indexScanPlan = `[
  {
    "Plan": {
      "Node Type": "Index Scan",
      "Index Name": "idx_applications_status_id",
      "Relation Name": "applications",
      "Actual Rows": 5,
      "Rows Removed by Filter": 0
    },
    "Execution Time": 0.312
  }
]`

const bitmapScanPlan = `[
  {
    "Plan": {
      "Node Type": "Sort",
      "Actual Rows": 2,
      "Plans": [
        {
          "Node Type": "Bitmap Heap Scan",
          "Relation Name": "applications",
          "Actual Rows": 2,
          "Rows Removed by Filter": 8,
          "Plans": [
            {
              "Node Type": "Bitmap Index Scan",
              "Index Name": "idx_applications_user_id",
              "Actual Rows": 10
            }
          ]
        }
      ]
    },
    "Execution Time": 2.001
  }
]`

func TestBuildResultSeqScan(t *testing.T) {
	result := buildResult(seqScanPlan, diagnostics.Predicate{"position_title": "SWE"}, []string{"applications_pkey"})

	require.NotNil(t, result.IndexUsage)
	assert.False(t, result.IndexUsage.IsIndexUsed)
	assert.Equal(t, "None (Sequential Scan)", result.IndexUsage.IndexName)

	require.NotNil(t, result.ExecutionStats)
	assert.Equal(t, 1.543, result.ExecutionStats.ExecutionTimeMillis)
	assert.Equal(t, int64(100), result.ExecutionStats.TotalDocsExamined)
	assert.Equal(t, int64(0), result.ExecutionStats.TotalKeysExamined)
	assert.Equal(t, int64(3), result.ExecutionStats.TotalDocsReturned)

	require.NotNil(t, result.QueryDetails)
	assert.Equal(t, []string{"applications_pkey"}, result.QueryDetails.IndexesAvailable)
	assert.Empty(t, result.Error)
}

func TestBuildResultIndexScan(t *testing.T) {
	result := buildResult(indexScanPlan, diagnostics.Predicate{}, nil)

	require.NotNil(t, result.IndexUsage)
	assert.True(t, result.IndexUsage.IsIndexUsed)
	assert.Equal(t, "idx_applications_status_id", result.IndexUsage.IndexName)
	assert.Equal(t, int64(5), result.ExecutionStats.TotalKeysExamined)
	assert.Equal(t, int64(5), result.ExecutionStats.TotalDocsExamined)
}

func TestBuildResultBitmapScan(t *testing.T) {
	result := buildResult(bitmapScanPlan, diagnostics.Predicate{}, nil)

	require.NotNil(t, result.IndexUsage)
	assert.True(t, result.IndexUsage.IsIndexUsed)
	assert.Equal(t, "idx_applications_user_id", result.IndexUsage.IndexName)
	assert.Equal(t, int64(10), result.ExecutionStats.TotalDocsExamined)
	assert.Equal(t, int64(2), result.ExecutionStats.TotalKeysExamined)
	assert.Equal(t, int64(2), result.ExecutionStats.TotalDocsReturned)
}

func TestBuildPredicateWhere(t *testing.T) {
	where, args := buildPredicateWhere(diagnostics.Predicate{
		"status":         "6ec0bd7f-11c0-43da-975e-2a8ad9ebae0b",
		"position_title": "SWE",
		"ignored":        "x",
	})

	assert.Contains(t, where, "status_id = $")
	assert.Contains(t, where, "position_title = $")
	assert.NotContains(t, where, "ignored")
	assert.Len(t, args, 2)
}

func TestBuildPredicateWhereEmpty(t *testing.T) {
	where, args := buildPredicateWhere(diagnostics.Predicate{})

	assert.Empty(t, where)
	assert.Empty(t, args)
}
