package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSearch(t *testing.T) {
	before := testutil.ToFloat64(SearchesTotal.WithLabelValues("ranked"))

	RecordSearch("ranked", 10)
	RecordSearch("ranked", 3)

	assert.Equal(t, before+2, testutil.ToFloat64(SearchesTotal.WithLabelValues("ranked")))
}

func TestRecordCache(t *testing.T) {
	tests := []string{"hit", "miss", "error"}

	for _, result := range tests {
		t.Run(result, func(t *testing.T) {
			before := testutil.ToFloat64(SearchCacheTotal.WithLabelValues(result))
			RecordCache(result)
			assert.Equal(t, before+1, testutil.ToFloat64(SearchCacheTotal.WithLabelValues(result)))
		})
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/recipes", "200"))

	RecordHTTPRequest("GET", "/api/v1/recipes", 200, 0.002)

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/recipes", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/recipes", "500")))
}
