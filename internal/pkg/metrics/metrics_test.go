package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/sites/nearby", "200"))

	RecordAPIRequest("GET", "/api/v1/sites/nearby", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/sites/nearby", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantErr   float64
	}{
		{"successful select", "select", "historical_sites", nil, 0},
		{"failed insert", "insert", "user_contributions", errors.New("connection reset"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			RecordDBQuery(tt.operation, tt.table, 3*time.Millisecond, tt.err)
			after := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table))
			assert.Equal(t, tt.wantErr, after-before)
		})
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("site"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("site"))

	RecordCacheLookup("site", true)
	RecordCacheLookup("site", false)
	RecordCacheLookup("site", false)

	assert.Equal(t, hits+1, testutil.ToFloat64(CacheHits.WithLabelValues("site")))
	assert.Equal(t, misses+2, testutil.ToFloat64(CacheMisses.WithLabelValues("site")))
}

func TestRecordSearch(t *testing.T) {
	before := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("nearby", "bbox"))

	RecordSearch("nearby", "bbox", 2*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("nearby", "bbox")))
	assert.Equal(t, 1, testutil.CollectAndCount(SearchDuration.WithLabelValues("nearby", "bbox").(prometheus.Histogram)))
}
