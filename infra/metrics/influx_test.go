package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	coremetrics "github.com/kilianp07/evroute/core/metrics"
)

func TestInfluxSinkFallback(t *testing.T) {
	// No InfluxDB listening: the health check fails and planning continues
	// against a no-op sink.
	sink := NewInfluxSinkWithFallback(coremetrics.Config{
		InfluxEnabled: true,
		InfluxURL:     "http://127.0.0.1:1",
		InfluxOrg:     "evroute",
		InfluxBucket:  "routes",
	})
	assert.IsType(t, coremetrics.NopSink{}, sink)
	assert.NoError(t, sink.RecordSearch(coremetrics.SearchEvent{}))
}

func TestNewInfluxSinkTrimsWritePath(t *testing.T) {
	sink := NewInfluxSink("http://localhost:8086/api/v2/write", "token", "org", "bucket")
	assert.NotNil(t, sink.client)
	assert.NotNil(t, sink.writeAPI)
	sink.Close()
}
