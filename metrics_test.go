package mediainfo

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsTrackSession(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	fake := newFakeMediaInfo(EncodingUTF16)
	fake.files["a.mkv"] = sampleFile()
	mi, err := newSession(fake.lib(), Config{Allocator: newHeapAllocator(), Metrics: metrics}, "linux")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SessionsLive))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Negotiations.WithLabelValues("utf-16/wide")))
	// Two probes, two buffers each.
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.BuffersAllocated))

	_, err = mi.Open("missing.mkv")
	require.NoError(t, err)
	_, err = mi.Open("a.mkv")
	require.NoError(t, err)
	_, err = mi.Get(StreamGeneral, 0, "Format")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OpenFailures))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.NativeCalls.WithLabelValues("open", "wide")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.NativeCalls.WithLabelValues("get", "wide")))
	assert.Equal(t, testutil.ToFloat64(metrics.BuffersAllocated), testutil.ToFloat64(metrics.BuffersFreed))

	require.NoError(t, mi.Close())
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SessionsLive))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.FinalizerReleases))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.NativeCalls.WithLabelValues("delete", "common")))
}

func TestMetricsUnsupportedNegotiation(t *testing.T) {
	metrics := NewMetrics(nil)
	fake := newFakeMediaInfo(EncodingUnknown)
	fake.version = "nope"

	_, err := newSession(fake.lib(), Config{Allocator: newHeapAllocator(), Metrics: metrics}, "linux")
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Negotiations.WithLabelValues("unsupported")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.SessionsLive))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.nativeCall("get", "wide")
		m.bufferAllocated()
		m.bufferFreed()
		m.openFailed()
		m.negotiated("utf-32/wide")
		m.sessionOpened()
		m.sessionReleased(true)
	})
}
