package goKiosk

import (
	"testing"
	"time"
)

func TestMetricsDisabledIsNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{})

	m.Inc(MetricRequestSuccess)
	m.Observe(MetricRequestLatency, 10*time.Millisecond)

	if m.Enabled() {
		t.Fatal("expected metrics disabled")
	}
	if got := m.Value(MetricRequestSuccess); got != 0 {
		t.Fatalf("expected zero value when disabled, got %d", got)
	}
	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("expected empty snapshot when disabled, got %+v", snap)
	}
}

func TestMetricsNilReceiverSafe(t *testing.T) {
	var m *Metrics

	m.Inc(MetricRequestSuccess)
	m.Observe(MetricRequestLatency, time.Millisecond)

	if m.Enabled() {
		t.Fatal("expected nil metrics disabled")
	}
	if got := m.Value(MetricRequestSuccess); got != 0 {
		t.Fatalf("expected zero from nil metrics, got %d", got)
	}
}

func TestMetricsCountersAndSnapshot(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	m.Inc(MetricRequestSuccess)
	m.Inc(MetricRequestSuccess)
	m.Inc(MetricAuthExpired)
	m.Observe(MetricRequestLatency, 3*time.Millisecond)
	m.Observe(MetricRequestLatency, 80*time.Millisecond)
	m.Observe(MetricRequestLatency, 2*time.Second)

	if got := m.Value(MetricRequestSuccess); got != 2 {
		t.Fatalf("expected 2 successes, got %d", got)
	}

	snap := m.Snapshot()
	if snap.Counters[MetricAuthExpired] != 1 {
		t.Fatalf("expected 1 auth expiry, got %d", snap.Counters[MetricAuthExpired])
	}
	buckets := snap.Histograms[MetricRequestLatency]
	if len(buckets) != histBucketCount {
		t.Fatalf("expected %d buckets, got %d", histBucketCount, len(buckets))
	}
	if buckets[0] != 1 || buckets[4] != 1 || buckets[7] != 1 {
		t.Fatalf("unexpected bucket distribution: %v", buckets)
	}

	// Snapshot is a copy: mutating it does not touch live counters.
	snap.Counters[MetricRequestSuccess] = 99
	if got := m.Value(MetricRequestSuccess); got != 2 {
		t.Fatalf("expected live counter unchanged, got %d", got)
	}
}

func TestBucketIndexBoundaries(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int
	}{
		{time.Millisecond, 0},
		{5 * time.Millisecond, 0},
		{6 * time.Millisecond, 1},
		{25 * time.Millisecond, 2},
		{50 * time.Millisecond, 3},
		{100 * time.Millisecond, 4},
		{250 * time.Millisecond, 5},
		{500 * time.Millisecond, 6},
		{501 * time.Millisecond, 7},
		{time.Minute, 7},
	}
	for _, c := range cases {
		if got := bucketIndex(c.d); got != c.want {
			t.Fatalf("bucketIndex(%v) = %d, want %d", c.d, got, c.want)
		}
	}
}
