package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goKiosk "github.com/MrEthical07/goKiosk"
)

type fakeSource struct {
	snapshot goKiosk.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() goKiosk.MetricsSnapshot { return f.snapshot }
func (f fakeSource) SignalsDropped() uint64                   { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goKiosk.MetricsSnapshot{
			Counters:   map[goKiosk.MetricID]uint64{},
			Histograms: map[goKiosk.MetricID][]uint64{},
		},
		dropped: 0,
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderIncludesCounterAndHistogram(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goKiosk.MetricsSnapshot{
			Counters: map[goKiosk.MetricID]uint64{
				goKiosk.MetricLoginSuccess: 7,
				goKiosk.MetricAuthExpired:  3,
			},
			Histograms: map[goKiosk.MetricID][]uint64{
				goKiosk.MetricRequestLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	if !strings.Contains(out, "gokiosk_login_success_total 7") {
		t.Fatalf("expected login_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "gokiosk_auth_expired_total 3") {
		t.Fatalf("expected auth_expired counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "gokiosk_request_latency_seconds_bucket{le=\"0.005\"} 1") {
		t.Fatalf("expected first histogram bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "gokiosk_request_latency_seconds_bucket{le=\"+Inf\"} 36") {
		t.Fatalf("expected +Inf cumulative bucket in output, got:\n%s", out)
	}
	if !strings.Contains(out, "gokiosk_signals_dropped_total 2") {
		t.Fatalf("expected dropped signals counter in output, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goKiosk.MetricsSnapshot{
			Counters:   map[goKiosk.MetricID]uint64{goKiosk.MetricRequestSuccess: 1},
			Histograms: map[goKiosk.MetricID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: goKiosk.MetricsSnapshot{
			Counters: map[goKiosk.MetricID]uint64{
				goKiosk.MetricRequestSuccess:   1000,
				goKiosk.MetricRequestFailure:   40,
				goKiosk.MetricAuthExpired:      12,
				goKiosk.MetricLoginSuccess:     800,
				goKiosk.MetricLoginFailure:     10,
				goKiosk.MetricProfileResolved:  790,
				goKiosk.MetricExpirySuppressed: 9,
			},
			Histograms: map[goKiosk.MetricID][]uint64{
				goKiosk.MetricRequestLatency: {10, 20, 30, 40, 50, 60, 70, 80},
			},
		},
		dropped: 0,
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
