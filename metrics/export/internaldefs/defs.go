package internaldefs

import (
	goKiosk "github.com/MrEthical07/goKiosk"
)

// CounterDef binds a client counter to its stable exported name.
type CounterDef struct {
	ID   goKiosk.MetricID
	Name string
	Help string
}

// HistogramDef binds a client histogram to its stable exported name.
type HistogramDef struct {
	ID   goKiosk.MetricID
	Name string
	Help string
}

// CounterDefs is the authoritative counter list. Order is the render order.
var CounterDefs = []CounterDef{
	{ID: goKiosk.MetricRequestSuccess, Name: "gokiosk_request_success_total", Help: "Calls that decoded a 2xx response."},
	{ID: goKiosk.MetricRequestFailure, Name: "gokiosk_request_failure_total", Help: "Calls rejected with a non-2xx status."},
	{ID: goKiosk.MetricTransportError, Name: "gokiosk_transport_error_total", Help: "Calls that never reached the backend."},
	{ID: goKiosk.MetricAuthExpired, Name: "gokiosk_auth_expired_total", Help: "Observed 401 responses."},
	{ID: goKiosk.MetricExpirySignaled, Name: "gokiosk_expiry_signaled_total", Help: "Expiry side effects that fired."},
	{ID: goKiosk.MetricExpirySuppressed, Name: "gokiosk_expiry_suppressed_total", Help: "Expiry side effects collapsed by the cooldown latch."},
	{ID: goKiosk.MetricValidationRejected, Name: "gokiosk_validation_rejected_total", Help: "Observed 422 responses."},
	{ID: goKiosk.MetricLoginSuccess, Name: "gokiosk_login_success_total", Help: "Successful logins."},
	{ID: goKiosk.MetricLoginFailure, Name: "gokiosk_login_failure_total", Help: "Rejected logins."},
	{ID: goKiosk.MetricProfileResolved, Name: "gokiosk_profile_resolved_total", Help: "Profile fetches that activated the session."},
	{ID: goKiosk.MetricLogout, Name: "gokiosk_logout_total", Help: "Explicit logout operations."},
}

// HistogramDefs is the authoritative histogram list.
var HistogramDefs = []HistogramDef{
	{ID: goKiosk.MetricRequestLatency, Name: "gokiosk_request_latency_seconds", Help: "Per-call latency histogram."},
}

// HistogramBounds are the upper bucket bounds in seconds, Prometheus form.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds with characters legal in
// OTel/Prometheus metric name suffixes.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form
// Prometheus expects.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
