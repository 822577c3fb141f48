// Package prometheus provides Prometheus collectors for goKiosk metrics.
//
// [NewPrometheusExporter] accepts a [goKiosk.Client] and exposes an [http.Handler]
// that renders all goKiosk counters and histograms in Prometheus text exposition
// format. Counter names are prefixed gokiosk_*_total; the single histogram is
// gokiosk_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
