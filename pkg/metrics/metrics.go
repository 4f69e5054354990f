// Package metrics publishes the statistics object to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/irctrakz/connstats/pkg/dm"
	"github.com/irctrakz/connstats/pkg/host"
)

const namespace = "connstats"

// Config contains configuration for the metrics endpoint.
type Config struct {
	// Enabled mounts /metrics on the API server.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is where metrics are served.
	Path string `json:"path" yaml:"path"`
}

// Exporter is a prometheus.Collector over a Host, and a host.Observer
// counting requests by operation and status.
type Exporter struct {
	host *host.Host

	txKilobytes *prometheus.Desc
	rxKilobytes *prometheus.Desc
	period      *prometheus.Desc
	collecting  *prometheus.Desc
	readErrors  *prometheus.Desc

	requests *prometheus.CounterVec
}

// NewExporter creates an exporter reading from h. Register it with
// Register so its request counter is wired to h.
func NewExporter(h *host.Host) *Exporter {
	return &Exporter{
		host: h,
		txKilobytes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "tx_kilobytes"),
			"Kilobytes transmitted in the current or last collection window.",
			nil, nil),
		rxKilobytes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "rx_kilobytes"),
			"Kilobytes received in the current or last collection window.",
			nil, nil),
		period: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "collection_period_seconds"),
			"Configured collection period.",
			nil, nil),
		collecting: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "collecting"),
			"1 while a collection window is open.",
			nil, nil),
		readErrors: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "scrape_read_error"),
			"1 if reading the counters failed during this scrape.",
			nil, nil),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Data-model requests by operation and result.",
		}, []string{"op", "status"}),
	}
}

// Describe implements prometheus.Collector.
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.txKilobytes
	ch <- e.rxKilobytes
	ch <- e.period
	ch <- e.collecting
	ch <- e.readErrors
	e.requests.Describe(ch)
}

// Collect implements prometheus.Collector.
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	snap := e.host.Snapshot()

	collecting := 0.0
	if snap.State == dm.Collecting.String() {
		collecting = 1
	}
	readErr := 0.0
	if snap.Err != "" {
		readErr = 1
	}

	ch <- prometheus.MustNewConstMetric(e.txKilobytes, prometheus.GaugeValue, float64(snap.TxKilobytes))
	ch <- prometheus.MustNewConstMetric(e.rxKilobytes, prometheus.GaugeValue, float64(snap.RxKilobytes))
	ch <- prometheus.MustNewConstMetric(e.period, prometheus.GaugeValue, float64(snap.CollectionPeriod))
	ch <- prometheus.MustNewConstMetric(e.collecting, prometheus.GaugeValue, collecting)
	ch <- prometheus.MustNewConstMetric(e.readErrors, prometheus.GaugeValue, readErr)
	e.requests.Collect(ch)
}

// ObserveRequest implements host.Observer.
func (e *Exporter) ObserveRequest(op string, status dm.Status) {
	e.requests.WithLabelValues(op, status.String()).Inc()
}

// Register adds the exporter to reg and subscribes it to the host.
func (e *Exporter) Register(reg prometheus.Registerer) error {
	if err := reg.Register(e); err != nil {
		return err
	}
	e.host.AddObserver(e)
	return nil
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
