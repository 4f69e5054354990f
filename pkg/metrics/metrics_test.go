package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irctrakz/connstats/pkg/core"
	"github.com/irctrakz/connstats/pkg/counters"
	"github.com/irctrakz/connstats/pkg/dm"
	"github.com/irctrakz/connstats/pkg/host"
	"github.com/irctrakz/connstats/pkg/stats"
)

func newExporter(t *testing.T) (*Exporter, *host.Host, *counters.MockSource, *prometheus.Registry) {
	t.Helper()
	src := counters.NewMockSource()
	h := host.New(dm.New(stats.NewSampler(src, counters.StaticResolver("eth0"), stats.FallbackZero)))
	e := NewExporter(h)
	reg := prometheus.NewRegistry()
	require.NoError(t, e.Register(reg))
	return e, h, src, reg
}

func TestExporter_Gauges(t *testing.T) {
	_, h, src, reg := newExporter(t)
	src.Set("eth0", core.Tx, 0, 4*1024)
	src.Set("eth0", core.Rx, 0, 2*1024)

	require.NoError(t, h.Write(dm.CollectionPeriod, dm.Int64(30)))
	require.NoError(t, h.Execute(dm.StartCollection))

	expected := `
# HELP connstats_collecting 1 while a collection window is open.
# TYPE connstats_collecting gauge
connstats_collecting 1
# HELP connstats_collection_period_seconds Configured collection period.
# TYPE connstats_collection_period_seconds gauge
connstats_collection_period_seconds 30
# HELP connstats_rx_kilobytes Kilobytes received in the current or last collection window.
# TYPE connstats_rx_kilobytes gauge
connstats_rx_kilobytes 2
# HELP connstats_tx_kilobytes Kilobytes transmitted in the current or last collection window.
# TYPE connstats_tx_kilobytes gauge
connstats_tx_kilobytes 4
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"connstats_collecting", "connstats_collection_period_seconds",
		"connstats_rx_kilobytes", "connstats_tx_kilobytes")
	assert.NoError(t, err)
}

func TestExporter_RequestCounter(t *testing.T) {
	e, h, src, _ := newExporter(t)
	src.Set("eth0", core.Tx, 0)
	src.Set("eth0", core.Rx, 0)

	require.NoError(t, h.Execute(dm.StartCollection))
	require.NoError(t, h.Execute(dm.StopCollection))
	_ = h.Execute(dm.StopCollection)
	_, _ = h.Read(42)

	assert.Equal(t, 2.0, testutil.ToFloat64(e.requests.WithLabelValues("execute", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.requests.WithLabelValues("execute", "bad_request")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.requests.WithLabelValues("read", "not_found")))
}

func TestHandler(t *testing.T) {
	_, _, _, reg := newExporter(t)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "connstats_tx_kilobytes 0")
}
