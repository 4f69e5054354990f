package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/irctrakz/connstats/pkg/host"
	"github.com/irctrakz/connstats/pkg/logging"
	wg "github.com/irctrakz/connstats/pkg/wireguard"
)

type reportSnapshot struct {
	host.Snapshot
	WG *wg.HandshakeSummary `json:"wg_hs,omitempty"`
	RT map[string]uint64    `json:"rt"`
}

// reporter periodically logs the readable values of the object.
type reporter struct {
	host   *host.Host
	dev    wg.DeviceHandle
	format string
	log    *logrus.Entry
	now    func() time.Time
}

func newReporter(h *host.Host, dev wg.DeviceHandle, format string) *reporter {
	if format == "" {
		format = "text"
	}
	return &reporter{host: h, dev: dev, format: format, log: logging.For("reporter"), now: time.Now}
}

func (r *reporter) run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		r.dump()
		select {
		case <-ticker.C:
		case <-stop:
			return
		}
	}
}

func (r *reporter) snapshot() reportSnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	snap := reportSnapshot{
		Snapshot: r.host.Snapshot(),
		RT: map[string]uint64{
			"heap_alloc": ms.HeapAlloc,
			"heap_inuse": ms.HeapInuse,
			"num_gc":     uint64(ms.NumGC),
			"goroutines": uint64(runtime.NumGoroutine()),
		},
	}
	if r.dev != nil {
		if state, err := r.dev.IpcGet(); err == nil {
			hs := wg.SummarizeHandshakes(wg.ParseTransfer(state), r.now())
			snap.WG = &hs
		}
	}
	return snap
}

func (r *reporter) dump() {
	snap := r.snapshot()

	switch r.format {
	case "json":
		b, err := json.Marshal(snap)
		if err != nil {
			r.log.Warnf("metrics: %v", err)
			return
		}
		r.log.Infof("metrics: %s", string(b))
	default:
		r.log.Info(formatText(snap))
	}
}

func formatText(snap reportSnapshot) string {
	line := fmt.Sprintf("metrics: ts=%s state=%s tx=%dKiB rx=%dKiB period=%ds",
		snap.Timestamp.Format(time.RFC3339), snap.State,
		snap.TxKilobytes, snap.RxKilobytes, snap.CollectionPeriod)
	if hs := snap.WG; hs != nil {
		line += fmt.Sprintf(" | wg hs: peers=%d %d/%d oldest=%ds newest=%ds",
			hs.Peers, hs.Fresh, hs.Stale, hs.OldestSec, hs.NewestSec)
	}
	line += fmt.Sprintf(" | rt: heap=%dMi gor=%d gc=%d",
		snap.RT["heap_alloc"]/(1024*1024), snap.RT["goroutines"], snap.RT["num_gc"])
	if snap.Err != "" {
		line += " | err=" + snap.Err
	}
	return line
}
