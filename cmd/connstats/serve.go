package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/irctrakz/connstats/pkg/api"
	"github.com/irctrakz/connstats/pkg/config"
	"github.com/irctrakz/connstats/pkg/core"
	"github.com/irctrakz/connstats/pkg/counters"
	"github.com/irctrakz/connstats/pkg/dm"
	"github.com/irctrakz/connstats/pkg/host"
	"github.com/irctrakz/connstats/pkg/logging"
	"github.com/irctrakz/connstats/pkg/metrics"
	"github.com/irctrakz/connstats/pkg/stats"
	wg "github.com/irctrakz/connstats/pkg/wireguard"
)

const shutdownTimeout = 5 * time.Second

// agent holds everything serve starts, so it can be torn down in order.
type agent struct {
	host    *host.Host
	api     *api.Server
	device  wg.DeviceHandle
	uplink  net.Conn
	stopRep chan struct{}
}

// counterSetup is the counter source, the interface resolver and whatever
// they keep open.
type counterSetup struct {
	source   core.CounterSource
	resolver core.InterfaceResolver
	device   wg.DeviceHandle
	uplink   net.Conn
}

func (c *counterSetup) close() {
	if c.uplink != nil {
		c.uplink.Close()
	}
	if c.device != nil {
		c.device.Close()
	}
}

// buildCounters selects the counter source for cfg.Source.Kind.
func buildCounters(cfg *config.Config) (*counterSetup, error) {
	setup := &counterSetup{}

	switch cfg.Source.Kind {
	case config.SourceSysfs:
		setup.source = counters.NewSysfsSource(cfg.Source.SysfsRoot)
	case config.SourceProcfs:
		setup.source = counters.NewProcNetDevSource(cfg.Source.ProcNetDev)
	case config.SourceAuto:
		setup.source = counters.Chain{
			counters.NewSysfsSource(cfg.Source.SysfsRoot),
			counters.NewProcNetDevSource(cfg.Source.ProcNetDev),
		}
	case config.SourceWireGuard:
		tdev, err := wg.CreateTUN(cfg.WireGuard)
		if err != nil {
			return nil, fmt.Errorf("wireguard tun: %w", err)
		}
		dev, err := wg.StartDevice(cfg.WireGuard, tdev)
		if err != nil {
			tdev.Close()
			return nil, fmt.Errorf("wireguard start: %w", err)
		}
		setup.device = dev
		setup.source = wg.NewSource(dev, dev.Name())
		setup.resolver = counters.StaticResolver(dev.Name())
		return setup, nil
	default:
		return nil, fmt.Errorf("unknown counter source %q", cfg.Source.Kind)
	}

	if cfg.Source.Interface != "" {
		setup.resolver = counters.StaticResolver(cfg.Source.Interface)
		return setup, nil
	}

	// A connected UDP socket sends nothing but pins the route, so its local
	// address names the uplink interface.
	conn, err := net.Dial("udp", cfg.Source.Uplink)
	if err != nil {
		return nil, fmt.Errorf("uplink %s: %w", cfg.Source.Uplink, err)
	}
	r := counters.NewConnResolver()
	r.Track(conn)
	setup.uplink = conn
	setup.resolver = r
	return setup, nil
}

// newHost builds the object on top of setup and applies the initial period.
func newHost(cfg *config.Config, setup *counterSetup) (*host.Host, error) {
	fallback := stats.FallbackZero
	if cfg.Collector.StrictCounters {
		fallback = stats.FallbackStrict
	}
	sampler := stats.NewSampler(setup.source, setup.resolver, fallback)
	h := host.New(dm.New(sampler))

	if p := cfg.Collector.InitialPeriod; p > 0 {
		if err := h.Write(dm.CollectionPeriod, dm.Int64(int64(p))); err != nil {
			return nil, fmt.Errorf("initial collection period: %w", err)
		}
	}
	return h, nil
}

func startAgent(cfg *config.Config) (*agent, error) {
	log := logging.For("serve")

	setup, err := buildCounters(cfg)
	if err != nil {
		return nil, err
	}
	h, err := newHost(cfg, setup)
	if err != nil {
		setup.close()
		return nil, err
	}
	if iface, ok := setup.resolver.PrimaryInterface(); ok {
		logging.InfoWithFields(logrus.Fields{"iface": iface, "source": cfg.Source.Kind}, "Counting bytes")
	} else {
		log.Warnf("No interface resolved yet (source %s)", cfg.Source.Kind)
	}

	a := &agent{host: h, device: setup.device, uplink: setup.uplink}

	a.api = api.New(cfg.API, h)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		if err := metrics.NewExporter(h).Register(reg); err != nil {
			setup.close()
			return nil, fmt.Errorf("metrics: %w", err)
		}
		a.api.Handle(cfg.Metrics.Path, metrics.Handler(reg))
	}
	a.api.Start()

	interval, _ := cfg.ReporterInterval()
	if interval > 0 {
		a.stopRep = make(chan struct{})
		rep := newReporter(h, setup.device, cfg.Reporter.Format)
		go rep.run(interval, a.stopRep)
	}
	return a, nil
}

func (a *agent) stop() {
	if a.stopRep != nil {
		close(a.stopRep)
	}
	if err := a.api.Stop(shutdownTimeout); err != nil {
		logging.Errorf("API shutdown: %v", err)
	}
	if a.uplink != nil {
		a.uplink.Close()
	}
	if a.device != nil {
		a.device.Close()
	}
}

func serve(cfg *config.Config) error {
	a, err := startAgent(cfg)
	if err != nil {
		return err
	}
	defer a.stop()

	// Wait for termination
	sigc := make(chan os.Signal, 2)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logging.Infof("Received %s, shutting down", sig)
	return nil
}
