package core

// CollectorConfig contains configuration for the statistics object.
type CollectorConfig struct {
	// StrictCounters surfaces counter source failures as errors instead of
	// reporting them as zero bytes.
	StrictCounters bool `json:"strictCounters" yaml:"strictCounters"`

	// InitialPeriod is the collection period (seconds) the object starts with.
	InitialPeriod uint32 `json:"initialPeriod" yaml:"initialPeriod"`
}

// SourceConfig selects and configures the counter source.
type SourceConfig struct {
	// Kind is one of "sysfs", "procfs", "auto" (sysfs then procfs) or "wireguard".
	Kind string `json:"kind" yaml:"kind"`

	// Interface pins the measured interface. If empty, the interface that
	// carries the uplink connection is used.
	Interface string `json:"interface" yaml:"interface"`

	// Uplink is a host:port the primary transport connects to. A connected UDP
	// socket is opened to it so the kernel picks the outgoing interface.
	Uplink string `json:"uplink" yaml:"uplink"`

	// SysfsRoot is the sysfs mount point.
	SysfsRoot string `json:"sysfsRoot" yaml:"sysfsRoot"`

	// ProcNetDev is the path of the /proc/net/dev table.
	ProcNetDev string `json:"procNetDev" yaml:"procNetDev"`
}
