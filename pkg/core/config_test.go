package core

import (
	"testing"
)

// TestCollectorConfig tests the CollectorConfig structure.
func TestCollectorConfig(t *testing.T) {
	config := CollectorConfig{
		StrictCounters: true,
		InitialPeriod:  60,
	}

	if !config.StrictCounters {
		t.Errorf("Expected StrictCounters to be true, got %v", config.StrictCounters)
	}

	if config.InitialPeriod != 60 {
		t.Errorf("Expected InitialPeriod to be 60, got %d", config.InitialPeriod)
	}
}

// TestSourceConfig tests the SourceConfig structure.
func TestSourceConfig(t *testing.T) {
	config := SourceConfig{
		Kind:       "sysfs",
		Interface:  "eth0",
		Uplink:     "192.0.2.10:5683",
		SysfsRoot:  "/sys",
		ProcNetDev: "/proc/net/dev",
	}

	if config.Kind != "sysfs" {
		t.Errorf("Expected Kind to be 'sysfs', got '%s'", config.Kind)
	}

	if config.Interface != "eth0" {
		t.Errorf("Expected Interface to be 'eth0', got '%s'", config.Interface)
	}

	if config.Uplink != "192.0.2.10:5683" {
		t.Errorf("Expected Uplink to be '192.0.2.10:5683', got '%s'", config.Uplink)
	}

	if config.SysfsRoot != "/sys" {
		t.Errorf("Expected SysfsRoot to be '/sys', got '%s'", config.SysfsRoot)
	}

	if config.ProcNetDev != "/proc/net/dev" {
		t.Errorf("Expected ProcNetDev to be '/proc/net/dev', got '%s'", config.ProcNetDev)
	}
}
