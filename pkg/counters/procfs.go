package counters

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/irctrakz/connstats/pkg/core"
)

// DefaultProcNetDev is the kernel's per-interface statistics table.
const DefaultProcNetDev = "/proc/net/dev"

// ErrUnknownInterface is returned when the table has no row for an interface.
var ErrUnknownInterface = errors.New("interface not found")

// InterfaceStats holds the byte and packet counters of one /proc/net/dev row.
type InterfaceStats struct {
	Name      string
	RxBytes   uint64
	TxBytes   uint64
	RxPackets uint64
	TxPackets uint64
}

// ProcNetDevSource reads counters from a /proc/net/dev formatted file.
type ProcNetDevSource struct {
	Path string
}

// NewProcNetDevSource returns a source reading path, or /proc/net/dev when empty.
func NewProcNetDevSource(path string) *ProcNetDevSource {
	if path == "" {
		path = DefaultProcNetDev
	}
	return &ProcNetDevSource{Path: path}
}

// ReadCounter implements core.CounterSource.
func (p *ProcNetDevSource) ReadCounter(iface string, dir core.Direction) (uint64, error) {
	stats, err := ReadNetDevStats(p.Path)
	if err != nil {
		return 0, err
	}
	s, ok := stats[iface]
	if !ok {
		return 0, fmt.Errorf("%s in %s: %w", iface, p.Path, ErrUnknownInterface)
	}
	if dir == core.Tx {
		return s.TxBytes, nil
	}
	return s.RxBytes, nil
}

// ReadNetDevStats parses every interface row of a /proc/net/dev formatted file.
func ReadNetDevStats(path string) (map[string]InterfaceStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stats := make(map[string]InterfaceStats)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		// Two header lines
		if lineNum <= 2 {
			continue
		}

		parts := strings.SplitN(scanner.Text(), ":", 2)
		if len(parts) != 2 {
			continue
		}

		name := strings.TrimSpace(parts[0])
		fields := strings.Fields(parts[1])
		if len(fields) < 16 {
			continue
		}

		s := InterfaceStats{Name: name}
		s.RxBytes, _ = strconv.ParseUint(fields[0], 10, 64)
		s.RxPackets, _ = strconv.ParseUint(fields[1], 10, 64)
		s.TxBytes, _ = strconv.ParseUint(fields[8], 10, 64)
		s.TxPackets, _ = strconv.ParseUint(fields[9], 10, 64)
		stats[name] = s
	}

	return stats, scanner.Err()
}
