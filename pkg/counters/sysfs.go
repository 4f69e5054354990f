// Package counters provides the counter sources and interface resolvers the
// statistics object samples: kernel sysfs/procfs readers, a fallback chain,
// a connection-based resolver and a scripted mock.
package counters

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/irctrakz/connstats/pkg/core"
)

// DefaultSysfsRoot is where sysfs is mounted on Linux.
const DefaultSysfsRoot = "/sys"

// ErrInvalidInterface is returned for names that cannot be a kernel interface.
var ErrInvalidInterface = errors.New("invalid interface name")

// SysfsSource reads <Root>/class/net/<iface>/statistics/{tx,rx}_bytes.
type SysfsSource struct {
	Root string
}

// NewSysfsSource returns a source rooted at root, or at /sys when root is empty.
func NewSysfsSource(root string) *SysfsSource {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &SysfsSource{Root: root}
}

// StatPath returns the statistics file for iface and dir.
func (s *SysfsSource) StatPath(iface string, dir core.Direction) string {
	return filepath.Join(s.Root, "class", "net", iface, "statistics", dir.String()+"_bytes")
}

// ReadCounter implements core.CounterSource.
func (s *SysfsSource) ReadCounter(iface string, dir core.Direction) (uint64, error) {
	if err := checkInterfaceName(iface); err != nil {
		return 0, err
	}
	return readUint64File(s.StatPath(iface, dir))
}

// readUint64File parses the first whitespace-delimited token of path.
func readUint64File(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%s: empty", path)
	}
	v, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func checkInterfaceName(iface string) error {
	if iface == "" || iface == "." || iface == ".." || strings.ContainsAny(iface, "/\x00") {
		return fmt.Errorf("%q: %w", iface, ErrInvalidInterface)
	}
	return nil
}
