package counters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irctrakz/connstats/pkg/core"
)

func writeStat(t *testing.T, root, iface, name, content string) {
	t.Helper()
	dir := filepath.Join(root, "class", "net", iface, "statistics")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestSysfsSource_ReadCounter(t *testing.T) {
	root := t.TempDir()
	writeStat(t, root, "eth0", "tx_bytes", "123456\n")
	writeStat(t, root, "eth0", "rx_bytes", "  987654321 \n")

	src := NewSysfsSource(root)

	tx, err := src.ReadCounter("eth0", core.Tx)
	require.NoError(t, err)
	assert.Equal(t, uint64(123456), tx)

	rx, err := src.ReadCounter("eth0", core.Rx)
	require.NoError(t, err)
	assert.Equal(t, uint64(987654321), rx)
}

func TestSysfsSource_Failures(t *testing.T) {
	root := t.TempDir()
	writeStat(t, root, "eth0", "tx_bytes", "garbage")
	writeStat(t, root, "eth0", "rx_bytes", "")

	src := NewSysfsSource(root)

	_, err := src.ReadCounter("eth0", core.Tx)
	assert.Error(t, err, "unparsable counter")

	_, err = src.ReadCounter("eth0", core.Rx)
	assert.Error(t, err, "empty counter")

	_, err = src.ReadCounter("wlan9", core.Tx)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = src.ReadCounter("../../etc", core.Tx)
	assert.ErrorIs(t, err, ErrInvalidInterface)
}

func TestNewSysfsSource_DefaultRoot(t *testing.T) {
	src := NewSysfsSource("")
	assert.Equal(t, "/sys/class/net/lo/statistics/rx_bytes", src.StatPath("lo", core.Rx))
}
