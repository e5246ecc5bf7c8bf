package os9

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildMinimalImage constructs a 40-sector OS-9 image whose LSN 0 declares
// dd_dir=3, dd_bit=4, and whose root FD at LSN 3 points to a single segment
// (LSN=5, count=1) holding one "STARTUP" entry followed by an empty slot,
// mirroring coco_dsk_os9.py's list_files output.
func buildMinimalImage(t *testing.T) []byte {
	t.Helper()

	const sectors = 40
	buf := make([]byte, sectors*256)

	// LSN 0: disk descriptor.
	lsn0 := buf[0:256]
	lsn0[0x00], lsn0[0x01], lsn0[0x02] = 0x00, 0x00, sectors // dd_tot = 40
	lsn0[0x03] = 18                                          // dd_tks
	lsn0[0x04], lsn0[0x05] = 0x00, 0x01                      // dd_map = 1
	lsn0[0x06], lsn0[0x07] = 0x00, 0x04                       // dd_bit = 4
	lsn0[0x08], lsn0[0x09], lsn0[0x0A] = 0x00, 0x00, 0x03     // dd_dir = 3
	lsn0[0x11], lsn0[0x12] = 0x00, 18                         // dd_spt = 18

	// LSN 1: allocation bitmap (1 byte needed, rest ignored).
	// left zeroed: every cluster free.

	// LSN 3: root directory file descriptor.
	fd := buf[3*256 : 4*256]
	fd[0x00] = 0x80 // directory attribute
	fd[0x09], fd[0x0A], fd[0x0B], fd[0x0C] = 0x00, 0x00, 0x00, 64 // fd_siz = 64
	fd[0x10], fd[0x11], fd[0x12] = 0x00, 0x00, 0x05               // segment LSN = 5
	fd[0x13], fd[0x14] = 0x00, 0x01                                // segment count = 1

	// LSN 5: directory data, one entry then an empty slot.
	dir := buf[5*256 : 6*256]
	copy(dir[0:7], []byte("STARTUP"))
	dir[7] = 0x80 // name terminator
	dir[28] = 0x03
	dir[29], dir[30], dir[31] = 0x00, 0x00, 0x10 // fd lsn = 16

	return buf
}

func TestDetectPositive(t *testing.T) {
	buf := buildMinimalImage(t)
	require.True(t, Detect(buf))
}

func TestDetectNegativeOnFreshDECBImage(t *testing.T) {
	// All-0xFF buffer, as produced by decb.Format, never satisfies the
	// heuristic (dd_spt and dd_bit land outside their valid ranges).
	buf := make([]byte, 35*18*256)
	for i := range buf {
		buf[i] = 0xFF
	}
	require.False(t, Detect(buf))
}

func TestMountAndListRootEntry(t *testing.T) {
	buf := buildMinimalImage(t)

	v, err := Mount(buf)
	require.NoError(t, err)

	entries := v.List()
	require.Len(t, entries, 1)
	require.Equal(t, "STARTUP", entries[0].Name)
	require.True(t, entries[0].Attrs.OwnerRead)
	require.True(t, entries[0].Attrs.OwnerWrite)
	require.False(t, entries[0].Attrs.Directory)
}

func TestDiskInfoFields(t *testing.T) {
	buf := buildMinimalImage(t)
	v, err := Mount(buf)
	require.NoError(t, err)

	dd := v.DiskInfo()
	require.Equal(t, 40, dd.TotalSectors)
	require.Equal(t, 3, dd.RootDirLSN)
	require.Equal(t, 4, dd.SectorsPerCluster)
}

func TestMutationsReturnReadOnly(t *testing.T) {
	buf := buildMinimalImage(t)
	v, err := Mount(buf)
	require.NoError(t, err)

	require.Error(t, v.Delete("STARTUP"))
	require.Error(t, v.Insert("NEW", nil))
	require.Error(t, v.Rename("STARTUP", "OTHER"))
}

func TestExtractOnMissingFileReturnsNotFound(t *testing.T) {
	buf := buildMinimalImage(t)
	v, err := Mount(buf)
	require.NoError(t, err)

	_, err = v.Extract("NOPE")
	require.Error(t, err)
}
