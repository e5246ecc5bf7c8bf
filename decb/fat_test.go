package decb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFatAllFree(t *testing.T) {
	f := newFat()
	require.Equal(t, NumGranules, f.freeCount())
}

func TestFindFree(t *testing.T) {
	f := newFat()
	f[0] = 1
	got := f.findFree(3)
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestChainFollowsNextPointers(t *testing.T) {
	var f fat
	for i := range f {
		f[i] = fatFree
	}
	f[0] = 1
	f[1] = 2
	f[2] = fatLastLo | 4

	links := f.chain(0)
	require.Len(t, links, 3)
	require.Equal(t, chainLink{Granule: 0, SectorsUsed: GranuleSectors}, links[0])
	require.Equal(t, chainLink{Granule: 1, SectorsUsed: GranuleSectors}, links[1])
	require.Equal(t, chainLink{Granule: 2, SectorsUsed: 4, IsLastInFile: true}, links[2])
}

func TestChainTerminalZeroMeansAllNineSectors(t *testing.T) {
	var f fat
	for i := range f {
		f[i] = fatFree
	}
	f[5] = fatLastLo // 0xC0, low nibble 0

	links := f.chain(5)
	require.Len(t, links, 1)
	require.Equal(t, 9, links[0].SectorsUsed)
}

func TestChainStopsOnNonConformingEntry(t *testing.T) {
	var f fat
	for i := range f {
		f[i] = fatFree
	}
	f[0] = 0xD5 // neither a valid next-pointer nor a terminal marker

	links := f.chain(0)
	require.Empty(t, links)
}

func TestReleaseFreesWholeChain(t *testing.T) {
	var f fat
	for i := range f {
		f[i] = fatFree
	}
	f[0] = 1
	f[1] = fatLastLo | 3

	f.release(0)
	require.Equal(t, NumGranules, f.freeCount())
}

func TestCommitChainSingleGranule(t *testing.T) {
	var f fat
	for i := range f {
		f[i] = fatFree
	}
	require.NoError(t, f.commitChain([]int{7}, 3))
	require.Equal(t, byte(fatLastLo|3), f[7])
}

func TestCommitChainMultiGranule(t *testing.T) {
	var f fat
	for i := range f {
		f[i] = fatFree
	}
	require.NoError(t, f.commitChain([]int{2, 9, 15}, 5))
	require.Equal(t, byte(9), f[2])
	require.Equal(t, byte(15), f[9])
	require.Equal(t, byte(fatLastLo|5), f[15])
}

func TestGranuleToTrackSectorSkipsDirectoryTrack(t *testing.T) {
	track, sec := granuleToTrackSector(0)
	require.Equal(t, 0, track)
	require.Equal(t, 1, sec)

	track, sec = granuleToTrackSector(33)
	require.Equal(t, 16, track)
	require.Equal(t, 10, sec)

	// granule 34 is the first one past the reserved directory track (17).
	track, sec = granuleToTrackSector(34)
	require.Equal(t, 18, track)
	require.Equal(t, 1, sec)
}
