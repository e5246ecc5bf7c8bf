package decb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chipshift/cocofs/internal/errs"
)

func TestFormatAndList(t *testing.T) {
	v, err := Format(35, 1, false)
	require.NoError(t, err)

	require.Empty(t, v.List())

	free, total := v.Free()
	require.Equal(t, 68, free)
	require.Equal(t, 68, total)
}

func TestInsertExtractRoundTrip(t *testing.T) {
	v, err := Format(35, 1, false)
	require.NoError(t, err)

	data := bytes.Repeat([]byte{0x01}, 5000)
	require.NoError(t, v.Insert("PROG.BIN", data, FileTypeML, false))

	free, _ := v.Free()
	require.Equal(t, 65, free)

	got, err := v.Extract("PROG.BIN")
	require.NoError(t, err)
	require.Equal(t, data, got)

	infos := v.List()
	require.Len(t, infos, 1)
	require.Equal(t, "PROG", infos[0].Name)
	require.Equal(t, "BIN", infos[0].Ext)
	require.Equal(t, 136, infos[0].LastSectorBytes)
}

func TestDeleteThenReuseLowestFreeGranule(t *testing.T) {
	v, err := Format(35, 1, false)
	require.NoError(t, err)

	data := bytes.Repeat([]byte{0x01}, 5000)
	require.NoError(t, v.Insert("PROG.BIN", data, FileTypeML, false))
	require.NoError(t, v.Delete("PROG.BIN"))

	free, _ := v.Free()
	require.Equal(t, 68, free)
	require.Empty(t, v.List())

	require.NoError(t, v.Insert("HI.TXT", []byte("HELLO"), FileTypeText, true))

	infos := v.List()
	require.Len(t, infos, 1)
	require.Equal(t, "HI", infos[0].Name)
	require.Equal(t, 0, infos[0].FirstGranule)
	require.Equal(t, 5, infos[0].LastSectorBytes)
	require.Equal(t, 5, infos[0].SizeBytes)
}

func TestInsertBoundarySizes(t *testing.T) {
	v, err := Format(35, 1, false)
	require.NoError(t, err)

	require.NoError(t, v.Insert("A.BIN", bytes.Repeat([]byte{0x02}, 2304), FileTypeData, false))
	infos := v.List()
	require.Equal(t, 256, infos[0].LastSectorBytes)

	require.NoError(t, v.Delete("A.BIN"))
	require.NoError(t, v.Insert("B.BIN", bytes.Repeat([]byte{0x02}, 2305), FileTypeData, false))
	infos = v.List()
	require.Equal(t, 1, infos[0].LastSectorBytes)
}

func TestInsertZeroBytes(t *testing.T) {
	v, err := Format(35, 1, false)
	require.NoError(t, err)

	require.NoError(t, v.Insert("E.TXT", nil, FileTypeText, true))

	infos := v.List()
	require.Len(t, infos, 1)
	require.Equal(t, 0, infos[0].LastSectorBytes)
	require.Equal(t, 0, infos[0].SizeBytes)

	free, _ := v.Free()
	require.Equal(t, 68, free)
}

func TestOutOfSpace(t *testing.T) {
	v, err := Format(35, 1, false)
	require.NoError(t, err)

	huge := make([]byte, 68*GranuleSize+1)
	err = v.Insert("TOO.BIG", huge, FileTypeData, false)
	require.Error(t, err)
	require.True(t, errs.Is(err, errs.OutOfSpace))
}

func TestRenameAndMount(t *testing.T) {
	v, err := Format(35, 1, false)
	require.NoError(t, err)
	require.NoError(t, v.Insert("OLD.TXT", []byte("hi"), FileTypeText, true))
	require.NoError(t, v.Rename("OLD.TXT", "NEW.TXT"))

	infos := v.List()
	require.Len(t, infos, 1)
	require.Equal(t, "NEW", infos[0].Name)

	remounted, err := Mount(v.Bytes())
	require.NoError(t, err)
	infos = remounted.List()
	require.Len(t, infos, 1)
	require.Equal(t, "NEW", infos[0].Name)
}
