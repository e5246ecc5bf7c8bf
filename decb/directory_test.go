package decb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntryEncodeParseRoundTrip(t *testing.T) {
	e := entry{
		Name:            "HELLO   ",
		Ext:             "TXT",
		Type:            FileTypeText,
		ASCII:           true,
		FirstGranule:    12,
		LastSectorBytes: 200,
	}

	raw, err := e.encode()
	require.NoError(t, err)
	require.Len(t, raw, entrySize)

	got, ok := parseEntry(raw, 3, 0)
	require.True(t, ok)
	require.Equal(t, e.Name, got.Name)
	require.Equal(t, e.Ext, got.Ext)
	require.Equal(t, e.Type, got.Type)
	require.Equal(t, e.ASCII, got.ASCII)
	require.Equal(t, e.FirstGranule, got.FirstGranule)
	require.Equal(t, e.LastSectorBytes, got.LastSectorBytes)
}

func TestEntryDisplayNameOmitsDotWhenExtEmpty(t *testing.T) {
	e := entry{Name: "NOEXT   ", Ext: "   "}
	require.Equal(t, "NOEXT", e.displayName())

	e2 := entry{Name: "HI      ", Ext: "TXT"}
	require.Equal(t, "HI.TXT", e2.displayName())
}

func TestParseEntryRejectsInvalidFirstGranule(t *testing.T) {
	e := entry{Name: "BAD     ", Ext: "BIN", FirstGranule: 200}
	raw, err := e.encode()
	require.NoError(t, err)

	_, ok := parseEntry(raw, 3, 0)
	require.False(t, ok)
}
