package basic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetokenizePrintHi(t *testing.T) {
	data := []byte{
		0xFF, 0x00, 0x00, 0x00, 0x00, // ML preamble (bytes 1..4 unused)
		0x00, 0x0A, // line number 10
		0x87, 0x20, 0x22, 0x48, 0x49, 0x22, // PRINT "HI"
		0x00, // end of line
		0x00, // end of program
	}

	res, err := Detokenize(data)
	require.NoError(t, err)
	require.Equal(t, `10 PRINT "HI"`, res.Text)
	require.Equal(t, 0, res.BadTokenCount)
}

func TestDetokenizeRemConsumesRestOfLineVerbatim(t *testing.T) {
	data := []byte{
		0x00, 0x0C, // next-line pointer (non-zero, no preamble)
		0x00, 0x14, // line number 20
		0x82, ' ', 'h', 'i', ' ', 't', 'h', 'e', 'r', 'e', // REM hi there
		0x00, // end of line
		0x00, 0x00, // terminal next-line pointer
	}

	res, err := Detokenize(data)
	require.NoError(t, err)
	require.Equal(t, "20 REM hi there", res.Text)
}

func TestDetokenizeUnclosedStringStillEndsOnZero(t *testing.T) {
	data := []byte{
		0x00, 0x0C,
		0x00, 0x1E, // line number 30
		0x87, ' ', '"', 'o', 'o', 'p', 's', // PRINT "oops (no closing quote)
		0x00,
		0x00, 0x00,
	}

	res, err := Detokenize(data)
	require.NoError(t, err)
	require.Equal(t, `30 PRINT "oops`, res.Text)
}

func TestDetokenizeExtendedToken(t *testing.T) {
	data := []byte{
		0x00, 0x0C,
		0x00, 0x28, // line number 40
		0xFF, 0x88, // extended token STR$
		0x00,
		0x00, 0x00,
	}

	res, err := Detokenize(data)
	require.NoError(t, err)
	require.Equal(t, "40 STR$", res.Text)
}

func TestDetokenizeUnknownTokenCountsAsBad(t *testing.T) {
	data := []byte{
		0x00, 0x0C,
		0x00, 0x32, // line number 50
		0xFF, 0xFE, // no T2 entry at 0xFE
		0x00,
		0x00, 0x00,
	}

	res, err := Detokenize(data)
	require.NoError(t, err)
	require.Equal(t, "50 {255-254}", res.Text)
	require.Equal(t, 1, res.BadTokenCount)
}

func TestDetokenizeMultipleLines(t *testing.T) {
	data := []byte{
		0x00, 0x0C, 0x00, 0x0A, 0x87, ' ', '"', 'A', '"', 0x00, // line 10, next-line ptr 12 (nonzero)
		0x00, 0x18, 0x00, 0x14, 0x87, ' ', '"', 'B', '"', 0x00, // line 20, next-line ptr 24 (nonzero)
		0x00, 0x00, // terminal next-line pointer ends the program
	}

	res, err := Detokenize(data)
	require.NoError(t, err)
	require.Equal(t, "10 PRINT \"A\"\n20 PRINT \"B\"", res.Text)
}
