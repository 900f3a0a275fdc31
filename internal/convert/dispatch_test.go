package convert

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mediaforge/internal/models"
	"mediaforge/internal/store"
)

func TestTable_CoversEveryConversionKind(t *testing.T) {
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	table := New(st, "ffmpeg").Table()

	kinds := []models.JobKind{
		models.KindPNGToJPG, models.KindPNGToGIF, models.KindPNGToBMP,
		models.KindJPGToPNG, models.KindJPGToGIF, models.KindJPGToBMP,
		models.KindGIFToPNG, models.KindGIFToJPG, models.KindGIFToBMP,
		models.KindBMPToPNG, models.KindBMPToJPG, models.KindBMPToGIF,
		models.KindMP4ToMP3, models.KindWAVToMP3, models.KindMP3ToWAV,
		models.KindMOVToMP4, models.KindMKVToMP4, models.KindMP4ToGIF,
	}
	require.Len(t, table, len(kinds))
	for _, kind := range kinds {
		require.NotNil(t, table[kind], "kind %s has no strategy", kind)
	}
}
