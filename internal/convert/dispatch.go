package convert

import (
	"mediaforge/internal/models"
	"mediaforge/internal/store"
)

// Converter holds the shared dependencies of the conversion strategy set.
type Converter struct {
	store      *store.Store
	ffmpegPath string
	runner     Runner
}

// New creates a converter writing outputs through st and invoking ffmpeg at
// ffmpegPath.
func New(st *store.Store, ffmpegPath string) *Converter {
	return &Converter{store: st, ffmpegPath: ffmpegPath, runner: &ExecRunner{}}
}

// NewWithRunner is like New but with an injected process runner, for tests.
func NewWithRunner(st *store.Store, ffmpegPath string, r Runner) *Converter {
	return &Converter{store: st, ffmpegPath: ffmpegPath, runner: r}
}

// Table returns the dispatch table mapping each supported kind to exactly one
// strategy. Every image pair is listed independently; the uniformity keeps
// routing a plain lookup.
func (c *Converter) Table() map[models.JobKind]Strategy {
	return map[models.JobKind]Strategy{
		models.KindPNGToJPG: c.pngToJPG,
		models.KindPNGToGIF: c.pngToGIF,
		models.KindPNGToBMP: c.pngToBMP,
		models.KindJPGToPNG: c.jpgToPNG,
		models.KindJPGToGIF: c.jpgToGIF,
		models.KindJPGToBMP: c.jpgToBMP,
		models.KindGIFToPNG: c.gifToPNG,
		models.KindGIFToJPG: c.gifToJPG,
		models.KindGIFToBMP: c.gifToBMP,
		models.KindBMPToPNG: c.bmpToPNG,
		models.KindBMPToJPG: c.bmpToJPG,
		models.KindBMPToGIF: c.bmpToGIF,

		models.KindMP4ToMP3: c.mp4ToMP3,
		models.KindWAVToMP3: c.wavToMP3,
		models.KindMP3ToWAV: c.mp3ToWAV,
		models.KindMOVToMP4: c.movToMP4,
		models.KindMKVToMP4: c.mkvToMP4,
		models.KindMP4ToGIF: c.mp4ToGIF,
	}
}
