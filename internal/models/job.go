package models

import (
	"time"
)

// JobStatus is the lifecycle state of a job. Transitions are monotonic:
// pending -> processing -> completed | error. Every current submission path
// stages the input synchronously, so records start at "processing"; "pending"
// is reserved for a boundary layer that reports incremental upload progress.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusError      JobStatus = "error"
)

// Terminal reports whether a status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// JobKind selects one conversion or download strategy.
type JobKind string

// Image kinds. Each source/target pair is its own kind even where the
// processing parameters coincide, so the dispatch table stays flat.
const (
	KindPNGToJPG JobKind = "png-to-jpg"
	KindPNGToGIF JobKind = "png-to-gif"
	KindPNGToBMP JobKind = "png-to-bmp"
	KindJPGToPNG JobKind = "jpg-to-png"
	KindJPGToGIF JobKind = "jpg-to-gif"
	KindJPGToBMP JobKind = "jpg-to-bmp"
	KindGIFToPNG JobKind = "gif-to-png"
	KindGIFToJPG JobKind = "gif-to-jpg"
	KindGIFToBMP JobKind = "gif-to-bmp"
	KindBMPToPNG JobKind = "bmp-to-png"
	KindBMPToJPG JobKind = "bmp-to-jpg"
	KindBMPToGIF JobKind = "bmp-to-gif"
)

// Media kinds, backed by ffmpeg.
const (
	KindMP4ToMP3 JobKind = "mp4-to-mp3"
	KindWAVToMP3 JobKind = "wav-to-mp3"
	KindMP3ToWAV JobKind = "mp3-to-wav"
	KindMOVToMP4 JobKind = "mov-to-mp4"
	KindMKVToMP4 JobKind = "mkv-to-mp4"
	KindMP4ToGIF JobKind = "mp4-to-gif"
)

// Fetch kinds, backed by the yt-dlp binary. The JSON "format" field of a
// fetch request maps onto these.
const (
	KindFetchAudio      JobKind = "fetch-audio"
	KindFetchVideoOnly  JobKind = "fetch-video-only"
	KindFetchVideoAudio JobKind = "fetch-video-audio"
	KindFetchSeparate   JobKind = "fetch-separate"
)

// Job holds the full state of one conversion or download.
type Job struct {
	ID           string    `json:"id"`
	Kind         JobKind   `json:"kind"`
	Status       JobStatus `json:"status"`
	Progress     int       `json:"progress"`
	OriginalName string    `json:"originalFileName,omitempty"`
	OutputName   string    `json:"convertedFileName,omitempty"`
	AudioName    string    `json:"audioFileName,omitempty"`
	Error        string    `json:"error,omitempty"`
	OutputPath   string    `json:"-"`
	AudioPath    string    `json:"-"`
	InputPath    string    `json:"-"`
	SourceURL    string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// FetchRequest is the body of POST /jobs/fetch/download.
type FetchRequest struct {
	URL     string `json:"url"`
	Format  string `json:"format"`
	Quality string `json:"quality,omitempty"`
}

// InfoRequest is the body of POST /jobs/fetch/info.
type InfoRequest struct {
	URL string `json:"url"`
}

// VideoInfo is the response of POST /jobs/fetch/info.
type VideoInfo struct {
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	Thumbnail string `json:"thumbnail"`
}

// QRRequest is the body of POST /codes/generate.
type QRRequest struct {
	Content    string `json:"content"`
	Size       int    `json:"size,omitempty"`
	DarkColor  string `json:"darkColor,omitempty"`
	LightColor string `json:"lightColor,omitempty"`
}
