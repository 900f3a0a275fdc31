package fetch

import (
	"strings"
)

// Category is a closed set of user-meaningful download failure causes.
type Category string

const (
	CategoryUnavailable  Category = "unavailable"
	CategoryRestricted   Category = "restricted"
	CategoryRemoved      Category = "removed"
	CategoryBlocked      Category = "blocked"
	CategoryToolMissing  Category = "tool-missing"
	CategoryToolOutdated Category = "tool-outdated"
	CategoryUnknown      Category = "unknown"
)

// ClassifiedError pairs a failure category with a human-readable message.
type ClassifiedError struct {
	Category Category
	Message  string
}

func (e *ClassifiedError) Error() string {
	return e.Message
}

// Classify translates raw yt-dlp diagnostic text into a ClassifiedError via
// ordered substring checks. Tool output is not a stable contract; unknown
// text falls back to the first non-empty diagnostic line.
func Classify(stderr string) *ClassifiedError {
	lower := strings.ToLower(stderr)
	switch {
	case strings.Contains(lower, "private video") || strings.Contains(lower, "video unavailable"):
		return &ClassifiedError{CategoryUnavailable, "This video is unavailable or private."}
	case strings.Contains(lower, "sign in to confirm your age") || strings.Contains(lower, "age-restricted"):
		return &ClassifiedError{CategoryRestricted, "This video is age-restricted and cannot be downloaded."}
	case strings.Contains(lower, "has been removed") || strings.Contains(lower, "account associated with this video has been terminated"):
		return &ClassifiedError{CategoryRemoved, "This video has been removed."}
	case strings.Contains(lower, "available in your country") || strings.Contains(lower, "geo restricted") || strings.Contains(lower, "http error 403"):
		return &ClassifiedError{CategoryBlocked, "Access to this video is blocked from the server's region."}
	case strings.Contains(lower, "executable file not found") || strings.Contains(lower, "no such file or directory"):
		return &ClassifiedError{CategoryToolMissing, "The downloader tool is not installed on the server."}
	case strings.Contains(lower, "confirm you are not a bot") || strings.Contains(lower, "unable to extract") || strings.Contains(lower, "update yt-dlp"):
		return &ClassifiedError{CategoryToolOutdated, "The downloader tool needs an update to handle this video."}
	default:
		msg := firstLine(stderr)
		if msg == "" {
			msg = "Download failed for an unknown reason."
		}
		return &ClassifiedError{CategoryUnknown, msg}
	}
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
