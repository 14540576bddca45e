package entity

import (
	"fmt"
	"path/filepath"
	"strings"
)

// VideoFormat is the closed set of containers the service accepts. Validation
// happens on the file extension before any decoding is attempted.
type VideoFormat string

const (
	FormatMP4 VideoFormat = "mp4"
	FormatAVI VideoFormat = "avi"
	FormatMOV VideoFormat = "mov"
	FormatMKV VideoFormat = "mkv"
)

var supportedFormats = map[string]VideoFormat{
	".mp4": FormatMP4,
	".avi": FormatAVI,
	".mov": FormatMOV,
	".mkv": FormatMKV,
}

// ParseVideoFormat validates a filename against the supported container set.
func ParseVideoFormat(filename string) (VideoFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := supportedFormats[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (allowed: .mp4, .avi, .mov, .mkv)", ErrUnsupportedFormat, ext)
}
