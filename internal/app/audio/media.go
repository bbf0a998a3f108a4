package audio

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Category is the coarse media type of an input file, derived from its extension only
type Category int

const (
	Unknown Category = iota
	Audio
	Video
)

func (c Category) String() string {
	switch c {
	case Audio:
		return "audio"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

var audioExtensions = map[string]struct{}{
	".mp3": {}, ".wav": {}, ".ogg": {}, ".m4a": {}, ".flac": {}, ".aac": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".mkv": {}, ".avi": {}, ".mov": {}, ".wmv": {},
	".flv": {}, ".webm": {}, ".ts": {}, ".m4v": {},
}

// Classify maps a file path to its Category by case-insensitive extension match.
// No content sniffing is done; unmatched extensions are Unknown.
func Classify(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := audioExtensions[ext]; ok {
		return Audio
	}
	if _, ok := videoExtensions[ext]; ok {
		return Video
	}
	return Unknown
}

// AudioExtensions lists the supported audio extensions without the leading dot
func AudioExtensions() []string {
	return sortedNames(audioExtensions)
}

// VideoExtensions lists the supported video extensions without the leading dot
func VideoExtensions() []string {
	return sortedNames(videoExtensions)
}

func sortedNames(set map[string]struct{}) []string {
	names := lo.Map(lo.Keys(set), func(ext string, _ int) string {
		return strings.TrimPrefix(ext, ".")
	})
	sort.Strings(names)
	return names
}
