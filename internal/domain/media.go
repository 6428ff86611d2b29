package domain

import (
	"path"
	"strings"
	"time"

	"github.com/h2non/filetype"
)

type MediaKind string

const (
	MediaKindImage MediaKind = "IMAGE"
	MediaKindVideo MediaKind = "VIDEO"
)

// extension aliases that filetype does not register on their own
var extAliases = map[string]string{
	"jpeg": "jpg",
}

var recognized = map[string]bool{
	"mp4": true, "mov": true, "jpg": true, "png": true,
}

// KindFromName derives the media kind from a file extension.
// ok is false for files that are not publishable media.
func KindFromName(name string) (MediaKind, bool) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if alias, found := extAliases[ext]; found {
		ext = alias
	}
	if !recognized[ext] {
		return "", false
	}

	switch filetype.GetType(ext).MIME.Type {
	case "video":
		return MediaKindVideo, true
	case "image":
		return MediaKindImage, true
	default:
		return "", false
	}
}

// ContentType returns the MIME type registered for the file extension.
func ContentType(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if alias, found := extAliases[ext]; found {
		ext = alias
	}
	return filetype.GetType(ext).MIME.Value
}

// MediaCandidate is a publishable file listed from the source folder.
type MediaCandidate struct {
	Name      string
	Location  string // backend handle: lower-cased path, object key...
	SizeBytes int64
	Kind      MediaKind
}

func (c MediaCandidate) IsVideo() bool {
	return c.Kind == MediaKindVideo
}

// MediaMetadata describes the encoded media when the backend knows it.
type MediaMetadata struct {
	Width    int
	Height   int
	Duration time.Duration
}

const (
	reelAspect          = 9.0 / 16.0
	reelAspectTolerance = 0.01
	reelMinWidth        = 540
	reelMinHeight       = 960
	reelMinDuration     = 3 * time.Second
	reelMaxDuration     = 90 * time.Second
)

// ReelEligible reports whether the media fits the vertical short-video format.
func (m *MediaMetadata) ReelEligible() bool {
	if m == nil || m.Width <= 0 || m.Height <= 0 {
		return false
	}
	if m.Width < reelMinWidth || m.Height < reelMinHeight {
		return false
	}
	aspect := float64(m.Width) / float64(m.Height)
	if aspect < reelAspect-reelAspectTolerance || aspect > reelAspect+reelAspectTolerance {
		return false
	}
	if m.Duration > 0 && (m.Duration < reelMinDuration || m.Duration > reelMaxDuration) {
		return false
	}
	return true
}
