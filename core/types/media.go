// Package types contains the shared data model for media cost reporting.
package types

import (
	"fmt"
	"time"

	"smartmedia-cost/internal/errors"
)

// MediaType classifies a media record for costing and display
type MediaType string

const (
	// MediaTypeVideo is a record with at least one video stream
	MediaTypeVideo MediaType = "Video"

	// MediaTypeAudio is a record with audio streams but no video
	MediaTypeAudio MediaType = "Audio"
)

// Tier classifies media into resolution pricing buckets
type Tier string

const (
	// TierAudio is audio-only content
	TierAudio Tier = "audio"

	// TierSD is video below the HD height threshold
	TierSD Tier = "sd"

	// TierHD is video at or above the HD height threshold
	TierHD Tier = "hd"
)

// String returns the string representation
func (t Tier) String() string {
	return string(t)
}

// TierForHeight maps a video height in pixels to a pricing tier.
// A height of zero (or below) means no video stream.
func TierForHeight(height, hdMinHeight int) Tier {
	switch {
	case height >= hdMinHeight:
		return TierHD
	case height > 0:
		return TierSD
	default:
		return TierAudio
	}
}

// MediaAttributes describes one stored media object, as extracted by
// upstream metadata processing. Read-only to this system.
type MediaAttributes struct {
	// ContentHash is the content-addressable identifier
	ContentHash string `json:"contenthash"`

	// Duration is the media duration in seconds
	Duration float64 `json:"duration"`

	// Width is the video frame width in pixels (0 if no video)
	Width int `json:"width"`

	// Height is the video frame height in pixels (0 if no video)
	Height int `json:"height"`

	// VideoStreams is the number of video streams
	VideoStreams int `json:"videostreams"`

	// AudioStreams is the number of audio streams
	AudioStreams int `json:"audiostreams"`

	// Size is the file size in bytes
	Size int64 `json:"size"`

	// Container is the container format (e.g. "mp4", "mp3")
	Container string `json:"container"`

	// TimeCreated is when the metadata record was created
	TimeCreated time.Time `json:"timecreated"`
}

// Type classifies the record as video or audio. A record with neither
// video nor audio streams is a data-integrity violation and yields a
// hard error, never a default type.
func (m MediaAttributes) Type() (MediaType, error) {
	if m.VideoStreams > 0 {
		return MediaTypeVideo, nil
	}
	if m.AudioStreams > 0 {
		return MediaTypeAudio, nil
	}
	return "", errors.Data("media record has no audio or video stream").
		WithContext("contenthash", m.ContentHash)
}

// Resolution returns a display resolution string, empty for audio-only media
func (m MediaAttributes) Resolution() string {
	if m.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%d X %d", m.Width, m.Height)
}
