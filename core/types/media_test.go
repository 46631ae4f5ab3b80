package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartmedia-cost/internal/errors"
)

func TestTierForHeight(t *testing.T) {
	assert.Equal(t, TierHD, TierForHeight(1080, 720))
	assert.Equal(t, TierHD, TierForHeight(720, 720))
	assert.Equal(t, TierSD, TierForHeight(719, 720))
	assert.Equal(t, TierSD, TierForHeight(1, 720))
	assert.Equal(t, TierAudio, TierForHeight(0, 720))
	assert.Equal(t, TierAudio, TierForHeight(-1, 720))
}

func TestMediaTypeClassification(t *testing.T) {
	video := MediaAttributes{ContentHash: "abc", VideoStreams: 1, AudioStreams: 1}
	got, err := video.Type()
	require.NoError(t, err)
	assert.Equal(t, MediaTypeVideo, got)

	audio := MediaAttributes{ContentHash: "abc", AudioStreams: 2}
	got, err = audio.Type()
	require.NoError(t, err)
	assert.Equal(t, MediaTypeAudio, got)
}

func TestMediaTypeClassificationNoStreamsFails(t *testing.T) {
	broken := MediaAttributes{ContentHash: "deadbeef"}

	_, err := broken.Type()
	require.Error(t, err, "zero-stream record must never classify to a default type")
	assert.True(t, errors.IsType(err, errors.TypeData))
}

func TestResolution(t *testing.T) {
	assert.Equal(t, "1920 X 1080", MediaAttributes{Width: 1920, Height: 1080}.Resolution())
	assert.Equal(t, "", MediaAttributes{}.Resolution())
}

func TestStatusLabel(t *testing.T) {
	cases := map[int]string{
		StatusFinished:    "Finished",
		StatusInProgress:  "In Progress",
		StatusAccepted:    "In Progress",
		StatusFileMissing: "File Missing",
		0:                 "Error",
		404:               "Error",
		-1:                "Error",
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusLabel(code), "code %d", code)
	}
}

func TestEnrichmentFlagsOnlyCompletedCount(t *testing.T) {
	conv := ConversionRecord{
		FaceStatus:          StatusFinished,
		ModerationStatus:    StatusInProgress,
		LabelStatus:         StatusAccepted,
		PersonStatus:        0,
		TranscriptionStatus: StatusFinished,
	}

	flags := conv.EnrichmentFlags()
	assert.True(t, flags.FaceDetection)
	assert.False(t, flags.ContentModeration, "in-progress passes have not incurred cost")
	assert.False(t, flags.LabelDetection)
	assert.False(t, flags.PersonTracking)
	assert.True(t, flags.Transcription)
}
