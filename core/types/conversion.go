// Package types - Conversion records and enrichment selection
package types

import "time"

// Conversion status codes as stored by the conversion pipeline
const (
	// StatusFileMissing indicates the source file disappeared before conversion
	StatusFileMissing = 3

	// StatusFinished indicates the conversion completed successfully
	StatusFinished = 200

	// StatusInProgress indicates the conversion is running
	StatusInProgress = 201

	// StatusAccepted indicates the conversion is queued
	StatusAccepted = 202
)

// Human status labels
const (
	LabelFinished    = "Finished"
	LabelInProgress  = "In Progress"
	LabelFileMissing = "File Missing"
	LabelError       = "Error"
)

// StatusLabel maps a raw conversion status code to its display label.
// Unknown codes map to the error label.
func StatusLabel(code int) string {
	switch code {
	case StatusFinished:
		return LabelFinished
	case StatusInProgress, StatusAccepted:
		return LabelInProgress
	case StatusFileMissing:
		return LabelFileMissing
	default:
		return LabelError
	}
}

// EnrichmentSelection holds the independent feature flags billed on top
// of transcoding.
type EnrichmentSelection struct {
	// FaceDetection enables face detection analysis
	FaceDetection bool `json:"face_detection"`

	// ContentModeration enables content moderation analysis
	ContentModeration bool `json:"content_moderation"`

	// LabelDetection enables label detection analysis
	LabelDetection bool `json:"label_detection"`

	// PersonTracking enables person tracking analysis
	PersonTracking bool `json:"person_tracking"`

	// Transcription enables speech transcription
	Transcription bool `json:"transcription"`
}

// ConversionRecord is one conversion job for a content hash, including
// the per-service completion codes of its enrichment passes.
type ConversionRecord struct {
	// ContentHash identifies the source media
	ContentHash string `json:"contenthash"`

	// Status is the overall conversion status code
	Status int `json:"status"`

	// PresetIDs are the transcoding presets selected for this conversion
	PresetIDs []string `json:"preset_ids"`

	// TranscoderStatus is the transcode service completion code
	TranscoderStatus int `json:"transcoder_status"`

	// FaceStatus is the face detection completion code
	FaceStatus int `json:"face_status"`

	// ModerationStatus is the content moderation completion code
	ModerationStatus int `json:"moderation_status"`

	// LabelStatus is the label detection completion code
	LabelStatus int `json:"label_status"`

	// PersonStatus is the person tracking completion code
	PersonStatus int `json:"person_status"`

	// TranscriptionStatus is the speech transcription completion code
	TranscriptionStatus int `json:"transcription_status"`

	// TimeCreated is when the conversion record was created
	TimeCreated time.Time `json:"timecreated"`

	// TimeCompleted is when the conversion finished (zero if not yet)
	TimeCompleted time.Time `json:"timecompleted"`
}

// EnrichmentFlags derives the enrichment selection that actually incurred
// cost. Only a completion code of exactly StatusFinished counts as enabled:
// passes that have not run yet and passes that failed both contribute
// nothing to current cost.
func (c ConversionRecord) EnrichmentFlags() EnrichmentSelection {
	return EnrichmentSelection{
		FaceDetection:     c.FaceStatus == StatusFinished,
		ContentModeration: c.ModerationStatus == StatusFinished,
		LabelDetection:    c.LabelStatus == StatusFinished,
		PersonTracking:    c.PersonStatus == StatusFinished,
		Transcription:     c.TranscriptionStatus == StatusFinished,
	}
}
