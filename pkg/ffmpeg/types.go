package ffmpeg

// AudioMetadata is what the annotator needs to know about a clip
type AudioMetadata struct {
	Duration   float64 `json:"duration"`    // seconds
	SampleRate int     `json:"sample_rate"` // Hz
	Channels   int     `json:"channels"`
	Format     string  `json:"format"`
	Codec      string  `json:"codec"`
}
