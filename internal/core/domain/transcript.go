package domain

// TranscriptRecord is a per-video transcript document as deposited by an
// extraction tool. The core only ever reads records; it never produces them.
type TranscriptRecord struct {
	// VideoID is the YouTube video identifier.
	VideoID string

	// VideoTitle is the display title of the video.
	VideoTitle string

	// Method is the provenance tag of the extractor that produced the
	// record (e.g. "yt-dlp", "manual", "api").
	Method string

	// Segments is the ordered transcript, ascending by StartTime.
	// StartTimes are not necessarily contiguous or gap-free.
	Segments []TranscriptSegment
}

// Empty reports whether the record carries no indexable segments.
func (r *TranscriptRecord) Empty() bool {
	return len(r.Segments) == 0
}

// TranscriptSegment is the unit stored in the full-text index: a few seconds
// of transcript text anchored at a start offset. Immutable once indexed.
type TranscriptSegment struct {
	// VideoID identifies the video the segment belongs to.
	VideoID string

	// VideoTitle is carried onto every segment so results need no join.
	VideoTitle string

	// Text is the searchable transcript text.
	Text string

	// StartTime is the offset of the segment in whole seconds.
	StartTime int

	// Method is the provenance tag inherited from the record.
	Method string
}
