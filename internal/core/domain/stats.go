package domain

// BuildStats summarises one index build.
type BuildStats struct {
	// VideosIndexed is the number of records inserted by this build, or the
	// current index total when the build was skipped.
	VideosIndexed int `json:"videos"`

	// SegmentsIndexed is the number of segments inserted by this build, or
	// the current index total when the build was skipped.
	SegmentsIndexed int `json:"segments"`

	// EmptyRecords counts records skipped for having no segments.
	EmptyRecords int `json:"emptyRecords,omitempty"`

	// FailedRecords counts records skipped as unreadable or malformed.
	FailedRecords int `json:"failedRecords,omitempty"`

	// ElapsedMS is the wall-clock build time in milliseconds.
	ElapsedMS int64 `json:"timeMs"`

	// Skipped is true when the index already covered every store record
	// and the build was a no-op.
	Skipped bool `json:"skipped"`
}

// IndexStats describes the current contents of the full-text index.
type IndexStats struct {
	// TotalVideos is the number of distinct videos in the index.
	TotalVideos int `json:"totalVideos"`

	// TotalSegments is the number of indexed segments.
	TotalSegments int `json:"totalSegments"`
}

// Stats is the observability snapshot exposed at the boundary.
type Stats struct {
	IndexStats

	// CacheSize is the number of entries in the result cache,
	// including entries that have expired but not yet been evicted.
	CacheSize int `json:"cacheSize"`
}
