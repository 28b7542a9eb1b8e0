// Package domain defines the core business entities for clipdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TranscriptRecord: A per-video transcript produced by an extractor
//   - TranscriptSegment: A timestamped searchable unit of transcript text
//   - Result: A formatted search hit crossing the system boundary
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
