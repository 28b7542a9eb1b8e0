// Package sqlite implements the SegmentIndex port on a SQLite FTS5 virtual
// table, using the pure-Go modernc.org/sqlite driver. The database is
// opened in WAL mode so searches stay consistent while a build is writing.
package sqlite
