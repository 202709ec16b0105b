// Package procmeta snapshots a started process's arguments and environment.
//
// A ProcessMetadata is built once, right after start, and feeds runtime
// configuration and trace resource attributes. Entries that cannot be
// decoded under the process's policy are skipped and reported as issues
// rather than failing the snapshot.
package procmeta
