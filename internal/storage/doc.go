// Package storage provides JSON-based persistence for formula snapshots.
//
// The storage package manages the local snapshot file (formulas.json) that
// serves as the baseline for diffing, plus a small metadata file
// (metadata.json) recording the update timestamp, formula count, and the
// SHA-256 content hash used for cheap change detection. The default data
// directory is ~/.brew-parser/.
package storage
