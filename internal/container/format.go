// Package container implements the thin binding over a hierarchical
// array container (groups, datasets, attributes) that the FamDB
// schema is laid out on top of. It is grounded on the teacher's
// magic+header+block framing in file.go and index/serialization.go,
// generalized from a flat stream of fixed-size records to a directory
// of named groups/datasets/attributes with a trailing table of
// contents so random access doesn't require a full scan.
//
// On-disk layout:
//
//	[8]byte   magic "FAMDBFIL"
//	[2]byte   format version (major, minor)
//	...       dataset blocks, gzip-compressed unless written with
//	          compress=false, in the order of a write session
//	...       gob-encoded trailer (the directory: groups, attributes,
//	          dataset offsets/lengths)
//	[8]byte   big-endian trailer offset (from start of file)
package container

import (
	"encoding/binary"
	"errors"
)

// FormatMajor/FormatMinor are the container format's own version,
// distinct from the FamDB schema_version stored as a top-level
// attribute (internal/schema owns that one).
const (
	FormatMajor uint8 = 1
	FormatMinor uint8 = 0
)

var magic = [8]byte{'F', 'A', 'M', 'D', 'B', 'F', 'I', 'L'}

var be = binary.BigEndian

const headerLen = 8 + 2 // magic + version
const footerLen = 8     // trailer offset

// ErrInvalidFormat means the file doesn't start with the FamDB
// container magic number.
var ErrInvalidFormat = errors.New("container: not a famdb container file")

// ErrVersionMismatch means the container format's major version
// doesn't match what this binary can read.
var ErrVersionMismatch = errors.New("container: incompatible container format version")

// ErrTruncated means the file is shorter than a valid container.
var ErrTruncated = errors.New("container: file truncated or not finalized")
