// Package vdferrors holds the sentinel errors shared by the pietrzak and
// wesolowski packages so both can return the same error values without
// importing the top-level vdf package (which imports them).
package vdferrors

import "errors"

// ErrInvalidIterations is returned by CheckDifficulty when a difficulty
// value violates a construction's constraints. It carries a message; wrap it
// with errors.Wrap at call sites that want more context.
var ErrInvalidIterations = errors.New("vdf: invalid iteration count")

// ErrInvalidProof is returned by Verify for any of: length mismatch,
// deserialization failure, an arithmetic invariant breach, or the protocol
// equation not holding. It is intentionally opaque — never wrap additional
// diagnostic detail into it.
var ErrInvalidProof = errors.New("vdf: invalid proof")
