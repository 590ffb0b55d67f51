// Package batch pairs reference and target images by index and drives
// the tone-matching pipeline over each pair.
//
// A run proceeds through three phases:
//
//  1. Validation: the reference and target lists must be the same
//     length, and if the output directory already holds files named by
//     the output convention the confirmation port is asked once whether
//     to overwrite. A failure here aborts the run before any image is
//     read or written.
//  2. Processing: items run strictly sequentially. For each pair the
//     reference is averaged with the configured mask, the target is
//     averaged without one, and the target is shifted by the rounded
//     per-channel difference and written to the output directory. A
//     decode or encode failure is recorded against that item alone and
//     the run continues with the next pair.
//  3. Completion: progress is reset to zero and a Result summarizing
//     total, succeeded, and per-item failures is returned.
//
// Per-item failure isolation is the central contract of this package:
// no single unreadable or unwritable file aborts or skips any other
// item.
package batch
