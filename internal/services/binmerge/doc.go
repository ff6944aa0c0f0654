// Package binmerge wraps the external binmerge tool, which concatenates a
// title's multi-track BIN files into a single BIN/CUE pair as described by
// the cue sheet.
//
// The production client shells out to the binmerge Python script and captures
// its output line by line. Command execution sits behind the Executor
// interface so tests can exercise the sweep without the tool installed.
package binmerge
