// Package catalog inspects title directories and decides their merge
// eligibility.
//
// Classification is read-only: it counts BIN and CUE files directly inside a
// title directory, derives the output name per the configured naming policy,
// and reports whether the directory holds a mergeable multi-track set. It
// never mutates the filesystem.
package catalog
