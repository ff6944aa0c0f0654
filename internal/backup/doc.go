// Package backup relocates a title's original BIN/CUE files into a per-title
// backup directory before a merge attempt, and can either restore the exact
// prior layout or commit the merge by retaining or purging the backup.
//
// The move is staged: files are first gathered in a hidden staging directory
// and the staging directory is renamed to the backup name only once every
// move succeeded. A visible backup directory therefore always contains the
// complete original file set, never a partial one.
package backup
