// Package main hosts the mergehelper CLI entrypoint and command graph.
//
// The Cobra-based command tree wires terminal invocations to the sweep
// engine, the read-only scan, the run history store, and configuration
// scaffolding. It centralizes configuration resolution and logging setup so
// subcommands stay declarative; the merge protocol itself lives in the
// internal packages.
package main
