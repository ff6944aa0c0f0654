// Package services defines the shared error taxonomy and context annotations
// used by mergehelper's external-tool clients and the sweep.
//
// Sentinel errors classify failures (external tool, validation, configuration,
// timeout) so callers can route outcomes without string matching, and Wrap
// attaches component/operation detail while preserving the marker for
// errors.Is checks.
package services
