// Package retention resolves what happens to original track files after a
// successful merge.
//
// The decision is made once, before the sweep begins; the sweep itself only
// ever sees the resolved boolean and never prompts.
package retention

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the configured retention policy.
type Mode string

const (
	// ModeKeep always retains originals in the backup directory.
	ModeKeep Mode = "never-delete"
	// ModeDelete removes originals after a verified successful merge.
	ModeDelete Mode = "always-delete-on-success"
	// ModePrompt asks the operator once before the sweep begins.
	ModePrompt Mode = "prompt-once"
)

// ErrAborted signals that the operator chose to quit at the prompt.
var ErrAborted = errors.New("aborted by operator")

// ParseMode converts a config value into a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeKeep:
		return ModeKeep, nil
	case ModeDelete:
		return ModeDelete, nil
	case ModePrompt:
		return ModePrompt, nil
	default:
		return "", fmt.Errorf("retention mode: unsupported value %q", value)
	}
}

// PromptFunc reads one answer from the operator. It returns the raw response.
type PromptFunc func(question string) (string, error)

// Resolve turns a Mode into the purge decision the sweep consumes. promptFn
// is only consulted for ModePrompt; answers are y (purge), n (keep), and
// q (abort the run).
func Resolve(mode Mode, promptFn PromptFunc) (bool, error) {
	switch mode {
	case ModeKeep:
		return false, nil
	case ModeDelete:
		return true, nil
	case ModePrompt:
		if promptFn == nil {
			return false, errors.New("retention mode prompt-once requires a prompt function")
		}
		answer, err := promptFn("Delete the original game files if the merge succeeds? [y/n/q]: ")
		if err != nil {
			return false, fmt.Errorf("read retention answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "q", "quit":
			return false, ErrAborted
		default:
			return false, fmt.Errorf("retention prompt: unknown response %q", answer)
		}
	default:
		return false, fmt.Errorf("retention mode: unsupported value %q", mode)
	}
}
