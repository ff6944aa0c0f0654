package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NameBy selects how the merged BIN/CUE pair is named.
type NameBy string

const (
	// NameByFolder names merged output after the title directory.
	NameByFolder NameBy = "folder"
	// NameByCue names merged output after the sole cue sheet's base name.
	NameByCue NameBy = "cue"
)

// ParseNameBy converts a config value into a naming policy.
func ParseNameBy(value string) (NameBy, error) {
	switch NameBy(strings.ToLower(strings.TrimSpace(value))) {
	case NameByFolder:
		return NameByFolder, nil
	case NameByCue:
		return NameByCue, nil
	default:
		return "", fmt.Errorf("naming policy: unsupported value %q", value)
	}
}

// Kind is the eligibility decision for one title directory.
type Kind int

const (
	// KindNoTracks means the directory holds no BIN files (or vanished mid-scan).
	KindNoTracks Kind = iota
	// KindSingleTrack means exactly one BIN file exists; nothing to merge.
	KindSingleTrack
	// KindAmbiguousCue means multiple BIN files but zero or several cue sheets,
	// so the merge target cannot be determined.
	KindAmbiguousCue
	// KindMergeable means multiple BIN files and exactly one cue sheet.
	KindMergeable
)

func (k Kind) String() string {
	switch k {
	case KindNoTracks:
		return "no-tracks"
	case KindSingleTrack:
		return "single-track"
	case KindAmbiguousCue:
		return "ambiguous-cue"
	case KindMergeable:
		return "mergeable"
	default:
		return "unknown"
	}
}

// Classification describes one title directory's merge eligibility.
type Classification struct {
	Kind       Kind
	Name       string
	CueFile    string
	TrackCount int
	CueCount   int
}

// Mergeable reports whether the title should be handed to the merge pipeline.
func (c Classification) Mergeable() bool {
	return c.Kind == KindMergeable
}

// IsTrackFile reports whether name carries a .bin extension, case-insensitively.
func IsTrackFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".bin")
}

// IsCueFile reports whether name carries a .cue extension, case-insensitively.
func IsCueFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".cue")
}

// IsMergeArtifact reports whether name is part of a BIN/CUE set.
func IsMergeArtifact(name string) bool {
	return IsTrackFile(name) || IsCueFile(name)
}

// Classify inspects titleDir without mutating it. Only direct children are
// considered. A directory that disappears mid-scan classifies as NoTracks
// rather than failing the sweep.
func Classify(titleDir string, nameBy NameBy) Classification {
	result := Classification{Name: filepath.Base(titleDir)}

	entries, err := os.ReadDir(titleDir)
	if err != nil {
		result.Kind = KindNoTracks
		return result
	}

	var cueFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case IsTrackFile(name):
			result.TrackCount++
		case IsCueFile(name):
			result.CueCount++
			cueFiles = append(cueFiles, name)
		}
	}

	if result.CueCount == 1 {
		result.CueFile = cueFiles[0]
		if nameBy == NameByCue {
			result.Name = strings.TrimSuffix(result.CueFile, filepath.Ext(result.CueFile))
		}
	}

	switch {
	case result.TrackCount == 0:
		result.Kind = KindNoTracks
	case result.TrackCount == 1:
		result.Kind = KindSingleTrack
	case result.CueCount != 1:
		result.Kind = KindAmbiguousCue
	default:
		result.Kind = KindMergeable
	}
	return result
}
