package batch

import (
	"os"
	"path/filepath"
	"strings"
)

// outputMarker tags every file this tool produces. It sits between the
// target's base name and its extension.
const outputMarker = "_AVGCOLOR"

// OutputName derives the output file name for a target identifier.
//
// The name is a deterministic function of the target only:
// base name + "_AVGCOLOR" + extension, with the extension preserved
// verbatim including its case. "photo.PNG" becomes "photo_AVGCOLOR.PNG".
func OutputName(target string) string {
	name := filepath.Base(target)
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + outputMarker + ext
}

// IsOutputName reports whether a file name matches the output naming
// convention, i.e. whether this tool could have produced it.
func IsOutputName(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.HasSuffix(stem, outputMarker)
}

// countExistingOutputs returns how many files in dir match the output
// naming convention. A missing or unreadable directory counts as zero:
// the overwrite check is advisory and must not fail a run that would
// otherwise create the directory fresh.
func countExistingOutputs(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && IsOutputName(e.Name()) {
			n++
		}
	}
	return n
}
