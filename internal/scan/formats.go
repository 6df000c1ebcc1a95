package scan

import (
	"fmt"
	"os/exec"
	"strings"
)

// SupportedFormats asks ffplay which container formats it can demux and
// returns the format names as a lookup set.
func SupportedFormats(ffplay string) (map[string]bool, error) {
	out, err := exec.Command(ffplay, "-formats").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list supported formats: %w", err)
	}
	return parseFormats(string(out)), nil
}

// parseFormats reads ffplay's -formats table. Demuxable entries are
// flagged with a leading D; the second column holds comma-separated
// format names.
func parseFormats(table string) map[string]bool {
	formats := make(map[string]bool)
	for _, line := range strings.Split(table, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		// Flag column is exactly "D" or "DE"; anything else is a header
		// or a mux-only entry.
		if len(fields) < 3 || (fields[0] != "D" && fields[0] != "DE") {
			continue
		}
		for _, name := range strings.Split(fields[1], ",") {
			if name != "" {
				formats[name] = true
			}
		}
	}
	return formats
}
