// Package scan indexes a music directory into the catalogue. Metadata
// comes from ffprobe; when ffprobe reports no duration the scanner falls
// back to parsing ffmpeg's diagnostic output. A file without a
// determinable duration is never indexed.
package scan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	spinerrors "github.com/rosdahl/spindle/internal/errors"
)

// Metadata is the probed tag set for one audio file. Tags are empty
// strings when absent; Duration is in seconds.
type Metadata struct {
	Title    string
	Genre    string
	Artist   string
	Album    string
	Duration float64
}

// Prober reads audio metadata through external ffmpeg tooling.
type Prober struct {
	ffprobe string
	ffmpeg  string
}

// NewProber returns a Prober using the given binaries.
func NewProber(ffprobe, ffmpeg string) *Prober {
	return &Prober{ffprobe: ffprobe, ffmpeg: ffmpeg}
}

// Probe reads tags and duration for the file at path. Tag failures are
// recovered (empty tags); a missing duration from both probes returns
// ErrNoDuration.
func (p *Prober) Probe(path string) (*Metadata, error) {
	meta, err := p.probeTags(path)
	if err != nil {
		// Unreadable or untagged files still play; keep probing.
		meta = &Metadata{}
	}

	if meta.Duration <= 0 {
		duration, ok := p.ffmpegDuration(path)
		if !ok {
			return nil, fmt.Errorf("%w: %s", spinerrors.ErrNoDuration, path)
		}
		meta.Duration = duration
	}
	return meta, nil
}

// probeTags runs ffprobe and decodes its JSON output.
func (p *Prober) probeTags(path string) (*Metadata, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration:format_tags=title,genre,artist,album",
		"-of", "json",
		path,
	}

	cmd := exec.Command(p.ffprobe, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}
	return parseProbeOutput(out.Bytes())
}

// parseProbeOutput decodes ffprobe's -of json format section. Tag keys
// vary in case between containers, so they are folded to lower case.
func parseProbeOutput(data []byte) (*Metadata, error) {
	var probe struct {
		Format struct {
			Duration string            `json:"duration"`
			Tags     map[string]string `json:"tags"`
		} `json:"format"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode ffprobe output: %w", err)
	}

	meta := &Metadata{}
	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			meta.Duration = d
		}
	}
	for key, value := range probe.Format.Tags {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch strings.ToLower(key) {
		case "title":
			meta.Title = value
		case "genre":
			meta.Genre = value
		case "artist":
			meta.Artist = value
		case "album":
			meta.Album = value
		}
	}
	return meta, nil
}

// ffmpegDuration extracts the duration from ffmpeg's stderr diagnostics.
// ffmpeg exits non-zero without an output file; only the parse matters.
func (p *Prober) ffmpegDuration(path string) (float64, bool) {
	cmd := exec.Command(p.ffmpeg, "-i", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	_ = cmd.Run()

	return parseFFmpegDuration(stderr.String())
}

// parseFFmpegDuration finds a "Duration: HH:MM:SS.cc," field in ffmpeg
// diagnostic output.
func parseFFmpegDuration(diagnostics string) (float64, bool) {
	for _, line := range strings.Split(diagnostics, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if !strings.HasPrefix(line, "duration") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		return parseClock(strings.TrimSuffix(fields[1], ","))
	}
	return 0, false
}

// parseClock parses HH:MM:SS with an optional fraction into seconds.
func parseClock(clock string) (float64, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}
