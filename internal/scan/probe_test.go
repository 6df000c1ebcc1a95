package scan

import (
	"math"
	"testing"
)

func TestParseProbeOutput(t *testing.T) {
	data := []byte(`{
		"format": {
			"duration": "215.370000",
			"tags": {
				"TITLE": "Blue in Green",
				"artist": "Miles Davis",
				"Album": "Kind of Blue",
				"genre": "Jazz"
			}
		}
	}`)

	meta, err := parseProbeOutput(data)
	if err != nil {
		t.Fatalf("parseProbeOutput() error = %v", err)
	}
	if meta.Title != "Blue in Green" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Artist != "Miles Davis" {
		t.Errorf("Artist = %q", meta.Artist)
	}
	if meta.Album != "Kind of Blue" {
		t.Errorf("Album = %q", meta.Album)
	}
	if meta.Genre != "Jazz" {
		t.Errorf("Genre = %q", meta.Genre)
	}
	if math.Abs(meta.Duration-215.37) > 1e-9 {
		t.Errorf("Duration = %v, want 215.37", meta.Duration)
	}
}

func TestParseProbeOutputNoTags(t *testing.T) {
	meta, err := parseProbeOutput([]byte(`{"format": {"duration": "12.5"}}`))
	if err != nil {
		t.Fatalf("parseProbeOutput() error = %v", err)
	}
	if meta.Title != "" || meta.Artist != "" {
		t.Errorf("tags = %+v, want empty", meta)
	}
	if meta.Duration != 12.5 {
		t.Errorf("Duration = %v, want 12.5", meta.Duration)
	}
}

func TestParseProbeOutputBlankTagsIgnored(t *testing.T) {
	meta, err := parseProbeOutput([]byte(`{"format": {"tags": {"title": "   "}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if meta.Title != "" {
		t.Errorf("Title = %q, want whitespace tag dropped", meta.Title)
	}
	if meta.Duration != 0 {
		t.Errorf("Duration = %v, want 0 when absent", meta.Duration)
	}
}

func TestParseProbeOutputMalformed(t *testing.T) {
	if _, err := parseProbeOutput([]byte("not json")); err == nil {
		t.Error("parseProbeOutput() on garbage succeeded, want error")
	}
}

func TestParseFFmpegDuration(t *testing.T) {
	diagnostics := `Input #0, mp3, from '/music/track.mp3':
  Metadata:
    artist          : Someone
  Duration: 00:03:35.46, start: 0.025057, bitrate: 192 kb/s
    Stream #0:0: Audio: mp3, 44100 Hz, stereo, fltp, 192 kb/s
At least one output file must be specified`

	got, ok := parseFFmpegDuration(diagnostics)
	if !ok {
		t.Fatal("parseFFmpegDuration() found no duration")
	}
	want := 3*60 + 35.46
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("duration = %v, want %v", got, want)
	}
}

func TestParseFFmpegDurationAbsent(t *testing.T) {
	if _, ok := parseFFmpegDuration("some unrelated output\n"); ok {
		t.Error("parseFFmpegDuration() found a duration in unrelated output")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"00:03:25.46", 205.46, true},
		{"01:00:00", 3600, true},
		{"10:02:01.5", 36121.5, true},
		{"03:25", 0, false},
		{"xx:yy:zz", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseClock(tt.in)
		if ok != tt.wantOK {
			t.Errorf("parseClock(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	table := `File formats:
 D. = Demuxing supported
 .E = Muxing supported
 --
 D  aac             raw ADTS AAC (Advanced Audio Coding)
 DE flac            raw FLAC
 DE mov,mp4,m4a,3gp QuickTime / MOV
  E mp2             MP2 (MPEG audio layer 2)
 D  mp3             MP3 (MPEG audio layer 3)
 DE ogg             Ogg`

	formats := parseFormats(table)

	for _, want := range []string{"aac", "flac", "mp3", "ogg", "mp4", "m4a"} {
		if !formats[want] {
			t.Errorf("format %q not detected", want)
		}
	}
	if formats["mp2"] {
		t.Error("mux-only format mp2 detected as demuxable")
	}
	if formats["="] || formats["--"] {
		t.Error("header lines leaked into format set")
	}
}
