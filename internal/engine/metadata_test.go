package engine

import (
	"strings"
	"testing"
)

const sampleDump = `{
	"id": "dQw4w9WgXcQ",
	"title": "Test Video",
	"uploader": "Test Channel",
	"duration": 212.4,
	"view_count": 1234567,
	"upload_date": "20091025",
	"description": "A description",
	"thumbnail": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq720.jpg",
	"age_limit": 0,
	"availability": "public",
	"webpage_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	"channel_follower_count": 99,
	"formats": [
		{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a.40.2", "abr": 129.5, "filesize": 3456789, "protocol": "https"},
		{"format_id": "137", "ext": "mp4", "vcodec": "avc1", "acodec": "none", "height": 1080, "fps": 25, "filesize_approx": 99999, "protocol": "https"},
		{"format_id": "hls", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a", "height": 720, "protocol": "m3u8_native"}
	]
}`

func TestProjectMetadata(t *testing.T) {
	meta, err := projectMetadata([]byte(sampleDump))
	if err != nil {
		t.Fatalf("projectMetadata() error = %v", err)
	}

	if meta.ID != "dQw4w9WgXcQ" || meta.Title != "Test Video" || meta.Uploader != "Test Channel" {
		t.Errorf("identity fields = %s/%s/%s", meta.ID, meta.Title, meta.Uploader)
	}
	if meta.DurationSec != 212 {
		t.Errorf("DurationSec = %d, expected 212", meta.DurationSec)
	}
	if meta.ViewCount != 1234567 {
		t.Errorf("ViewCount = %d", meta.ViewCount)
	}
	if meta.UploadDate != "20091025" || meta.Availability != "public" {
		t.Errorf("UploadDate/Availability = %s/%s", meta.UploadDate, meta.Availability)
	}

	if len(meta.Formats) != 3 {
		t.Fatalf("expected 3 formats, got %d", len(meta.Formats))
	}
	audio := meta.Formats[0]
	if audio.ABR != 129.5 || audio.Filesize != 3456789 || audio.HasVideo() {
		t.Errorf("audio format projected wrong: %+v", audio)
	}
	video := meta.Formats[1]
	if video.Height != 1080 || video.Filesize != 99999 {
		t.Errorf("video format must fall back to filesize_approx: %+v", video)
	}
}

func TestProjectMetadata_TruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 900)
	dump := `{"id": "abc", "title": "t", "description": "` + long + `"}`

	meta, err := projectMetadata([]byte(dump))
	if err != nil {
		t.Fatalf("projectMetadata() error = %v", err)
	}
	if len(meta.Description) != 503 || !strings.HasSuffix(meta.Description, "...") {
		t.Errorf("Description length = %d, expected 500 chars plus ellipsis", len(meta.Description))
	}
}

func TestProjectMetadata_Defaults(t *testing.T) {
	meta, err := projectMetadata([]byte(`{"id": "abc"}`))
	if err != nil {
		t.Fatalf("projectMetadata() error = %v", err)
	}
	if meta.Title != "Unknown Title" || meta.Uploader != "Unknown" {
		t.Errorf("defaults = %s/%s", meta.Title, meta.Uploader)
	}
}

func TestProjectMetadata_Invalid(t *testing.T) {
	if _, err := projectMetadata([]byte("not json")); err == nil {
		t.Error("expected error for malformed dump")
	}
	if _, err := projectMetadata([]byte(`{"title": "no id"}`)); err == nil {
		t.Error("expected error for dump without video id")
	}
}
