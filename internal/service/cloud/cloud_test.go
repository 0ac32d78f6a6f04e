package cloud

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		raw    string
		region string
		want   string
		ok     bool
	}{
		{"+1 650-253-0000", "EG", "+16502530000", true},
		{"+201001234567", "EG", "+201001234567", true},
		{"01001234567", "EG", "+201001234567", true},
		{"12345", "EG", "", false},
		{"", "EG", "", false},
		{"not a phone", "EG", "", false},
	}
	for _, c := range cases {
		got, err := NormalizePhone(c.raw, c.region)
		if c.ok && (err != nil || got != c.want) {
			t.Errorf("NormalizePhone(%q) = %q, %v; want %q", c.raw, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Errorf("NormalizePhone(%q) should fail, got %q", c.raw, got)
		}
	}
}

func TestImageSize(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "icon.png")
	f, err := os.Create(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 32, 48))); err != nil {
		t.Fatal(err)
	}
	f.Close()
	w, h, err := ImageSize(pngPath)
	if err != nil || w != 32 || h != 48 {
		t.Fatalf("png size = %dx%d, %v", w, h, err)
	}

	icoPath := filepath.Join(dir, "favicon.ico")
	ico := []byte{0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 0, 32, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if err := os.WriteFile(icoPath, ico, 0644); err != nil {
		t.Fatal(err)
	}
	w, h, err = ImageSize(icoPath)
	if err != nil || w != 256 || h != 256 {
		t.Fatalf("ico size = %dx%d, %v", w, h, err)
	}

	txtPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txtPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ImageSize(txtPath); err == nil {
		t.Fatal("expected error for non-image file")
	}
}

func TestMediaKey(t *testing.T) {
	key := MediaKey("tracks/audio", "/tmp/abc.MP3")
	if !strings.HasPrefix(key, "seagulls/tracks/audio/") || !strings.HasSuffix(key, ".mp3") {
		t.Fatalf("unexpected key %s", key)
	}
	if MediaKey("tracks/audio", "/tmp/abc.MP3") == key {
		t.Fatal("keys should be unique")
	}
}

func TestTrackApprovalMail(t *testing.T) {
	mail := &TrackApprovalMail{
		To:          "user@example.com",
		SongName:    "Sea Breeze",
		Date:        time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local),
		Time:        "14:30",
		ChannelName: "Seagulls Alex",
	}
	if got := mail.Subject(); got != `Your Track "Sea Breeze" Has Been Approved!` {
		t.Fatalf("subject = %s", got)
	}
	body := mail.Body("SeagullsFM Team")
	for _, want := range []string{"Monday, March 11, 2024", "14:30", "Seagulls Alex", "SeagullsFM Team"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}
