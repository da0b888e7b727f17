package inbox

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDetectsDroppedAudioFile(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "standup.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Files():
		if got != path {
			t.Errorf("path = %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("dropped audio file was not detected")
	}
}

func TestIgnoresNonAudioFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Files():
		t.Errorf("unexpected detection: %q", got)
	case <-time.After(1 * time.Second):
	}
}

func TestWatchMissingDirectoryFails(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("watching a missing directory must fail")
	}
}

func TestIsAudioFile(t *testing.T) {
	cases := map[string]bool{
		"a.wav":       true,
		"b.MP3":       true,
		"c.m4a":       true,
		"d.txt":       false,
		"e.wav.part":  false,
		"noextension": false,
	}
	for path, want := range cases {
		if got := isAudioFile(path); got != want {
			t.Errorf("isAudioFile(%q) = %v, want %v", path, got, want)
		}
	}
}
