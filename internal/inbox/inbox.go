// Package inbox watches a drop directory for new audio files. A detected
// file is the terminal analogue of the browser's drag-and-drop upload: it
// surfaces in the capture view ready for one-keystroke processing.
package inbox

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

var audioExtensions = []string{".wav", ".mp3", ".m4a", ".webm", ".ogg", ".flac", ".aac"}

// Watcher monitors one directory and delivers detected audio paths on a
// channel the TUI drains.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	files   chan string
	done    chan struct{}
}

// New starts watching dir. The returned Watcher must be Closed.
func New(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		dir:     dir,
		watcher: fw,
		files:   make(chan string, 8),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Files delivers detected audio file paths.
func (w *Watcher) Files() <-chan string { return w.files }

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isAudioFile(event.Name) {
				continue
			}
			// Give the writer a moment to finish the file.
			time.Sleep(500 * time.Millisecond)
			select {
			case w.files <- event.Name:
			case <-w.done:
				return
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func isAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range audioExtensions {
		if ext == a {
			return true
		}
	}
	return false
}
