// Package playlist writes the M3U file consumed by IPTV players.
package playlist

import (
	"fmt"
	"os"
)

const (
	Header     = "#EXTM3U"
	InfoPrefix = "#EXTINF:-1,"

	fileMode = 0o644
)

type Writer struct {
	path string
}

func New(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Path() string {
	return w.path
}

// Init truncates the playlist and writes the header followed by a blank line.
func (w *Writer) Init() error {
	if err := os.WriteFile(w.path, []byte(Header+"\n\n"), fileMode); err != nil {
		return fmt.Errorf("initialise playlist %s: %w", w.path, err)
	}

	return nil
}

// Append adds one entry. The file is opened per call so every completed entry
// is on disk even if the run dies later.
func (w *Writer) Append(name, url string) (err error) {
	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, fileMode)
	if err != nil {
		return fmt.Errorf("open playlist %s: %w", w.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close playlist %s: %w", w.path, cerr)
		}
	}()

	if _, err = fmt.Fprintf(f, "%s%s\n%s\n\n", InfoPrefix, name, url); err != nil {
		return fmt.Errorf("append %s to playlist %s: %w", name, w.path, err)
	}

	return nil
}
