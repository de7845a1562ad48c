// Package logging routes the fiber logger's output so progress goes to one
// stream and diagnostics to another.
package logging

import (
	"bytes"
	"io"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// Tags that mark a line as a diagnostic.
var diagnosticTags = [][]byte{
	[]byte("[Warn] "),
	[]byte("[Error] "),
	[]byte("[Fatal] "),
	[]byte("[Panic] "),
}

// Setup installs a LevelWriter as the fiber log output and sets the level.
func Setup(stdout, stderr io.Writer, verbose bool) {
	log.SetOutput(NewLevelWriter(stdout, stderr))
	if verbose {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(log.LevelInfo)
	}
}

// LevelWriter sends each log line to stderr when it carries a warning or
// error tag and to stdout otherwise. The logger writes one line per call.
type LevelWriter struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

func NewLevelWriter(stdout, stderr io.Writer) *LevelWriter {
	return &LevelWriter{
		stdout: stdout,
		stderr: stderr,
	}
}

func (w *LevelWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if isDiagnostic(p) {
		return w.stderr.Write(p)
	}

	return w.stdout.Write(p)
}

func isDiagnostic(line []byte) bool {
	for _, tag := range diagnosticTags {
		if bytes.Contains(line, tag) {
			return true
		}
	}

	return false
}
