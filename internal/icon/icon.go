// Package icon stores channel logos on local disk.
package icon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// Extension is used for every icon regardless of the image's real encoding.
	Extension = ".png"

	chunkSize = 1024
	dirMode   = 0o755
	fileMode  = 0o644
)

// Opener returns the body of a remote resource.
type Opener interface {
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

type Store struct {
	dir    string
	opener Opener
}

func NewStore(dir string, opener Opener) *Store {
	return &Store{
		dir:    dir,
		opener: opener,
	}
}

// EnsureDir creates the icon directory. An existing directory is fine.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return fmt.Errorf("create icons directory %s: %w", s.dir, err)
	}

	return nil
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+Extension)
}

// Download saves url as the icon of name, overwriting any previous icon of the
// same name, and returns the number of bytes written.
func (s *Store) Download(ctx context.Context, url, name string) (int64, error) {
	body, err := s.opener.Open(ctx, url)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	path := s.Path(name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return 0, fmt.Errorf("save icon %s: %w", path, err)
	}

	written, err := copyChunks(f, body)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("save icon %s: %w", path, cerr)
	}

	if err != nil {
		_ = os.Remove(path)
		return written, err
	}

	return written, nil
}

func copyChunks(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
		}

		if errors.Is(rerr, io.EOF) {
			return written, nil
		}

		if rerr != nil {
			return written, fmt.Errorf("read icon body: %w", rerr)
		}
	}
}
