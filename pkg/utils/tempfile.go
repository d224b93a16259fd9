package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mudler/xlog"
)

// TempScope hands out uniquely named paths in a directory and removes all of
// them on Cleanup. Use one scope per request:
//
//	scope := utils.NewTempScope(dir)
//	defer scope.Cleanup()
//
// A TempScope is not safe for concurrent use.
type TempScope struct {
	dir   string
	paths []string
}

// NewTempScope returns a scope rooted at dir; an empty dir means os.TempDir().
func NewTempScope(dir string) *TempScope {
	if dir == "" {
		dir = os.TempDir()
	}
	return &TempScope{dir: dir}
}

// Dir returns the directory the scope creates files in.
func (s *TempScope) Dir() string { return s.dir }

// Path reserves a new unique path with the given extension. The file is not
// created, but it is removed on Cleanup if something else creates it.
func (s *TempScope) Path(ext string) string {
	p := filepath.Join(s.dir, "phonolab-"+uuid.New().String()+ext)
	s.paths = append(s.paths, p)
	return p
}

// Create creates and tracks a new empty file.
func (s *TempScope) Create(ext string) (*os.File, error) {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return nil, err
	}
	return os.OpenFile(s.Path(ext), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
}

// Save copies r into a new tracked file and returns its path.
func (s *TempScope) Save(r io.Reader, ext string) (string, error) {
	f, err := s.Create(ext)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", err
	}
	return f.Name(), f.Close()
}

// Paths returns the paths handed out so far.
func (s *TempScope) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Cleanup removes every tracked path. It is safe to call more than once.
func (s *TempScope) Cleanup() {
	for _, p := range s.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			xlog.Warn("failed to remove temporary file", "path", p, "error", err)
		}
	}
	s.paths = nil
}
