package fs

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MockFileInfo implements os.FileInfo for mock files.
type MockFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	isDir   bool
}

func (m *MockFileInfo) Name() string       { return m.name }
func (m *MockFileInfo) Size() int64        { return m.size }
func (m *MockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *MockFileInfo) ModTime() time.Time { return m.modTime }
func (m *MockFileInfo) IsDir() bool        { return m.isDir }
func (m *MockFileInfo) Sys() interface{}   { return nil }

// MockFS implements FS in memory for tests.
type MockFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	perms map[string]os.FileMode
	dirs  map[string]bool
}

// NewMockFS creates an empty MockFS.
func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string][]byte),
		perms: make(map[string]os.FileMode),
		dirs:  make(map[string]bool),
	}
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &os.PathError{Op: "read", Path: path, Err: os.ErrNotExist}
	}
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// WriteFile stores a copy of data. Parent directories are created implicitly.
func (m *MockFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleanPath := filepath.Clean(path)
	m.addParents(filepath.Dir(cleanPath))
	m.files[cleanPath] = append([]byte(nil), data...)
	m.perms[cleanPath] = perm
	return nil
}

func (m *MockFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addParents(filepath.Clean(path))
	return nil
}

// addParents marks dir and all of its ancestors as directories.
func (m *MockFS) addParents(dir string) {
	for dir != "." && dir != string(filepath.Separator) {
		m.dirs[dir] = true
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}

func (m *MockFS) Stat(path string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cleanPath := filepath.Clean(path)
	if data, ok := m.files[cleanPath]; ok {
		perm := m.perms[cleanPath]
		if perm == 0 {
			perm = 0644
		}
		return &MockFileInfo{
			name:    filepath.Base(cleanPath),
			size:    int64(len(data)),
			mode:    perm,
			modTime: time.Now(),
		}, nil
	}

	if m.dirs[cleanPath] || cleanPath == "." || cleanPath == string(filepath.Separator) {
		return &MockFileInfo{
			name:    filepath.Base(cleanPath),
			mode:    0755 | os.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		}, nil
	}

	return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

// AddFile adds a file with content.
func (m *MockFS) AddFile(path string, content []byte, perm os.FileMode) {
	_ = m.WriteFile(path, content, perm)
}

// FileExists reports whether a file was written at path.
func (m *MockFS) FileExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

// DirExists reports whether path is a known directory.
func (m *MockFS) DirExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[filepath.Clean(path)]
}
