package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// File permissions
const DefaultDirPermissions = 0755

// Prefix for per-session temporary directories
const sessionDirPrefix = "tubefetch-"

// SessionDir is a process-private temporary directory owned by one
// orchestrator instance. Created at instance start, destroyed best-effort at
// teardown, recreated on an explicit clear.
type SessionDir struct {
	root string
	path string
}

// NewSessionDir creates a fresh session directory under root, or under the
// system temp directory when root is empty.
func NewSessionDir(root string) (*SessionDir, error) {
	if root != "" {
		if err := CreateDirectoryIfNotExists(root); err != nil {
			return nil, err
		}
	}
	path, err := os.MkdirTemp(root, sessionDirPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &SessionDir{root: root, path: path}, nil
}

// Path returns the directory path
func (d *SessionDir) Path() string {
	return d.path
}

// Clear removes all downloaded files and recreates the directory
func (d *SessionDir) Clear() error {
	_ = os.RemoveAll(d.path)
	path, err := os.MkdirTemp(d.root, sessionDirPrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to recreate session directory: %w", err)
	}
	d.path = path
	return nil
}

// Close removes the directory, ignoring errors
func (d *SessionDir) Close() {
	if d == nil || d.path == "" {
		return
	}
	_ = os.RemoveAll(d.path)
}

// DownloadedFile describes one file produced by a finished download
type DownloadedFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// ListDownloads enumerates non-empty files in dir, newest first
func ListDownloads(dir string) ([]DownloadedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make([]DownloadedFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() == 0 {
			continue
		}
		files = append(files, DownloadedFile{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// TotalSize sums the sizes of the listed files
func TotalSize(files []DownloadedFile) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}
