package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application directories.
// This is the single source of truth for file locations: raw downloads,
// processed reports, zip-extraction scratch space and logs.
type Paths struct {
	BaseDir      string
	DataDir      string
	DownloadsDir string
	ReportsDir   string
	CacheDir     string
	LogsDir      string
}

// GetPaths returns the application paths. The base directory is
// NSE_BASE_DIR when set, otherwise the directory containing the
// executable, so the tool behaves the same regardless of the caller's
// working directory.
//
// Directory structure:
//
//	base/
//	  ├── data/
//	  │   ├── downloads/   (raw bhavcopy/vix/delivery files)
//	  │   ├── reports/     (normalized NSE-*.csv output)
//	  │   └── cache/       (per-date zip extraction scratch)
//	  └── logs/
func GetPaths() (*Paths, error) {
	baseDir := os.Getenv("NSE_BASE_DIR")
	if baseDir == "" {
		exeDir, err := executableDir()
		if err != nil {
			return nil, err
		}
		baseDir = exeDir
	}
	return NewPaths(baseDir), nil
}

// NewPaths builds the directory layout rooted at baseDir. Exposed so
// tests and callers with explicit -in/-out flags can relocate everything.
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	return &Paths{
		BaseDir:      baseDir,
		DataDir:      dataDir,
		DownloadsDir: filepath.Join(dataDir, "downloads"),
		ReportsDir:   filepath.Join(dataDir, "reports"),
		CacheDir:     filepath.Join(dataDir, "cache"),
		LogsDir:      filepath.Join(baseDir, "logs"),
	}
}

// executableDir returns the directory containing the running executable,
// with symlinks resolved.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return filepath.Dir(exe), nil
}

// EnsureDirectories creates every application directory that does not
// already exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.DownloadsDir, p.ReportsDir, p.CacheDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetDownloadPath returns the full path for a raw downloaded file.
func (p *Paths) GetDownloadPath(filename string) string {
	return filepath.Join(p.DownloadsDir, filename)
}

// GetReportPath returns the full path for a processed output file.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetCachePath returns the full path for a scratch file or directory.
func (p *Paths) GetCachePath(name string) string {
	return filepath.Join(p.CacheDir, name)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
