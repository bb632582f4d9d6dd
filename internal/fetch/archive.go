package fetch

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractZip extracts every file from archivePath into destDir and
// returns the paths of the extracted files. destDir is created if needed;
// callers pass a per-invocation directory so parallel drivers never
// collide on extracted files.
func ExtractZip(archivePath, destDir string) ([]string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create extraction directory: %w", err)
	}

	var extracted []string
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		path, err := extractFile(file, destDir)
		if err != nil {
			return nil, err
		}
		extracted = append(extracted, path)
	}
	return extracted, nil
}

// extractFile writes one archive entry into destDir, rejecting entry
// names that would escape it.
func extractFile(file *zip.File, destDir string) (string, error) {
	name := filepath.Base(file.Name)
	if name == "." || name == string(filepath.Separator) || strings.Contains(file.Name, "..") {
		return "", fmt.Errorf("unsafe archive entry name: %q", file.Name)
	}
	outPath := filepath.Join(destDir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", file.Name, err)
	}
	return outPath, nil
}
