// Package importer finds BMN report files in the import directory and runs
// them through the extractors.
package importer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/bmnledger/internal/model"
	"github.com/cleared-dev/bmnledger/internal/workbook"
)

// ProcessedDir is the subdirectory of the import directory that holds
// files already ingested.
const ProcessedDir = "processed"

// FileInfo describes a report file in the import directory.
type FileInfo struct {
	// Name is the path relative to the import directory, slash separated.
	Name string
	Path string
	Size int64
	// Category is detected from the file or directory name; empty when unknown.
	Category model.Category
}

// Scan returns the report files under importDir, including those in
// category subdirectories. The processed subdirectory is skipped. A missing
// importDir yields no files.
func Scan(importDir string) ([]FileInfo, error) {
	if _, err := os.Stat(importDir); os.IsNotExist(err) {
		return nil, nil
	}

	var files []FileInfo
	err := filepath.WalkDir(importDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(importDir, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel == ProcessedDir || (rel != "." && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		// Skip Excel lock files such as ~$report.xlsx.
		if strings.HasPrefix(d.Name(), "~$") || !workbook.Supported(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", rel, err)
		}
		c, _ := DetectCategory(rel)
		files = append(files, FileInfo{
			Name:     filepath.ToSlash(rel),
			Path:     path,
			Size:     info.Size(),
			Category: c,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading import dir: %w", err)
	}
	return files, nil
}

// MarkProcessed moves a file from the import directory to its processed
// subdirectory, keeping any category subdirectory.
func MarkProcessed(importDir, name string) error {
	src := filepath.Join(importDir, filepath.FromSlash(name))
	dst := filepath.Join(importDir, ProcessedDir, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", name, err)
	}
	return nil
}
