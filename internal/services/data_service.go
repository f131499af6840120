package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"yardcli/internal/config"
)

// ReportFile describes one generated report on disk
type ReportFile struct {
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Size     int64     `json:"size"`
	SizeStr  string    `json:"size_str"`
	Modified time.Time `json:"modified"`
	Path     string    `json:"path"`
}

// DataService serves generated report files from disk
type DataService struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewDataService creates a new data service
func NewDataService(paths *config.Paths, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		paths:  paths,
		logger: logger,
	}
}

// reportCategory maps a report filename to its display category
func reportCategory(name string) string {
	switch name {
	case "load_times.csv":
		return "load-times"
	case "orders.csv":
		return "orders"
	case "trailers.csv":
		return "trailers"
	case "merged_data.csv":
		return "compliance"
	default:
		return "other"
	}
}

// GetReports lists the generated CSV reports, newest first
func (s *DataService) GetReports(ctx context.Context) ([]ReportFile, error) {
	entries, err := os.ReadDir(s.paths.ReportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoReportsFound
		}
		s.logger.ErrorContext(ctx, "failed to read reports directory",
			slog.String("dir", s.paths.ReportsDir),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("reading reports directory: %w", err)
	}

	var reports []ReportFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, ReportFile{
			Name:     entry.Name(),
			Category: reportCategory(entry.Name()),
			Size:     info.Size(),
			SizeStr:  formatFileSize(info.Size()),
			Modified: info.ModTime(),
			Path:     filepath.Join(s.paths.ReportsDir, entry.Name()),
		})
	}

	if len(reports) == 0 {
		return nil, ErrNoReportsFound
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Modified.After(reports[j].Modified)
	})

	return reports, nil
}

// DownloadFile resolves a file for download, rejecting any path that
// escapes the configured directory for its type.
func (s *DataService) DownloadFile(ctx context.Context, fileType, filename string) (string, error) {
	if filename == "" || strings.Contains(filename, "..") {
		return "", ErrInvalidInput
	}

	var baseDir string
	switch fileType {
	case "reports":
		baseDir = s.paths.ReportsDir
	case "uploads":
		baseDir = s.paths.UploadsDir
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidFileType, fileType)
	}

	cleanPath := filepath.Join(baseDir, filepath.Clean(filename))

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("resolving file path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(os.PathSeparator)) {
		s.logger.WarnContext(ctx, "path traversal attempt blocked",
			slog.String("file_type", fileType),
			slog.String("filename", filename))
		return "", ErrInvalidInput
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return "", ErrFileNotFound
		}
		return "", fmt.Errorf("checking file: %w", err)
	}

	return absPath, nil
}

// formatFileSize renders a byte count in human readable form
func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
