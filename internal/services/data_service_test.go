package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardcli/internal/config"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	base := t.TempDir()
	paths := &config.Paths{
		ExecutableDir: base,
		DataDir:       filepath.Join(base, "data"),
		UploadsDir:    filepath.Join(base, "data", "uploads"),
		ReportsDir:    filepath.Join(base, "data", "reports"),
		LogsDir:       filepath.Join(base, "logs"),
	}
	require.NoError(t, paths.EnsureDirectories())
	return paths
}

func TestDataService_GetReports(t *testing.T) {
	paths := testPaths(t)
	svc := NewDataService(paths, slog.Default())
	ctx := context.Background()

	t.Run("empty directory", func(t *testing.T) {
		_, err := svc.GetReports(ctx)
		assert.ErrorIs(t, err, ErrNoReportsFound)
	})

	t.Run("lists reports newest first", func(t *testing.T) {
		old := filepath.Join(paths.ReportsDir, "orders.csv")
		require.NoError(t, os.WriteFile(old, []byte("Shipment Num\nS100\n"), 0644))
		past := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(old, past, past))

		recent := filepath.Join(paths.ReportsDir, "merged_data.csv")
		require.NoError(t, os.WriteFile(recent, []byte("Shipment Num\nS100\n"), 0644))

		// Non-CSV files are ignored.
		require.NoError(t, os.WriteFile(filepath.Join(paths.ReportsDir, "notes.txt"), []byte("x"), 0644))

		reports, err := svc.GetReports(ctx)
		require.NoError(t, err)
		require.Len(t, reports, 2)

		assert.Equal(t, "merged_data.csv", reports[0].Name)
		assert.Equal(t, "compliance", reports[0].Category)
		assert.Equal(t, "orders.csv", reports[1].Name)
		assert.Equal(t, "orders", reports[1].Category)
		assert.NotEmpty(t, reports[0].SizeStr)
	})
}

func TestDataService_DownloadFile(t *testing.T) {
	paths := testPaths(t)
	svc := NewDataService(paths, slog.Default())
	ctx := context.Background()

	reportPath := filepath.Join(paths.ReportsDir, "merged_data.csv")
	require.NoError(t, os.WriteFile(reportPath, []byte("data"), 0644))

	t.Run("resolves report", func(t *testing.T) {
		got, err := svc.DownloadFile(ctx, "reports", "merged_data.csv")
		require.NoError(t, err)
		assert.Equal(t, reportPath, got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := svc.DownloadFile(ctx, "reports", "nope.csv")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("unknown file type", func(t *testing.T) {
		_, err := svc.DownloadFile(ctx, "secrets", "merged_data.csv")
		assert.ErrorIs(t, err, ErrInvalidFileType)
	})

	t.Run("blocks path traversal", func(t *testing.T) {
		for _, name := range []string{"../config.yaml", "..\\config.yaml", "foo/../../etc/passwd", ""} {
			_, err := svc.DownloadFile(ctx, "reports", name)
			assert.ErrorIs(t, err, ErrInvalidInput, "filename %q", name)
		}
	})
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.0 KB", formatFileSize(1024))
	assert.Equal(t, "2.5 MB", formatFileSize(int64(2.5*1024*1024)))
}
