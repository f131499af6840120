package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"yardcli/internal/config"
	"yardcli/internal/exporter"
	"yardcli/internal/infrastructure"
	"yardcli/internal/services"
	"yardcli/internal/shiftcal"
)

func main() {
	activityPath := flag.String("activity", "", "path to the operator activity export (defaults to data/uploads/activity.xlsx relative to executable)")
	ordersPath := flag.String("orders", "", "path to the orders export (defaults to data/uploads/orders.xlsx relative to executable)")
	trailersPath := flag.String("trailers", "", "path to the trailer activity export (defaults to data/uploads/trailers.xlsx relative to executable)")
	calendarPath := flag.String("calendar", "", "path to the shift calendar CSV (defaults to data/shift_calendar.csv relative to executable)")
	outDir := flag.String("out", "", "output directory for CSV reports (defaults to data/reports relative to executable)")
	flag.Parse()

	// Initialize paths first to get default locations
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	// Use centralized locations as defaults if not specified
	if *activityPath == "" {
		*activityPath = paths.GetUploadPath("activity.xlsx")
	}
	if *ordersPath == "" {
		*ordersPath = paths.GetUploadPath("orders.xlsx")
	}
	if *trailersPath == "" {
		*trailersPath = paths.GetUploadPath("trailers.xlsx")
	}
	if *calendarPath == "" {
		*calendarPath = paths.ShiftCalendarFile
	}
	if *outDir != "" {
		// Redirect the well-known report files to the requested directory
		paths.ReportsDir = *outDir
		paths.LoadTimesCSV = filepath.Join(*outDir, "load_times.csv")
		paths.OrdersCSV = filepath.Join(*outDir, "orders.csv")
		paths.TrailersCSV = filepath.Join(*outDir, "trailers.csv")
		paths.MergedDataCSV = filepath.Join(*outDir, "merged_data.csv")
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:    "info",
				Format:   "json",
				Output:   "both",
				FilePath: paths.GetLogPath("process.log"),
			},
		}
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
	}

	// Tag the whole batch run with one trace ID so its log lines correlate
	// the same way a web request's do.
	ctx, cancel := context.WithTimeout(context.Background(), config.ReconcileTimeout)
	defer cancel()
	ctx = infrastructure.EnsureTraceID(ctx)
	logger := infrastructure.WithComponent(infrastructure.LoggerWithContext(ctx), "processor")

	logger.Info("Starting yard compliance processing",
		slog.String("activity_file", *activityPath),
		slog.String("orders_file", *ordersPath),
		slog.String("trailers_file", *trailersPath),
		slog.String("calendar_file", *calendarPath),
		slog.String("output_dir", paths.ReportsDir),
		slog.String("executable_dir", paths.ExecutableDir))

	calendar, err := shiftcal.Load(*calendarPath)
	if err != nil {
		logger.Error("Failed to load shift calendar",
			slog.String("path", *calendarPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Shift calendar loaded", slog.Int("days", calendar.Len()))

	service := services.NewReconcileService(calendar, logger)
	service.SetReportExporter(exporter.NewReportExporter(paths))

	if err := service.ProcessFiles(ctx, *activityPath, *ordersPath, *trailersPath); err != nil {
		logger.Error("Processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	status := service.Status()
	logger.Info("Processing complete",
		slog.Int("load_records", status.Loads),
		slog.Int("order_records", status.Orders),
		slog.Int("trailer_records", status.Trailers),
		slog.Int("compliance_records", status.Compliance))

	fmt.Printf("Processing complete: %d orders, %d trailers, %d load times, %d compliance records\n",
		status.Orders, status.Trailers, status.Loads, status.Compliance)
	fmt.Printf("Reports written to %s\n", paths.ReportsDir)
}
