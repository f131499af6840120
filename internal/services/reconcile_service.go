package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"yardcli/internal/dataprocessing"
	"yardcli/internal/exporter"
	"yardcli/internal/infrastructure"
	"yardcli/internal/shiftcal"
	"yardcli/pkg/contracts/domain"
)

// Source identifies one of the three warehouse export feeds.
type Source string

const (
	SourceActivity Source = "activity"
	SourceOrders   Source = "orders"
	SourceTrailers Source = "trailers"
)

// ParseSource converts a request parameter to a Source
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceActivity, SourceOrders, SourceTrailers:
		return Source(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
	}
}

// ReconcileService owns the cleaned tables and the reconciled compliance
// table. Each upload replaces one source table in full and triggers a
// recompute; a rejected upload leaves every table as it was.
type ReconcileService struct {
	calendar *shiftcal.Calendar
	logger   *slog.Logger
	metrics  *infrastructure.BusinessMetrics
	reports  *exporter.ReportExporter

	mu         sync.RWMutex
	loads      []domain.LoadRecord
	orders     []domain.OrderRecord
	trailers   []domain.TrailerRecord
	compliance []domain.ComplianceRecord
	lastRun    time.Time
	runs       int64
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(calendar *shiftcal.Calendar, logger *slog.Logger) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("ReconcileService initialized",
		slog.Int("calendar_days", calendar.Len()))

	return &ReconcileService{
		calendar: calendar,
		logger:   logger,
	}
}

// SetMetrics attaches business metrics recording. Optional.
func (s *ReconcileService) SetMetrics(metrics *infrastructure.BusinessMetrics) {
	s.metrics = metrics
}

// SetReportExporter attaches CSV report writing after each successful
// reconciliation. Optional.
func (s *ReconcileService) SetReportExporter(reports *exporter.ReportExporter) {
	s.reports = reports
}

// Ingest cleans one uploaded source table and, on success, swaps it in
// and recomputes the compliance table. On a cleaning error the previous
// tables, including the compliance table, stay in place.
func (s *ReconcileService) Ingest(ctx context.Context, source Source, table *dataprocessing.Table) error {
	start := time.Now()

	var (
		loads    []domain.LoadRecord
		orders   []domain.OrderRecord
		trailers []domain.TrailerRecord
		rows     int
		err      error
	)

	switch source {
	case SourceActivity:
		loads, err = dataprocessing.CleanActivity(table, s.calendar)
		rows = len(loads)
	case SourceOrders:
		orders, err = dataprocessing.CleanOrders(table)
		rows = len(orders)
	case SourceTrailers:
		trailers, err = dataprocessing.CleanTrailers(table, s.calendar)
		rows = len(trailers)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	infrastructure.RecordUploadMetrics(ctx, s.metrics, string(source), int64(rows), err)

	if err != nil {
		s.logger.WarnContext(ctx, "upload rejected, keeping previous tables",
			slog.String("source", string(source)),
			slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	switch source {
	case SourceActivity:
		s.loads = loads
	case SourceOrders:
		s.orders = orders
	case SourceTrailers:
		s.trailers = trailers
	}
	delta := s.recomputeLocked()
	s.mu.Unlock()

	infrastructure.RecordReconcileMetrics(ctx, s.metrics, time.Since(start), delta, nil)

	s.logger.InfoContext(ctx, "source table replaced",
		slog.String("source", string(source)),
		slog.Int("rows_cleaned", rows),
		slog.Duration("duration", time.Since(start)))

	s.export(ctx)
	return nil
}

// ProcessFiles reads and cleans the three warehouse export files in
// parallel, then swaps all tables in at once. Any single failure leaves
// the service untouched.
func (s *ReconcileService) ProcessFiles(ctx context.Context, activityPath, ordersPath, trailersPath string) error {
	start := time.Now()

	var (
		loads    []domain.LoadRecord
		orders   []domain.OrderRecord
		trailers []domain.TrailerRecord
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		table, err := dataprocessing.ReadFile(activityPath)
		if err != nil {
			return fmt.Errorf("activity tracker: %w", err)
		}
		loads, err = dataprocessing.CleanActivity(table, s.calendar)
		return err
	})

	g.Go(func() error {
		table, err := dataprocessing.ReadFile(ordersPath)
		if err != nil {
			return fmt.Errorf("order view: %w", err)
		}
		orders, err = dataprocessing.CleanOrders(table)
		return err
	})

	g.Go(func() error {
		table, err := dataprocessing.ReadFile(trailersPath)
		if err != nil {
			return fmt.Errorf("trailer activity: %w", err)
		}
		trailers, err = dataprocessing.CleanTrailers(table, s.calendar)
		return err
	})

	if err := g.Wait(); err != nil {
		infrastructure.RecordReconcileMetrics(ctx, s.metrics, time.Since(start), 0, err)
		return err
	}

	s.mu.Lock()
	s.loads = loads
	s.orders = orders
	s.trailers = trailers
	delta := s.recomputeLocked()
	s.mu.Unlock()

	infrastructure.RecordReconcileMetrics(ctx, s.metrics, time.Since(start), delta, nil)

	s.logger.InfoContext(ctx, "processed warehouse exports",
		slog.Int("loads", len(loads)),
		slog.Int("orders", len(orders)),
		slog.Int("trailers", len(trailers)),
		slog.Duration("duration", time.Since(start)))

	s.export(ctx)
	return nil
}

// recomputeLocked rebuilds the compliance table from the current orders
// and trailers. Caller must hold the write lock. Returns the change in
// record count.
func (s *ReconcileService) recomputeLocked() int64 {
	previous := len(s.compliance)
	s.compliance = dataprocessing.Reconcile(s.orders, s.trailers)
	s.lastRun = time.Now()
	s.runs++
	return int64(len(s.compliance) - previous)
}

// export writes the CSV reports if an exporter is attached. An export
// failure does not roll back the in-memory tables.
func (s *ReconcileService) export(ctx context.Context) {
	if s.reports == nil {
		return
	}

	loads, orders, trailers, compliance := s.snapshot()
	if err := s.reports.ExportAll(loads, orders, trailers, compliance); err != nil {
		s.logger.ErrorContext(ctx, "failed to write reports",
			slog.String("error", err.Error()))
	}
}

func (s *ReconcileService) snapshot() ([]domain.LoadRecord, []domain.OrderRecord, []domain.TrailerRecord, []domain.ComplianceRecord) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loads := make([]domain.LoadRecord, len(s.loads))
	copy(loads, s.loads)
	orders := make([]domain.OrderRecord, len(s.orders))
	copy(orders, s.orders)
	trailers := make([]domain.TrailerRecord, len(s.trailers))
	copy(trailers, s.trailers)
	compliance := make([]domain.ComplianceRecord, len(s.compliance))
	copy(compliance, s.compliance)

	return loads, orders, trailers, compliance
}

// Loads returns a copy of the cleaned load time table
func (s *ReconcileService) Loads() []domain.LoadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LoadRecord, len(s.loads))
	copy(out, s.loads)
	return out
}

// Orders returns a copy of the cleaned order table
func (s *ReconcileService) Orders() []domain.OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.OrderRecord, len(s.orders))
	copy(out, s.orders)
	return out
}

// Trailers returns a copy of the cleaned trailer table
func (s *ReconcileService) Trailers() []domain.TrailerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TrailerRecord, len(s.trailers))
	copy(out, s.trailers)
	return out
}

// Compliance returns a copy of the reconciled compliance table. Returns
// ErrTableNotReady before the first successful reconciliation run.
func (s *ReconcileService) Compliance() ([]domain.ComplianceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.runs == 0 {
		return nil, ErrTableNotReady
	}

	out := make([]domain.ComplianceRecord, len(s.compliance))
	copy(out, s.compliance)
	return out, nil
}

// Status summarizes the current state of the service
type Status struct {
	Loads      int       `json:"loads"`
	Orders     int       `json:"orders"`
	Trailers   int       `json:"trailers"`
	Compliance int       `json:"compliance"`
	Runs       int64     `json:"runs"`
	LastRun    time.Time `json:"last_run,omitempty"`
}

// Status returns row counts and run information
func (s *ReconcileService) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		Loads:      len(s.loads),
		Orders:     len(s.orders),
		Trailers:   len(s.trailers),
		Compliance: len(s.compliance),
		Runs:       s.runs,
		LastRun:    s.lastRun,
	}
}
