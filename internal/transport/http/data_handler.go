package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "yardcli/internal/errors"
	"yardcli/internal/infrastructure"
	"yardcli/internal/services"
)

// DataHandler serves the cleaned tables and generated report files with
// RFC 7807 compliance
type DataHandler struct {
	reconcile    *services.ReconcileService
	data         *services.DataService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler with RFC 7807 error handling
func NewDataHandler(reconcile *services.ReconcileService, data *services.DataService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		reconcile:    reconcile,
		data:         data,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the data routes with proper Chi patterns
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/status", h.GetStatus)
	r.Get("/reports", h.GetReports)

	r.Route("/tables", func(r chi.Router) {
		r.Get("/load-times", h.GetLoadTimes)
		r.Get("/orders", h.GetOrders)
		r.Get("/trailers", h.GetTrailers)
		r.Get("/compliance", h.GetCompliance)
	})

	r.Route("/download/{type}/{filename}", func(r chi.Router) {
		r.Use(h.DownloadCtx)
		r.Get("/", h.DownloadFile)
	})

	return r
}

// DownloadCtx middleware validates download parameters
func (h *DataHandler) DownloadCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fileType := chi.URLParam(r, "type")
		filename := chi.URLParam(r, "filename")

		validTypes := map[string]bool{
			"reports": true,
			"uploads": true,
		}

		if !validTypes[fileType] {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("type", fmt.Sprintf("Invalid file type: %s", fileType)))
			return
		}

		if filename == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("filename", "Filename is required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetStatus handles GET /api/v1/data/status
func (h *DataHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.reconcile.Status(),
	})
}

// GetLoadTimes handles GET /api/v1/data/tables/load-times
func (h *DataHandler) GetLoadTimes(w http.ResponseWriter, r *http.Request) {
	loads := h.reconcile.Loads()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   loads,
		"count":  len(loads),
	})
}

// GetOrders handles GET /api/v1/data/tables/orders
func (h *DataHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.reconcile.Orders()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   orders,
		"count":  len(orders),
	})
}

// GetTrailers handles GET /api/v1/data/tables/trailers
func (h *DataHandler) GetTrailers(w http.ResponseWriter, r *http.Request) {
	trailers := h.reconcile.Trailers()
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   trailers,
		"count":  len(trailers),
	})
}

// GetCompliance handles GET /api/v1/data/tables/compliance with RFC 7807 errors
func (h *DataHandler) GetCompliance(w http.ResponseWriter, r *http.Request) {
	reqID := infrastructure.GetTraceID(r.Context())

	records, err := h.reconcile.Compliance()
	if err != nil {
		if errors.Is(err, services.ErrTableNotReady) {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusNotFound,
				"TABLE_NOT_READY",
				"The compliance table has not been computed yet; upload source files first",
			))
			return
		}

		h.logger.ErrorContext(r.Context(), "failed to get compliance table",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   records,
		"count":  len(records),
	})
}

// GetReports handles GET /api/v1/data/reports with RFC 7807 errors
func (h *DataHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	reqID := infrastructure.GetTraceID(r.Context())

	reports, err := h.data.GetReports(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNoReportsFound) {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusNotFound,
				"NO_REPORTS_FOUND",
				"No reports available",
			))
			return
		}

		h.logger.ErrorContext(r.Context(), "failed to get reports",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   reports,
		"count":  len(reports),
	})
}

// DownloadFile handles GET /api/v1/data/download/{type}/{filename} with
// RFC 7807 errors
func (h *DataHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	reqID := infrastructure.GetTraceID(r.Context())
	fileType := chi.URLParam(r, "type")
	filename := chi.URLParam(r, "filename")

	path, err := h.data.DownloadFile(r.Context(), fileType, filename)
	if err != nil {
		h.logger.WarnContext(r.Context(), "download refused",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("file_type", fileType),
			slog.String("filename", filename))

		switch {
		case errors.Is(err, services.ErrFileNotFound):
			h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusNotFound,
				"FILE_NOT_FOUND",
				fmt.Sprintf("File '%s' not found", filename),
				map[string]interface{}{
					"type":     fileType,
					"filename": filename,
				},
			))
		case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidFileType):
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("filename", "Invalid download request"))
		default:
			h.errorHandler.HandleError(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	http.ServeFile(w, r, path)
}
