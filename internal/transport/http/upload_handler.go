package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"yardcli/internal/dataprocessing"
	apierrors "yardcli/internal/errors"
	"yardcli/internal/infrastructure"
	"yardcli/internal/services"
)

// UploadHandler receives warehouse export uploads with RFC 7807 errors
type UploadHandler struct {
	service        *services.ReconcileService
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service *services.ReconcileService, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *UploadHandler {
	return &UploadHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "upload_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the upload routes
func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/{source}", h.Upload)

	return r
}

// Upload handles POST /api/v1/uploads/{source}. The request is a
// multipart form with a single "file" part holding a .csv or .xlsx
// export. A rejected file leaves the current tables untouched.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	reqID := infrastructure.GetTraceID(r.Context())

	source, err := services.ParseSource(chi.URLParam(r, "source"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("source",
			"Upload source must be one of: activity, orders, trailers"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.WarnContext(r.Context(), "upload form rejected",
			slog.String("request_id", reqID),
			slog.String("source", string(source)),
			slog.String("error", err.Error()))

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errorHandler.HandleError(w, r, apierrors.New(
				http.StatusRequestEntityTooLarge,
				"UPLOAD_TOO_LARGE",
				fmt.Sprintf("Upload exceeds the %d byte limit", h.maxUploadBytes),
			))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file",
			"Multipart form must contain a 'file' part"))
		return
	}
	defer file.Close()

	table, err := dataprocessing.ReadUpload(header.Filename, file)
	if err != nil {
		h.logger.WarnContext(r.Context(), "upload failed to parse",
			slog.String("request_id", reqID),
			slog.String("source", string(source)),
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrUploadRejected(header.Filename, err))
		return
	}

	if err := h.service.Ingest(r.Context(), source, table); err != nil {
		h.logger.WarnContext(r.Context(), "upload rejected by cleaner",
			slog.String("request_id", reqID),
			slog.String("source", string(source)),
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrUploadRejected(header.Filename, err))
		return
	}

	h.logger.InfoContext(r.Context(), "upload accepted",
		slog.String("request_id", reqID),
		slog.String("source", string(source)),
		slog.String("filename", header.Filename))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"source": string(source),
		"file":   header.Filename,
		"tables": h.service.Status(),
	})
}
