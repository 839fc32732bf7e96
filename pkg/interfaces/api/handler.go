package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/interfaces/cli/output"
)

const (
	HealthzPath   = "/healthz"
	ReconcilePath = "/reconcile"
	MetricsPath   = "/metrics"

	// Multipart field names of the two uploads.
	CloudField = "cloud"
	CGField    = "cg"

	processingFailedMessage = "failed to process the uploaded files"
	formatHint              = "check that the files are the cloud warehouse and CG exports, saved as .csv or .xlsx"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
	Code  int    `json:"code"`
}

type Handler struct {
	log *slog.Logger
	cfg Config
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeJSONError(w http.ResponseWriter, status int, msg, hint string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg, Hint: hint, Code: status})
}

func NewHandler(log *slog.Logger, cfg Config) (*Handler, error) {
	if log == nil {
		return nil, errors.New("logger is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("handler config validation failed: %w", err)
	}
	return &Handler{log: log, cfg: cfg}, nil
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc(HealthzPath, h.healthzHandler)
	mux.HandleFunc(ReconcilePath, h.reconcileHandler)
	mux.Handle(MetricsPath, promhttp.Handler())
}

func (h *Handler) reconcileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		ReconcileRequestsTotal.WithLabelValues("method_not_allowed").Inc()
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" && format != "xlsx" {
		h.writeJSONError(w, http.StatusBadRequest, "invalid format (expect json, csv or xlsx)", "")
		ReconcileRequestsTotal.WithLabelValues("invalid_format").Inc()
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
			ReconcileRequestsTotal.WithLabelValues("request_body_too_large").Inc()
			return
		}
		h.writeJSONError(w, http.StatusBadRequest, "expected a multipart form upload", "")
		ReconcileRequestsTotal.WithLabelValues("invalid_form").Inc()
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	start := time.Now()

	cloud, err := h.readTable(r, CloudField)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}
	cg, err := h.readTable(r, CGField)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}

	report, err := h.cfg.Orchestrator.Run(r.Context(), cloud, cg)
	if err != nil {
		h.log.Error("failed to reconcile uploads", "error", err)
		h.writeJSONError(w, http.StatusUnprocessableEntity, processingFailedMessage, formatHint)
		ReconcileRequestsTotal.WithLabelValues("processing_failed").Inc()
		return
	}

	var buf bytes.Buffer
	switch format {
	case "csv":
		err = output.WriteCSV(&buf, report, h.cfg.Headers)
	case "xlsx":
		err = output.WriteXLSX(&buf, report, h.cfg.Headers)
	default:
		err = output.WriteJSON(&buf, report)
	}
	if err != nil {
		h.log.Error("failed to render report", "format", format, "error", err)
		h.writeJSONError(w, http.StatusInternalServerError, "failed to render report", "")
		ReconcileRequestsTotal.WithLabelValues("render_failed").Inc()
		return
	}

	ReconcileDuration.Observe(time.Since(start).Seconds())
	ReportSKUs.Set(float64(report.Statistics.SKUCount))
	ReconcileRequestsTotal.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", output.ContentType(format))
	if format != "json" {
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", output.FileName(format, h.cfg.Now())))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// errMissingUpload marks a request that lacks one of the two files
type errMissingUpload struct {
	field string
}

func (e errMissingUpload) Error() string {
	return fmt.Sprintf("missing %s file", e.field)
}

func (h *Handler) readTable(r *http.Request, field string) (*entities.Table, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, errMissingUpload{field: field}
	}
	defer file.Close()

	table, err := h.cfg.Loader.Read(field, header.Filename, file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s upload %s: %w", field, header.Filename, err)
	}
	return table, nil
}

func (h *Handler) writeUploadError(w http.ResponseWriter, err error) {
	var missing errMissingUpload
	if errors.As(err, &missing) {
		h.writeJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("both %s and %s files are required", CloudField, CGField), "")
		ReconcileRequestsTotal.WithLabelValues("missing_file").Inc()
		return
	}

	h.log.Error("failed to load upload", "error", err)
	h.writeJSONError(w, http.StatusUnprocessableEntity, processingFailedMessage, formatHint)
	ReconcileRequestsTotal.WithLabelValues("processing_failed").Inc()
}

func (h *Handler) healthzHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		h.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
	})
}
