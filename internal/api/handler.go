package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/yourorg/financiero/internal/auth"
	"github.com/yourorg/financiero/internal/finance"
	"github.com/yourorg/financiero/internal/report"
)

// ReportRenderer renders history tables for download.
type ReportRenderer interface {
	HTML(t report.Table) (string, error)
	PDF(ctx context.Context, t report.Table) ([]byte, error)
}

// Handler serves the calculation engine over HTTP.
type Handler struct {
	cfg     Config
	svc     *finance.Service
	reports ReportRenderer
	logger  *slog.Logger
}

func NewHandler(cfg Config, svc *finance.Service, reports ReportRenderer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, svc: svc, reports: reports, logger: logger}
}

// Health matches GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, correlationID(r), map[string]string{"status": "ok"}, nil)
}

// ListCategories matches GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, correlationID(r), CategoriesResponse{Categories: finance.Categories()}, nil)
}

// GetCategory matches GET /categories/{name}. Unknown names get the generic
// detail screen rather than a 404.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	var name string
	if err := bindPath("name", chi.URLParam(r, "name"), &name); err != nil {
		writeBadParam(w, corrID, "name", err)
		return
	}
	d := finance.ParseDomain(name)
	detail := CategoryDetail{Domain: d, Calculable: d.Calculable(), Fields: d.InputFields()}
	if d.Calculable() {
		detail.Title = d.Label()
	} else {
		detail.Title = finance.DetailTitle(name)
	}
	writeJSON(w, http.StatusOK, corrID, detail, nil)
}

// Calculate matches POST /calculations/{domain}
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	log := CorrelationLogger(h.logger, corrID, actorName(r))

	d, ok := h.calculableDomain(w, r, corrID)
	if !ok {
		return
	}

	var req CalculationRequest
	body := http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, corrID, ErrorBody{
			Code:    "BAD_JSON",
			Message: "invalid JSON",
			CorrId:  corrID,
			Errors:  []ValidationErrorItem{{Code: "BAD_JSON", Path: "body", Message: err.Error()}},
		}, nil)
		return
	}

	rec, err := h.svc.Calculate(d, req.Fields)
	if err != nil {
		h.writeCalculationError(w, log, corrID, err)
		return
	}
	log.Info("calculation stored", "domain", d, "seq", rec.Seq, "id", rec.ID)
	writeJSON(w, http.StatusCreated, corrID, CalculationResponse{Record: rec}, map[string]string{
		"Location": fmt.Sprintf("/history/%s/%s", d, rec.ID),
	})
}

// ListHistory matches GET /history/{domain}
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	d, ok := h.calculableDomain(w, r, corrID)
	if !ok {
		return
	}

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeBadParam(w, corrID, "limit", err)
		return
	}
	n := 0
	if limit != nil {
		if *limit < 0 || *limit > h.cfg.MaxHistoryLimit {
			writeBadParam(w, corrID, "limit", fmt.Errorf("must be between 0 and %d", h.cfg.MaxHistoryLimit))
			return
		}
		n = *limit
	}

	recs, err := h.svc.HistoryTail(d, n)
	if err != nil {
		h.writeCalculationError(w, CorrelationLogger(h.logger, corrID, actorName(r)), corrID, err)
		return
	}
	writeJSON(w, http.StatusOK, corrID, HistoryResponse{
		Domain:  d,
		Label:   d.Label(),
		Count:   len(recs),
		Records: recs,
	}, nil)
}

// GetRecord matches GET /history/{domain}/{id}
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	d, ok := h.calculableDomain(w, r, corrID)
	if !ok {
		return
	}
	var id openapi_types.UUID
	if err := bindPath("id", chi.URLParam(r, "id"), &id); err != nil {
		writeBadParam(w, corrID, "id", err)
		return
	}
	rec, found, err := h.svc.Find(d, id.String())
	if err != nil || !found {
		writeNotFound(w, corrID, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, corrID, rec, nil)
}

// VerifyHistory matches GET /history/verify
func (h *Handler) VerifyHistory(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	if err := h.svc.Verify(); err != nil {
		CorrelationLogger(h.logger, corrID, actorName(r)).Error("history chain broken", "error", err)
		writeJSON(w, http.StatusConflict, corrID, VerifyResponse{Valid: false, Message: err.Error()}, nil)
		return
	}
	writeJSON(w, http.StatusOK, corrID, VerifyResponse{Valid: true}, nil)
}

// ReportHTML matches GET /history/{domain}/report.html
func (h *Handler) ReportHTML(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	table, ok := h.reportTable(w, r, corrID)
	if !ok {
		return
	}
	html, err := h.reports.HTML(table)
	if err != nil {
		h.writeReportError(w, r, corrID, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(HeaderCorrelationID, corrID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// ReportPDF matches GET /history/{domain}/report.pdf
func (h *Handler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	corrID := correlationID(r)
	table, ok := h.reportTable(w, r, corrID)
	if !ok {
		return
	}
	pdf, err := h.reports.PDF(r.Context(), table)
	if err != nil {
		h.writeReportError(w, r, corrID, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="historial-%s.pdf"`, chi.URLParam(r, "domain")))
	w.Header().Set(HeaderCorrelationID, corrID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) reportTable(w http.ResponseWriter, r *http.Request, corrID string) (report.Table, bool) {
	d, ok := h.calculableDomain(w, r, corrID)
	if !ok {
		return report.Table{}, false
	}
	table, err := h.svc.Table(d)
	if err != nil {
		writeNotFound(w, corrID, err.Error())
		return report.Table{}, false
	}
	return table, true
}

// calculableDomain binds {domain} and rejects categories without a calculator.
func (h *Handler) calculableDomain(w http.ResponseWriter, r *http.Request, corrID string) (finance.Domain, bool) {
	var raw string
	if err := bindPath("domain", chi.URLParam(r, "domain"), &raw); err != nil {
		writeBadParam(w, corrID, "domain", err)
		return "", false
	}
	d := finance.ParseDomain(raw)
	if !d.Calculable() {
		writeNotFound(w, corrID, finance.DetailTitle(raw)+": no calculator available")
		return "", false
	}
	return d, true
}

func (h *Handler) writeCalculationError(w http.ResponseWriter, log *slog.Logger, corrID string, err error) {
	var calcErr *finance.CalculationError
	switch {
	case errors.As(err, &calcErr) && finance.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, corrID, ErrorBody{
			Code:    "VALIDATION_ERROR",
			Message: finance.UserMessage,
			CorrId:  corrID,
			Errors: []ValidationErrorItem{{
				Code:    string(calcErr.Kind),
				Path:    "fields." + calcErr.Field,
				Message: calcErr.Message,
			}},
		}, nil)
	case errors.As(err, &calcErr):
		item := ValidationErrorItem{Code: string(calcErr.Kind), Message: calcErr.Message}
		if calcErr.Field != "" {
			item.Path = "fields." + calcErr.Field
		}
		writeJSON(w, http.StatusUnprocessableEntity, corrID, ErrorBody{
			Code:    "CALCULATION_ERROR",
			Message: finance.UserMessage,
			CorrId:  corrID,
			Errors:  []ValidationErrorItem{item},
		}, nil)
	case errors.Is(err, finance.ErrUnknownDomain):
		writeNotFound(w, corrID, err.Error())
	default:
		log.Error("calculation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, corrID, ErrorBody{
			Code:      "INTERNAL_ERROR",
			Message:   finance.UserMessage,
			CorrId:    corrID,
			Retryable: true,
		}, nil)
	}
}

func (h *Handler) writeReportError(w http.ResponseWriter, r *http.Request, corrID string, err error) {
	CorrelationLogger(h.logger, corrID, actorName(r)).Warn("report render failed", "error", err)
	writeJSON(w, http.StatusServiceUnavailable, corrID, ErrorBody{
		Code:      "REPORT_UNAVAILABLE",
		Message:   "report could not be rendered",
		CorrId:    corrID,
		Retryable: true,
	}, nil)
}

func bindPath(name, value string, dest any) error {
	return runtime.BindStyledParameterWithOptions("simple", name, value, dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
}

func writeBadParam(w http.ResponseWriter, corrID, name string, err error) {
	writeJSON(w, http.StatusBadRequest, corrID, ErrorBody{
		Code:    "BAD_PARAMETER",
		Message: fmt.Sprintf("invalid parameter %s", name),
		CorrId:  corrID,
		Errors:  []ValidationErrorItem{{Code: "BAD_PARAMETER", Path: name, Message: err.Error()}},
	}, nil)
}

func writeNotFound(w http.ResponseWriter, corrID, message string) {
	writeJSON(w, http.StatusNotFound, corrID, ErrorBody{Code: "NOT_FOUND", Message: message, CorrId: corrID}, nil)
}

func writeJSON(w http.ResponseWriter, status int, corrID string, v any, headers map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	if corrID != "" {
		w.Header().Set(HeaderCorrelationID, corrID)
	}
	for k, val := range headers {
		w.Header().Set(k, val)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// CorrelationLogger derives a request-scoped logger.
func CorrelationLogger(logger *slog.Logger, corrID, actor string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("corrId", corrID, "actor", actor)
}

func actorName(r *http.Request) string {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		return "anonymous"
	}
	if actor.KeyPrefix != "" {
		return actor.ActorType + ":" + actor.KeyPrefix
	}
	return actor.ActorType
}
