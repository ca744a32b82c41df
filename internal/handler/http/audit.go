package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/audit-pilar-go/internal/domain/audit"
	"github.com/cmlabs-hris/audit-pilar-go/internal/handler/http/response"
	"github.com/cmlabs-hris/audit-pilar-go/internal/pkg/spreadsheet"
	"github.com/go-chi/chi/v5"
)

// maxRequestBody bounds a single request; a full batch of submissions fits well below it.
const maxRequestBody = 4 << 20

type AuditHandler interface {
	Evaluate(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	EvaluateBatch(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Compare(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	EngineConfig(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{
		auditService: auditService,
	}
}

// Evaluate handles POST /audits
func (h *auditHandlerImpl) Evaluate(w http.ResponseWriter, r *http.Request) {
	var sub audit.AuditSubmission
	if !decodeBody(w, r, &sub) {
		return
	}

	result, err := h.auditService.Evaluate(r.Context(), sub)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Audit evaluated successfully", result)
}

// Preview handles POST /audits/preview
func (h *auditHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var sub audit.AuditSubmission
	if !decodeBody(w, r, &sub) {
		return
	}

	result, err := h.auditService.Preview(r.Context(), sub)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Audit preview generated, nothing was stored", result)
}

// EvaluateBatch handles POST /audits/batch. When any submission is invalid the
// per-item errors are returned with the validation failure.
func (h *auditHandlerImpl) EvaluateBatch(w http.ResponseWriter, r *http.Request) {
	var req audit.BatchEvaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.auditService.EvaluateBatch(r.Context(), req)
	if err != nil {
		if result.Failed > 0 {
			response.ValidationErrorWithData(w, err, result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Created(w, fmt.Sprintf("%d audits evaluated successfully", result.Succeeded), result)
}

// GetByID handles GET /audits/{id}
func (h *auditHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.auditService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /audits
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := audit.ListAuditRequest{
		Nama:   query.Get("name"),
		Cabang: query.Get("branch"),
		Page:   1,
		Limit:  20,
	}

	if p := query.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			response.BadRequest(w, "invalid page parameter", nil)
			return
		}
		req.Page = page
	}
	if l := query.Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil {
			response.BadRequest(w, "invalid limit parameter", nil)
			return
		}
		req.Limit = limit
	}

	result, err := h.auditService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Items, &response.Meta{
		Page:       req.Page,
		Limit:      req.Limit,
		TotalItems: result.TotalItems,
		TotalPages: int(math.Ceil(float64(result.TotalItems) / float64(req.Limit))),
	})
}

// Compare handles GET /audits/compare
func (h *auditHandlerImpl) Compare(w http.ResponseWriter, r *http.Request) {
	req := audit.CompareAuditRequest{
		PreviousID: r.URL.Query().Get("previous"),
		CurrentID:  r.URL.Query().Get("current"),
	}

	result, err := h.auditService.Compare(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export handles GET /audits/{id}/export
func (h *auditHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.auditService.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", spreadsheet.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// EngineConfig handles GET /engine/config
func (h *auditHandlerImpl) EngineConfig(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.auditService.Config())
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return false
	}
	return true
}
