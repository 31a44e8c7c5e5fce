package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftdesk/timeclock-backend-go/internal/domain/correction"
	"github.com/shiftdesk/timeclock-backend-go/internal/handler/http/response"
)

type CorrectionHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type CorrectionHandlerImpl struct {
	correctionService correction.CorrectionService
}

func NewCorrectionHandler(correctionService correction.CorrectionService) CorrectionHandler {
	return &CorrectionHandlerImpl{correctionService: correctionService}
}

// Submit implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req correction.SubmitRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.correctionService.Submit(r.Context(), req)
	if err != nil {
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request submitted", resp)
}

// Get implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Correction id is required", nil)
		return
	}

	resp, err := h.correctionService.Get(r.Context(), id)
	if err != nil {
		slog.Error("Get service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListPending implements CorrectionHandler.
func (h *CorrectionHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := correction.PendingFilter{
		Page:  parseIntQuery(query.Get("page")),
		Limit: parseIntQuery(query.Get("limit")),
	}

	resp, err := h.correctionService.ListPending(r.Context(), filter)
	if err != nil {
		slog.Error("ListPending service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Approve implements CorrectionHandler.
func (h *CorrectionHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Correction id is required", nil)
		return
	}

	resp, err := h.correctionService.Approve(r.Context(), id)
	if err != nil {
		slog.Error("Approve service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction approved", resp)
}
